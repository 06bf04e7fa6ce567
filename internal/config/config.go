package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	StudyDay StudyDayConfig `mapstructure:"study_day"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite3 postgres"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type StudyDayConfig struct {
	UTCOffset  string `mapstructure:"utc_offset" validate:"utc_offset"`
	CutoffHour int    `mapstructure:"cutoff_hour" validate:"gte=0,lte=23"`
	// DueHour is the local hour review tasks become due; it must not precede the cutoff
	// so that the due time stays inside its study day.
	DueHour int `mapstructure:"due_hour" validate:"gte=0,lte=23,gtefield=CutoffHour"`
}

type ScheduleConfig struct {
	ShortOffsets    []int       `mapstructure:"short_offsets" validate:"min=1,dive,gt=0"`
	LongOffsets     []int       `mapstructure:"long_offsets" validate:"min=1,dive,gt=0"`
	RescheduleRetry RetryConfig `mapstructure:"reschedule_retry"`
}

type RetryConfig struct {
	Attempts       uint `mapstructure:"attempts" validate:"gte=1"`
	InitialDelayMs int  `mapstructure:"initial_delay_ms" validate:"gte=0"`
	MaxDelayMs     int  `mapstructure:"max_delay_ms" validate:"gtefield=InitialDelayMs"`
}

type OpenAIConfig struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	BaseURL          string `mapstructure:"base_url" validate:"omitempty,url"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
}

type ReminderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron" validate:"required_if=Enabled true"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studyloop")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("study_day.utc_offset", "+09:00")
	v.SetDefault("study_day.cutoff_hour", 3)
	v.SetDefault("study_day.due_hour", 12)
	v.SetDefault("schedule.short_offsets", []int{1, 3, 7, 14, 30})
	v.SetDefault("schedule.long_offsets", []int{1, 3, 7, 15, 30, 60, 120, 240, 365, 730, 1095, 1460, 1825})
	v.SetDefault("schedule.reschedule_retry.attempts", 4)
	v.SetDefault("schedule.reschedule_retry.initial_delay_ms", 200)
	v.SetDefault("schedule.reschedule_retry.max_delay_ms", 5000)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.max_retry_attempts", 0)
	v.SetDefault("reminder.enabled", false)
	v.SetDefault("reminder.cron", "0 8 * * *")

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
