package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/at-ishikawa/studyloop/internal/studyday"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("utc_offset", isUTCOffset); err != nil {
		return nil, nil, fmt.Errorf("failed to register utc_offset validation: %w", err)
	}
	if err := validate.RegisterTranslation("utc_offset", trans, func(ut ut.Translator) error {
		return ut.Add("utc_offset", "{0} must be a UTC offset such as +09:00", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("utc_offset", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register utc_offset translation: %w", err)
	}

	return validate, trans, nil
}

func isUTCOffset(fl validator.FieldLevel) bool {
	_, err := studyday.ParseUTCOffset(fl.Field().String())
	return err == nil
}
