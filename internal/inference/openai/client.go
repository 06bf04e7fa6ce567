package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/studyloop/internal/config"
	"github.com/at-ishikawa/studyloop/internal/inference"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(cfg config.OpenAIConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            cfg.Model,
		maxRetryAttempts: cfg.MaxRetryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

// GenerateQuiz implements the inference.QuizGenerator interface.
// Only transport failures are retried, and only when max_retry_attempts is set.
func (client *Client) GenerateQuiz(ctx context.Context, req inference.GenerateQuizRequest) ([]inference.QuizQuestion, error) {
	var result []inference.QuizQuestion
	if err := retry.Do(
		func() error {
			questions, err := client.generateQuiz(ctx, req)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = questions
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

const quizSystemPrompt = `You write multiple choice review questions for a learner who studied a topic.

Return ONLY a JSON object of the form {"questions": [...]}. Each question is
{"question": "<text>", "choices": ["<choice>", ...], "correct_index": <0-based index>, "explanation": "<one sentence>"}.

RULES
- Write exactly the requested number of questions.
- Each question has 4 choices and exactly one correct choice.
- Questions test understanding of the topic, not trivia about its wording.
- Write in the language of the topic.
- No text outside the JSON.`

func (client *Client) getRequestBody(req inference.GenerateQuizRequest) (ChatCompletionRequest, error) {
	if req.Count <= 0 {
		req.Count = inference.DefaultQuestionCount
	}
	if req.Difficulty == "" {
		req.Difficulty = inference.DifficultyMedium
	}
	userContent, err := json.Marshal(req)
	if err != nil {
		return ChatCompletionRequest{}, fmt.Errorf("json.Marshal(request) > %w", err)
	}

	return ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: quizSystemPrompt},
			{Role: RoleUser, Content: string(userContent)},
		},
		Temperature:    0.7,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}, nil
}

func (client *Client) generateQuiz(ctx context.Context, req inference.GenerateQuizRequest) ([]inference.QuizQuestion, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("empty topic")
	}

	requestBody, err := client.getRequestBody(req)
	if err != nil {
		return nil, fmt.Errorf("getRequestBody > %w", err)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return nil, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"topic", req.Topic,
		"usage", responseBody.Usage,
	)

	questions, err := decodeQuestions(content)
	if err != nil {
		slog.Default().Error("Failed to parse OpenAI response as JSON",
			"topic", req.Topic,
			"error", err)
		return nil, err
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// decodeQuestions accepts {"questions": [...]} or a bare array, optionally inside a code fence.
func decodeQuestions(content string) ([]inference.QuizQuestion, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "[") {
		var questions []inference.QuizQuestion
		if err := json.Unmarshal([]byte(content), &questions); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
		}
		return questions, nil
	}

	var wrapped struct {
		Questions []inference.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	if len(wrapped.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in %s", inference.ErrInvalidQuestion, content)
	}
	return wrapped.Questions, nil
}
