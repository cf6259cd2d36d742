package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
)

var ErrEmptyCompletion = errors.New("chat completion returned no choices")

// Prompt is one user turn plus the optional search context injected before it.
type Prompt struct {
	UserMessage   string
	SearchContext string
}

type Completion struct {
	Content  string
	Model    string
	Duration time.Duration
}

type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
	MaxRetries  int // negative keeps the SDK default
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	api         openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

func NewClient(opts Options) *Client {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}
	if opts.MaxRetries >= 0 {
		reqOpts = append(reqOpts, option.WithMaxRetries(opts.MaxRetries))
	}

	return &Client{
		api:         openai.NewClient(reqOpts...),
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the system prompt, the search context (if any) and the user
// message, and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt Prompt) (*Completion, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(SystemPrompt),
	}
	if strings.TrimSpace(prompt.SearchContext) != "" {
		messages = append(messages, openai.SystemMessage(SearchContextMessage(prompt.SearchContext)))
	}
	messages = append(messages, openai.UserMessage(prompt.UserMessage))

	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(c.maxTokens)
	}

	start := time.Now()
	chat, err := c.api.Chat.Completions.New(ctx, params)
	elapsed := time.Since(start)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			logrus.WithFields(logrus.Fields{
				"model":  c.model,
				"status": apiErr.StatusCode,
			}).Warn("chat completion rejected")
		}
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	model := chat.Model
	if model == "" {
		model = c.model
	}
	logrus.WithFields(logrus.Fields{
		"model":    model,
		"duration": elapsed,
	}).Debug("chat completion finished")

	return &Completion{
		Content:  chat.Choices[0].Message.Content,
		Model:    model,
		Duration: elapsed,
	}, nil
}
