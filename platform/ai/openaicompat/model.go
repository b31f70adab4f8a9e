// Package openaicompat adapts any OpenAI-compatible chat completion endpoint
// to the ADK model.LLM interface.
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// ErrNotConfigured is returned for every request when no API key is set.
var ErrNotConfigured = errors.New("llm api key not configured")

// Config for an OpenAI-compatible endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Model adapts an OpenAI-compatible API to the ADK model.LLM interface.
type Model struct {
	config Config
	client *openai.Client
}

func NewModel(cfg Config) *Model {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Model{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (m *Model) Name() string {
	return m.config.Model
}

// GenerateContent answers with a single non-streaming response.
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *Model) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	if m.config.APIKey == "" {
		return nil, ErrNotConfigured
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    m.config.Model,
		Messages: convertMessages(req),
	}
	if req.Config != nil {
		if req.Config.Temperature != nil {
			chatReq.Temperature = *req.Config.Temperature
		}
		if req.Config.ResponseMIMEType == "application/json" {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		}
	}

	resp, err := m.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty choices")
	}

	text := resp.Choices[0].Message.Content
	parts := make([]*genai.Part, 0, 1)
	if strings.TrimSpace(text) != "" {
		parts = append(parts, genai.NewPartFromText(text))
	}

	return &model.LLMResponse{
		Content: &genai.Content{
			Role:  genai.RoleModel,
			Parts: parts,
		},
	}, nil
}

func convertMessages(req *model.LLMRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Contents)+1)

	if req.Config != nil && req.Config.SystemInstruction != nil {
		if system := joinText(req.Config.SystemInstruction); system != "" {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			})
		}
	}

	for _, content := range req.Contents {
		if content == nil {
			continue
		}
		text := joinText(content)
		if text == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    roleForContent(content.Role),
			Content: text,
		})
	}
	return messages
}

func roleForContent(role string) string {
	if role == "model" {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

func joinText(content *genai.Content) string {
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
