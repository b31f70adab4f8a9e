package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

// Completer sends one prompt to a fresh conversation and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AgentCompleter runs prompts through an ADK llmagent. Every call gets its own
// session, which is deleted afterwards, so no state leaks between calls.
type AgentCompleter struct {
	runner         *runner.Runner
	sessionService session.Service
	appName        string
}

// NewAgentCompleter creates an agent without tools bound to instruction.
func NewAgentCompleter(llm model.LLM, name, description, instruction string) (*AgentCompleter, error) {
	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        name,
		Model:       llm,
		Description: description,
		Instruction: instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s agent: %w", name, err)
	}

	appName := strings.ToLower(name)
	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s runner: %w", name, err)
	}

	return &AgentCompleter{
		runner:         r,
		sessionService: sessionService,
		appName:        appName,
	}, nil
}

// Complete runs a single-turn conversation and concatenates the text parts of the reply.
func (a *AgentCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	sessionID := uuid.New().String()
	userID := a.appName + "-" + uuid.New().String()

	_, err := a.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   a.appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("%s: create session: %w", a.appName, err)
	}
	defer func() {
		_ = a.sessionService.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   a.appName,
			UserID:    userID,
			SessionID: sessionID,
		})
	}()

	userMessage := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{{
			Text: prompt,
		}},
	}

	runConfig := agent.RunConfig{StreamingMode: agent.StreamingModeNone}

	var outputText strings.Builder
	for event, err := range a.runner.Run(ctx, userID, sessionID, userMessage, runConfig) {
		if err != nil {
			return "", fmt.Errorf("%s: run failed: %w", a.appName, err)
		}
		if event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			outputText.WriteString(part.Text)
		}
	}

	output := strings.TrimSpace(outputText.String())
	if output == "" {
		return "", fmt.Errorf("%s: empty response", a.appName)
	}
	return output, nil
}
