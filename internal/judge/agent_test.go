package judge

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

type fakeLLM struct {
	reply string
	err   error
	seen  []*model.LLMRequest
}

func (f *fakeLLM) Name() string { return "fake-judge" }

func (f *fakeLLM) GenerateContent(_ context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	f.seen = append(f.seen, req)
	return func(yield func(*model.LLMResponse, error) bool) {
		if f.err != nil {
			yield(nil, f.err)
			return
		}
		yield(&model.LLMResponse{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.reply}}},
		}, nil)
	}
}

func TestAgentCompleterReturnsModelText(t *testing.T) {
	llm := &fakeLLM{reply: `{"score": 8}`}
	c, err := NewAgentCompleter(llm, "LeadScorer", "test", "Score leads.")
	if err != nil {
		t.Fatalf("new completer: %v", err)
	}

	got, err := c.Complete(context.Background(), "Score this lead")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != `{"score": 8}` {
		t.Fatalf("unexpected reply %q", got)
	}
	if len(llm.seen) != 1 {
		t.Fatalf("expected one model call, got %d", len(llm.seen))
	}
}

func TestAgentCompleterUsesFreshSessions(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	c, err := NewAgentCompleter(llm, "ClientMessenger", "test", "Write messages.")
	if err != nil {
		t.Fatalf("new completer: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Complete(context.Background(), "hello"); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}

	second := llm.seen[1]
	userTurns := 0
	for _, content := range second.Contents {
		for _, part := range content.Parts {
			if strings.Contains(part.Text, "hello") {
				userTurns++
			}
		}
	}
	if userTurns != 1 {
		t.Fatalf("expected second call to carry no history, saw %d user turns", userTurns)
	}
}

func TestAgentCompleterPropagatesModelErrors(t *testing.T) {
	c, err := NewAgentCompleter(&fakeLLM{err: errors.New("quota exceeded")}, "ListingCopywriter", "test", "Write copy.")
	if err != nil {
		t.Fatalf("new completer: %v", err)
	}
	if _, err := c.Complete(context.Background(), "write"); err == nil {
		t.Fatal("expected model error to surface")
	}
}
