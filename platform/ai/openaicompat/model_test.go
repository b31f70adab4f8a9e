package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func TestGenerateContentSendsSystemAndUserMessages(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"score\": 9}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	m := NewModel(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "judge-model"})
	req := &model.LLMRequest{
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText("You are a lead scorer.", genai.RoleUser),
		},
		Contents: []*genai.Content{genai.NewContentFromText("Score this lead", genai.RoleUser)},
	}

	var text string
	for resp, err := range m.GenerateContent(context.Background(), req, false) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text = resp.Content.Parts[0].Text
	}

	if text != `{"score": 9}` {
		t.Fatalf("unexpected response text %q", text)
	}
	if captured.Model != "judge-model" {
		t.Fatalf("expected model judge-model, got %s", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
}

func TestGenerateContentWithoutKey(t *testing.T) {
	m := NewModel(Config{})
	for _, err := range m.GenerateContent(context.Background(), &model.LLMRequest{}, false) {
		if !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	}
}

func TestGenerateContentPropagatesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer srv.Close()

	m := NewModel(Config{APIKey: "k", BaseURL: srv.URL})
	req := &model.LLMRequest{Contents: []*genai.Content{genai.NewContentFromText("hi", genai.RoleUser)}}
	for _, err := range m.GenerateContent(context.Background(), req, false) {
		if err == nil {
			t.Fatal("expected error from 503 response")
		}
	}
}
