package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "shopmate/backend/pkg/errors"
)

// fakeProvider stands in for the Groq API with a canned completion response
func fakeProvider(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			MaxTokens int `json:"max_tokens"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   req.Model,
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": reply,
					},
					"finish_reason": "stop",
				},
			},
		})
	}))
}

func TestLLMClient_Complete(t *testing.T) {
	srv := fakeProvider(t, "Here are some options.")
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-key", "test-model", 100)

	reply, err := client.Complete(context.Background(), "You are an assistant.", "Recommend a phone.")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "Here are some options." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestLLMClient_ProviderErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-key", "test-model", 100)

	_, err := client.Complete(context.Background(), "system", "hello")
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if !apperrors.IsErrorType(err, apperrors.ErrorTypeLLM) {
		t.Errorf("expected LLM error type, got %v", err)
	}
}

func TestLLMClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-key", "test-model", 100)

	_, err := client.Complete(context.Background(), "system", "hello")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if !apperrors.IsErrorType(err, apperrors.ErrorTypeLLM) {
		t.Errorf("expected LLM error type, got %v", err)
	}
}
