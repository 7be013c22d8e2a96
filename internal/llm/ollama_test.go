package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != RoleSystem {
			t.Errorf("expected system + user messages, got %+v", req.Messages)
		}
		if req.Options.Temperature != 0.7 {
			t.Errorf("temperature not forwarded: %v", req.Options.Temperature)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]any{
				"content": "advance to Grid TW-1001",
				"tool_calls": []map[string]any{{
					"function": map[string]any{
						"name":      "distance",
						"arguments": map[string]any{"from_lat": 25.0},
					},
				}},
			},
		})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "test-model")
	resp, err := c.Generate(context.Background(), Request{
		System:      "you are a commander",
		Messages:    []Message{{Role: RoleUser, Content: "plan the turn"}},
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != "advance to Grid TW-1001" {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if len(resp.ToolCalls) != 1 || resp.ToolCalls[0].Name != "distance" {
		t.Errorf("tool calls not parsed: %+v", resp.ToolCalls)
	}
}

func TestOllamaClient_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "missing")
	if _, err := c.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
