package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/config"
	"github.com/malithjkd/ai-project-manager/internal/entity"
	pkgRetry "github.com/malithjkd/ai-project-manager/internal/pkg/retry"
)

func testConfig(serverURL string) config.GenAIConnectorConfig {
	return config.GenAIConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:                   serverURL,
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
		},
		APIKey: "test-key",
		Model:  "gemini-2.0-flash",
		Retry: pkgRetry.RetryConfig{
			Attempts: 1,
			Delay:    time.Millisecond,
			MaxDelay: time.Millisecond,
		},
	}
}

func textResponse(text string) entity.GenAIGenerateResponse {
	return entity.GenAIGenerateResponse{
		Candidates: []entity.GenAICandidate{
			{Content: entity.GenAIContent{Role: "model", Parts: []entity.GenAIPart{{Text: text}}}},
		},
	}
}

func TestChatReturnsReply(t *testing.T) {
	var gotReq entity.GenAIGenerateRequest
	var gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(textResponse("What problem does this solve?"))
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())
	history := []entity.ChatMessage{
		{Role: entity.RoleModel, Content: "Hi! Let's discuss your project idea. What problem are you trying to solve?"},
		{Role: entity.RoleUser, Content: "I want to track team tasks"},
	}

	reply, err := conn.Chat(context.Background(), history)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "What problem does this solve?" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if len(gotReq.Contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(gotReq.Contents))
	}
	if gotReq.Contents[1].Role != "user" || gotReq.Contents[1].Parts[0].Text != "I want to track team tasks" {
		t.Fatalf("history not forwarded in order: %+v", gotReq.Contents)
	}
	if gotReq.SystemInstruction == nil {
		t.Fatal("expected a system instruction")
	}
}

func TestChatFilteredCandidateYieldsEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entity.GenAIGenerateResponse{})
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	reply, err := conn.Chat(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "hello"}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "" {
		t.Fatalf("expected empty reply, got %q", reply)
	}
}

func TestChatProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	_, err := conn.Chat(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "hello"}})
	if !errors.Is(err, entity.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestExtractProblemStatement(t *testing.T) {
	var gotReq entity.GenAIGenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(textResponse(`{"problem_statement": "Teams lose track of tasks across tools."}`))
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())
	history := []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "I want to track team tasks"},
		{Role: entity.RoleModel, Content: "Tell me more."},
	}

	statement, err := conn.Extract(context.Background(), history, entity.ExtractionProblem)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if statement != "Teams lose track of tasks across tools." {
		t.Fatalf("unexpected statement %q", statement)
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Fatalf("JSON response mime type not requested: %+v", gotReq.GenerationConfig)
	}
}

func TestExtractSolutionStatement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse(`{"solution_statement": "A shared task board with automated reminders."}`))
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	statement, err := conn.Extract(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "tasks"}}, entity.ExtractionSolution)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if statement != "A shared task board with automated reminders." {
		t.Fatalf("unexpected statement %q", statement)
	}
}

func TestExtractSchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "the problem is tasks"},
		{"empty statement", `{"problem_statement": ""}`},
		{"empty text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(textResponse(tt.body))
			}))
			defer server.Close()

			conn := NewConnector(testConfig(server.URL), zap.NewNop())

			_, err := conn.Extract(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "tasks"}}, entity.ExtractionProblem)
			if !errors.Is(err, entity.ErrGenerationFailed) {
				t.Fatalf("expected ErrGenerationFailed, got %v", err)
			}
		})
	}
}

func TestChatDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Retry.Attempts = 3

	conn := NewConnector(cfg, zap.NewNop())

	_, err := conn.Chat(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "hello"}})
	if !errors.Is(err, entity.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call for a definitive 400, got %d", calls)
	}
}

func TestChatRetriesTransientFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(textResponse("recovered"))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Retry.Attempts = 3

	conn := NewConnector(cfg, zap.NewNop())

	reply, err := conn.Chat(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "hello"}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "recovered" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}
