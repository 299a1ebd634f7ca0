package authgw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/config"
	"github.com/malithjkd/ai-project-manager/internal/entity"
	pkgRetry "github.com/malithjkd/ai-project-manager/internal/pkg/retry"
)

func testConfig(serverURL string) config.AuthConnectorConfig {
	return config.AuthConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:                   serverURL,
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
		},
		APIKey:         "test-key",
		SignUpEndpoint: "/v1/accounts:signUp",
		SignInEndpoint: "/v1/accounts:signInWithPassword",
		Retry: pkgRetry.RetryConfig{
			Attempts: 2,
			Delay:    time.Millisecond,
			MaxDelay: time.Millisecond,
		},
	}
}

func providerError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error": {"code": %d, "message": %q}}`, status, code)
}

func TestCreateAccount(t *testing.T) {
	var gotPath, gotKey string
	var gotReq credentialsRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(credentialsResponse{
			LocalID: "acc-123",
			Email:   "jordan@example.com",
			IDToken: "tok",
		})
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	acc, err := conn.CreateAccount(context.Background(), "jordan@example.com", "secret1")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acc.ID != "acc-123" || acc.Email != "jordan@example.com" {
		t.Fatalf("unexpected account %+v", acc)
	}
	if gotPath != "/v1/accounts:signUp" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key query param = %q", gotKey)
	}
	if gotReq.Email != "jordan@example.com" || gotReq.Password != "secret1" || !gotReq.ReturnSecureToken {
		t.Fatalf("unexpected payload %+v", gotReq)
	}
}

func TestSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts:signInWithPassword" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(credentialsResponse{
			LocalID:      "acc-123",
			Email:        "jordan@example.com",
			IDToken:      "tok",
			RefreshToken: "refresh",
			ExpiresIn:    "3600",
		})
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	sess, err := conn.SignIn(context.Background(), "jordan@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sess.AccountID != "acc-123" || sess.IDToken != "tok" || sess.ExpiresIn != "3600" {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestProviderErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"EMAIL_EXISTS", entity.ErrEmailAlreadyInUse},
		{"WEAK_PASSWORD : Password should be at least 6 characters", entity.ErrWeakPassword},
		{"INVALID_LOGIN_CREDENTIALS", entity.ErrInvalidCredentials},
		{"INVALID_PASSWORD", entity.ErrInvalidCredentials},
		{"EMAIL_NOT_FOUND", entity.ErrAccountNotFound},
		{"USER_DISABLED", entity.ErrAccountDisabled},
		{"SOMETHING_NEW", entity.ErrAuthProvider},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				providerError(w, http.StatusBadRequest, tt.code)
			}))
			defer server.Close()

			conn := NewConnector(testConfig(server.URL), zap.NewNop())

			_, err := conn.CreateAccount(context.Background(), "jordan@example.com", "secret1")
			if !errors.Is(err, tt.want) {
				t.Fatalf("code %q: got %v, want %v", tt.code, err, tt.want)
			}
		})
	}
}

func TestProviderErrorNotRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		providerError(w, http.StatusBadRequest, "EMAIL_EXISTS")
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	_, err := conn.CreateAccount(context.Background(), "jordan@example.com", "secret1")
	if !errors.Is(err, entity.ErrEmailAlreadyInUse) {
		t.Fatalf("got %v", err)
	}
	if calls != 1 {
		t.Fatalf("provider error retried %d times", calls)
	}
}

func TestServerFailureRetriedThenMapped(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	_, err := conn.SignIn(context.Background(), "jordan@example.com", "secret1")
	if !errors.Is(err, entity.ErrAuthProvider) {
		t.Fatalf("got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
