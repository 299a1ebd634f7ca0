package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

type stubUsecase struct {
	registerResult *entity.RegisterResult
	signInResult   *entity.SignInResult
	err            error
	registerCalls  int
	signInCalls    int
}

func (s *stubUsecase) Register(ctx context.Context, req entity.RegisterRequest) (*entity.RegisterResult, error) {
	s.registerCalls++
	return s.registerResult, s.err
}

func (s *stubUsecase) SignIn(ctx context.Context, req entity.SignInRequest) (*entity.SignInResult, error) {
	s.signInCalls++
	return s.signInResult, s.err
}

func newTestRouter(uc AccountUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc))
	return r
}

const validRegisterBody = `{
	"name": "Jordan Lee",
	"email": "jordan@example.com",
	"password": "secret123",
	"role": "Product owner"
}`

func TestRegisterCompleteReturns201(t *testing.T) {
	uc := &stubUsecase{registerResult: &entity.RegisterResult{
		Status:    entity.RegistrationComplete,
		AccountID: "acc-1",
		ProfileID: "prof-1",
		Message:   "Registration successful! User created and data saved.",
	}}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(validRegisterBody)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var result entity.RegisterResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Status != entity.RegistrationComplete {
		t.Fatalf("expected complete status, got %q", result.Status)
	}
}

func TestRegisterPartialReturns200(t *testing.T) {
	uc := &stubUsecase{registerResult: &entity.RegisterResult{
		Status:    entity.RegistrationPartial,
		AccountID: "acc-1",
		Message:   "Your account was created, but saving your profile details failed. Please contact support.",
	}}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(validRegisterBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for partial registration, got %d", rec.Code)
	}
}

func TestRegisterValidationStopsAtHandler(t *testing.T) {
	uc := &stubUsecase{}
	router := newTestRouter(uc)

	body := `{"name":"","email":"not-an-email","password":"abc","role":"CEO"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if uc.registerCalls != 0 {
		t.Fatalf("usecase called %d times for invalid input", uc.registerCalls)
	}

	var resp entity.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, field := range []string{"name", "email", "password", "role"} {
		if resp.Fields[field] == "" {
			t.Errorf("expected message for field %q, got %+v", field, resp.Fields)
		}
	}
}

func TestRegisterErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"email in use", entity.ErrEmailAlreadyInUse, http.StatusConflict, "email_in_use"},
		{"weak password", entity.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
		{"provider down", entity.ErrAuthProvider, http.StatusBadGateway, "auth_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubUsecase{err: tt.err})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(validRegisterBody)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp entity.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestSignInSuccess(t *testing.T) {
	uc := &stubUsecase{signInResult: &entity.SignInResult{
		AccountID: "acc-1",
		Email:     "jordan@example.com",
		IDToken:   "token-1",
	}}
	router := newTestRouter(uc)

	body := `{"email":"jordan@example.com","password":"secret123"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result entity.SignInResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.IDToken != "token-1" {
		t.Fatalf("expected token in response, got %+v", result)
	}
}

func TestSignInErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", entity.ErrInvalidCredentials, http.StatusUnauthorized},
		{"account disabled", entity.ErrAccountDisabled, http.StatusForbidden},
		{"account not found", entity.ErrAccountNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubUsecase{err: tt.err})

			body := `{"email":"jordan@example.com","password":"secret123"}`
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
