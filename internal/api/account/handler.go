package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/entity"
	"github.com/malithjkd/ai-project-manager/internal/pkg/logger"
	"github.com/malithjkd/ai-project-manager/internal/pkg/response"
	"github.com/malithjkd/ai-project-manager/internal/pkg/validator"
)

type Handler struct {
	usecase AccountUsecase
}

func NewHandler(usecase AccountUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// Register handles POST /auth/register - create an account and profile
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Register")

	var req entity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON.")
		return
	}

	// Same checks run again inside the usecase; the handler rejects early
	// so malformed input never reaches the identity provider.
	if errs := validator.ValidateRegister(req); !errs.Valid() {
		ctxzap.Warn(ctx, "registration validation failed", zap.Any("fields", errs))
		response.ValidationError(w, errs)
		return
	}

	result, err := h.usecase.Register(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	status := http.StatusCreated
	if result.Status == entity.RegistrationPartial {
		status = http.StatusOK
	}
	response.JSON(w, status, result)
}

// SignIn handles POST /auth/signin - exchange credentials for a token
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SignIn")

	var req entity.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON.")
		return
	}

	if errs := validator.ValidateSignIn(req); !errs.Valid() {
		ctxzap.Warn(ctx, "sign-in validation failed", zap.Any("fields", errs))
		response.ValidationError(w, errs)
		return
	}

	result, err := h.usecase.SignIn(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// handleUsecaseError maps auth error kinds onto statuses and user-facing
// sentences. Provider details never leak into the response.
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var vErr *validator.Error
	if errors.As(err, &vErr) {
		response.ValidationError(w, vErr.Fields)
		return
	}

	switch {
	case errors.Is(err, entity.ErrEmailAlreadyInUse):
		response.Error(w, http.StatusConflict, "email_in_use", "This email address is already in use.")
	case errors.Is(err, entity.ErrWeakPassword):
		response.Error(w, http.StatusBadRequest, "weak_password", "Password is too weak. Please choose a longer password.")
	case errors.Is(err, entity.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password.")
	case errors.Is(err, entity.ErrAccountDisabled):
		response.Error(w, http.StatusForbidden, "account_disabled", "This account has been disabled.")
	case errors.Is(err, entity.ErrAccountNotFound):
		response.Error(w, http.StatusNotFound, "account_not_found", "No account found for this email address.")
	case errors.Is(err, entity.ErrAuthProvider):
		ctxzap.Error(ctx, "auth provider failure", zap.Error(err))
		response.Error(w, http.StatusBadGateway, "auth_unavailable", "Authentication service is currently unavailable. Please try again later.")
	default:
		ctxzap.Error(ctx, "unexpected error", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.")
	}
}
