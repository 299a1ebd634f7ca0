package ideation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/entity"
	"github.com/malithjkd/ai-project-manager/internal/pkg/formatter"
	"github.com/malithjkd/ai-project-manager/internal/pkg/logger"
	"github.com/malithjkd/ai-project-manager/internal/pkg/response"
	"github.com/malithjkd/ai-project-manager/internal/pkg/validator"
)

type Handler struct {
	usecase IdeationUsecase
}

func NewHandler(usecase IdeationUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// CreateSession handles POST /ideation-session - start a new ideation session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	dto, err := h.usecase.CreateSession(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, dto)
}

// GetSession handles GET /ideation-session/{id} - conversation, form and state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetSession"),
	)

	dto, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// SendMessage handles POST /ideation-session/{id}/message - send a chat message
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SendMessage"),
	)

	var req entity.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON.")
		return
	}

	dto, err := h.usecase.SendMessage(ctx, sessionID, req.Message)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// GenerateProblemStatement handles POST /ideation-session/{id}/problem-statement
func (h *Handler) GenerateProblemStatement(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GenerateProblemStatement"),
	)

	dto, err := h.usecase.GenerateProblemStatement(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// GenerateSolutionStatement handles POST /ideation-session/{id}/solution-statement
func (h *Handler) GenerateSolutionStatement(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GenerateSolutionStatement"),
	)

	dto, err := h.usecase.GenerateSolutionStatement(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// UpdateForm handles PATCH /ideation-session/{id}/form - direct form edits
func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "UpdateForm"),
	)

	var req entity.UpdateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON.")
		return
	}

	dto, err := h.usecase.UpdateForm(ctx, sessionID, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// SaveForm handles POST /ideation-session/{id}/save - persist the form
func (h *Handler) SaveForm(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SaveForm"),
	)

	resp, err := h.usecase.SaveForm(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, resp)
}

// ResetSession handles POST /ideation-session/{id}/reset - start over
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ResetSession"),
	)

	dto, err := h.usecase.ResetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// ExportForm handles GET /ideation-forms/{id}/export - download a saved form
func (h *Handler) ExportForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("form_id", formID),
		zap.String("action", "ExportForm"),
	)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = "markdown"
	}

	format := entity.ExportFormat(formatParam)
	if !format.IsValid() {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		response.Error(w, http.StatusBadRequest, "invalid_format", "Format must be one of: markdown, pdf, docx.")
		return
	}

	stored, err := h.usecase.GetStoredForm(ctx, formID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	factory := formatter.NewFactory()
	fmtr, err := factory.Create(format)
	if err != nil {
		ctxzap.Error(ctx, "format not implemented", zap.Error(err))
		response.Error(w, http.StatusNotImplemented, "format_not_implemented", "This export format is not available.")
		return
	}

	out, err := fmtr.Format(stored)
	if err != nil {
		ctxzap.Error(ctx, "failed to format ideation form", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "export_failed", "Could not render the ideation form.")
		return
	}

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"ideation-form-%s%s\"", formID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// handleUsecaseError maps workflow errors onto HTTP statuses. Raw internal
// errors never reach the response body.
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var vErr *validator.Error
	if errors.As(err, &vErr) {
		ctxzap.Warn(ctx, "validation failed", zap.Any("fields", vErr.Fields))
		response.ValidationError(w, vErr.Fields)
		return
	}

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, "session_not_found", "Ideation session not found or expired.")
	case errors.Is(err, entity.ErrFormNotFound):
		response.Error(w, http.StatusNotFound, "form_not_found", "Ideation form not found.")
	case errors.Is(err, entity.ErrSessionBusy):
		response.Error(w, http.StatusConflict, "session_busy", "Please wait for the current operation to finish.")
	case errors.Is(err, entity.ErrEmptyMessage):
		response.Error(w, http.StatusBadRequest, "empty_message", "Message must not be empty.")
	case errors.Is(err, entity.ErrNotEnoughHistory):
		response.Error(w, http.StatusConflict, "not_enough_history", "Chat a bit more about your idea before generating a statement.")
	case errors.Is(err, entity.ErrProblemRequired):
		response.Error(w, http.StatusConflict, "problem_required", "Generate the problem statement before the solution statement.")
	case errors.Is(err, entity.ErrPersistenceWrite):
		ctxzap.Error(ctx, "persistence failure", zap.Error(err))
		response.Error(w, http.StatusBadGateway, "save_failed", "Could not save the ideation form. Please try again later.")
	default:
		ctxzap.Error(ctx, "unexpected error", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.")
	}
}
