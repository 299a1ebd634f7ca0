package ideation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/entity"
	pkgLogger "github.com/malithjkd/ai-project-manager/internal/pkg/logger"
	"github.com/malithjkd/ai-project-manager/internal/pkg/validator"
	"github.com/malithjkd/ai-project-manager/internal/repository"
)

const (
	replyApology = "I'm sorry, but I couldn't generate a response at this moment. Please try again or rephrase your message."
	replyError   = "Sorry, I encountered an error. Please try again."

	problemThinking = "Okay, let me try to summarize the problem based on our chat..."
	problemSuccess  = "Generated Problem Statement:\n\n%s\n\nI've updated the form. Does this look right? Let's discuss the potential solution next."
	problemFailure  = "Sorry, I had trouble generating the problem statement. Could you try rephrasing or providing more details?"

	solutionThinking = "Alright, let me draft a potential solution based on our conversation..."
	solutionSuccess  = "Generated Solution Statement:\n\n%s\n\nI've updated the form with the solution. Feel free to edit it or discuss further!"
	solutionFailure  = "Sorry, I had trouble generating the solution statement. Could you elaborate on the proposed solution?"

	savedMessage = "Ideation form saved successfully."
)

// minProblemHistory and minSolutionHistory guard extraction so the model is
// never asked to summarize a conversation that has not happened yet.
const (
	minProblemHistory  = 2
	minSolutionHistory = 4
)

// Usecase drives the ideation workflow. Sessions live in a TTL cache;
// only finalized forms reach the database.
type Usecase struct {
	sessions        *cache.Cache
	ai              AIConnector
	formRepo        repository.IdeationFormRepository
	generateTimeout time.Duration
	logger          *zap.Logger
}

func NewUsecase(
	ai AIConnector,
	formRepo repository.IdeationFormRepository,
	sessionTTL time.Duration,
	generateTimeout time.Duration,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		sessions:        cache.New(sessionTTL, 10*time.Minute),
		ai:              ai,
		formRepo:        formRepo,
		generateTimeout: generateTimeout,
		logger:          logger,
	}
}

// CreateSession starts a fresh session with the greeting turn and an empty
// form carrying a generated number and date.
func (uc *Usecase) CreateSession(ctx context.Context) (*entity.SessionDTO, error) {
	s := newSession()
	uc.sessions.Set(s.id, s, cache.DefaultExpiration)

	ctxzap.Info(ctx, "ideation session created", zap.String("session_id", s.id))

	return s.snapshot(), nil
}

// GetSession returns the current conversation, form and state.
func (uc *Usecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// SendMessage appends the user turn, asks the model for a reply and appends
// the outcome as the model turn. For non-empty input exactly two turns are
// appended no matter how the gateway call went; the session always ends up
// back in Idle.
func (uc *Usecase) SendMessage(ctx context.Context, sessionID, text string) (*entity.SessionDTO, error) {
	ctx = pkgLogger.WithSessionID(ctx, sessionID)

	if strings.TrimSpace(text) == "" {
		return nil, entity.ErrEmptyMessage
	}

	s, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state != entity.StateIdle {
		s.mu.Unlock()
		return nil, entity.ErrSessionBusy
	}
	s.conversation = append(s.conversation, entity.ChatMessage{Role: entity.RoleUser, Content: text})
	history := make([]entity.ChatMessage, len(s.conversation))
	copy(history, s.conversation)
	s.state = entity.StateAwaitingReply
	s.mu.Unlock()

	reply := uc.requestReply(ctx, history)

	s.mu.Lock()
	s.conversation = append(s.conversation, entity.ChatMessage{Role: entity.RoleModel, Content: reply})
	s.state = entity.StateIdle
	dto := s.snapshotLocked()
	s.mu.Unlock()

	return dto, nil
}

func (uc *Usecase) requestReply(ctx context.Context, history []entity.ChatMessage) string {
	callCtx, cancel := uc.withDeadline(ctx)
	defer cancel()

	reply, err := uc.ai.Chat(callCtx, history)
	if err != nil {
		ctxzap.Warn(ctx, "dialogue reply failed", zap.Error(err))
		return replyError
	}
	if reply == "" {
		return replyApology
	}
	return reply
}

// GenerateProblemStatement summarizes the conversation into a problem
// statement and writes it into the form.
func (uc *Usecase) GenerateProblemStatement(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	ctx = pkgLogger.WithSessionID(ctx, sessionID)

	return uc.generateStatement(ctx, sessionID, entity.ExtractionProblem)
}

// GenerateSolutionStatement summarizes the conversation into a solution
// statement. It requires the problem statement to exist first.
func (uc *Usecase) GenerateSolutionStatement(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	ctx = pkgLogger.WithSessionID(ctx, sessionID)

	return uc.generateStatement(ctx, sessionID, entity.ExtractionSolution)
}

func (uc *Usecase) generateStatement(ctx context.Context, sessionID string, kind entity.ExtractionKind) (*entity.SessionDTO, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	thinking, minHistory := problemThinking, minProblemHistory
	if kind == entity.ExtractionSolution {
		thinking, minHistory = solutionThinking, minSolutionHistory
	}

	s.mu.Lock()
	if s.state != entity.StateIdle {
		s.mu.Unlock()
		return nil, entity.ErrSessionBusy
	}
	if kind == entity.ExtractionSolution && strings.TrimSpace(s.form.ProblemStatement) == "" {
		s.mu.Unlock()
		return nil, entity.ErrProblemRequired
	}
	if len(s.conversation) < minHistory {
		s.mu.Unlock()
		return nil, entity.ErrNotEnoughHistory
	}

	// Snapshot excludes the thinking turn the model is about to replace.
	history := make([]entity.ChatMessage, len(s.conversation))
	copy(history, s.conversation)

	s.conversation = append(s.conversation, entity.ChatMessage{Role: entity.RoleModel, Content: thinking})
	placeholderIdx := len(s.conversation) - 1
	s.state = entity.StateAwaitingExtraction
	s.mu.Unlock()

	callCtx, cancel := uc.withDeadline(ctx)
	statement, extractErr := uc.ai.Extract(callCtx, history, kind)
	cancel()

	s.mu.Lock()
	// Replacement is positional: the captured index, never a content search.
	if extractErr != nil {
		ctxzap.Warn(ctx, "extraction failed", zap.String("kind", string(kind)), zap.Error(extractErr))
		s.conversation[placeholderIdx] = entity.ChatMessage{Role: entity.RoleModel, Content: failureTurn(kind)}
	} else {
		s.conversation[placeholderIdx] = entity.ChatMessage{Role: entity.RoleModel, Content: successTurn(kind, statement)}
		if kind == entity.ExtractionSolution {
			s.form.SolutionStatement = statement
		} else {
			s.form.ProblemStatement = statement
		}
	}
	s.state = entity.StateIdle
	dto := s.snapshotLocked()
	s.mu.Unlock()

	return dto, nil
}

// UpdateForm applies direct user edits. Nil fields stay untouched.
func (uc *Usecase) UpdateForm(ctx context.Context, sessionID string, req entity.UpdateFormRequest) (*entity.SessionDTO, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	applyIfSet := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyIfSet(&s.form.TargetPersona, req.TargetPersona)
	applyIfSet(&s.form.BusinessSponsor, req.BusinessSponsor)
	applyIfSet(&s.form.Originator, req.Originator)
	applyIfSet(&s.form.DascApproval, req.DascApproval)
	applyIfSet(&s.form.ProblemStatement, req.ProblemStatement)
	applyIfSet(&s.form.SolutionStatement, req.SolutionStatement)
	dto := s.snapshotLocked()
	s.mu.Unlock()

	return dto, nil
}

// SaveForm validates the required fields and appends the form to the
// document store, returning the generated record ID.
func (uc *Usecase) SaveForm(ctx context.Context, sessionID string) (*entity.SaveFormResponse, error) {
	ctx = pkgLogger.WithSessionID(ctx, sessionID)

	s, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	form := s.form
	s.mu.Unlock()

	if errs := validator.ValidateIdeationForm(form); !errs.Valid() {
		return nil, &validator.Error{Fields: errs}
	}

	stored, err := uc.formRepo.Save(ctx, form)
	if err != nil {
		ctxzap.Error(ctx, "failed to persist ideation form", zap.Error(err))
		return nil, err
	}

	ctxzap.Info(ctx, "ideation form saved", zap.String("form_id", stored.ID))

	return &entity.SaveFormResponse{
		FormID:  stored.ID,
		Message: savedMessage,
	}, nil
}

// ResetSession starts the conversation and form over within the same
// session ID.
func (uc *Usecase) ResetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	ctx = pkgLogger.WithSessionID(ctx, sessionID)

	s, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state != entity.StateIdle {
		s.mu.Unlock()
		return nil, entity.ErrSessionBusy
	}
	s.conversation = []entity.ChatMessage{{Role: entity.RoleModel, Content: greetingMessage}}
	s.form = newForm()
	dto := s.snapshotLocked()
	s.mu.Unlock()

	ctxzap.Info(ctx, "ideation session reset")

	return dto, nil
}

// GetStoredForm reads back a persisted form, e.g. for export.
func (uc *Usecase) GetStoredForm(ctx context.Context, formID string) (*entity.StoredIdeationForm, error) {
	return uc.formRepo.Get(ctx, formID)
}

func (uc *Usecase) getSession(sessionID string) (*session, error) {
	v, ok := uc.sessions.Get(sessionID)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return v.(*session), nil
}

func (uc *Usecase) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.generateTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.generateTimeout)
}

func successTurn(kind entity.ExtractionKind, statement string) string {
	if kind == entity.ExtractionSolution {
		return fmt.Sprintf(solutionSuccess, statement)
	}
	return fmt.Sprintf(problemSuccess, statement)
}

func failureTurn(kind entity.ExtractionKind) string {
	if kind == entity.ExtractionSolution {
		return solutionFailure
	}
	return problemFailure
}
