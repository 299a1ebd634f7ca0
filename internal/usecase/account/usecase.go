package account

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/entity"
	"github.com/malithjkd/ai-project-manager/internal/pkg/validator"
	"github.com/malithjkd/ai-project-manager/internal/repository"
)

const (
	registrationCompleteMessage = "Registration successful! User created and data saved."
	registrationPartialMessage  = "Your account was created, but saving your profile details failed. Please contact support."
)

// Usecase implements registration and sign-in on top of the external
// identity provider and the profile store.
type Usecase struct {
	authGateway AuthGateway
	profileRepo repository.UserProfileRepository
	logger      *zap.Logger
}

func NewUsecase(
	authGateway AuthGateway,
	profileRepo repository.UserProfileRepository,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		authGateway: authGateway,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Register creates the credential with the identity provider first, then
// writes the profile referencing the returned account ID. The ordering is
// deliberate: a failed credential means no profile is ever written, while a
// failed profile write after a created credential surfaces as the partial
// status instead of being rolled back.
func (uc *Usecase) Register(ctx context.Context, req entity.RegisterRequest) (*entity.RegisterResult, error) {
	if errs := validator.ValidateRegister(req); !errs.Valid() {
		return nil, &validator.Error{Fields: errs}
	}

	acc, err := uc.authGateway.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	profile, err := uc.profileRepo.Create(ctx, entity.UserProfile{
		AccountID: acc.ID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		ctxzap.Error(ctx, "profile write failed after credential creation",
			zap.String("account_id", acc.ID),
			zap.Error(err),
		)
		return &entity.RegisterResult{
			Status:    entity.RegistrationPartial,
			AccountID: acc.ID,
			Message:   registrationPartialMessage,
		}, nil
	}

	ctxzap.Info(ctx, "user registered",
		zap.String("account_id", acc.ID),
		zap.String("profile_id", profile.ID),
	)

	return &entity.RegisterResult{
		Status:    entity.RegistrationComplete,
		AccountID: acc.ID,
		ProfileID: profile.ID,
		Message:   registrationCompleteMessage,
	}, nil
}

// SignIn exchanges credentials for session token material from the
// identity provider.
func (uc *Usecase) SignIn(ctx context.Context, req entity.SignInRequest) (*entity.SignInResult, error) {
	if errs := validator.ValidateSignIn(req); !errs.Valid() {
		return nil, &validator.Error{Fields: errs}
	}

	sess, err := uc.authGateway.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	ctxzap.Info(ctx, "user signed in", zap.String("account_id", sess.AccountID))

	return &entity.SignInResult{
		AccountID: sess.AccountID,
		Email:     sess.Email,
		IDToken:   sess.IDToken,
		ExpiresIn: sess.ExpiresIn,
	}, nil
}
