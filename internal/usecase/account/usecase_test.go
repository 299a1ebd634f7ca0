package account

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/entity"
	"github.com/malithjkd/ai-project-manager/internal/pkg/validator"
)

type recordingAuthGateway struct {
	createCalls []string
	signInCalls []string

	account   *entity.AuthAccount
	createErr error
	session   *entity.AuthSession
	signInErr error
}

func (f *recordingAuthGateway) CreateAccount(ctx context.Context, email, password string) (*entity.AuthAccount, error) {
	f.createCalls = append(f.createCalls, email)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.account, nil
}

func (f *recordingAuthGateway) SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	f.signInCalls = append(f.signInCalls, email)
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

type recordingProfileRepo struct {
	created   []entity.UserProfile
	createErr error
}

func (r *recordingProfileRepo) Create(ctx context.Context, profile entity.UserProfile) (*entity.UserProfile, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	profile.ID = "profile-1"
	r.created = append(r.created, profile)
	return &profile, nil
}

func (r *recordingProfileRepo) GetByAccountID(ctx context.Context, accountID string) (*entity.UserProfile, error) {
	for _, p := range r.created {
		if p.AccountID == accountID {
			return &p, nil
		}
	}
	return nil, entity.ErrAccountNotFound
}

func validRequest() entity.RegisterRequest {
	return entity.RegisterRequest{
		Name:     "Jordan Perera",
		Email:    "jordan@example.com",
		Password: "secret1",
		Role:     "Product owner",
	}
}

func TestRegisterSuccess(t *testing.T) {
	gw := &recordingAuthGateway{account: &entity.AuthAccount{ID: "acc-1", Email: "jordan@example.com"}}
	repo := &recordingProfileRepo{}
	uc := NewUsecase(gw, repo, zap.NewNop())

	result, err := uc.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if result.Status != entity.RegistrationComplete {
		t.Fatalf("status = %s", result.Status)
	}
	if result.AccountID != "acc-1" || result.ProfileID != "profile-1" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Message != registrationCompleteMessage {
		t.Fatalf("message %q", result.Message)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d profiles", len(repo.created))
	}
	profile := repo.created[0]
	if profile.AccountID != "acc-1" || profile.Name != "Jordan Perera" || profile.Role != "Product owner" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestRegisterEmailAlreadyInUseSkipsProfileWrite(t *testing.T) {
	gw := &recordingAuthGateway{createErr: entity.ErrEmailAlreadyInUse}
	repo := &recordingProfileRepo{}
	uc := NewUsecase(gw, repo, zap.NewNop())

	_, err := uc.Register(context.Background(), validRequest())
	if !errors.Is(err, entity.ErrEmailAlreadyInUse) {
		t.Fatalf("got %v, want ErrEmailAlreadyInUse", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("profile written despite auth failure")
	}
}

func TestRegisterInvalidInputNeverReachesGateway(t *testing.T) {
	gw := &recordingAuthGateway{}
	uc := NewUsecase(gw, &recordingProfileRepo{}, zap.NewNop())

	req := validRequest()
	req.Password = "abcde"

	_, err := uc.Register(context.Background(), req)
	var vErr *validator.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want a validation error", err)
	}
	if vErr.Fields["password"] != "Password must be at least 6 characters long." {
		t.Fatalf("fields %v", vErr.Fields)
	}
	if len(gw.createCalls) != 0 {
		t.Fatal("gateway called for invalid input")
	}
}

func TestRegisterPartialOnProfileWriteFailure(t *testing.T) {
	gw := &recordingAuthGateway{account: &entity.AuthAccount{ID: "acc-1", Email: "jordan@example.com"}}
	repo := &recordingProfileRepo{createErr: entity.ErrPersistenceWrite}
	uc := NewUsecase(gw, repo, zap.NewNop())

	result, err := uc.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if result.Status != entity.RegistrationPartial {
		t.Fatalf("status = %s", result.Status)
	}
	if result.AccountID != "acc-1" || result.ProfileID != "" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Message != registrationPartialMessage {
		t.Fatalf("message %q", result.Message)
	}
}

func TestSignInSuccess(t *testing.T) {
	gw := &recordingAuthGateway{session: &entity.AuthSession{
		AccountID: "acc-1",
		Email:     "jordan@example.com",
		IDToken:   "tok",
		ExpiresIn: "3600",
	}}
	uc := NewUsecase(gw, &recordingProfileRepo{}, zap.NewNop())

	result, err := uc.SignIn(context.Background(), entity.SignInRequest{Email: "jordan@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if result.AccountID != "acc-1" || result.IDToken != "tok" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSignInErrorKindsPassThrough(t *testing.T) {
	for _, want := range []error{
		entity.ErrInvalidCredentials,
		entity.ErrAccountNotFound,
		entity.ErrAccountDisabled,
		entity.ErrAuthProvider,
	} {
		gw := &recordingAuthGateway{signInErr: want}
		uc := NewUsecase(gw, &recordingProfileRepo{}, zap.NewNop())

		_, err := uc.SignIn(context.Background(), entity.SignInRequest{Email: "jordan@example.com", Password: "secret1"})
		if !errors.Is(err, want) {
			t.Fatalf("got %v, want %v", err, want)
		}
	}
}

func TestSignInValidation(t *testing.T) {
	gw := &recordingAuthGateway{}
	uc := NewUsecase(gw, &recordingProfileRepo{}, zap.NewNop())

	_, err := uc.SignIn(context.Background(), entity.SignInRequest{Email: "bad", Password: ""})
	var vErr *validator.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want a validation error", err)
	}
	if len(gw.signInCalls) != 0 {
		t.Fatal("gateway called for invalid input")
	}
}
