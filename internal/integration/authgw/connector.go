package authgw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/config"
	"github.com/malithjkd/ai-project-manager/internal/entity"
	"github.com/malithjkd/ai-project-manager/internal/integration/common"
	pkghttp "github.com/malithjkd/ai-project-manager/pkg/http"
)

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type credentialsResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type providerErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Connector struct {
	config    config.AuthConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.AuthConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// CreateAccount registers a new credential with the identity provider.
// The password goes to the provider and nowhere else.
func (c *Connector) CreateAccount(ctx context.Context, email, password string) (*entity.AuthAccount, error) {
	ctxzap.Info(ctx, "creating account via identity provider", zap.String("email", email))

	resp, err := c.call(ctx, c.config.SignUpEndpoint, email, password)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "account created", zap.String("account_id", resp.LocalID))

	return &entity.AuthAccount{
		ID:    resp.LocalID,
		Email: resp.Email,
	}, nil
}

// SignIn exchanges credentials for session token material.
func (c *Connector) SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	ctxzap.Info(ctx, "signing in via identity provider", zap.String("email", email))

	resp, err := c.call(ctx, c.config.SignInEndpoint, email, password)
	if err != nil {
		return nil, err
	}

	return &entity.AuthSession{
		AccountID:    resp.LocalID,
		Email:        resp.Email,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (c *Connector) call(ctx context.Context, endpoint, email, password string) (*credentialsResponse, error) {
	req := credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}

	endpoint = endpoint + "?key=" + url.QueryEscape(c.config.APIKey)

	var resp credentialsResponse
	opts := append(c.config.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(isTransient),
	)
	err := retry.Do(func() error {
		resp = credentialsResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp)
	}, opts...)
	if err != nil {
		return nil, mapProviderError(err)
	}

	return &resp, nil
}

// isTransient limits retries to network failures and provider 5xx. Provider
// error codes like EMAIL_EXISTS are final answers, retrying them only burns
// the budget.
func isTransient(err error) bool {
	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return false
}

// mapProviderError translates identity-provider error codes into the domain
// error taxonomy. Unknown codes and transport failures all become
// ErrAuthProvider.
func mapProviderError(err error) error {
	var httpErr *pkghttp.HTTPError
	if !errors.As(err, &httpErr) {
		return entity.ErrAuthProvider
	}

	var body providerErrorBody
	if unmarshalErr := json.Unmarshal([]byte(httpErr.Message), &body); unmarshalErr != nil {
		return entity.ErrAuthProvider
	}

	// Provider messages sometimes carry a suffix, e.g.
	// "WEAK_PASSWORD : Password should be at least 6 characters".
	code := body.Error.Message
	if idx := strings.IndexAny(code, " :"); idx > 0 {
		code = code[:idx]
	}

	switch code {
	case "EMAIL_EXISTS":
		return entity.ErrEmailAlreadyInUse
	case "WEAK_PASSWORD":
		return entity.ErrWeakPassword
	case "INVALID_LOGIN_CREDENTIALS", "INVALID_PASSWORD":
		return entity.ErrInvalidCredentials
	case "EMAIL_NOT_FOUND":
		return entity.ErrAccountNotFound
	case "USER_DISABLED":
		return entity.ErrAccountDisabled
	default:
		return entity.ErrAuthProvider
	}
}
