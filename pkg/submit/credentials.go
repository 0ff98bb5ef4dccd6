package submit

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// DefaultCredentialsError is the signal an auth backend returns when it
// rejects a username/password pair.
const DefaultCredentialsError = "CredentialsSignin"

// Credentials is the payload handed to an Authenticator. Redirect is always
// false for form-driven sign-ins; navigation is the dispatcher's job.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Redirect bool   `json:"redirect"`
}

// SignInResult mirrors the auth backend response: a non-empty Error means the
// credentials were rejected.
type SignInResult struct {
	Error   string
	Session Session
}

// Session describes an authenticated session. Claims are read without
// verification; the issuing server is the verifier.
type Session struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// ParseSession extracts registered claims from a JWT session token. Opaque
// tokens are returned as-is with no claims.
func ParseSession(token string) Session {
	session := Session{Token: token}
	if token == "" {
		return session
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return session
	}
	session.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}

// Authenticator is the external credential check.
type Authenticator interface {
	SignIn(ctx context.Context, creds Credentials) (SignInResult, error)
}

// AuthenticatorFunc adapts a function into an Authenticator.
type AuthenticatorFunc func(ctx context.Context, creds Credentials) (SignInResult, error)

// SignIn calls the underlying function.
func (fn AuthenticatorFunc) SignIn(ctx context.Context, creds Credentials) (SignInResult, error) {
	return fn(ctx, creds)
}

// CredentialSubmitter turns an Authenticator response into an Outcome.
type CredentialSubmitter struct {
	auth          Authenticator
	usernameField string
	passwordField string
	logger        *zap.Logger
}

// CredentialOption configures a CredentialSubmitter.
type CredentialOption func(*CredentialSubmitter)

// WithCredentialFields overrides the value keys read for username/password.
func WithCredentialFields(username, password string) CredentialOption {
	return func(s *CredentialSubmitter) {
		if username != "" {
			s.usernameField = username
		}
		if password != "" {
			s.passwordField = password
		}
	}
}

// WithCredentialLogger attaches a logger.
func WithCredentialLogger(logger *zap.Logger) CredentialOption {
	return func(s *CredentialSubmitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCredentialSubmitter wraps auth.
func NewCredentialSubmitter(auth Authenticator, options ...CredentialOption) *CredentialSubmitter {
	s := &CredentialSubmitter{
		auth:          auth,
		usernameField: "username",
		passwordField: "password",
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit performs a single credential check. Transport failures map to
// NetworkError, a rejection signal to InvalidCredentials and anything else to
// Success carrying the Session.
func (s *CredentialSubmitter) Submit(ctx context.Context, values map[string]string) Outcome {
	if s.auth == nil {
		return Failure(ReasonUnknown, ErrTransport)
	}
	creds := Credentials{
		Username: values[s.usernameField],
		Password: values[s.passwordField],
		Redirect: false,
	}

	result, err := s.auth.SignIn(ctx, creds)
	if err != nil {
		s.logger.Warn("credential check failed", zap.Error(err))
		return Failure(ReasonNetworkError, err)
	}
	if result.Error != "" {
		s.logger.Info("credentials rejected", zap.String("signal", result.Error))
		return Failure(ReasonInvalidCredentials, nil)
	}
	return Success(result.Session)
}
