package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Lifecycle orchestrates login, registration, activation toggling, and
// password rotation. It is the only place account state is read or mutated;
// everything it persists goes through the RepositoryManager inside a single
// transaction per operation.
type Lifecycle struct {
	repo        RepositoryManager
	provider    IdentityProvider
	hasher      PasswordAuthenticator
	defaultRole string
	logger      Logger
}

// NewLifecycle returns a new Lifecycle service.
func NewLifecycle(repo RepositoryManager, provider IdentityProvider) *Lifecycle {
	return &Lifecycle{
		repo:        repo,
		provider:    provider,
		hasher:      NewPasswordAuthenticator(),
		defaultRole: DefaultRoleName,
		logger:      defLogger{},
	}
}

func (s *Lifecycle) WithLogger(logger Logger) *Lifecycle {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithDefaultRole overrides the role assigned at registration.
func (s *Lifecycle) WithDefaultRole(name string) *Lifecycle {
	if name != "" {
		s.defaultRole = name
	}
	return s
}

// WithPasswordAuthenticator overrides the hashing primitive.
func (s *Lifecycle) WithPasswordAuthenticator(hasher PasswordAuthenticator) *Lifecycle {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// WithConfig applies the configurable lifecycle knobs from a Config.
func (s *Lifecycle) WithConfig(cfg Config) *Lifecycle {
	if cfg != nil {
		return s.WithDefaultRole(cfg.GetDefaultRoleName())
	}
	return s
}

// Login verifies the presented credential and establishes the per-request
// SecurityContext. Identity is re-established on every request; nothing is
// held server-side between calls.
func (s *Lifecycle) Login(ctx context.Context, identifier, password string) (*SecurityContext, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		if IsAuthenticationFailed(err) {
			s.logger.Debug("login rejected", "identifier", identifier)
			return nil, ErrAuthenticationFailed
		}
		s.logger.Error("login verify identity error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "identity verification failed")
	}

	if identity == nil {
		s.logger.Error("login identity is nil")
		return nil, ErrAuthenticationFailed
	}

	return &SecurityContext{
		Username: identity.Username(),
		Roles:    identity.Roles(),
		Claims: map[string]any{
			"uid":   identity.ID(),
			"email": identity.Email(),
		},
	}, nil
}
