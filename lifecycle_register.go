package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Register provisions a new account together with its activation record.
// Both writes happen inside one transaction; a concurrent registration that
// slips past the pre-checks is still stopped by the unique constraints on
// username and email.
//
// The candidate's Password field holds the clear-text secret on entry and
// the one-way hash once persisted. The activation record is bound to the
// account id assigned during the insert.
func (s *Lifecycle) Register(ctx context.Context, user *User, activation *Activation) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during registration",
		)
	default:
		return s.register(ctx, user, activation)
	}
}

func (s *Lifecycle) register(ctx context.Context, user *User, activation *Activation) error {
	if user == nil || activation == nil {
		return goerrors.New("registration requires an account and an activation record", goerrors.CategoryValidation)
	}

	if err := user.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// email first, then username; the first collision wins and is the
		// one reported
		if n, err := s.repo.Users().CountByEmailTx(ctx, tx, user.Email); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
		} else if n > 0 {
			return NewAccountExistsError("email", user.Email)
		}

		if n, err := s.repo.Users().CountByUsernameTx(ctx, tx, user.Username); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username uniqueness")
		} else if n > 0 {
			return NewAccountExistsError("username", user.Username)
		}

		role, err := s.repo.Roles().GetByNameTx(ctx, tx, s.defaultRole)
		if err != nil {
			if goerrors.IsNotFound(err) {
				s.logger.Error("default role is not provisioned", "role", s.defaultRole)
				return ErrDefaultRoleMissing
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up default role")
		}

		user.Roles = append(user.Roles, role)

		hash, err := s.hasher.HashPassword(user.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password provided")
		}
		user.Password = hash

		if _, err := s.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		activation.UserID = user.ID
		if _, err := s.repo.Activations().CreateTx(ctx, tx, activation); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create activation record")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "registration transaction failed")
	}

	return nil
}
