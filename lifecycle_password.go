package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// UpdatePassword rotates the stored hash for the identity named by the
// request's SecurityContext.
//
// A blank secret, including one that is only whitespace, is a soft failure:
// the method returns (false, nil) and nothing changes. The update itself is a
// single conditional statement keyed by username; false with a nil error also
// covers the race where the account disappeared between authentication and
// the update.
func (s *Lifecycle) UpdatePassword(ctx context.Context, sctx *SecurityContext, password string) (bool, error) {
	if strings.TrimSpace(password) == "" {
		return false, nil
	}

	if !sctx.Authenticated() {
		// the perimeter guarantees an authenticated context before this
		// operation is reachable; a missing one is a caller bug
		return false, goerrors.New("no authenticated security context", goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized)
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password provided")
	}

	affected, err := s.repo.Users().UpdatePasswordByUsername(ctx, hash, sctx.Username)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update password")
	}

	return affected == 1, nil
}
