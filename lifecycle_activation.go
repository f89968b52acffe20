package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// SetActivation applies the desired activation state to the record matching
// the token and returns the number of rows mutated (0 or 1), so callers can
// tell "nothing changed" from "changed".
//
// Re-activating an already active record fails with ErrAlreadyActivated:
// an activation link must not be replayable. Deactivating an already
// inactive record is intentionally not guarded the same way; the asymmetry
// comes from the original rule set and is kept as-is rather than quietly
// unified.
func (s *Lifecycle) SetActivation(ctx context.Context, activate bool, token string) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during activation toggle",
		)
	default:
		return s.setActivation(ctx, activate, token)
	}
}

func (s *Lifecycle) setActivation(ctx context.Context, activate bool, token string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	var affected int64

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.repo.Activations().GetByTokenTx(ctx, tx, token)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return ErrActivationNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve activation record")
		}

		if record.Activated && activate {
			return ErrAlreadyActivated
		}

		affected, err = s.repo.Activations().SetActivationStateTx(ctx, tx, activate, token)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update activation state")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return 0, richErr
		}
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "activation toggle failed")
	}

	return affected, nil
}
