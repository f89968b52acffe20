package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Activations is the activation state store. A record's token is written
// once at creation and never updated.
type Activations interface {
	GetByUserID(ctx context.Context, userID int64) (*Activation, error)
	GetByUserIDTx(ctx context.Context, tx bun.IDB, userID int64) (*Activation, error)
	GetByToken(ctx context.Context, token string) (*Activation, error)
	GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*Activation, error)
	Create(ctx context.Context, record *Activation) (*Activation, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Activation) (*Activation, error)
	SetActivationState(ctx context.Context, activated bool, token string) (int64, error)
	SetActivationStateTx(ctx context.Context, tx bun.IDB, activated bool, token string) (int64, error)
}

type activations struct {
	db *bun.DB
}

var _ Activations = (*activations)(nil)

func NewActivationsRepository(db *bun.DB) Activations {
	return &activations{db: db}
}

func (a *activations) GetByUserID(ctx context.Context, userID int64) (*Activation, error) {
	return a.GetByUserIDTx(ctx, a.db, userID)
}

func (a *activations) GetByUserIDTx(ctx context.Context, tx bun.IDB, userID int64) (*Activation, error) {
	record := &Activation{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isRecordNotFound(err) {
			return nil, newActivationNotFound("user_id", userID)
		}
		return nil, err
	}

	return record, nil
}

func (a *activations) GetByToken(ctx context.Context, token string) (*Activation, error) {
	return a.GetByTokenTx(ctx, a.db, token)
}

func (a *activations) GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*Activation, error) {
	record := &Activation{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.token = ?", token).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isRecordNotFound(err) {
			return nil, newActivationNotFound("token", token)
		}
		return nil, err
	}

	return record, nil
}

func (a *activations) Create(ctx context.Context, record *Activation) (*Activation, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *activations) CreateTx(ctx context.Context, tx bun.IDB, record *Activation) (*Activation, error) {
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

// SetActivationState updates only the activated flag, keyed by token. The
// token column itself is immutable after creation.
func (a *activations) SetActivationState(ctx context.Context, activated bool, token string) (int64, error) {
	return a.SetActivationStateTx(ctx, a.db, activated, token)
}

func (a *activations) SetActivationStateTx(ctx context.Context, tx bun.IDB, activated bool, token string) (int64, error) {
	res, err := tx.NewUpdate().
		Model((*Activation)(nil)).
		Set("activated = ?", activated).
		Where("token = ?", token).
		Exec(ctx)

	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func newActivationNotFound(field string, value any) error {
	return goerrors.New("activation record not found", goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{
			field: value,
		})
}
