package auth

import (
	"context"
	"database/sql"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the account registry. Uniqueness of username and email is
// ultimately enforced by the table constraints; the Count helpers exist so
// registration can fail early with a useful message.
type Users interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	CountByUsername(ctx context.Context, username string) (int, error)
	CountByUsernameTx(ctx context.Context, tx bun.IDB, username string) (int, error)
	CountByEmail(ctx context.Context, email string) (int, error)
	CountByEmailTx(ctx context.Context, tx bun.IDB, email string) (int, error)
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	UpdatePasswordByUsername(ctx context.Context, passwordHash, username string) (int64, error)
	UpdatePasswordByUsernameTx(ctx context.Context, tx bun.IDB, passwordHash, username string) (int64, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (a *users) GetByID(ctx context.Context, id int64) (*User, error) {
	return a.GetByIDTx(ctx, a.db, id)
}

func (a *users) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Relation("Roles").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isRecordNotFound(err) {
			return nil, newUserNotFound("id", id)
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return a.GetByUsernameTx(ctx, a.db, username)
}

func (a *users) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Relation("Roles").
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isRecordNotFound(err) {
			return nil, newUserNotFound("username", username)
		}
		return nil, err
	}

	return record, nil
}

func (a *users) CountByUsername(ctx context.Context, username string) (int, error) {
	return a.CountByUsernameTx(ctx, a.db, username)
}

func (a *users) CountByUsernameTx(ctx context.Context, tx bun.IDB, username string) (int, error) {
	return tx.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.username = ?", username).
		Count(ctx)
}

func (a *users) CountByEmail(ctx context.Context, email string) (int, error) {
	return a.CountByEmailTx(ctx, a.db, email)
}

func (a *users) CountByEmailTx(ctx context.Context, tx bun.IDB, email string) (int, error) {
	return tx.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.email = ?", email).
		Count(ctx)
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}

	// the m2m relation is persisted explicitly; bun does not cascade inserts
	// through the join table
	for _, role := range record.Roles {
		if role == nil {
			continue
		}
		link := &UserRole{UserID: record.ID, RoleID: role.ID}
		if _, err := tx.NewInsert().Model(link).Exec(ctx); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// UpdatePasswordByUsername performs the single conditional update backing
// password rotation. The row count lets callers distinguish "rotated" from
// "user vanished between authentication and update".
func (a *users) UpdatePasswordByUsername(ctx context.Context, passwordHash, username string) (int64, error) {
	return a.UpdatePasswordByUsernameTx(ctx, a.db, passwordHash, username)
}

func (a *users) UpdatePasswordByUsernameTx(ctx context.Context, tx bun.IDB, passwordHash, username string) (int64, error) {
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("password = ?", passwordHash).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("username = ?", username).
		Exec(ctx)

	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func newUserNotFound(field string, value any) error {
	return goerrors.New("user not found", goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{
			field: value,
		})
}
