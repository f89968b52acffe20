package auth

import (
	"context"

	"github.com/uptrace/bun"
)

// CreateSchema creates the auth tables if they do not exist. Meant for
// tests and for fresh deployments that do not run a migration tool; the
// unique constraints it creates are what ultimately guarantee the
// registration invariants.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Role)(nil),
		(*UserRole)(nil),
		(*Activation)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
