package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/pkg/security"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL
	)`,
	// doctor_id has no foreign key: dashboard rows for a
	// missing doctor show a null name.
	`CREATE TABLE IF NOT EXISTS appointments (
		id BIGSERIAL PRIMARY KEY,
		patient_name TEXT NOT NULL,
		email TEXT NOT NULL,
		doctor_id BIGINT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending'
			CHECK (status IN ('Pending', 'Confirmed', 'Rejected'))
	)`,
}

// Migrate creates the admins, doctors and appointments tables if missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	base := NewBaseRepository(db)
	return base.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}

// SeedAdmin inserts the default admin when the admins table is empty. It
// reports whether a row was created. Only the bcrypt hash is stored.
func SeedAdmin(ctx context.Context, db *sqlx.DB, hasher security.PasswordHasher, username, password string) (bool, error) {
	base := NewBaseRepository(db)
	created := false

	err := base.WithTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM admins)`); err != nil {
			return fmt.Errorf("failed to check admins: %w", err)
		}
		if exists {
			return nil
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO admins (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
			username, hash,
		)
		if err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		created = rows == 1
		return nil
	})

	return created, err
}
