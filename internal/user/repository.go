package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	UpdateName(ctx context.Context, userID, name string) error
}

// AdminRepository answers the admin capability check, resolved once per
// request and passed into handlers rather than re-queried ad hoc.
type AdminRepository interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Grant(ctx context.Context, userID string) error
	Revoke(ctx context.Context, userID string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone FROM users WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &p, nil
}

func (r *repo) Upsert(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone
	`, p.ID, p.Name, p.Email, p.Phone)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *repo) UpdateName(ctx context.Context, userID, name string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $2 WHERE id = $1`,
		userID, name,
	)
	if err != nil {
		return fmt.Errorf("update user name: %w", err)
	}
	return nil
}

type adminRepo struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("select admin: %w", err)
	}
	return exists, nil
}

func (r *adminRepo) Grant(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (user_id, granted_at)
		VALUES ($1, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("grant admin: %w", err)
	}
	return nil
}

func (r *adminRepo) Revoke(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM admins WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("revoke admin: %w", err)
	}
	return nil
}
