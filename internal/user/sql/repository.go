package usersql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awesomefonts/foundry/internal/serviceerr"
	"github.com/awesomefonts/foundry/internal/typeworld"
	"github.com/awesomefonts/foundry/internal/user"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Load(ctx context.Context, userID string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(
		ctx, `SELECT id, token, profile, created_at, updated_at
FROM users
WHERE id = $1;`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serviceerr.ErrNotFound
		}

		return nil, fmt.Errorf("selecting from users: %w", err)
	}

	return u, nil
}

func (r *Repository) GetOrCreate(ctx context.Context, userID string) (*user.User, error) {
	// Reads immediately after the insert must observe it, so both sides run
	// in one transaction against the primary.
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx, `INSERT INTO users (id, token, profile, created_at, updated_at)
VALUES ($1, NULL, NULL, now(), now())
	ON CONFLICT (id) DO NOTHING;`,
		userID,
	); err != nil {
		return nil, fmt.Errorf("inserting into users: %w", err)
	}

	u, err := scanUser(tx.QueryRow(
		ctx, `SELECT id, token, profile, created_at, updated_at
FROM users
WHERE id = $1;`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("selecting from users: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing tx: %w", err)
	}

	return u, nil
}

func (r *Repository) Save(ctx context.Context, u *user.User) error {
	profile, err := json.Marshal(u.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	var token *string
	if u.Token != "" {
		token = &u.Token
	}

	if _, err := r.db.Exec(
		ctx, `INSERT INTO users (id, token, profile, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
	ON CONFLICT (id)
	DO UPDATE SET (token, profile, updated_at) = (EXCLUDED.token, EXCLUDED.profile, now());`,
		u.ID, token, profile,
	); err != nil {
		return fmt.Errorf("upserting into users: %w", err)
	}

	return nil
}

type row interface {
	Scan(dest ...any) error
}

func scanUser(r row) (*user.User, error) {
	var (
		u       user.User
		token   sql.NullString
		profile []byte
	)
	if err := r.Scan(&u.ID, &token, &profile, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	u.Token = token.String
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &u.Profile); err != nil {
			return nil, fmt.Errorf("decoding profile: %w", err)
		}
	} else {
		u.Profile = typeworld.Profile{}
	}

	return &u, nil
}
