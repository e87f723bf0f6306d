// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangafire/mangafire/internal/platform/database/schema"
	"github.com/mangafire/mangafire/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed account store.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new account row.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {

	t := schema.User
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s
	`,
		t.Table,
		t.Email, t.Username, t.PasswordHash, t.Role,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

// FindByID returns a live account by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int) (*User, error) {
	return repository.findBy(ctx, schema.User.ID, id)
}

// FindByEmail returns a live account by email.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findBy(ctx, schema.User.Email, email)
}

// findBy runs the shared single-account lookup. Soft-deleted rows are
// invisible to every caller.
func (repository *PostgresUserRepository) findBy(ctx context.Context, column string, value any) (*User, error) {

	t := schema.User
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		t.ID, t.Email, t.Username, t.PasswordHash, t.Role, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
		t.Table,
		column, t.DeletedAt,
	)

	var user User
	err := repository.pool.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user")
	}

	return &user, nil
}

// UpdateProfile overwrites the mutable profile fields.
func (repository *PostgresUserRepository) UpdateProfile(ctx context.Context, user *User) error {

	t := schema.User
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3 AND %s IS NULL
		RETURNING %s
	`,
		t.Table,
		t.Email, t.Username, t.UpdatedAt,
		t.ID, t.DeletedAt,
		t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_user_profile")
	}

	return nil
}

// # Token Repository

// PostgresTokenRepository implements the [TokenRepository] interface using pgx.
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository constructs a PostgreSQL backed session store.
func NewTokenRepository(pool *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{pool: pool}
}

// Create persists a new session record.
func (repository *PostgresTokenRepository) Create(ctx context.Context, token *RefreshToken) error {

	t := schema.RefreshToken
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		t.Table,
		t.UserID, t.TokenHash, t.ExpiresAt,
		t.ID, t.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_refresh_token")
	}

	return nil
}

// FindByHash returns the session matching a token digest.
func (repository *PostgresTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {

	t := schema.RefreshToken
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt,
		t.Table,
		t.TokenHash,
	)

	var token RefreshToken
	err := repository.pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_refresh_token")
	}

	return &token, nil
}

/*
Rotate atomically swaps one session for its successor.

Description: The delete must affect exactly one row before the insert runs.
Two concurrent rotations of the same token race on that delete; the loser
sees zero affected rows, the transaction rolls back, and no second session
is minted. The same property turns a replayed stolen token into a hard
failure.
*/
func (repository *PostgresTokenRepository) Rotate(ctx context.Context, oldHash string, next *RefreshToken) error {

	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_rotate_token")
	}
	defer tx.Rollback(ctx)

	t := schema.RefreshToken

	// ── 1. Conditional delete of the predecessor ──────────────────────────
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.TokenHash)

	result, err := tx.Exec(ctx, deleteQuery, oldHash)
	if err != nil {
		return dberr.Wrap(err, "rotate_delete_token")
	}
	if result.RowsAffected() != 1 {
		return dberr.ErrNotFound
	}

	// ── 2. Insert of the successor ────────────────────────────────────────
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		t.Table,
		t.UserID, t.TokenHash, t.ExpiresAt,
		t.ID, t.CreatedAt,
	)

	err = tx.QueryRow(ctx, insertQuery,
		next.UserID,
		next.TokenHash,
		next.ExpiresAt,
	).Scan(&next.ID, &next.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "rotate_insert_token")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_rotate_token")
	}

	return nil
}

// DeleteByHash removes a single session. Deleting a missing row is a no-op.
func (repository *PostgresTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {

	t := schema.RefreshToken
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.TokenHash)

	if _, err := repository.pool.Exec(ctx, query, tokenHash); err != nil {
		return dberr.Wrap(err, "delete_refresh_token")
	}
	return nil
}

// DeleteAllForUser revokes every session of an account.
func (repository *PostgresTokenRepository) DeleteAllForUser(ctx context.Context, userID int) error {

	t := schema.RefreshToken
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.UserID)

	if _, err := repository.pool.Exec(ctx, query, userID); err != nil {
		return dberr.Wrap(err, "delete_user_refresh_tokens")
	}
	return nil
}
