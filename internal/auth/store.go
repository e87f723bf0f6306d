// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package auth

import "context"

// UserRepository defines the data access contract for accounts.
//
// Every lookup excludes soft-deleted rows; a deactivated account behaves
// exactly like one that never existed.
type UserRepository interface {
	// Create persists a new account. A duplicate email surfaces as a
	// conflict through the users_email_unique constraint.
	Create(ctx context.Context, user *User) error

	// FindByID returns a live account or dberr.ErrNotFound.
	FindByID(ctx context.Context, id int) (*User, error)

	// FindByEmail returns a live account or dberr.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile overwrites the mutable profile fields (email, username).
	UpdateProfile(ctx context.Context, user *User) error
}

// TokenRepository defines the data access contract for refresh tokens.
type TokenRepository interface {
	// Create persists a new session record.
	Create(ctx context.Context, token *RefreshToken) error

	// FindByHash returns the session for a token digest or dberr.ErrNotFound.
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)

	// Rotate atomically replaces one session with another: the old record
	// is deleted and the new one inserted in a single transaction. If the
	// old record is already gone — a concurrent rotation or a replayed
	// token — the whole operation fails with dberr.ErrNotFound and nothing
	// is inserted.
	Rotate(ctx context.Context, oldHash string, next *RefreshToken) error

	// DeleteByHash removes a single session. Missing rows are not an error.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteAllForUser revokes every session of an account.
	DeleteAllForUser(ctx context.Context, userID int) error
}
