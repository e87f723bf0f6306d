// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

/*
Package auth implements the account lifecycle and the refresh-token session
protocol.

# Session Protocol

Access tokens are short-lived stateless JWTs and cannot be revoked before
they expire. Each login therefore pairs one with an opaque refresh token
whose SHA-256 digest is stored server-side. When the JWT expires, the
client exchanges the refresh token for a fresh pair; the old token is
atomically invalidated in the same step, so a stolen-and-replayed token
fails loudly instead of silently coexisting with the legitimate one.
*/
package auth

import (
	"time"

	"github.com/mangafire/mangafire/internal/platform/sec"
)

// User is a registered account.
//
// # Rules
//   - Email is unique across live accounts.
//   - PasswordHash is produced exclusively by [sec.HashPassword].
//   - A non-nil DeletedAt makes the account invisible to every lookup.
type User struct {
	ID           int          `json:"id"`
	Email        string       `json:"email"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	DeletedAt    *time.Time   `json:"-"`
}

// RefreshToken is the server-side record of one live session. Only the
// SHA-256 digest of the opaque token ever touches the database.
type RefreshToken struct {
	ID        int
	UserID    int
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has passed its lifetime.
func (token *RefreshToken) Expired(now time.Time) bool {
	return now.After(token.ExpiresAt)
}

const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
)
