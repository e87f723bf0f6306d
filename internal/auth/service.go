// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mangafire/mangafire/internal/platform/apperr"
	"github.com/mangafire/mangafire/internal/platform/constants"
	"github.com/mangafire/mangafire/internal/platform/dberr"
	"github.com/mangafire/mangafire/internal/platform/sec"
	"github.com/mangafire/mangafire/internal/platform/validate"
)

// TokenProvider defines the contract for minting signed access tokens.
// [sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Session is a successfully established login: a short-lived access token
// paired with the opaque refresh token the client stores in a cookie.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *User
}

// # Service Layer

// Service implements the account lifecycle and session protocol use cases.
//
// Changes to hashing, rotation, or the login error surface need a security
// review before merging.
type Service struct {
	users  UserRepository
	tokens TokenRepository
	issuer TokenProvider
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(users UserRepository, tokens TokenRepository, issuer TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		issuer: issuer,
		logger: logger,
	}
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

/*
Register validates, hashes, and persists a new account, then opens its
first session.

Description: A taken email surfaces as EMAIL_EXISTS rather than a generic
failure. That discloses address registration, and the product accepts the
tradeoff for the signup UX.

Returns:
  - *Session: Access + refresh token pair with the created account
  - error: [apperr.EmailExists] on duplicates, validation errors otherwise
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {

	// ── 1. Boundary validation ────────────────────────────────────────────
	validator := validate.New()
	validator.Required(FieldEmail, input.Email)
	validator.Email(FieldEmail, input.Email)
	validator.Required(FieldUsername, input.Username)
	validator.MinLen(FieldUsername, input.Username, 3)
	validator.MaxLen(FieldUsername, input.Username, 50)
	validator.MinLen(FieldPassword, input.Password, 8)
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	// ── 2. Credential hashing ─────────────────────────────────────────────
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	// ── 3. Persistence ────────────────────────────────────────────────────
	user := &User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: passwordHash,
		Role:         sec.RoleUser,
	}

	if err := service.users.Create(ctx, user); err != nil {
		if dberr.IsUniqueViolation(err, "users_email_unique") {
			return nil, apperr.EmailExists()
		}
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.Int("user_id", user.ID),
		slog.String("email", user.Email),
	)

	// ── 4. First session ──────────────────────────────────────────────────
	return service.openSession(ctx, user)
}

/*
Login verifies credentials and opens a fresh session.

Description: Unknown email, soft-deleted account, and wrong password all
collapse into the same INVALID_CREDENTIALS response so the endpoint cannot
be used to enumerate accounts. A successful login first revokes every prior
refresh token, so each account holds at most one live session.
*/
func (service *Service) Login(ctx context.Context, email, password string) (*Session, error) {

	// ── 1. Account lookup ─────────────────────────────────────────────────
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.InvalidCredentials()
	}

	// ── 2. Constant-time credential check ─────────────────────────────────
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	// ── 3. Revoke prior sessions ──────────────────────────────────────────
	if err := service.tokens.DeleteAllForUser(ctx, user.ID); err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.Int("user_id", user.ID))

	// ── 4. Session issuance ───────────────────────────────────────────────
	return service.openSession(ctx, user)
}

/*
Refresh exchanges a live refresh token for a fresh token pair.

Description: The state machine distinguishes four failure shapes, all of
which surface as 401 to the client:

  - Unknown digest: either garbage or a replay of an already-rotated
    token. Nothing to revoke; the caller clears the cookie.
  - Expired record: the record is deleted so the table does not
    accumulate dead sessions.
  - Vanished or soft-deleted owner: every session of that account is
    revoked.
  - Lost rotation race: the atomic rotate failed because a concurrent
    request consumed the token first; no second session is minted.
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {

	tokenHash := sec.HashToken(refreshToken)

	// ── 1. Session lookup ─────────────────────────────────────────────────
	record, err := service.tokens.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			service.logger.Warn("refresh_token_unknown")
			return nil, apperr.Unauthorized("Invalid refresh token")
		}
		return nil, err
	}

	// ── 2. Expiry check ───────────────────────────────────────────────────
	if record.Expired(time.Now()) {
		if err := service.tokens.DeleteByHash(ctx, tokenHash); err != nil {
			return nil, err
		}
		return nil, apperr.Unauthorized("Refresh token expired")
	}

	// ── 3. Owner check ────────────────────────────────────────────────────
	user, err := service.users.FindByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			if err := service.tokens.DeleteAllForUser(ctx, record.UserID); err != nil {
				return nil, err
			}
			return nil, apperr.Unauthorized("Account no longer active")
		}
		return nil, err
	}

	// ── 4. Atomic rotation ────────────────────────────────────────────────
	newToken, err := sec.GenerateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("auth: generate refresh token: %w", err)
	}

	next := &RefreshToken{
		UserID:    user.ID,
		TokenHash: sec.HashToken(newToken),
		ExpiresAt: time.Now().Add(constants.RefreshTokenTTL),
	}

	if err := service.tokens.Rotate(ctx, tokenHash, next); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			service.logger.Warn("refresh_token_rotation_race", slog.Int("user_id", user.ID))
			return nil, apperr.Unauthorized("Invalid refresh token")
		}
		return nil, err
	}

	accessToken, err := service.mintAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: newToken,
		ExpiresAt:    next.ExpiresAt,
		User:         user,
	}, nil
}

/*
Logout revokes every session of the token's owner.

Description: Logout is idempotent. An unknown or missing token still
succeeds; the handler clears the cookie regardless, so a client can always
reach a logged-out state.
*/
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	record, err := service.tokens.FindByHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.tokens.DeleteAllForUser(ctx, record.UserID); err != nil {
		return err
	}

	service.logger.Info("user_logged_out", slog.Int("user_id", record.UserID))
	return nil
}

// Profile returns the live account for an authenticated user ID.
func (service *Service) Profile(ctx context.Context, userID int) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// ProfilePatch holds the optional profile fields a user may change.
type ProfilePatch struct {
	Email    *string
	Username *string
}

// UpdateProfile applies a partial patch to the caller's own account.
func (service *Service) UpdateProfile(ctx context.Context, userID int, patch ProfilePatch) (*User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}

	validator := validate.New()
	validator.Required(FieldEmail, user.Email)
	validator.Email(FieldEmail, user.Email)
	validator.Required(FieldUsername, user.Username)
	validator.MinLen(FieldUsername, user.Username, 3)
	validator.MaxLen(FieldUsername, user.Username, 50)
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	if err := service.users.UpdateProfile(ctx, user); err != nil {
		if dberr.IsUniqueViolation(err, "users_email_unique") {
			return nil, apperr.EmailExists()
		}
		return nil, err
	}

	return user, nil
}

// # Internal Helpers

// openSession mints a token pair and persists the refresh half.
func (service *Service) openSession(ctx context.Context, user *User) (*Session, error) {
	accessToken, err := service.mintAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := sec.GenerateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("auth: generate refresh token: %w", err)
	}

	record := &RefreshToken{
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(constants.RefreshTokenTTL),
	}

	if err := service.tokens.Create(ctx, record); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    record.ExpiresAt,
		User:         user,
	}, nil
}

func (service *Service) mintAccessToken(user *User) (string, error) {
	token, err := service.issuer.GenerateAccessToken(
		strconv.Itoa(user.ID),
		user.Email,
		string(user.Role),
		constants.AccessTokenTTL,
	)
	if err != nil {
		return "", fmt.Errorf("auth: sign access token: %w", err)
	}
	return token, nil
}
