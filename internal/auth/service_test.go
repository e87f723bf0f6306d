// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangafire/mangafire/internal/platform/apperr"
	"github.com/mangafire/mangafire/internal/platform/dberr"
	"github.com/mangafire/mangafire/internal/platform/sec"
	"github.com/mangafire/mangafire/pkg/pointer"
)

// fakeUserRepository is an in-memory UserRepository double honoring the
// soft-delete contract.
type fakeUserRepository struct {
	users  map[int]*User
	nextID int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[int]*User{}, nextID: 1}
}

func (f *fakeUserRepository) Create(ctx context.Context, user *User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return dberr.Wrap(&pgconn.PgError{
				Code:           "23505",
				ConstraintName: "users_email_unique",
			}, "create_user")
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id int) (*User, error) {
	user, ok := f.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, dberr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email && user.DeletedAt == nil {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) UpdateProfile(ctx context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

// fakeTokenRepository is an in-memory TokenRepository double with the same
// atomic rotation semantics as the SQL implementation.
type fakeTokenRepository struct {
	byHash map[string]*RefreshToken
	nextID int
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{byHash: map[string]*RefreshToken{}, nextID: 1}
}

func (f *fakeTokenRepository) Create(ctx context.Context, token *RefreshToken) error {
	token.ID = f.nextID
	f.nextID++
	token.CreatedAt = time.Now()
	copied := *token
	f.byHash[token.TokenHash] = &copied
	return nil
}

func (f *fakeTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	token, ok := f.byHash[tokenHash]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *token
	return &copied, nil
}

func (f *fakeTokenRepository) Rotate(ctx context.Context, oldHash string, next *RefreshToken) error {
	if _, ok := f.byHash[oldHash]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.byHash, oldHash)
	return f.Create(ctx, next)
}

func (f *fakeTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	delete(f.byHash, tokenHash)
	return nil
}

func (f *fakeTokenRepository) DeleteAllForUser(ctx context.Context, userID int) error {
	for hash, token := range f.byHash {
		if token.UserID == userID {
			delete(f.byHash, hash)
		}
	}
	return nil
}

// fakeTokenProvider mints predictable access tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error) {
	return "access-" + userID, nil
}

func newTestService(users *fakeUserRepository, tokens *fakeTokenRepository) *Service {
	return NewService(users, tokens, fakeTokenProvider{}, slog.Default())
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.Code
}

/*
TestRegister_OpensFirstSession verifies account creation, hashing, and the
initial token pair.
*/
func TestRegister_OpensFirstSession(t *testing.T) {
	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	service := newTestService(users, tokens)

	session, err := service.Register(context.Background(), RegisterInput{
		Email:    "guts@mangafire.app",
		Username: "guts",
		Password: "strugglerpass",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, session.User.Role)
	assert.NotEqual(t, "strugglerpass", session.User.PasswordHash)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// Only the digest is stored, never the opaque token.
	_, rawStored := tokens.byHash[session.RefreshToken]
	assert.False(t, rawStored)
	_, digestStored := tokens.byHash[sec.HashToken(session.RefreshToken)]
	assert.True(t, digestStored)
}

/*
TestRegister_DuplicateEmail verifies the EMAIL_EXISTS conflict.
*/
func TestRegister_DuplicateEmail(t *testing.T) {
	service := newTestService(newFakeUserRepository(), newFakeTokenRepository())

	input := RegisterInput{Email: "guts@mangafire.app", Username: "guts", Password: "strugglerpass"}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	input.Username = "other"
	_, err = service.Register(context.Background(), input)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, err))
}

/*
TestLogin_GenericFailureShape verifies that unknown email, wrong password,
and soft-deleted accounts are indistinguishable to the caller.
*/
func TestLogin_GenericFailureShape(t *testing.T) {
	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	service := newTestService(users, tokens)

	_, err := service.Register(context.Background(), RegisterInput{
		Email: "guts@mangafire.app", Username: "guts", Password: "strugglerpass",
	})
	require.NoError(t, err)

	// Unknown email.
	_, err = service.Login(context.Background(), "nobody@mangafire.app", "strugglerpass")
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))

	// Wrong password.
	_, err = service.Login(context.Background(), "guts@mangafire.app", "wrongpassword")
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))

	// Soft-deleted account behaves like a missing one.
	now := time.Now()
	users.users[1].DeletedAt = &now
	_, err = service.Login(context.Background(), "guts@mangafire.app", "strugglerpass")
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))
}

/*
TestLogin_RevokesPriorSessions verifies that a fresh login leaves exactly
one live session.
*/
func TestLogin_RevokesPriorSessions(t *testing.T) {
	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	service := newTestService(users, tokens)

	first, err := service.Register(context.Background(), RegisterInput{
		Email: "guts@mangafire.app", Username: "guts", Password: "strugglerpass",
	})
	require.NoError(t, err)

	second, err := service.Login(context.Background(), "guts@mangafire.app", "strugglerpass")
	require.NoError(t, err)

	assert.Len(t, tokens.byHash, 1)
	_, oldAlive := tokens.byHash[sec.HashToken(first.RefreshToken)]
	assert.False(t, oldAlive)
	_, newAlive := tokens.byHash[sec.HashToken(second.RefreshToken)]
	assert.True(t, newAlive)
}

/*
TestRefresh_RotationInvalidatesOldToken verifies the rotation step and that
a replay of the consumed token fails.
*/
func TestRefresh_RotationInvalidatesOldToken(t *testing.T) {
	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	service := newTestService(users, tokens)

	session, err := service.Register(context.Background(), RegisterInput{
		Email: "guts@mangafire.app", Username: "guts", Password: "strugglerpass",
	})
	require.NoError(t, err)

	rotated, err := service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.Len(t, tokens.byHash, 1)

	// Replaying the consumed token must fail, not mint a second session.
	_, err = service.Refresh(context.Background(), session.RefreshToken)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))
	assert.Len(t, tokens.byHash, 1)
}

/*
TestRefresh_ExpiredTokenIsDeleted verifies expiry handling: rejection plus
cleanup of the dead record.
*/
func TestRefresh_ExpiredTokenIsDeleted(t *testing.T) {
	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	service := newTestService(users, tokens)

	session, err := service.Register(context.Background(), RegisterInput{
		Email: "guts@mangafire.app", Username: "guts", Password: "strugglerpass",
	})
	require.NoError(t, err)

	hash := sec.HashToken(session.RefreshToken)
	tokens.byHash[hash].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = service.Refresh(context.Background(), session.RefreshToken)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))
	assert.Empty(t, tokens.byHash)
}

/*
TestRefresh_DeletedOwnerRevokesEverything verifies that a token whose owner
vanished takes all of that owner's sessions with it.
*/
func TestRefresh_DeletedOwnerRevokesEverything(t *testing.T) {
	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	service := newTestService(users, tokens)

	session, err := service.Register(context.Background(), RegisterInput{
		Email: "guts@mangafire.app", Username: "guts", Password: "strugglerpass",
	})
	require.NoError(t, err)

	now := time.Now()
	users.users[1].DeletedAt = &now

	_, err = service.Refresh(context.Background(), session.RefreshToken)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))
	assert.Empty(t, tokens.byHash)
}

/*
TestLogout_IsIdempotent verifies logout with a live token, a garbage token,
and no token at all.
*/
func TestLogout_IsIdempotent(t *testing.T) {
	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	service := newTestService(users, tokens)

	session, err := service.Register(context.Background(), RegisterInput{
		Email: "guts@mangafire.app", Username: "guts", Password: "strugglerpass",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, tokens.byHash)

	assert.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.NoError(t, service.Logout(context.Background(), ""))
	assert.NoError(t, service.Logout(context.Background(), "garbage-token"))
}

/*
TestUpdateProfile_PartialPatch verifies overlay semantics for profile
updates.
*/
func TestUpdateProfile_PartialPatch(t *testing.T) {
	users := newFakeUserRepository()
	service := newTestService(users, newFakeTokenRepository())

	session, err := service.Register(context.Background(), RegisterInput{
		Email: "guts@mangafire.app", Username: "guts", Password: "strugglerpass",
	})
	require.NoError(t, err)

	updated, err := service.UpdateProfile(context.Background(), session.User.ID, ProfilePatch{
		Username: pointer.To("guts-the-struggler"),
	})
	require.NoError(t, err)

	assert.Equal(t, "guts-the-struggler", updated.Username)
	assert.Equal(t, "guts@mangafire.app", updated.Email)
}
