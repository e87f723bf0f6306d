// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/mangafire/mangafire/internal/platform/apperr"
	"github.com/mangafire/mangafire/internal/platform/config"
	"github.com/mangafire/mangafire/internal/platform/constants"
	"github.com/mangafire/mangafire/internal/platform/middleware"
	requestutil "github.com/mangafire/mangafire/internal/platform/request"
	"github.com/mangafire/mangafire/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the account lifecycle.
//
// It owns the refresh cookie: services never see HTTP, so every cookie
// set and clear happens here.
type Handler struct {
	service *Service
	cfg     *config.Config
	redis   *redis.Client
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service, cfg *config.Config, redisClient *redis.Client) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		redis:   redisClient,
	}
}

// Routes returns a [chi.Router] configured with the account endpoints.
//
// # Routing Strategy
//
//   - Credential endpoints (register, login) sit behind the tight
//     Redis-backed rate limit.
//   - Refresh and logout are driven by the cookie, not a bearer token.
//   - Profile endpoints require a valid access token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(limited chi.Router) {
		limited.Use(middleware.AuthRateLimit(handler.redis))

		limited.Post("/register", handler.register)
		limited.Post("/login", handler.login)
	})

	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.Group(func(authenticated chi.Router) {
		authenticated.Use(middleware.RequireAuth)

		authenticated.Get("/profile", handler.profile)
		authenticated.Patch("/profile", handler.updateProfile)
	})

	return router
}

// # Cookie Lifecycle

/*
setRefreshCookie attaches the opaque refresh token to the response.

Description: The cookie is invisible to scripts (httpOnly) and scoped to
the auth endpoints only, so the token never rides along on catalogue
traffic. SameSite is strict in production; development keeps lax so a
local frontend on another port can complete the flow.
*/
func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if handler.cfg.IsProduction() {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   int(constants.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.cfg.IsProduction(),
		SameSite: sameSite,
	})
}

// clearRefreshCookie overwrites the refresh cookie with an expired one.
func (handler *Handler) clearRefreshCookie(writer http.ResponseWriter) {
	sameSite := http.SameSiteLaxMode
	if handler.cfg.IsProduction() {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.cfg.IsProduction(),
		SameSite: sameSite,
	})
}

// sessionResponse is the JSON shape shared by register, login, and refresh.
type sessionResponse struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}

// # Credential Endpoints

// registerRequest defines the inbound JSON schema for account creation.
type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
POST /api/auth/register.

Description: Creates an account and opens its first session. The refresh
token travels only in the cookie; the body carries the access token.

Response:
  - 201: accessToken + user, refresh cookie set
  - 400: VALIDATION_ERROR: Malformed email, short username or password
  - 409: EMAIL_EXISTS: Address already registered
  - 429: RATE_LIMITED: Credential budget spent
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken)
	respond.Created(writer, sessionResponse{AccessToken: session.AccessToken, User: session.User})
}

// loginRequest defines the inbound JSON schema for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/auth/login.

Description: Verifies credentials and opens a session. Every failure shape
returns the same INVALID_CREDENTIALS body.

Response:
  - 200: accessToken + user, refresh cookie set
  - 401: INVALID_CREDENTIALS
  - 429: RATE_LIMITED: Credential budget spent
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken)
	respond.OK(writer, sessionResponse{AccessToken: session.AccessToken, User: session.User})
}

// # Session Endpoints

/*
POST /api/auth/refresh.

Description: Exchanges the cookie's refresh token for a fresh pair. Every
rejection clears the cookie so the client falls back to a clean
logged-out state instead of retrying a dead token.

Response:
  - 200: accessToken + user, rotated refresh cookie set
  - 401: Missing, unknown, expired, or replayed token; cookie cleared
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		handler.clearRefreshCookie(writer)
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	session, err := handler.service.Refresh(request.Context(), cookie.Value)
	if err != nil {
		handler.clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken)
	respond.OK(writer, sessionResponse{AccessToken: session.AccessToken, User: session.User})
}

/*
POST /api/auth/logout.

Description: Revokes every session of the cookie's owner and clears the
cookie. Succeeds even without a cookie, so logout is always safe to call.

Response:
  - 204: No Content, cookie cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	refreshToken := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := handler.service.Logout(request.Context(), refreshToken); err != nil {
		handler.clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.clearRefreshCookie(writer)
	respond.NoContent(writer)
}

// # Profile Endpoints

/*
GET /api/auth/profile.

Response:
  - 200: User: The caller's account
  - 401: Missing or invalid access token
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// profileRequest defines the inbound JSON schema for profile updates.
type profileRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
}

/*
PATCH /api/auth/profile.

Description: Applies a partial update to the caller's own account.

Response:
  - 200: User: Updated account
  - 409: EMAIL_EXISTS: New address already registered
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input profileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, ProfilePatch{
		Email:    input.Email,
		Username: input.Username,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
