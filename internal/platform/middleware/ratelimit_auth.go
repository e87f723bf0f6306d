// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mangafire/mangafire/internal/platform/apperr"
	"github.com/mangafire/mangafire/internal/platform/constants"
	"github.com/mangafire/mangafire/internal/platform/ctxutil"
	"github.com/mangafire/mangafire/internal/platform/respond"
)

// AuthRateLimit applies a Redis-backed fixed window to credential endpoints.
//
// Register and login are the only routes where an attacker gains from volume,
// so they get a much tighter budget than the global token bucket:
// [constants.AuthRateLimitMax] attempts per [constants.AuthRateLimitWindow]
// per client IP.
//
// # Failure Mode
//
// If Redis is unreachable the request is allowed through. Locking every user
// out of login because the cache is down is worse than briefly losing
// brute-force protection.
func AuthRateLimit(client *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			key := constants.RedisPrefixAuthRate + RealIP(request)

			// ── 1. Count this attempt ─────────────────────────────────────────
			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_rate_limit_degraded",
					slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Start the window on the first attempt ──────────────────────
			if count == 1 {
				_ = client.Expire(ctx, key, constants.AuthRateLimitWindow).Err()
			}

			// ── 3. Reject once the budget is spent ────────────────────────────
			if count > constants.AuthRateLimitMax {
				retryAfter := int(constants.AuthRateLimitWindow / time.Second)
				if ttl, err := client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retryAfter = int(ttl / time.Second)
				}
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
