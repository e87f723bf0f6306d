// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// It classifies pgx errors by SQLSTATE so that storage adapters can return
// meaningful [apperr.AppError] values without leaking SQL details to clients.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mangafire/mangafire/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// conflictMessages maps unique-constraint names to client-facing messages.
// Constraints not listed here fall back to a generic conflict message.
var conflictMessages = map[string]string{
	"manga_slug_unique":                 "A manga with this slug already exists",
	"users_email_unique":                "Email already registered",
	"genres_name_unique":                "A genre with this name already exists",
	"chapters_manga_number_lang_unique": "A chapter with this number and language already exists",
	"volumes_manga_number_unique":       "A volume with this number already exists",
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. SQLSTATE classification
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			// Keep the PgError in the cause chain so callers can branch on
			// the constraint name via IsUniqueViolation.
			msg, ok := conflictMessages[pgError.ConstraintName]
			if !ok {
				msg = "Resource already exists"
			}
			conflict := apperr.Conflict(msg)
			conflict.Cause = err
			return conflict

		case pgerrcode.ForeignKeyViolation:
			return apperr.ForeignKeyViolation("Referenced resource does not exist")

		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return apperr.ValidationError("Invalid data for " + strings.ReplaceAll(action, "_", " "))
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a unique-constraint violation on
// the named constraint. An empty name matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgError.ConstraintName == constraint
}
