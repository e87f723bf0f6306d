// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// RefreshTokenBytes is the entropy of an opaque refresh token before encoding.
const RefreshTokenBytes = 32

// GenerateSecureToken returns a hex-encoded opaque token with
// [RefreshTokenBytes] bytes of cryptographic randomness.
func GenerateSecureToken() (string, error) {
	buffer := make([]byte, RefreshTokenBytes)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Only the digest is persisted. A database leak therefore never exposes a
// value that could be replayed as a live refresh token.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
