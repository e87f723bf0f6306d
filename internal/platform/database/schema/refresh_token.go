package schema

// RefreshTokenTable represents the 'refresh_tokens' table.
//
// TokenHash stores the SHA-256 digest of the opaque token, never the token
// itself.
type RefreshTokenTable struct {
	Table     string
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt string
	CreatedAt string
}

// RefreshToken is the schema definition for refresh_tokens
var RefreshToken = RefreshTokenTable{
	Table:     "refresh_tokens",
	ID:        "id",
	UserID:    "userid",
	TokenHash: "tokenhash",
	ExpiresAt: "expiresat",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t RefreshTokenTable) Columns() []string {
	return []string{t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt}
}
