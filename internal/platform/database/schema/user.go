package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	Email:        "email",
	Username:     "username",
	PasswordHash: "passwordhash",
	Role:         "role",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Username, t.PasswordHash, t.Role,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
