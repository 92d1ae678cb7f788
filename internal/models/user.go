package models

// User is an account in the local user table.
// Passwords are kept exactly as typed and compared byte-for-byte at login,
// so rows migrated from earlier deployments keep working unchanged.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"` // unique, compared case-insensitively
	Password string `json:"-"`        // don’t expose in responses
}

// Session is the persisted mirror of an issued token. A bearer token is only
// accepted while its session row exists; logout deletes the row.
type Session struct {
	TokenID   string `json:"token_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}
