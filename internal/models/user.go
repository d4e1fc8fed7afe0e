package models

// User is a registered account. Users are never updated or deleted.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// Session binds an opaque bearer token to a username.
type Session struct {
	Token    string `json:"-"`
	Username string `json:"username"`
}
