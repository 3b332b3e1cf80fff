package models

// User is an account able to log in. PasswordHash is a bcrypt hash.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"createdAt"`
}

// AuthPayload is the identity carried in a bearer token.
type AuthPayload struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
