package models

import "github.com/google/uuid"

// User is the stored identity. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
}

// PublicUser is the projection returned over the API
// @Description Public user information
type PublicUser struct {
	ID       uuid.UUID `json:"id" example:"6f1c2a7e-3b4d-4e8f-9a0b-1c2d3e4f5a6b"` // User ID
	Username string    `json:"username" example:"alice"`                           // Unique username
}

// Public strips credential material from the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
