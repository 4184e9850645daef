package model

import "time"

// User is a registered account. PasswordHash and the reset state never
// leave the process; the public view below is what handlers return.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	ResetCode    string
	ResetExpires time.Time
	CreatedAt    time.Time
}

// PublicUser is the outward view of a user.
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// HasActiveReset reports whether a reset code is set and unexpired.
func (u *User) HasActiveReset(now time.Time) bool {
	return u.ResetCode != "" && now.Before(u.ResetExpires)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest accepts a username or an email in the username field.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// AuthResult is the payload returned by register and login.
type AuthResult struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}
