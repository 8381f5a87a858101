package models

import "github.com/google/uuid"

// User is an account row. Guests joining over WebSocket get an ephemeral
// user that can later be claimed with an email and password.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Username    string    `json:"username"`
	IsEphemeral bool      `json:"is_ephemeral"`
}
