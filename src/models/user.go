package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserCredentials is a user together with its password hash. It never leaves
// the auth and storage layers.
type UserCredentials struct {
	User
	PasswordHash []byte
}
