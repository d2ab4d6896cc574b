package models

import "time"

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	// ExpiresAt is omitted for sessions that do not expire.
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
