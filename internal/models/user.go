package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Username       string
	Email          string
	HashedPassword string

	// Single live refresh token kept on the user record
	// Rotation overwrites both fields, nil until the first pair is issued
	RefreshToken          *string
	RefreshTokenExpiresAt *time.Time
}
