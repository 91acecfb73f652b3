package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // bcrypt encoded, never serialized
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
