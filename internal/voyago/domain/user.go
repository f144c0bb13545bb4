package domain

import "time"

type User struct {
	ID           string
	UserName     string
	Email        string // globally unique, enforced by the store schema
	PasswordHash string // argon2id encoded, never the plaintext
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
