package domain

import "time"

type ID string

type User struct {
	ID           ID
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
