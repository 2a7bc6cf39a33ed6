package domain

import "time"

// User is an authenticated account. PasswordHash is a bcrypt hash and never
// leaves the repository/service layers.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
