package models

import "time"

// User is a stored credential record. PasswordHash holds a bcrypt digest,
// never the plaintext, and is excluded from JSON responses.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
