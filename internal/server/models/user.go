// Package models defines server-side data models persisted in the database.
package models

import "time"

type User struct {
	ID           int64     `db:"id"`
	UserName     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	CreatedAt    time.Time `db:"created_at"`
}
