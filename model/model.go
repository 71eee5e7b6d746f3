// Package model holds the records persisted by the store.
package model

import "time"

// User is a registered account. It is never updated after registration.
type User struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"password"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Todo is a single item on a user's list. OwnerID always refers to an existing User.
type Todo struct {
	ID          int64     `json:"id" db:"id"`
	OwnerID     int64     `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
