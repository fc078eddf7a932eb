package models

import "time"

// User defines the user model based on the 'users' table. Rows are created
// only by the schema bootstrap seed; the application itself never registers,
// updates or deletes users.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
}

// IdentityClaim is the minimal authenticated-user payload produced by
// credential verification. It is embedded into session tokens and never
// carries password material.
type IdentityClaim struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
