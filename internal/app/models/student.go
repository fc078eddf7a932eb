package models

import "time"

// Student defines the student model based on the 'students' table.
// Email and enrollment number are each globally unique; the store's
// constraints are the final guard, not application code.
type Student struct {
	ID               int64     `json:"id" db:"id"`
	FirstName        string    `json:"firstName" db:"firstName"`
	LastName         string    `json:"lastName" db:"lastName"`
	Email            string    `json:"email" db:"email"`
	Phone            *string   `json:"phone,omitempty" db:"phone"`
	EnrollmentNumber string    `json:"enrollmentNumber" db:"enrollmentNumber"`
	DateOfBirth      *string   `json:"dateOfBirth,omitempty" db:"dateOfBirth"`
	Address          *string   `json:"address,omitempty" db:"address"`
	CreatedAt        time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updatedAt"`
}
