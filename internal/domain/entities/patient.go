package entities

import "time"

// Patient represents a patient profile. Patient data is owned by the record
// store; the pipeline only reads it.
type Patient struct {
	ID          string    `json:"id" db:"id"`
	DateOfBirth string    `json:"date_of_birth" db:"date_of_birth"`
	Sex         string    `json:"sex" db:"sex"`
	EverMarried bool      `json:"ever_married" db:"ever_married"`
	DoctorID    string    `json:"doctor_id" db:"doctor_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
