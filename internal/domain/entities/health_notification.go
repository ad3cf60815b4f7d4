package entities

import "time"

// HealthNotification is the audit entry recorded after a risk alert has been
// delivered to both the patient and their doctor
type HealthNotification struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Text      string    `json:"text" db:"text"`
	Disease   string    `json:"disease" db:"disease"`
	PatientID string    `json:"patient_id" db:"patient_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
