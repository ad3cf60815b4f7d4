package entities

import "time"

// InsertedRecord is the minimal view of a newly inserted medical record as it
// appears on the change feed
type InsertedRecord struct {
	ID        string     `json:"id"`
	PatientID string     `json:"patient_id"`
	Type      RecordType `json:"type"`
}

// RecordBatch is one change-feed delivery: a group of records inserted close
// together. Delivery is at-least-once; the same batch may be observed twice.
type RecordBatch struct {
	ID         string           `json:"id"`
	Records    []InsertedRecord `json:"records"`
	EnqueuedAt time.Time        `json:"enqueued_at"`
}
