package entities

import "time"

// RecordType tags a medical record with the kind of clinical data it carries
type RecordType string

const (
	RecordTypeBloodPressure  RecordType = "BloodPressure"
	RecordTypeBloodWork      RecordType = "BloodWork"
	RecordTypeDiseaseHistory RecordType = "DiseaseHistory"
	RecordTypePhysicalExam   RecordType = "PhysicalExam"
)

// DiseaseTypeHeartDisease is the disease-history value that marks a cardiac history
const DiseaseTypeHeartDisease = "HeartDisease"

// RecordPayload holds the type-specific fields of a medical record. Only the
// fields relevant to the record's type are set; everything else stays nil.
type RecordPayload struct {
	SystolicPressure  *float64 `json:"systolic_pressure,omitempty"`
	DiastolicPressure *float64 `json:"diastolic_pressure,omitempty"`
	GlucoseLevel      *float64 `json:"glucose_level,omitempty"`
	DiseaseType       *string  `json:"disease_type,omitempty"`
	WorkType          *string  `json:"work_type,omitempty"`
	ResidencyType     *string  `json:"residency_type,omitempty"`
	SmokingStatus     *string  `json:"smoking_status,omitempty"`
	Height            *float64 `json:"height,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
}

// MedicalRecord represents a single clinical record for a patient
type MedicalRecord struct {
	ID        string        `json:"id" db:"id"`
	PatientID string        `json:"patient_id" db:"patient_id"`
	Type      RecordType    `json:"type" db:"record_type"`
	Payload   RecordPayload `json:"payload" db:"payload"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	CreatedBy string        `json:"created_by" db:"created_by"`
}
