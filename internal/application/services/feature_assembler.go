package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	apperrors "github.com/zatekoja/medicalriskpipeline/pkg/errors"
)

// Blood pressure thresholds above which a reading counts as hypertensive
const (
	hypertensionSystolicThreshold  = 140.0
	hypertensionDiastolicThreshold = 90.0
)

// FeatureAssembler converts a patient profile plus typed medical records into
// the flat, model-ready feature vector
type FeatureAssembler struct {
	now func() time.Time
}

// NewFeatureAssembler creates a new feature assembler
func NewFeatureAssembler() *FeatureAssembler {
	return &FeatureAssembler{now: time.Now}
}

// Assemble builds the stroke feature vector for one patient. Each derivation
// is independently nullable when its source record or field is absent; the
// only hard error is a date of birth that exists but cannot be parsed.
func (f *FeatureAssembler) Assemble(patient *entities.Patient, records []*entities.MedicalRecord) (*entities.FeatureVector, error) {
	age, err := f.calculateAge(patient.DateOfBirth)
	if err != nil {
		return nil, err
	}

	byType := latestRecordByType(records)

	vector := &entities.FeatureVector{
		Age:         age,
		EverMarried: "No",
	}
	if patient.Sex != "" {
		vector.Gender = &patient.Sex
	}
	if patient.EverMarried {
		vector.EverMarried = "Yes"
	}

	if bp, ok := byType[entities.RecordTypeBloodPressure]; ok {
		vector.Hypertension = hypertensionFlag(bp.Payload.SystolicPressure, bp.Payload.DiastolicPressure)
	}

	if history, ok := byType[entities.RecordTypeDiseaseHistory]; ok {
		if history.Payload.DiseaseType != nil && *history.Payload.DiseaseType == entities.DiseaseTypeHeartDisease {
			vector.HeartDisease = 1
		}
	}

	if exam, ok := byType[entities.RecordTypePhysicalExam]; ok {
		vector.WorkType = exam.Payload.WorkType
		vector.ResidenceType = exam.Payload.ResidencyType
		vector.SmokingStatus = exam.Payload.SmokingStatus
		vector.BMI = calculateBMI(exam.Payload.Weight, exam.Payload.Height)
	}

	if bloodWork, ok := byType[entities.RecordTypeBloodWork]; ok {
		vector.AvgGlucoseLevel = bloodWork.Payload.GlucoseLevel
	}

	return vector, nil
}

// latestRecordByType groups records by type keeping only the most recently
// created record of each type (last-write-wins).
func latestRecordByType(records []*entities.MedicalRecord) map[entities.RecordType]*entities.MedicalRecord {
	sorted := make([]*entities.MedicalRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	byType := make(map[entities.RecordType]*entities.MedicalRecord)
	for _, record := range sorted {
		if record.Type == "" {
			continue
		}
		if _, ok := byType[record.Type]; !ok {
			byType[record.Type] = record
		}
	}
	return byType
}

// calculateAge returns whole elapsed years between the date of birth and now,
// subtracting one when the birthday has not yet occurred this year. An absent
// date of birth yields nil; an unparseable one is a hard error.
func (f *FeatureAssembler) calculateAge(dateOfBirth string) (*int, error) {
	if dateOfBirth == "" {
		return nil, nil
	}

	birth, err := time.Parse(time.RFC3339, dateOfBirth)
	if err != nil {
		return nil, apperrors.NewMalformedInputError(
			fmt.Sprintf("date of birth %q is not a valid timestamp", dateOfBirth), err)
	}

	now := f.now().UTC()
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return &age, nil
}

// hypertensionFlag derives the hypertension feature from a blood pressure
// reading. A zero reading is medically implausible and treated as missing.
func hypertensionFlag(systolic, diastolic *float64) *int {
	if systolic == nil || diastolic == nil || *systolic == 0 || *diastolic == 0 {
		return nil
	}

	flag := 0
	if *systolic >= hypertensionSystolicThreshold || *diastolic >= hypertensionDiastolicThreshold {
		flag = 1
	}
	return &flag
}

// calculateBMI derives body mass index from weight in kilograms and height in
// centimeters. Missing or zero measurements yield nil.
func calculateBMI(weight, height *float64) *float64 {
	if weight == nil || height == nil || *weight == 0 || *height == 0 {
		return nil
	}

	heightMeters := *height / 100
	bmi := *weight / (heightMeters * heightMeters)
	return &bmi
}
