package entities

// Feature names expected by the stroke model, matching the schema the model
// was trained against (Residence_type keeps its odd capitalisation for that
// reason).
const (
	FeatureGender          = "gender"
	FeatureAge             = "age"
	FeatureEverMarried     = "ever_married"
	FeatureHypertension    = "hypertension"
	FeatureHeartDisease    = "heart_disease"
	FeatureWorkType        = "work_type"
	FeatureResidenceType   = "Residence_type"
	FeatureAvgGlucoseLevel = "avg_glucose_level"
	FeatureBMI             = "bmi"
	FeatureSmokingStatus   = "smoking_status"
)

// FeatureVector holds the assembled, pre-encoding model inputs for one
// patient. Nil pointers mean the contributing record or field was absent;
// the model-side preprocessing imputes them. A vector is built fresh per
// pipeline invocation and never persisted.
type FeatureVector struct {
	Gender          *string
	Age             *int
	EverMarried     string
	Hypertension    *int
	HeartDisease    int
	WorkType        *string
	ResidenceType   *string
	AvgGlucoseLevel *float64
	BMI             *float64
	SmokingStatus   *string
}

// Row flattens the vector into the exact ten-key mapping the model expects.
// Absent values are emitted as nil placeholders so the schema stays fixed
// regardless of which record types existed.
func (v *FeatureVector) Row() map[string]any {
	row := map[string]any{
		FeatureGender:          nil,
		FeatureAge:             nil,
		FeatureEverMarried:     v.EverMarried,
		FeatureHypertension:    nil,
		FeatureHeartDisease:    v.HeartDisease,
		FeatureWorkType:        nil,
		FeatureResidenceType:   nil,
		FeatureAvgGlucoseLevel: nil,
		FeatureBMI:             nil,
		FeatureSmokingStatus:   nil,
	}
	if v.Gender != nil {
		row[FeatureGender] = *v.Gender
	}
	if v.Age != nil {
		row[FeatureAge] = *v.Age
	}
	if v.Hypertension != nil {
		row[FeatureHypertension] = *v.Hypertension
	}
	if v.WorkType != nil {
		row[FeatureWorkType] = *v.WorkType
	}
	if v.ResidenceType != nil {
		row[FeatureResidenceType] = *v.ResidenceType
	}
	if v.AvgGlucoseLevel != nil {
		row[FeatureAvgGlucoseLevel] = *v.AvgGlucoseLevel
	}
	if v.BMI != nil {
		row[FeatureBMI] = *v.BMI
	}
	if v.SmokingStatus != nil {
		row[FeatureSmokingStatus] = *v.SmokingStatus
	}
	return row
}
