package entities

import (
	"testing"
)

func TestFeatureVector_RowEmitsAllTenKeys(t *testing.T) {
	gender := "Male"
	age := 64
	hypertension := 1
	glucose := 228.69
	bmi := 36.6
	smoking := "formerly smoked"
	work := "Private"
	residence := "Urban"

	vector := &FeatureVector{
		Gender:          &gender,
		Age:             &age,
		EverMarried:     "Yes",
		Hypertension:    &hypertension,
		HeartDisease:    1,
		WorkType:        &work,
		ResidenceType:   &residence,
		AvgGlucoseLevel: &glucose,
		BMI:             &bmi,
		SmokingStatus:   &smoking,
	}

	row := vector.Row()

	if len(row) != 10 {
		t.Fatalf("Row() returned %d keys, want 10", len(row))
	}
	if row[FeatureGender] != "Male" {
		t.Errorf("gender = %v, want Male", row[FeatureGender])
	}
	if row[FeatureAge] != 64 {
		t.Errorf("age = %v, want 64", row[FeatureAge])
	}
	if row[FeatureResidenceType] != "Urban" {
		t.Errorf("Residence_type = %v, want Urban", row[FeatureResidenceType])
	}
}

func TestFeatureVector_RowKeepsNilPlaceholders(t *testing.T) {
	vector := &FeatureVector{EverMarried: "No"}

	row := vector.Row()

	if len(row) != 10 {
		t.Fatalf("Row() returned %d keys, want 10", len(row))
	}
	for _, key := range []string{FeatureGender, FeatureAge, FeatureHypertension,
		FeatureWorkType, FeatureResidenceType, FeatureAvgGlucoseLevel, FeatureBMI,
		FeatureSmokingStatus} {
		if row[key] != nil {
			t.Errorf("row[%s] = %v, want nil placeholder", key, row[key])
		}
	}
	if row[FeatureHeartDisease] != 0 {
		t.Errorf("heart_disease = %v, want 0", row[FeatureHeartDisease])
	}
	if row[FeatureEverMarried] != "No" {
		t.Errorf("ever_married = %v, want No", row[FeatureEverMarried])
	}
}
