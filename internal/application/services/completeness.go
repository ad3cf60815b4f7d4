package services

import (
	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
)

// RequiredRecordTypes is the minimum set of record types a patient must have
// before a stroke feature vector may be built.
var RequiredRecordTypes = []entities.RecordType{
	entities.RecordTypeBloodPressure,
	entities.RecordTypeBloodWork,
	entities.RecordTypeDiseaseHistory,
	entities.RecordTypePhysicalExam,
}

// MissingRecordTypes returns the required record types not present in the
// given record set. Records without a type tag are ignored.
func MissingRecordTypes(records []*entities.MedicalRecord) []entities.RecordType {
	found := make(map[entities.RecordType]struct{}, len(records))
	for _, record := range records {
		if record.Type != "" {
			found[record.Type] = struct{}{}
		}
	}

	var missing []entities.RecordType
	for _, required := range RequiredRecordTypes {
		if _, ok := found[required]; !ok {
			missing = append(missing, required)
		}
	}
	return missing
}

// HasRequiredRecords reports whether every required record type is present
func HasRequiredRecords(records []*entities.MedicalRecord) bool {
	return len(MissingRecordTypes(records)) == 0
}
