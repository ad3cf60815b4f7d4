package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/medicalriskpipeline/internal/application/services"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	apperrors "github.com/zatekoja/medicalriskpipeline/pkg/errors"
)

// Mocks

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

type MockMedicalRecordRepository struct {
	mock.Mock
}

func (m *MockMedicalRecordRepository) ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MedicalRecord), args.Error(1)
}

type MockIntegrityGate struct {
	mock.Mock
}

func (m *MockIntegrityGate) Valid(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

type MockRiskModel struct {
	mock.Mock
}

func (m *MockRiskModel) Transform(ctx context.Context, row map[string]any) ([]float64, error) {
	args := m.Called(ctx, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockRiskModel) Predict(ctx context.Context, vector []float64) (bool, error) {
	args := m.Called(ctx, vector)
	return args.Bool(0), args.Error(1)
}

type MockRiskNotifier struct {
	mock.Mock
}

func (m *MockRiskNotifier) Notify(ctx context.Context, patient *entities.Patient, condition string) error {
	args := m.Called(ctx, patient, condition)
	return args.Error(0)
}

type pipelineFixture struct {
	patients *MockPatientRepository
	records  *MockMedicalRecordRepository
	gate     *MockIntegrityGate
	model    *MockRiskModel
	notifier *MockRiskNotifier
	pipeline *services.RiskPipeline
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		patients: new(MockPatientRepository),
		records:  new(MockMedicalRecordRepository),
		gate:     new(MockIntegrityGate),
		model:    new(MockRiskModel),
		notifier: new(MockRiskNotifier),
	}
	f.pipeline = services.NewRiskPipeline(
		f.patients,
		f.records,
		services.NewFeatureAssembler(),
		f.gate,
		f.model,
		f.notifier,
		nil,
	)
	return f
}

func batchFor(patientID string) *entities.RecordBatch {
	return &entities.RecordBatch{
		ID: "batch-1",
		Records: []entities.InsertedRecord{
			{ID: "rec-1", PatientID: patientID, Type: entities.RecordTypeBloodPressure},
		},
		EnqueuedAt: time.Now(),
	}
}

// Tests

func TestRiskPipeline_IncompleteRecordsSkipAssemblyAndGate(t *testing.T) {
	f := newPipelineFixture()

	f.patients.On("GetByID", mock.Anything, "patient-1").Return(testPatient(), nil)
	f.records.On("ListByPatient", mock.Anything, "patient-1").Return(
		recordsOfTypes(entities.RecordTypeBloodPressure, entities.RecordTypeBloodWork), nil)

	f.pipeline.ProcessBatch(context.Background(), batchFor("patient-1"))

	f.gate.AssertNotCalled(t, "Valid", mock.Anything)
	f.model.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestRiskPipeline_MissingPatientIDSkipsLookup(t *testing.T) {
	f := newPipelineFixture()

	f.pipeline.ProcessBatch(context.Background(), batchFor(""))

	f.patients.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRiskPipeline_PatientNotFoundSkipsElement(t *testing.T) {
	f := newPipelineFixture()

	f.patients.On("GetByID", mock.Anything, "patient-1").Return(
		nil, apperrors.NewNotFoundError("patient with id patient-1 not found"))

	f.pipeline.ProcessBatch(context.Background(), batchFor("patient-1"))

	f.records.AssertNotCalled(t, "ListByPatient", mock.Anything, mock.Anything)
}

func TestRiskPipeline_PatientStoreErrorSkipsElement(t *testing.T) {
	f := newPipelineFixture()

	f.patients.On("GetByID", mock.Anything, "patient-1").Return(nil, errors.New("connection reset"))

	f.pipeline.ProcessBatch(context.Background(), batchFor("patient-1"))

	f.records.AssertNotCalled(t, "ListByPatient", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestRiskPipeline_RecordQueryErrorTreatedAsEmptySet(t *testing.T) {
	f := newPipelineFixture()

	f.patients.On("GetByID", mock.Anything, "patient-1").Return(testPatient(), nil)
	f.records.On("ListByPatient", mock.Anything, "patient-1").Return(nil, errors.New("query timeout"))

	f.pipeline.ProcessBatch(context.Background(), batchFor("patient-1"))

	f.gate.AssertNotCalled(t, "Valid", mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestRiskPipeline_InvalidLedgerBlocksInference(t *testing.T) {
	f := newPipelineFixture()

	f.patients.On("GetByID", mock.Anything, "patient-1").Return(testPatient(), nil)
	f.records.On("ListByPatient", mock.Anything, "patient-1").Return(completeRecords(time.Now()), nil)
	f.gate.On("Valid", mock.Anything).Return(false)

	f.pipeline.ProcessBatch(context.Background(), batchFor("patient-1"))

	f.model.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything)
	f.model.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestRiskPipeline_PositivePredictionNotifies(t *testing.T) {
	f := newPipelineFixture()

	patient := testPatient()
	f.patients.On("GetByID", mock.Anything, "patient-1").Return(patient, nil)
	f.records.On("ListByPatient", mock.Anything, "patient-1").Return(completeRecords(time.Now()), nil)
	f.gate.On("Valid", mock.Anything).Return(true)
	f.model.On("Transform", mock.Anything, mock.Anything).Return([]float64{0.1, 0.9}, nil)
	f.model.On("Predict", mock.Anything, []float64{0.1, 0.9}).Return(true, nil)
	f.notifier.On("Notify", mock.Anything, patient, services.ConditionStroke).Return(nil)

	f.pipeline.ProcessBatch(context.Background(), batchFor("patient-1"))

	f.notifier.AssertCalled(t, "Notify", mock.Anything, patient, services.ConditionStroke)
}

func TestRiskPipeline_NegativePredictionDoesNotNotify(t *testing.T) {
	f := newPipelineFixture()

	f.patients.On("GetByID", mock.Anything, "patient-1").Return(testPatient(), nil)
	f.records.On("ListByPatient", mock.Anything, "patient-1").Return(completeRecords(time.Now()), nil)
	f.gate.On("Valid", mock.Anything).Return(true)
	f.model.On("Transform", mock.Anything, mock.Anything).Return([]float64{0.9, 0.1}, nil)
	f.model.On("Predict", mock.Anything, mock.Anything).Return(false, nil)

	f.pipeline.ProcessBatch(context.Background(), batchFor("patient-1"))

	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

// A malformed date of birth is a hard error for its element only: the bad
// element stops before the integrity gate, and the rest of the batch still
// runs end to end.
func TestRiskPipeline_MalformedDOBSkipsElementOnly(t *testing.T) {
	f := newPipelineFixture()

	badPatient := &entities.Patient{
		ID:          "patient-bad",
		UserID:      "user-1",
		DoctorID:    "doctor-1",
		DateOfBirth: "12/31/1990",
	}
	goodPatient := testPatient()

	f.patients.On("GetByID", mock.Anything, "patient-bad").Return(badPatient, nil)
	f.patients.On("GetByID", mock.Anything, "patient-1").Return(goodPatient, nil)
	f.records.On("ListByPatient", mock.Anything, "patient-bad").Return(completeRecords(time.Now()), nil)
	f.records.On("ListByPatient", mock.Anything, "patient-1").Return(completeRecords(time.Now()), nil)
	f.gate.On("Valid", mock.Anything).Return(true)
	f.model.On("Transform", mock.Anything, mock.Anything).Return([]float64{0.1, 0.9}, nil)
	f.model.On("Predict", mock.Anything, mock.Anything).Return(true, nil)
	f.notifier.On("Notify", mock.Anything, goodPatient, services.ConditionStroke).Return(nil)

	batch := &entities.RecordBatch{
		ID: "batch-1",
		Records: []entities.InsertedRecord{
			{ID: "rec-1", PatientID: "patient-bad", Type: entities.RecordTypeBloodPressure},
			{ID: "rec-2", PatientID: "patient-1", Type: entities.RecordTypeBloodPressure},
		},
		EnqueuedAt: time.Now(),
	}
	f.pipeline.ProcessBatch(context.Background(), batch)

	f.gate.AssertNumberOfCalls(t, "Valid", 1)
	f.notifier.AssertNumberOfCalls(t, "Notify", 1)
	f.notifier.AssertCalled(t, "Notify", mock.Anything, goodPatient, services.ConditionStroke)
}

// Replaying a batch re-runs the full pipeline: there is no per-patient
// serialization or dedup, so duplicate notifications for the same underlying
// risk are possible and expected.
func TestRiskPipeline_ReplayedBatchTriggersDuplicateNotification(t *testing.T) {
	f := newPipelineFixture()

	patient := testPatient()
	f.patients.On("GetByID", mock.Anything, "patient-1").Return(patient, nil)
	f.records.On("ListByPatient", mock.Anything, "patient-1").Return(completeRecords(time.Now()), nil)
	f.gate.On("Valid", mock.Anything).Return(true)
	f.model.On("Transform", mock.Anything, mock.Anything).Return([]float64{0.1, 0.9}, nil)
	f.model.On("Predict", mock.Anything, mock.Anything).Return(true, nil)
	f.notifier.On("Notify", mock.Anything, patient, services.ConditionStroke).Return(nil)

	batch := batchFor("patient-1")
	f.pipeline.ProcessBatch(context.Background(), batch)
	f.pipeline.ProcessBatch(context.Background(), batch)

	f.notifier.AssertNumberOfCalls(t, "Notify", 2)
}
