package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/providers"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/repositories"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/medicalriskpipeline/pkg/errors"
)

// ConditionStroke is the condition this pipeline screens for
const ConditionStroke = "Stroke"

// RiskPipeline reacts to newly inserted medical records. For each record it
// re-reads the patient's current state, checks completeness, assembles the
// feature vector, gates on ledger integrity, runs inference and, on a positive
// label, triggers the dual notification. Batch elements are processed
// independently with no per-patient serialization: two qualifying records for
// the same patient arriving close together each run the full pipeline, so
// duplicate notifications for one underlying risk are possible.
type RiskPipeline struct {
	patients  repositories.PatientRepository
	records   repositories.MedicalRecordRepository
	assembler *FeatureAssembler
	gate      providers.IntegrityGate
	model     providers.RiskModel
	notifier  RiskNotifier
	metrics   *observability.Metrics
}

// NewRiskPipeline creates a new risk pipeline
func NewRiskPipeline(
	patients repositories.PatientRepository,
	records repositories.MedicalRecordRepository,
	assembler *FeatureAssembler,
	gate providers.IntegrityGate,
	model providers.RiskModel,
	notifier RiskNotifier,
	metrics *observability.Metrics,
) *RiskPipeline {
	return &RiskPipeline{
		patients:  patients,
		records:   records,
		assembler: assembler,
		gate:      gate,
		model:     model,
		notifier:  notifier,
		metrics:   metrics,
	}
}

// ProcessBatch runs the pipeline for every record in one change-feed batch.
// Failures never propagate to the feed driver: each element either completes
// or is skipped with a log entry.
func (p *RiskPipeline) ProcessBatch(ctx context.Context, batch *entities.RecordBatch) {
	ctx, span := observability.StartSpan(ctx, "RiskPipeline.ProcessBatch")
	defer span.End()

	log.Info().Str("batch_id", batch.ID).Int("records", len(batch.Records)).Msg("Processing batch of inserted records")
	if p.metrics != nil {
		p.metrics.BatchCount.Add(ctx, 1)
	}

	for _, inserted := range batch.Records {
		if p.metrics != nil {
			p.metrics.RecordCount.Add(ctx, 1)
		}
		p.processRecord(ctx, inserted)
	}
}

func (p *RiskPipeline) processRecord(ctx context.Context, inserted entities.InsertedRecord) {
	if inserted.PatientID == "" {
		log.Warn().Str("record_id", inserted.ID).Msg("Inserted record has no patient ID, skipping")
		observability.RecordSkip(ctx, p.metrics, "patient_id")
		return
	}

	logger := log.With().Str("patient_id", inserted.PatientID).Str("record_id", inserted.ID).Logger()

	patient, err := p.patients.GetByID(ctx, inserted.PatientID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			logger.Warn().Msg("Patient not found, skipping")
			observability.RecordSkip(ctx, p.metrics, "patient_missing")
		} else {
			logger.Error().Err(err).Msg("Failed to fetch patient, skipping")
			observability.RecordSkip(ctx, p.metrics, "patient_lookup")
		}
		return
	}

	records, err := p.records.ListByPatient(ctx, inserted.PatientID)
	if err != nil {
		// A failed query is treated as an empty record set; the
		// completeness check below rejects it.
		logger.Error().Err(err).Msg("Failed to query medical records, treating record set as empty")
		records = nil
	}

	if !HasRequiredRecords(records) {
		logger.Warn().Interface("missing_types", MissingRecordTypes(records)).Msg("Required records for stroke prediction are missing, skipping")
		observability.RecordSkip(ctx, p.metrics, "completeness")
		return
	}
	logger.Info().Msg("All required records for stroke prediction are present")

	vector, err := p.assembler.Assemble(patient, records)
	if err != nil {
		// Malformed date of birth is a hard error for this element only;
		// the rest of the batch keeps going.
		logger.Error().Err(err).Msg("Failed to assemble feature vector, skipping")
		observability.RecordSkip(ctx, p.metrics, "assembly")
		return
	}

	if !p.gate.Valid(ctx) {
		logger.Warn().Msg("Record ledger failed integrity check, skipping inference")
		observability.RecordSkip(ctx, p.metrics, "integrity")
		return
	}

	encoded, err := p.model.Transform(ctx, vector.Row())
	if err != nil {
		logger.Error().Err(err).Msg("Feature transform failed, skipping")
		observability.RecordSkip(ctx, p.metrics, "transform")
		return
	}
	atRisk, err := p.model.Predict(ctx, encoded)
	if err != nil {
		logger.Error().Err(err).Msg("Prediction failed, skipping")
		observability.RecordSkip(ctx, p.metrics, "predict")
		return
	}

	observability.RecordPrediction(ctx, p.metrics, atRisk)
	logger.Info().Bool("at_risk", atRisk).Msg("Stroke prediction completed")

	if !atRisk {
		return
	}

	err = p.notifier.Notify(ctx, patient, ConditionStroke)
	observability.RecordNotification(ctx, p.metrics, err == nil)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to notify patient and doctor")
	}
}
