package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/providers"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/repositories"
	apperrors "github.com/zatekoja/medicalriskpipeline/pkg/errors"
)

// RiskNotifier delivers a detected-risk alert for one patient
type RiskNotifier interface {
	// Notify alerts the patient and their doctor about a detected condition
	Notify(ctx context.Context, patient *entities.Patient, condition string) error
}

// notificationState tracks progress through the dual-notification protocol
type notificationState string

const (
	stateResolving notificationState = "resolving"
	stateSending   notificationState = "sending"
	stateRecording notificationState = "recording"
	stateDone      notificationState = "done"
	stateFailed    notificationState = "failed"
)

// RiskNotificationService performs the all-or-nothing dual notification: a
// patient-facing message and a distinct doctor-facing message, followed by one
// audit entry. Both sends must succeed before the audit entry is written; a
// failed audit write is reported as overall failure even though the mail has
// already left (email cannot be recalled, so no compensation is attempted).
type RiskNotificationService struct {
	users         repositories.UserRepository
	notifications repositories.HealthNotificationRepository
	mailer        providers.EmailSender
}

// NewRiskNotificationService creates a new risk notification service
func NewRiskNotificationService(
	users repositories.UserRepository,
	notifications repositories.HealthNotificationRepository,
	mailer providers.EmailSender,
) *RiskNotificationService {
	return &RiskNotificationService{
		users:         users,
		notifications: notifications,
		mailer:        mailer,
	}
}

// Notify alerts the patient and their doctor about a detected condition
func (s *RiskNotificationService) Notify(ctx context.Context, patient *entities.Patient, condition string) error {
	state := stateResolving

	patientUser, doctorUser, err := s.resolveRecipients(ctx, patient)
	if err != nil {
		s.fail(patient.ID, condition, state, err)
		return err
	}

	state = stateSending
	subject := fmt.Sprintf("Health Notification: %s Alert", condition)
	patientBody := fmt.Sprintf(
		"Dear %s,\n\nOur records indicate a risk for %s. Please consult your doctor for further evaluation.\n\nBest regards,\nHealthcare Team",
		patientUser.Name, condition)
	doctorBody := fmt.Sprintf(
		"Patient %s may have %s. Please review their medical records.",
		patientUser.Name, condition)

	if err := s.mailer.Send(ctx, subject, patientBody, patientUser.Email); err != nil {
		err = apperrors.NewExternalError("failed to send patient notification email", err)
		s.fail(patient.ID, condition, state, err)
		return err
	}
	if err := s.mailer.Send(ctx, subject, doctorBody, doctorUser.Email); err != nil {
		err = apperrors.NewExternalError("failed to send doctor notification email", err)
		s.fail(patient.ID, condition, state, err)
		return err
	}

	state = stateRecording
	notification := &entities.HealthNotification{
		ID:        uuid.New().String(),
		Title:     fmt.Sprintf("%s Alert", condition),
		Text:      fmt.Sprintf("Notification for potential %s risk sent to patient and doctor.", condition),
		Disease:   condition,
		PatientID: patient.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		// Both emails are already out; this is the known inconsistency
		// window between delivery and the audit trail.
		s.fail(patient.ID, condition, state, err)
		return err
	}

	state = stateDone
	log.Info().
		Str("patient_id", patient.ID).
		Str("condition", condition).
		Str("notification_id", notification.ID).
		Str("state", string(state)).
		Msg("Health notification created and emails sent successfully")
	return nil
}

// resolveRecipients resolves the patient's and doctor's user accounts and
// requires a deliverable email address on both.
func (s *RiskNotificationService) resolveRecipients(ctx context.Context, patient *entities.Patient) (*entities.User, *entities.User, error) {
	if patient.UserID == "" || patient.DoctorID == "" {
		return nil, nil, apperrors.NewValidationError("patient user ID or doctor ID is missing")
	}

	patientUser, err := s.users.GetByID(ctx, patient.UserID)
	if err != nil {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("could not resolve patient user %s", patient.UserID))
	}
	doctorUser, err := s.users.GetByID(ctx, patient.DoctorID)
	if err != nil {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("could not resolve doctor user %s", patient.DoctorID))
	}

	if patientUser.Email == "" || doctorUser.Email == "" {
		return nil, nil, apperrors.NewValidationError("patient or doctor email is missing")
	}
	return patientUser, doctorUser, nil
}

func (s *RiskNotificationService) fail(patientID, condition string, state notificationState, err error) {
	log.Error().
		Str("patient_id", patientID).
		Str("condition", condition).
		Str("state", string(state)).
		Err(err).
		Msg("Risk notification failed")
}
