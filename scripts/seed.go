package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/medicalriskpipeline/internal/adapters/events"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/redis"
	"github.com/zatekoja/medicalriskpipeline/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				health_notifications,
				medical_records,
				patients,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	now := time.Now().UTC()

	// 1. Seed Users
	patientUserID := uuid.New().String()
	doctorUserID := uuid.New().String()
	users := []entities.User{
		{ID: patientUserID, Name: "Ada Obi", Email: "ada.obi@example.com", Role: entities.UserRolePatient, CreatedAt: now, UpdatedAt: now},
		{ID: doctorUserID, Name: "Dr. Femi Adeyemi", Email: "femi.adeyemi@example.com", Role: entities.UserRoleDoctor, CreatedAt: now, UpdatedAt: now},
	}

	for _, u := range users {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO users (id, name, email, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, u.ID, u.Name, u.Email, u.Role, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			log.Printf("Failed to create user %s: %v", u.Name, err)
		}
	}

	// 2. Seed Patient
	patientID := uuid.New().String()
	_, err = pgClient.DB().ExecContext(ctx, `
		INSERT INTO patients (id, date_of_birth, sex, ever_married, doctor_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, patientID, now.AddDate(-58, 0, 0).Format(time.RFC3339), "Female", true, doctorUserID, patientUserID, now, now)
	if err != nil {
		log.Fatalf("Failed to create patient: %v", err)
	}

	// 3. Seed one record of each required type
	records := []struct {
		recordType entities.RecordType
		payload    entities.RecordPayload
	}{
		{entities.RecordTypeBloodPressure, entities.RecordPayload{SystolicPressure: floatPtr(152), DiastolicPressure: floatPtr(96)}},
		{entities.RecordTypeBloodWork, entities.RecordPayload{GlucoseLevel: floatPtr(171.2)}},
		{entities.RecordTypeDiseaseHistory, entities.RecordPayload{DiseaseType: strPtr(entities.DiseaseTypeHeartDisease)}},
		{entities.RecordTypePhysicalExam, entities.RecordPayload{
			Height:        floatPtr(164),
			Weight:        floatPtr(78),
			SmokingStatus: strPtr("formerly smoked"),
			WorkType:      strPtr("Private"),
			ResidencyType: strPtr("Urban"),
		}},
	}

	inserted := make([]entities.InsertedRecord, 0, len(records))
	for _, r := range records {
		payload, err := json.Marshal(r.payload)
		if err != nil {
			log.Fatalf("Failed to encode %s payload: %v", r.recordType, err)
		}

		recordID := uuid.New().String()
		_, err = pgClient.DB().ExecContext(ctx, `
			INSERT INTO medical_records (id, patient_id, record_type, payload, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, recordID, patientID, r.recordType, payload, now, doctorUserID)
		if err != nil {
			log.Printf("Failed to create %s record: %v", r.recordType, err)
			continue
		}
		inserted = append(inserted, entities.InsertedRecord{ID: recordID, PatientID: patientID, Type: r.recordType})
	}

	log.Printf("Seeded patient %s with %d medical records", patientID, len(inserted))

	// 4. Optionally announce the inserts on the record feed so a running
	//    worker picks the patient up immediately.
	if os.Getenv("PUBLISH_BATCH") == "true" {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		feed := events.NewRedisRecordFeed(redisClient, cfg.Worker.FeedChannel)
		defer feed.Close()

		batch := &entities.RecordBatch{
			ID:         uuid.New().String(),
			Records:    inserted,
			EnqueuedAt: time.Now().UTC(),
		}
		if err := feed.Publish(ctx, batch); err != nil {
			log.Fatalf("Failed to publish record batch: %v", err)
		}
		log.Printf("Published record batch %s to %s", batch.ID, cfg.Worker.FeedChannel)
	}

	log.Println("Seeding complete")
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }
