package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/akshay-shet/ecoskin-api/config"
	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/postgres"
	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
)

// Seeds a demo profile with a skin profile, one journal entry and a small
// tracked routine, so the SPA has something to render on a fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := helpers.NewLogger(cfg.Env)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.WithError(err).Fatal("postgres connection failed")
	}
	defer pool.Close()

	repo := postgres.NewProfileRepository(pool)

	u := &entity.User{
		Name:        "Ava Patel",
		Email:       "ava@example.com",
		DOB:         "1998-04-12",
		SkinJournal: []entity.JournalEntry{},
	}
	if err := repo.Create(u); err != nil {
		log.WithError(err).Fatal("seed profile failed")
	}

	profile := &entity.SkinAnalysis{
		Conditions: []entity.SkinCondition{
			{Condition: "Mild dryness", Confidence: 0.82, Severity: "Mild", Location: entity.Point{X: 40, Y: 55}},
		},
		OverallAssessment: "Generally healthy skin with mild dryness on the cheeks.",
		SkinType:          "Combination",
		SkinTone:          "Medium",
	}
	if err := repo.ReplaceSkinProfile(u.ID, profile); err != nil {
		log.WithError(err).Fatal("seed skin profile failed")
	}

	entry := entity.JournalEntry{
		Date:       time.Now().UTC().Add(-72 * time.Hour),
		Image:      "data:image/png;base64,iVBORw0KGgo=",
		Notes:      "Started the new moisturizer this week.",
		AIAnalysis: "Skin looks calm; hydration slightly improved around the cheeks.",
	}
	if err := repo.PrependJournalEntry(u.ID, entry); err != nil {
		log.WithError(err).Fatal("seed journal failed")
	}

	routine := entity.NewBlankWeeklyRoutine("Hydration and barrier repair")
	for _, day := range entity.DayNames {
		d, _ := routine.Day(day)
		_, _ = d.AddStep(entity.SlotMorning, "Cleanser", "Rinse with a gentle cream cleanser")
		_, _ = d.AddStep(entity.SlotMorning, "Moisturizer", "Apply while skin is still damp")
		_, _ = d.AddStep(entity.SlotEvening, "Cleanser", "Double cleanse if wearing sunscreen")
		d.DailyTip = "Drink a glass of water before your evening routine."
	}
	routine.Normalize()
	if err := repo.ReplaceTrackedRoutine(u.ID, routine); err != nil {
		log.WithError(err).Fatal("seed routine failed")
	}

	log.WithField("user_id", u.ID).Info("demo profile seeded")
}
