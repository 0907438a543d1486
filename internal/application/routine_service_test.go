package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
)

func trackedProfile(t *testing.T, repo *fakeRepo) *entity.User {
	t.Helper()
	u := newProfile(t, repo)
	plan := entity.NewBlankWeeklyRoutine("Hydration")
	mon, _ := plan.Day("monday")
	_, _ = mon.AddStep(entity.SlotMorning, "Cleanser", "Rinse gently")
	_, _ = mon.AddStep(entity.SlotMorning, "Moisturizer", "Apply evenly")
	require.NoError(t, repo.ReplaceTrackedRoutine(u.ID, plan))
	return u
}

func TestGetNoActivePlan(t *testing.T) {
	repo := newFakeRepo()
	svc := &RoutineService{Repo: repo, Log: quietLog()}
	u := newProfile(t, repo)

	_, err := svc.Get(u.ID)
	assert.ErrorIs(t, err, ErrNoActivePlan)

	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleStepPersistsTogglePolicy(t *testing.T) {
	repo := newFakeRepo()
	svc := &RoutineService{Repo: repo, Log: quietLog()}
	u := trackedProfile(t, repo)

	plan, err := svc.ToggleStep(u.ID, "monday", entity.SlotMorning, 0, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, plan.Monday.Morning[0].Status)

	// same status again resets to pending, and the reset is persisted
	plan, err = svc.ToggleStep(u.ID, "monday", entity.SlotMorning, 0, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, plan.Monday.Morning[0].Status)

	stored, err := svc.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, stored.Monday.Morning[0].Status)
}

func TestToggleStepValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := &RoutineService{Repo: repo, Log: quietLog()}
	u := trackedProfile(t, repo)

	_, err := svc.ToggleStep(u.ID, "someday", entity.SlotMorning, 0, entity.StatusCompleted)
	assert.ErrorIs(t, err, entity.ErrUnknownDay)

	_, err = svc.ToggleStep(u.ID, "monday", entity.SlotMorning, 9, entity.StatusCompleted)
	assert.ErrorIs(t, err, entity.ErrStepNotFound)
}

func TestClearRequiresConfirmation(t *testing.T) {
	repo := newFakeRepo()
	svc := &RoutineService{Repo: repo, Log: quietLog()}
	u := trackedProfile(t, repo)

	err := svc.Clear(u.ID, false)
	assert.ErrorIs(t, err, ErrConfirmRequired)

	// the plan is untouched until the caller confirms
	_, err = svc.Get(u.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(u.ID, true))
	_, err = svc.Get(u.ID)
	assert.ErrorIs(t, err, ErrNoActivePlan)
}

func TestStartBlankReplacesPlan(t *testing.T) {
	repo := newFakeRepo()
	svc := &RoutineService{Repo: repo, Log: quietLog()}
	u := trackedProfile(t, repo)

	plan, err := svc.StartBlank(u.ID, "Fresh start")
	require.NoError(t, err)
	assert.Equal(t, "Fresh start", plan.WeeklyFocus)

	stored, err := svc.Get(u.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Monday.Morning)
	assert.Equal(t, "Fresh start", stored.WeeklyFocus)
}

func TestReplaceNormalizesSuppliedPlan(t *testing.T) {
	repo := newFakeRepo()
	svc := &RoutineService{Repo: repo, Log: quietLog()}
	u := newProfile(t, repo)

	plan := &entity.WeeklyRoutine{
		WeeklyFocus: "Imported",
		Monday: entity.DailyRoutine{
			Morning: []entity.RoutineStep{
				{Step: 7, ProductType: "Cleanser"},
				{Step: 3, ProductType: "Serum"},
			},
		},
	}
	stored, err := svc.Replace(u.ID, plan)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Monday.Morning[0].Step)
	assert.Equal(t, 2, stored.Monday.Morning[1].Step)
	assert.Equal(t, entity.StatusPending, stored.Monday.Morning[0].Status)
}

func TestGenerateNormalizesBeforeStoring(t *testing.T) {
	rawPlan := map[string]any{
		"weeklyFocus": "Soothing and repair",
		"monday": map[string]any{
			"morning": []any{
				map[string]any{"step": 5, "productType": "Cleanser", "instructions": "Rinse"},
				map[string]any{"step": 9, "productType": "Sunscreen", "instructions": "Apply"},
			},
			"evening":  []any{},
			"dailyTip": "Sleep early",
		},
	}
	text, err := json.Marshal(rawPlan)
	require.NoError(t, err)

	repo := newFakeRepo()
	svc := &RoutineService{Repo: repo, Log: quietLog(), Gemini: geminiTextServer(t, string(text))}
	u := newProfile(t, repo)

	plan, err := svc.Generate(context.Background(), u.ID, "oily skin", "en")
	require.NoError(t, err)
	assert.Equal(t, "Soothing and repair", plan.WeeklyFocus)

	require.Len(t, plan.Monday.Morning, 2)
	assert.Equal(t, 1, plan.Monday.Morning[0].Step)
	assert.Equal(t, 2, plan.Monday.Morning[1].Step)
	assert.Equal(t, entity.StatusPending, plan.Monday.Morning[0].Status)

	stored, err := svc.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soothing and repair", stored.WeeklyFocus)
	assert.NotNil(t, stored.Tuesday.Morning)
}

func TestGenerateForUnknownUser(t *testing.T) {
	svc := &RoutineService{Repo: newFakeRepo(), Log: quietLog(), Gemini: geminiTextServer(t, `{"weeklyFocus":"x"}`)}

	_, err := svc.Generate(context.Background(), "missing", "dry skin", "en")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
