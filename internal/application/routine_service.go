package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/internal/domain/repository"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/gemini"
	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
	"github.com/akshay-shet/ecoskin-api/pkg/mailer"
)

var (
	ErrNoActivePlan    = errors.New("no routine is being tracked")
	ErrNoEditSession   = errors.New("no active edit session")
	ErrConfirmRequired = errors.New("confirmation required")
)

// RoutineService owns the tracked weekly plan. Day-to-day tracking writes
// straight through to the stored plan; structural editing goes through an
// explicit edit session so a half-finished edit never becomes the plan.
type RoutineService struct {
	Repo   repository.ProfileRepository
	Redis  *redis.Client
	Gemini *gemini.Client
	Mail   *helpers.RabbitPublisher
	MailOn bool
	Log    *logrus.Logger

	EditTTL time.Duration
}

func editKey(userID string) string { return "routine:edit:" + userID }

// Generate asks the analysis service for a fresh 7-day plan, normalizes it
// for tracking and replaces the stored plan. Confirmation is the handler's
// concern; by the time this runs the user has agreed to discard progress.
func (s *RoutineService) Generate(ctx context.Context, userID, topic, lang string) (*entity.WeeklyRoutine, error) {
	plan, err := s.Gemini.GenerateWeeklyPlan(ctx, topic, lang)
	if err != nil {
		return nil, err
	}
	plan.Normalize()
	if err := s.Repo.ReplaceTrackedRoutine(userID, plan); err != nil {
		return nil, mapNotFound(err)
	}
	s.enqueuePlanSummary(ctx, userID, plan)
	s.Log.WithField("user_id", userID).Info("weekly plan replaced")
	return plan, nil
}

// StartBlank replaces the tracked plan with an empty one for manual building.
func (s *RoutineService) StartBlank(userID, focus string) (*entity.WeeklyRoutine, error) {
	plan := entity.NewBlankWeeklyRoutine(focus)
	if err := s.Repo.ReplaceTrackedRoutine(userID, plan); err != nil {
		return nil, mapNotFound(err)
	}
	return plan, nil
}

// Replace commits a caller-supplied plan wholesale after normalizing it.
// This is the import path for plans assembled client-side.
func (s *RoutineService) Replace(userID string, plan *entity.WeeklyRoutine) (*entity.WeeklyRoutine, error) {
	plan.Normalize()
	if err := s.Repo.ReplaceTrackedRoutine(userID, plan); err != nil {
		return nil, mapNotFound(err)
	}
	return plan, nil
}

// Get returns the tracked plan, or ErrNoActivePlan.
func (s *RoutineService) Get(userID string) (*entity.WeeklyRoutine, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if u.TrackedRoutine == nil {
		return nil, ErrNoActivePlan
	}
	return u.TrackedRoutine, nil
}

// ToggleStep applies the status toggle to one step of the live plan and
// persists the whole plan.
func (s *RoutineService) ToggleStep(userID, day string, slot entity.Slot, index int, to entity.StepStatus) (*entity.WeeklyRoutine, error) {
	plan, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	d, err := plan.Day(day)
	if err != nil {
		return nil, err
	}
	if err := d.ToggleStep(slot, index, to); err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceTrackedRoutine(userID, plan); err != nil {
		return nil, mapNotFound(err)
	}
	return plan, nil
}

// Clear drops the tracked plan. The caller must pass confirmed=true; the
// plan and all its progress are gone afterwards.
func (s *RoutineService) Clear(userID string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmRequired
	}
	return mapNotFound(s.Repo.ReplaceTrackedRoutine(userID, nil))
}

// BeginEdit snapshots the live plan into a Redis working copy and returns
// it. An existing working copy is overwritten; there is at most one edit
// session per user.
func (s *RoutineService) BeginEdit(ctx context.Context, userID string) (*entity.WeeklyRoutine, error) {
	plan, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, editKey(userID), plan, s.EditTTL); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *RoutineService) workingCopy(ctx context.Context, userID string) (*entity.WeeklyRoutine, error) {
	var plan entity.WeeklyRoutine
	ok, err := helpers.RedisGetJSON(ctx, s.Redis, editKey(userID), &plan)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoEditSession
	}
	return &plan, nil
}

func (s *RoutineService) stage(ctx context.Context, userID string, mutate func(*entity.WeeklyRoutine) error) (*entity.WeeklyRoutine, error) {
	plan, err := s.workingCopy(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := mutate(plan); err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, editKey(userID), plan, s.EditTTL); err != nil {
		return nil, err
	}
	return plan, nil
}

// StageAddStep appends a pending step to the working copy.
func (s *RoutineService) StageAddStep(ctx context.Context, userID, day string, slot entity.Slot, productType, instructions string) (*entity.WeeklyRoutine, error) {
	return s.stage(ctx, userID, func(plan *entity.WeeklyRoutine) error {
		d, err := plan.Day(day)
		if err != nil {
			return err
		}
		_, err = d.AddStep(slot, productType, instructions)
		return err
	})
}

// StageDeleteStep removes a step from the working copy, renumbering the rest.
func (s *RoutineService) StageDeleteStep(ctx context.Context, userID, day string, slot entity.Slot, index int) (*entity.WeeklyRoutine, error) {
	return s.stage(ctx, userID, func(plan *entity.WeeklyRoutine) error {
		d, err := plan.Day(day)
		if err != nil {
			return err
		}
		return d.DeleteStep(slot, index)
	})
}

// StageUpdateStep rewrites the text of one step in the working copy.
func (s *RoutineService) StageUpdateStep(ctx context.Context, userID, day string, slot entity.Slot, index int, productType, instructions string) (*entity.WeeklyRoutine, error) {
	return s.stage(ctx, userID, func(plan *entity.WeeklyRoutine) error {
		d, err := plan.Day(day)
		if err != nil {
			return err
		}
		return d.UpdateStep(slot, index, productType, instructions)
	})
}

// StageWeeklyFocus rewrites the plan's focus line in the working copy.
func (s *RoutineService) StageWeeklyFocus(ctx context.Context, userID, focus string) (*entity.WeeklyRoutine, error) {
	return s.stage(ctx, userID, func(plan *entity.WeeklyRoutine) error {
		plan.WeeklyFocus = focus
		return nil
	})
}

// SaveEdit commits the working copy as the tracked plan and ends the
// session.
func (s *RoutineService) SaveEdit(ctx context.Context, userID string) (*entity.WeeklyRoutine, error) {
	plan, err := s.workingCopy(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan.Normalize()
	if err := s.Repo.ReplaceTrackedRoutine(userID, plan); err != nil {
		return nil, mapNotFound(err)
	}
	if err := helpers.RedisDel(ctx, s.Redis, editKey(userID)); err != nil {
		s.Log.WithError(err).Warn("edit session cleanup failed")
	}
	return plan, nil
}

// CancelEdit discards the working copy. The tracked plan is untouched.
func (s *RoutineService) CancelEdit(ctx context.Context, userID string) error {
	if _, err := s.workingCopy(ctx, userID); err != nil {
		return err
	}
	return helpers.RedisDel(ctx, s.Redis, editKey(userID))
}

func (s *RoutineService) enqueuePlanSummary(ctx context.Context, userID string, plan *entity.WeeklyRoutine) {
	if !s.MailOn || s.Mail == nil {
		return
	}
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return
	}
	_, total := plan.Progress()
	tips := make([]string, 0, len(entity.DayNames))
	for _, name := range entity.DayNames {
		d, _ := plan.Day(name)
		if d.DailyTip != "" {
			tips = append(tips, d.DailyTip)
		}
	}
	job := mailer.EmailJob{
		Type:        mailer.JobPlanSummary,
		To:          u.Email,
		Name:        u.Name,
		WeeklyFocus: plan.WeeklyFocus,
		DailyTips:   tips,
		StepCount:   total,
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Log.WithError(err).Warn("plan summary enqueue failed")
	}
}
