package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSteps() DailyRoutine {
	d := DailyRoutine{}
	_, _ = d.AddStep(SlotMorning, "Cleanser", "Rinse gently")
	_, _ = d.AddStep(SlotMorning, "Toner", "Pat in")
	_, _ = d.AddStep(SlotMorning, "Moisturizer", "Apply evenly")
	return d
}

func TestAddStepAppendsDenseNumbers(t *testing.T) {
	d := threeSteps()
	require.Len(t, d.Morning, 3)
	for i, s := range d.Morning {
		assert.Equal(t, i+1, s.Step)
		assert.Equal(t, StatusPending, s.Status)
	}

	step, err := d.AddStep(SlotEvening, "Serum", "Two drops")
	require.NoError(t, err)
	assert.Equal(t, 1, step.Step)
}

func TestDeleteStepRenumbers(t *testing.T) {
	d := threeSteps()
	require.NoError(t, d.DeleteStep(SlotMorning, 1))

	require.Len(t, d.Morning, 2)
	assert.Equal(t, "Cleanser", d.Morning[0].ProductType)
	assert.Equal(t, "Moisturizer", d.Morning[1].ProductType)
	assert.Equal(t, 1, d.Morning[0].Step)
	assert.Equal(t, 2, d.Morning[1].Step)
}

func TestDeleteStepOutOfRange(t *testing.T) {
	d := threeSteps()
	assert.ErrorIs(t, d.DeleteStep(SlotMorning, 3), ErrStepNotFound)
	assert.ErrorIs(t, d.DeleteStep(SlotMorning, -1), ErrStepNotFound)
	assert.ErrorIs(t, d.DeleteStep("noon", 0), ErrUnknownSlot)
}

func TestToggleSameStatusResetsToPending(t *testing.T) {
	d := threeSteps()

	require.NoError(t, d.ToggleStep(SlotMorning, 0, StatusCompleted))
	assert.Equal(t, StatusCompleted, d.Morning[0].Status)

	require.NoError(t, d.ToggleStep(SlotMorning, 0, StatusCompleted))
	assert.Equal(t, StatusPending, d.Morning[0].Status)
}

func TestToggleDifferentStatusOverwrites(t *testing.T) {
	d := threeSteps()

	require.NoError(t, d.ToggleStep(SlotMorning, 0, StatusCompleted))
	require.NoError(t, d.ToggleStep(SlotMorning, 0, StatusSkipped))
	assert.Equal(t, StatusSkipped, d.Morning[0].Status)
}

func TestToggleRejectsInvalidStatus(t *testing.T) {
	d := threeSteps()
	assert.ErrorIs(t, d.ToggleStep(SlotMorning, 0, "done"), ErrInvalidStatus)
	assert.ErrorIs(t, d.ToggleStep(SlotMorning, 9, StatusCompleted), ErrStepNotFound)
}

func TestNormalizeRepairsNumbersAndStatuses(t *testing.T) {
	w := WeeklyRoutine{
		Monday: DailyRoutine{
			Morning: []RoutineStep{
				{Step: 5, ProductType: "Cleanser"},
				{Step: 9, ProductType: "Sunscreen", Status: "unknown"},
				{Step: 2, ProductType: "Serum", Status: StatusCompleted},
			},
		},
	}
	w.Normalize()

	require.Len(t, w.Monday.Morning, 3)
	assert.Equal(t, 1, w.Monday.Morning[0].Step)
	assert.Equal(t, 2, w.Monday.Morning[1].Step)
	assert.Equal(t, 3, w.Monday.Morning[2].Step)
	assert.Equal(t, StatusPending, w.Monday.Morning[0].Status)
	assert.Equal(t, StatusPending, w.Monday.Morning[1].Status)
	assert.Equal(t, StatusCompleted, w.Monday.Morning[2].Status)

	// nil lists come back as empty slices for every day
	tue, _ := w.Day("tuesday")
	assert.NotNil(t, tue.Morning)
	assert.NotNil(t, tue.Evening)
}

func TestNewBlankWeeklyRoutine(t *testing.T) {
	w := NewBlankWeeklyRoutine("Barrier repair")
	assert.Equal(t, "Barrier repair", w.WeeklyFocus)
	for _, name := range DayNames {
		d, err := w.Day(name)
		require.NoError(t, err)
		assert.Empty(t, d.Morning)
		assert.Empty(t, d.Evening)
	}
	completed, total := w.Progress()
	assert.Zero(t, completed)
	assert.Zero(t, total)
}

func TestDayUnknownName(t *testing.T) {
	w := NewBlankWeeklyRoutine("")
	_, err := w.Day("Monday") // names are lowercase
	assert.ErrorIs(t, err, ErrUnknownDay)
}

func TestProgressCountsAcrossWeek(t *testing.T) {
	w := NewBlankWeeklyRoutine("")
	mon, _ := w.Day("monday")
	_, _ = mon.AddStep(SlotMorning, "Cleanser", "")
	_, _ = mon.AddStep(SlotEvening, "Moisturizer", "")
	fri, _ := w.Day("friday")
	_, _ = fri.AddStep(SlotMorning, "Sunscreen", "")

	require.NoError(t, mon.ToggleStep(SlotMorning, 0, StatusCompleted))

	completed, total := w.Progress()
	assert.Equal(t, 1, completed)
	assert.Equal(t, 3, total)
}
