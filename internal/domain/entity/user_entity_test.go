package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestPartialUpdateAppliesOnlySetFields(t *testing.T) {
	u := &User{Name: "Ava Patel", Email: "ava@example.com", DOB: "1998-04-12"}

	PartialUpdate{Name: strptr("Ava P.")}.Apply(u)

	assert.Equal(t, "Ava P.", u.Name)
	assert.Equal(t, "ava@example.com", u.Email)
	assert.Equal(t, "1998-04-12", u.DOB)
}

func TestPartialUpdateClearRoutine(t *testing.T) {
	u := &User{TrackedRoutine: NewBlankWeeklyRoutine("focus")}

	PartialUpdate{ClearRoutine: true}.Apply(u)
	assert.Nil(t, u.TrackedRoutine)

	// ClearRoutine wins over a provided routine
	u.TrackedRoutine = NewBlankWeeklyRoutine("old")
	PartialUpdate{ClearRoutine: true, TrackedRoutine: NewBlankWeeklyRoutine("new")}.Apply(u)
	assert.Nil(t, u.TrackedRoutine)
}

// A stored profile read back must equal what was written, field for field,
// including every sub-document. The record travels as JSON both over the API
// and into the JSONB columns.
func TestUserJSONRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	plan := NewBlankWeeklyRoutine("Barrier repair")
	mon, err := plan.Day("monday")
	require.NoError(t, err)
	_, err = mon.AddStep(SlotMorning, "Cleanser", "Rinse gently")
	require.NoError(t, err)
	_, err = mon.AddStep(SlotEvening, "Night cream", "Thin layer")
	require.NoError(t, err)
	mon.Morning[0].Status = StatusCompleted
	mon.Evening[0].Status = StatusSkipped

	u := User{
		ID:        "u-1",
		Name:      "Ava Patel",
		Email:     "ava@example.com",
		DOB:       "1998-04-12",
		AvatarURL: "https://cdn.example.com/ava.png",
		SkinProfile: &SkinAnalysis{
			Conditions: []SkinCondition{
				{Condition: "dryness", Confidence: 0.92, Severity: "Mild", Location: Point{X: 40, Y: 55}},
			},
			OverallAssessment: "Mostly balanced",
			SkinType:          "Dry",
			SkinTone:          "Medium",
			PrimaryConcernDeepDive: &ConcernDeepDive{
				Concern:         "dryness",
				Description:     "Tightness after cleansing",
				PotentialCauses: []string{"hard water"},
				LifestyleTips:   []string{"shorter showers"},
			},
		},
		SkinJournal: []JournalEntry{
			{Date: now.Add(-24 * time.Hour), Image: "data:image/png;base64,aW1n", Notes: "day one", AIAnalysis: "Looking calm"},
		},
		TrackedRoutine: plan,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	raw, err := json.Marshal(&u)
	require.NoError(t, err)

	var back User
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, u, back)
}

func TestAgeDerivedFromDOB(t *testing.T) {
	assert.Zero(t, (&User{}).Age())
	assert.Zero(t, (&User{DOB: "not-a-date"}).Age())
	assert.Positive(t, (&User{DOB: "1998-04-12"}).Age())
}
