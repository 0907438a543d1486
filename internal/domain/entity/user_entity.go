package entity

import (
	"time"
)

// User is the aggregate root for the profile domain. Exactly one profile
// exists per email; the SPA treats presence of the record as "logged in".
//
// SkinProfile, SkinJournal and TrackedRoutine are owned sub-documents
// persisted as JSONB; nobody else references them.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	DOB       string `json:"dob,omitempty"` // "2006-01-02"; age is derived, never stored
	AvatarURL string `json:"avatarUrl,omitempty"`

	SkinProfile    *SkinAnalysis  `json:"skinProfile,omitempty"`
	SkinJournal    []JournalEntry `json:"skinJournal"`
	TrackedRoutine *WeeklyRoutine `json:"trackedRoutine,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Age derives the user's age in whole years from DOB, or 0 when DOB is
// absent or unparseable.
func (u *User) Age() int {
	if u.DOB == "" {
		return 0
	}
	dob, err := time.Parse("2006-01-02", u.DOB)
	if err != nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// PartialUpdate carries the fields of a shallow profile merge. Nil pointers
// leave the current value untouched; ClearRoutine distinguishes "set routine
// to nil" from "leave routine alone".
type PartialUpdate struct {
	Name      *string
	Email     *string
	DOB       *string
	AvatarURL *string

	SkinProfile    *SkinAnalysis
	SkinJournal    *[]JournalEntry
	TrackedRoutine *WeeklyRoutine
	ClearRoutine   bool
}

// Apply merges the partial fields into u.
func (p PartialUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.DOB != nil {
		u.DOB = *p.DOB
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.SkinProfile != nil {
		u.SkinProfile = p.SkinProfile
	}
	if p.SkinJournal != nil {
		u.SkinJournal = *p.SkinJournal
	}
	if p.ClearRoutine {
		u.TrackedRoutine = nil
	} else if p.TrackedRoutine != nil {
		u.TrackedRoutine = p.TrackedRoutine
	}
}
