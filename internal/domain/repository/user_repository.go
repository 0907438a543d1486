package repository

import (
	"errors"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
)

// ErrNotFound is returned when no profile record matches.
var ErrNotFound = errors.New("profile not found")

// ProfileRepository defines the persistence operations for the single-profile
// user record. Sub-document writes (profile/journal/routine) are last-write-
// wins replacements; there is no revision stamping.
type ProfileRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
	Delete(id string) error

	ReplaceSkinProfile(id string, profile *entity.SkinAnalysis) error
	PrependJournalEntry(id string, e entity.JournalEntry) error
	ReplaceTrackedRoutine(id string, routine *entity.WeeklyRoutine) error
}
