package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create inserts the profile record, replacing any existing record for the
// same email wholesale. Login always starts from a fresh record; there is no
// multi-account switching.
func (r *ProfileRepository) Create(u *entity.User) error {
	ctx := context.Background()
	journal, err := json.Marshal(emptyIfNil(u.SkinJournal))
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (name, email, dob, avatar_url, skin_journal)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			dob = EXCLUDED.dob,
			avatar_url = EXCLUDED.avatar_url,
			skin_profile = NULL,
			skin_journal = EXCLUDED.skin_journal,
			tracked_routine = NULL,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.DOB, u.AvatarURL, journal)

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

const profileColumns = `
	id, name, email, dob, avatar_url,
	skin_profile, skin_journal, tracked_routine,
	created_at, updated_at
`

func (r *ProfileRepository) GetByID(id string) (*entity.User, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *ProfileRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`WHERE email = $1`, email)
}

func (r *ProfileRepository) getBy(where string, arg any) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}
	var profileRaw, journalRaw, routineRaw []byte

	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles `+where, arg)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.DOB, &u.AvatarURL,
		&profileRaw, &journalRaw, &routineRaw,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	// Corrupt sub-documents are treated as absent rather than failing the
	// whole record; the app favors always rendering something.
	if len(profileRaw) > 0 {
		var p entity.SkinAnalysis
		if json.Unmarshal(profileRaw, &p) == nil {
			u.SkinProfile = &p
		}
	}
	u.SkinJournal = []entity.JournalEntry{}
	if len(journalRaw) > 0 {
		var j []entity.JournalEntry
		if json.Unmarshal(journalRaw, &j) == nil && j != nil {
			u.SkinJournal = j
		}
	}
	if len(routineRaw) > 0 {
		var w entity.WeeklyRoutine
		if json.Unmarshal(routineRaw, &w) == nil {
			u.TrackedRoutine = &w
		}
	}
	return u, nil
}

func (r *ProfileRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()

	profileRaw, err := marshalNullable(u.SkinProfile)
	if err != nil {
		return err
	}
	journalRaw, err := json.Marshal(emptyIfNil(u.SkinJournal))
	if err != nil {
		return err
	}
	routineRaw, err := marshalNullable(u.TrackedRoutine)
	if err != nil {
		return err
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET name = $1, email = $2, dob = $3, avatar_url = $4,
		    skin_profile = $5, skin_journal = $6, tracked_routine = $7,
		    updated_at = $8
		WHERE id = $9
	`, u.Name, u.Email, u.DOB, u.AvatarURL, profileRaw, journalRaw, routineRaw, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplaceSkinProfile overwrites the skin-profile snapshot wholesale; history
// is the journal's job.
func (r *ProfileRepository) ReplaceSkinProfile(id string, profile *entity.SkinAnalysis) error {
	raw, err := marshalNullable(profile)
	if err != nil {
		return err
	}
	return r.execOne(`
		UPDATE profiles SET skin_profile = $1, updated_at = now() WHERE id = $2
	`, raw, id)
}

// PrependJournalEntry puts e at the front of the journal in a single
// statement, so concurrent appends cannot drop each other's entries.
func (r *ProfileRepository) PrependJournalEntry(id string, e entity.JournalEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.execOne(`
		UPDATE profiles
		SET skin_journal = jsonb_build_array($1::jsonb) || COALESCE(skin_journal, '[]'::jsonb),
		    updated_at = now()
		WHERE id = $2
	`, raw, id)
}

// ReplaceTrackedRoutine overwrites the routine; nil clears it.
func (r *ProfileRepository) ReplaceTrackedRoutine(id string, routine *entity.WeeklyRoutine) error {
	raw, err := marshalNullable(routine)
	if err != nil {
		return err
	}
	return r.execOne(`
		UPDATE profiles SET tracked_routine = $1, updated_at = now() WHERE id = $2
	`, raw, id)
}

func (r *ProfileRepository) execOne(sql string, args ...any) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func marshalNullable(v any) ([]byte, error) {
	switch x := v.(type) {
	case *entity.SkinAnalysis:
		if x == nil {
			return nil, nil
		}
	case *entity.WeeklyRoutine:
		if x == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func emptyIfNil(j []entity.JournalEntry) []entity.JournalEntry {
	if j == nil {
		return []entity.JournalEntry{}
	}
	return j
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
