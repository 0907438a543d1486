package application

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/internal/domain/repository"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeRepo is an in-memory ProfileRepository with the same replace-by-email
// semantics as the Postgres implementation.
type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*entity.User{}}
}

func (f *fakeRepo) Create(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, ex := range f.users {
		if ex.Email == u.Email {
			delete(f.users, id)
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("u-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetByEmail(email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) Update(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) ReplaceSkinProfile(id string, profile *entity.SkinAnalysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.SkinProfile = profile
	return nil
}

func (f *fakeRepo) PrependJournalEntry(id string, e entity.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.SkinJournal = entity.PrependEntry(u.SkinJournal, e)
	return nil
}

func (f *fakeRepo) ReplaceTrackedRoutine(id string, routine *entity.WeeklyRoutine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.TrackedRoutine = routine
	return nil
}

var _ repository.ProfileRepository = (*fakeRepo)(nil)
