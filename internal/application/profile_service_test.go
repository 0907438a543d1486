package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/gemini"
)

const testDataURL = "data:image/png;base64,aW1hZ2U=" // "image"

// geminiTextServer fakes the analysis endpoint with a fixed text answer.
func geminiTextServer(t *testing.T, text string) *gemini.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": text}},
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return gemini.NewClient("test-key", srv.URL, "text-model", "image-model", 2*time.Second)
}

func geminiFailingServer(t *testing.T) *gemini.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"status":"INTERNAL","message":"boom"}}`))
	}))
	t.Cleanup(srv.Close)
	return gemini.NewClient("test-key", srv.URL, "text-model", "image-model", 2*time.Second)
}

func newProfile(t *testing.T, repo *fakeRepo) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Ava Patel", Email: "ava@example.com", SkinJournal: []entity.JournalEntry{}}
	require.NoError(t, repo.Create(u))
	return u
}

func TestUpdateUserWithoutProfileIsSilentNoOp(t *testing.T) {
	svc := &ProfileService{Repo: newFakeRepo(), Log: quietLog()}

	name := "Nobody"
	u, err := svc.UpdateUser("missing", entity.PartialUpdate{Name: &name})

	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateUserMergesFields(t *testing.T) {
	repo := newFakeRepo()
	svc := &ProfileService{Repo: repo, Log: quietLog()}
	u := newProfile(t, repo)

	name := "Ava P."
	updated, err := svc.UpdateUser(u.ID, entity.PartialUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ava P.", updated.Name)
	assert.Equal(t, "ava@example.com", updated.Email)

	stored, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ava P.", stored.Name)
}

func TestUpdateSkinProfileUnknownUser(t *testing.T) {
	svc := &ProfileService{Repo: newFakeRepo(), Log: quietLog()}
	err := svc.UpdateSkinProfile("missing", &entity.SkinAnalysis{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddJournalEntryPrependsWithAnalysis(t *testing.T) {
	repo := newFakeRepo()
	svc := &ProfileService{Repo: repo, Log: quietLog(), Gemini: geminiTextServer(t, "Hydration is improving.")}
	u := newProfile(t, repo)
	require.NoError(t, repo.PrependJournalEntry(u.ID, entity.JournalEntry{
		Date: time.Now().Add(-48 * time.Hour), Image: testDataURL, Notes: "older",
	}))

	entry, err := svc.AddJournalEntry(context.Background(), u.ID, testDataURL, "feeling good", "en")
	require.NoError(t, err)
	assert.Equal(t, "feeling good", entry.Notes)
	assert.Equal(t, "Hydration is improving.", entry.AIAnalysis)
	assert.WithinDuration(t, time.Now(), entry.Date, 5*time.Second)

	stored, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	require.Len(t, stored.SkinJournal, 2)
	assert.Equal(t, "feeling good", stored.SkinJournal[0].Notes)
	assert.Equal(t, "older", stored.SkinJournal[1].Notes)
}

func TestAddJournalEntryRejectsNonDataURL(t *testing.T) {
	repo := newFakeRepo()
	svc := &ProfileService{Repo: repo, Log: quietLog(), Gemini: geminiTextServer(t, "x")}
	u := newProfile(t, repo)

	_, err := svc.AddJournalEntry(context.Background(), u.ID, "https://example.com/photo.jpg", "", "en")
	assert.ErrorIs(t, err, ErrBadImage)
}

func TestAddJournalEntrySurvivesComparisonFailure(t *testing.T) {
	repo := newFakeRepo()
	svc := &ProfileService{Repo: repo, Log: quietLog(), Gemini: geminiFailingServer(t)}
	u := newProfile(t, repo)

	entry, err := svc.AddJournalEntry(context.Background(), u.ID, testDataURL, "notes", "en")
	require.NoError(t, err)
	assert.Empty(t, entry.AIAnalysis)

	stored, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Len(t, stored.SkinJournal, 1)
}
