package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/internal/domain/repository"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/gemini"
	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
	"github.com/akshay-shet/ecoskin-api/pkg/mailer"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrBadImage     = errors.New("image must be a base64 data URL")
)

// ProfileService owns the profile record lifecycle: login, partial updates,
// the skin journal and avatar upload. Login is deliberately credential-free;
// the profile is a personal workspace, not a guarded account.
type ProfileService struct {
	Repo    repository.ProfileRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	GCS     *storage.Client
	Bucket  string
	ES      *elasticsearch.Client
	ESIndex string
	Gemini  *gemini.Client
	Mail    *helpers.RabbitPublisher
	MailOn  bool
	Log     *logrus.Logger

	SessionTTL time.Duration
}

// TokenPair is the freshly issued access/refresh pair plus expiries, used by
// the handler to set cookies.
type TokenPair struct {
	Access     string
	AccessExp  time.Time
	Refresh    string
	RefreshExp time.Time
}

func sessionKey(userID string) string { return "user:session:" + userID }

// Login creates (or wholesale replaces) the profile for the given email and
// opens a session. Any previous skin profile and tracked routine for that
// email are discarded; the journal starts empty.
func (s *ProfileService) Login(ctx context.Context, name, email, dob, loginIP string) (*entity.User, *TokenPair, error) {
	u := &entity.User{
		Name:        strings.TrimSpace(name),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		DOB:         dob,
		SkinJournal: []entity.JournalEntry{},
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}

	s.enqueueWelcome(ctx, u, loginIP)

	s.Log.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user logged in")
	return u, pair, nil
}

func (s *ProfileService) issueTokens(ctx context.Context, u *entity.User) (*TokenPair, error) {
	sid := s.JWT.NewSessionID()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return nil, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return nil, err
	}
	// The refresh token is stored hashed; a leaked session dump cannot be
	// replayed against /refresh.
	refreshHash, err := helpers.HashSecret(refresh)
	if err != nil {
		return nil, err
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, sessionKey(u.ID), map[string]interface{}{
		"session_id":   sid,
		"name":         u.Name,
		"email":        u.Email,
		"refresh_hash": refreshHash,
	})
	pipe.Expire(ctx, sessionKey(u.ID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, AccessExp: aexp, Refresh: refresh, RefreshExp: rexp}, nil
}

// Refresh rotates the token pair for a valid refresh token.
func (s *ProfileService) Refresh(ctx context.Context, refreshToken string) (*entity.User, *TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrUserNotFound
	}
	sess, err := s.Redis.HGetAll(ctx, sessionKey(claims.UserID)).Result()
	if err != nil || len(sess) == 0 || sess["session_id"] != claims.SessionID {
		return nil, nil, ErrUserNotFound
	}
	if !helpers.CheckSecret(sess["refresh_hash"], refreshToken) {
		return nil, nil, ErrUserNotFound
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Logout drops the session and deletes the stored record. The profile is a
// per-login workspace; logging out throws it away, like the SPA clearing its
// local store.
func (s *ProfileService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return s.Redis.Del(ctx, sessionKey(userID)).Err()
}

func (s *ProfileService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// UpdateUser shallow-merges the given fields into the profile. When no
// profile exists the call is a silent no-op, mirroring how the SPA ignores
// updates while logged out.
func (s *ProfileService) UpdateUser(userID string, patch entity.PartialUpdate) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		s.Log.WithField("user_id", userID).Debug("update ignored, no profile")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	patch.Apply(u)
	if err := s.Repo.Update(u); err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// UpdateSkinProfile replaces the analysis snapshot wholesale.
func (s *ProfileService) UpdateSkinProfile(userID string, profile *entity.SkinAnalysis) error {
	return mapNotFound(s.Repo.ReplaceSkinProfile(userID, profile))
}

// AddJournalEntry dates a new entry, asks the analysis service for a progress
// comparison against the previous photo, prepends the entry and indexes it
// for search. A failed comparison does not block the entry.
func (s *ProfileService) AddJournalEntry(ctx context.Context, userID, imageDataURL, notes, lang string) (*entity.JournalEntry, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return nil, ErrBadImage
	}

	var prev *gemini.Image
	if len(u.SkinJournal) > 0 {
		if p, err := gemini.ParseDataURL(u.SkinJournal[0].Image); err == nil {
			prev = p
		}
	}
	analysis, err := s.Gemini.CompareSkinHealth(ctx, img, prev, notes, lang)
	if err != nil {
		s.Log.WithError(err).Warn("journal comparison failed, storing entry without analysis")
		analysis = ""
	}

	entry := entity.JournalEntry{
		Date:       time.Now().UTC(),
		Image:      imageDataURL,
		Notes:      notes,
		AIAnalysis: analysis,
	}
	if err := s.Repo.PrependJournalEntry(userID, entry); err != nil {
		return nil, mapNotFound(err)
	}
	s.indexJournalEntry(ctx, userID, entry)
	return &entry, nil
}

// indexJournalEntry mirrors the entry's text into Elasticsearch. The journal
// in Postgres stays the source of truth, so index failures only log.
func (s *ProfileService) indexJournalEntry(ctx context.Context, userID string, e entity.JournalEntry) {
	if s.ES == nil {
		return
	}
	doc := map[string]interface{}{
		"user_id":     userID,
		"date":        e.Date,
		"notes":       e.Notes,
		"ai_analysis": e.AIAnalysis,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return
	}
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: fmt.Sprintf("%s-%d", userID, e.Date.UnixNano()),
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.ES)
	if err != nil {
		s.Log.WithError(err).Warn("journal index failed")
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.Log.WithField("status", res.StatusCode).Warn("journal index rejected")
	}
}

// JournalHit is one search result: the entry date plus the matched text.
type JournalHit struct {
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes"`
	AIAnalysis string    `json:"aiAnalysis"`
}

// SearchJournal full-text searches the user's journal notes and analysis
// text.
func (s *ProfileService) SearchJournal(ctx context.Context, userID, query string) ([]JournalHit, error) {
	if s.ES == nil {
		return []JournalHit{}, nil
	}
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"notes", "ai_analysis"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"user_id": userID},
				},
			},
		},
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(bytes.NewReader(body)),
		s.ES.Search.WithSize(25),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("journal search failed: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source JournalHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	hits := make([]JournalHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, h.Source)
	}
	return hits, nil
}

// UploadAvatar stores the image in object storage and points the profile at
// its public URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error) {
	if s.GCS == nil || s.Bucket == "" {
		return "", errors.New("object storage not configured")
	}
	object := fmt.Sprintf("avatars/%s/%d-%s", userID, time.Now().UnixNano(), filename)
	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, object, contentType, r)
	if err != nil {
		return "", err
	}
	if _, err := s.UpdateUser(userID, entity.PartialUpdate{AvatarURL: &url}); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ProfileService) enqueueWelcome(ctx context.Context, u *entity.User, loginIP string) {
	if !s.MailOn || s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		Type:      mailer.JobWelcome,
		To:        u.Email,
		Name:      u.Name,
		LoginIP:   loginIP,
		LoginTime: time.Now().UTC().Format(time.RFC1123),
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Log.WithError(err).Warn("welcome email enqueue failed")
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
