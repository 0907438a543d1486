package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/internal/domain/repository"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/gemini"
	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
)

// AnalysisService fronts the external analysis calls that do not mutate the
// profile, plus the skin analysis that does. Visual generation for remedies
// fans out per item; an individual failure leaves that remedy without a
// visual rather than failing the batch.
type AnalysisService struct {
	Repo   repository.ProfileRepository
	Gemini *gemini.Client
	GCS    *storage.Client
	Bucket string
	Log    *logrus.Logger
}

// AnalyzeSkin runs the face analysis and stores the result as the user's
// current skin profile.
func (s *AnalysisService) AnalyzeSkin(ctx context.Context, userID, imageDataURL, lang string) (*entity.SkinAnalysis, error) {
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return nil, ErrBadImage
	}
	analysis, err := s.Gemini.AnalyzeSkin(ctx, img, lang)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceSkinProfile(userID, analysis); err != nil {
		return nil, mapNotFound(err)
	}
	return analysis, nil
}

// RecommendRemedies fetches remedy suggestions and then generates a visual
// for every remedy concurrently, uploading each to object storage.
func (s *AnalysisService) RecommendRemedies(ctx context.Context, userID string, conditions []string, skinType, lang string) (*entity.SkinRemedies, error) {
	remedies, err := s.Gemini.RecommendRemedies(ctx, conditions, skinType, lang)
	if err != nil {
		return nil, err
	}
	s.attachVisuals(ctx, userID, remedies)
	return remedies, nil
}

// visualWorkers caps how many remedy visuals generate at once; each one is
// a model call plus an upload.
const visualWorkers = 4

func (s *AnalysisService) attachVisuals(ctx context.Context, userID string, remedies *entity.SkinRemedies) {
	if s.GCS == nil || s.Bucket == "" {
		return
	}
	var tasks []func()
	for _, list := range [][]entity.Remedy{remedies.Ayurvedic, remedies.Modern} {
		for i := range list {
			r := &list[i]
			tasks = append(tasks, func() {
				url, err := s.generateVisual(ctx, userID, r.Name)
				if err != nil {
					s.Log.WithError(err).WithField("remedy", r.Name).Warn("remedy visual skipped")
					return
				}
				r.VisualURL = url
			})
		}
	}
	runBounded(visualWorkers, tasks)
}

// runBounded runs every task with at most limit in flight and waits for all
// of them to finish.
func runBounded(limit int, tasks []func()) {
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(fn func()) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			fn()
		}(task)
	}
	wg.Wait()
}

func (s *AnalysisService) generateVisual(ctx context.Context, userID, remedyName string) (string, error) {
	img, err := s.Gemini.RemedyVisual(ctx, remedyName)
	if err != nil {
		return "", err
	}
	object := fmt.Sprintf("remedies/%s/%d-%s.png", userID, time.Now().UnixNano(), slug(remedyName))
	return helpers.UploadBytes(ctx, s.GCS, s.Bucket, object, img.MIMEType, img.Data)
}

func slug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "remedy"
	}
	if len(out) > 48 {
		out = out[:48]
	}
	return string(out)
}

// OutfitColors runs the seasonal color analysis.
func (s *AnalysisService) OutfitColors(ctx context.Context, imageDataURL, lang string) (*entity.ColorAdvice, error) {
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return nil, ErrBadImage
	}
	return s.Gemini.OutfitColors(ctx, img, lang)
}

// Makeup recommends shades for the photographed skin tone.
func (s *AnalysisService) Makeup(ctx context.Context, imageDataURL, lang string) (*entity.MakeupAdvice, error) {
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return nil, ErrBadImage
	}
	return s.Gemini.Makeup(ctx, img, lang)
}

// AnalyzeHair runs the hair and scalp analysis.
func (s *AnalysisService) AnalyzeHair(ctx context.Context, imageDataURL, lang string) (*entity.HairAnalysis, error) {
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return nil, ErrBadImage
	}
	return s.Gemini.AnalyzeHair(ctx, img, lang)
}

// HairTreatments recommends treatments for an earlier hair analysis.
func (s *AnalysisService) HairTreatments(ctx context.Context, analysis *entity.HairAnalysis, lang string) (*entity.HairTreatments, error) {
	return s.Gemini.HairTreatments(ctx, analysis, lang)
}

// AnalyzeProduct reads a product label photo.
func (s *AnalysisService) AnalyzeProduct(ctx context.Context, imageDataURL, lang string) (*entity.ProductAnalysis, error) {
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return nil, ErrBadImage
	}
	return s.Gemini.AnalyzeProduct(ctx, img, lang)
}

// DailyPlan builds an advisory one-day routine for the given conditions.
// Unlike the weekly tracker nothing is persisted.
func (s *AnalysisService) DailyPlan(ctx context.Context, conditions []string, skinType, lang string) (*entity.DailyPlan, error) {
	return s.Gemini.DailyPlan(ctx, conditions, skinType, lang)
}

// HairAdvice suggests hairstyles and colors from a face photo.
func (s *AnalysisService) HairAdvice(ctx context.Context, imageDataURL, lang string) (*entity.HairAdvice, error) {
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return nil, ErrBadImage
	}
	return s.Gemini.HairAdvice(ctx, img, lang)
}

// VirtualTryOn renders the requested hairstyle onto the user's photo and
// returns where the result lives: an object-storage URL when a bucket is
// configured, otherwise the image itself as a data URL.
func (s *AnalysisService) VirtualTryOn(ctx context.Context, userID, imageDataURL, hairstyle string) (string, error) {
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return "", ErrBadImage
	}
	styled, err := s.Gemini.VirtualTryOn(ctx, img, hairstyle)
	if err != nil {
		return "", err
	}
	object := fmt.Sprintf("styles/%s/%d-%s.png", userID, time.Now().UnixNano(), slug(hairstyle))
	return s.storeMedia(ctx, styled, object)
}

// FacialTimeLapse renders the user's face at another life stage, with the
// same delivery rules as VirtualTryOn.
func (s *AnalysisService) FacialTimeLapse(ctx context.Context, userID, imageDataURL, stage string) (string, error) {
	img, err := gemini.ParseDataURL(imageDataURL)
	if err != nil {
		return "", ErrBadImage
	}
	aged, err := s.Gemini.FacialTimeLapse(ctx, img, stage)
	if err != nil {
		return "", err
	}
	object := fmt.Sprintf("portraits/%s/%d-%s.png", userID, time.Now().UnixNano(), slug(stage))
	return s.storeMedia(ctx, aged, object)
}

func (s *AnalysisService) storeMedia(ctx context.Context, img *gemini.Image, object string) (string, error) {
	if s.GCS == nil || s.Bucket == "" {
		return img.DataURL(), nil
	}
	return helpers.UploadBytes(ctx, s.GCS, s.Bucket, object, img.MIMEType, img.Data)
}

// Chat answers one assistant turn with the caller-supplied transcript.
func (s *AnalysisService) Chat(ctx context.Context, history []entity.ChatTurn, message, lang string) (string, error) {
	return s.Gemini.Chat(ctx, history, message, lang)
}
