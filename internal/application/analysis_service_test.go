package application

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/internal/infrastructure/gemini"
)

// geminiImageServer fakes the analysis endpoint with a fixed PNG answer.
func geminiImageServer(t *testing.T, data []byte) *gemini.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{
							map[string]any{"inlineData": map[string]any{
								"mimeType": "image/png",
								"data":     base64.StdEncoding.EncodeToString(data),
							}},
						},
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return gemini.NewClient("test-key", srv.URL, "text-model", "image-model", 2*time.Second)
}

func TestDailyPlanDecodesBothSlots(t *testing.T) {
	plan := map[string]any{
		"morning": []any{
			map[string]any{"step": 1, "productType": "Gentle foaming cleanser", "instructions": "Massage and rinse"},
			map[string]any{"step": 2, "productType": "Vitamin C serum", "instructions": "Two drops on damp skin"},
		},
		"evening": []any{
			map[string]any{"step": 1, "productType": "Night cream", "instructions": "Thin layer before bed"},
		},
	}
	text, err := json.Marshal(plan)
	require.NoError(t, err)
	svc := &AnalysisService{Gemini: geminiTextServer(t, string(text)), Log: quietLog()}

	out, err := svc.DailyPlan(context.Background(), []string{"dryness"}, "Dry", "en")
	require.NoError(t, err)
	require.Len(t, out.Morning, 2)
	assert.Equal(t, "Vitamin C serum", out.Morning[1].ProductType)
	require.Len(t, out.Evening, 1)
	assert.Equal(t, 1, out.Evening[0].Step)
}

func TestHairAdviceDecodesSuggestions(t *testing.T) {
	advice := map[string]any{
		"hairTypeAnalysis": "Wavy, medium thickness",
		"faceShape":        "Oval",
		"hairstyleSuggestions": []any{
			map[string]any{"name": "Long layers", "description": "Soft layers past the shoulder", "reasoning": "Frames an oval face"},
		},
		"hairColorSuggestions": []any{
			map[string]any{"colorName": "Chestnut", "description": "Warm brown", "reasoning": "Complements the skin tone"},
		},
		"hairCareTips": []any{"Air dry when possible"},
	}
	text, err := json.Marshal(advice)
	require.NoError(t, err)
	svc := &AnalysisService{Gemini: geminiTextServer(t, string(text)), Log: quietLog()}

	out, err := svc.HairAdvice(context.Background(), testDataURL, "en")
	require.NoError(t, err)
	assert.Equal(t, "Oval", out.FaceShape)
	require.Len(t, out.HairstyleSuggestions, 1)
	assert.Equal(t, "Long layers", out.HairstyleSuggestions[0].Name)
	require.Len(t, out.HairColorSuggestions, 1)
	assert.Equal(t, "Chestnut", out.HairColorSuggestions[0].ColorName)
}

func TestVirtualTryOnReturnsDataURLWithoutStorage(t *testing.T) {
	svc := &AnalysisService{Gemini: geminiImageServer(t, []byte("styled portrait")), Log: quietLog()}

	out, err := svc.VirtualTryOn(context.Background(), "u-1", testDataURL, "curtain bangs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"), out)
}

func TestVirtualTryOnRejectsNonDataURL(t *testing.T) {
	svc := &AnalysisService{Gemini: geminiImageServer(t, []byte("x")), Log: quietLog()}

	_, err := svc.VirtualTryOn(context.Background(), "u-1", "https://example.com/photo.jpg", "bob cut")
	assert.ErrorIs(t, err, ErrBadImage)
}

func TestFacialTimeLapseReturnsRenderedPortrait(t *testing.T) {
	svc := &AnalysisService{Gemini: geminiImageServer(t, []byte("aged portrait")), Log: quietLog()}

	out, err := svc.FacialTimeLapse(context.Background(), "u-1", testDataURL, "old age")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"), out)

	_, err = svc.FacialTimeLapse(context.Background(), "u-1", "not-an-image", "childhood")
	assert.ErrorIs(t, err, ErrBadImage)
}

func TestChatRepliesWithAssistantText(t *testing.T) {
	svc := &AnalysisService{Gemini: geminiTextServer(t, "Start with a gentle cleanser!"), Log: quietLog()}

	history := []entity.ChatTurn{
		{Role: "user", Text: "My skin feels tight after washing."},
		{Role: "model", Text: "Sounds like your cleanser is too harsh."},
	}
	reply, err := svc.Chat(context.Background(), history, "What should I switch to?", "en")
	require.NoError(t, err)
	assert.Equal(t, "Start with a gentle cleanser!", reply)
}

func TestRecommendRemediesSkipsVisualsWithoutStorage(t *testing.T) {
	remedies := map[string]any{
		"ayurvedic":     []any{map[string]any{"name": "Neem paste", "description": "Apply for ten minutes"}},
		"modern":        []any{map[string]any{"name": "Salicylic acid wash", "description": "Use nightly"}},
		"generalAdvice": []any{"Patch test first"},
	}
	text, err := json.Marshal(remedies)
	require.NoError(t, err)
	svc := &AnalysisService{Repo: newFakeRepo(), Gemini: geminiTextServer(t, string(text)), Log: quietLog()}

	out, err := svc.RecommendRemedies(context.Background(), "u-1", []string{"acne"}, "Oily", "en")
	require.NoError(t, err)
	require.Len(t, out.Ayurvedic, 1)
	assert.Empty(t, out.Ayurvedic[0].VisualURL)
	require.Len(t, out.Modern, 1)
	assert.Empty(t, out.Modern[0].VisualURL)
}

func TestRunBoundedLimitsConcurrency(t *testing.T) {
	const limit = 3

	var mu sync.Mutex
	inFlight, peak, ran := 0, 0, 0

	tasks := make([]func(), 16)
	for i := range tasks {
		tasks[i] = func() {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inFlight--
			ran++
			mu.Unlock()
		}
	}

	runBounded(limit, tasks)

	assert.Equal(t, 16, ran)
	assert.Zero(t, inFlight)
	assert.LessOrEqual(t, peak, limit)
	assert.Positive(t, peak)
}
