package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func TestGenerateJSONDecodesSchemaOutput(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(textResponse(`{"answer":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, "text-model", "image-model", time.Second)

	var out struct {
		Answer string `json:"answer"`
	}
	schema := map[string]any{"type": "OBJECT"}
	err := c.GenerateJSON(context.Background(), "say ok", schema, &out)
	require.NoError(t, err)

	assert.Equal(t, "ok", out.Answer)
	assert.Equal(t, "/models/text-model:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMIMEType)
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "say ok", gotReq.Contents[0].Parts[0].Text)
}

func TestGenerateJSONSendsInlineImage(t *testing.T) {
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(textResponse(`{}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "m", "im", time.Second)
	img := &Image{MIMEType: "image/png", Data: []byte("pixels")}

	var out struct{}
	require.NoError(t, c.GenerateJSON(context.Background(), "look", map[string]any{"type": "OBJECT"}, &out, img))

	require.Len(t, gotReq.Contents[0].Parts, 2)
	inline := gotReq.Contents[0].Parts[0].InlineData
	require.NotNil(t, inline)
	assert.Equal(t, "image/png", inline.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pixels")), inline.Data)
	assert.Equal(t, "look", gotReq.Contents[0].Parts[1].Text)
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "m", "im", time.Second)
	_, err := c.GenerateText(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "m", "im", time.Second)
	_, err := c.GenerateText(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
}

func TestGenerateImageReturnsFirstImagePart(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{
							map[string]any{"text": "here you go"},
							map[string]any{"inlineData": map[string]any{"mimeType": "image/png", "data": payload}},
						},
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "m", "image-model", time.Second)
	img, err := c.GenerateImage(context.Background(), "draw")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, []byte("png-bytes"), img.Data)
}

func TestParseDataURLRoundTrip(t *testing.T) {
	img := &Image{MIMEType: "image/jpeg", Data: []byte("raw")}
	parsed, err := ParseDataURL(img.DataURL())
	require.NoError(t, err)
	assert.Equal(t, img.MIMEType, parsed.MIMEType)
	assert.Equal(t, img.Data, parsed.Data)
}

func TestParseDataURLRejectsPlainURL(t *testing.T) {
	_, err := ParseDataURL("https://example.com/a.png")
	assert.Error(t, err)

	_, err = ParseDataURL("data:image/png;base64,!!!")
	assert.Error(t, err)
}
