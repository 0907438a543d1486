package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Gemini generateContent REST API. The analysis boundary
// is opaque to the rest of the app: a prompt (optionally with an inline
// image) goes in, schema-conforming JSON, free text or image bytes come out.
type Client struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	HTTPClient *http.Client
}

// ErrEmptyResponse is returned when the model answers without any usable part.
var ErrEmptyResponse = errors.New("gemini: empty response")

func NewClient(apiKey, baseURL, textModel, imageModel string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		TextModel:  textModel,
		ImageModel: imageModel,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Image is an inline image payload, carried as raw bytes plus MIME type.
type Image struct {
	MIMEType string
	Data     []byte
}

// ParseDataURL decodes a base64 data URL ("data:image/jpeg;base64,...") into
// an Image. The journal stores images in exactly this form.
func ParseDataURL(dataURL string) (*Image, error) {
	header, data, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return nil, errors.New("gemini: not a data URL")
	}
	mime := strings.TrimPrefix(header, "data:")
	mime = strings.TrimSuffix(mime, ";base64")
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("gemini: decode data URL: %w", err)
	}
	if mime == "" {
		mime = "image/jpeg"
	}
	return &Image{MIMEType: mime, Data: raw}, nil
}

// DataURL renders the image back into the embedded form used by the SPA.
func (i *Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Wire types for generateContent. Only the fields this app uses.

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType   string         `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any `json:"responseSchema,omitempty"`
	ResponseModalities []string       `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, model string, req generateRequest) (*generateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.APIKey)

	res, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 32<<20))
	if err != nil {
		return nil, err
	}
	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("gemini: %s: %s", out.Error.Status, out.Error.Message)
		}
		return nil, fmt.Errorf("gemini: unexpected status %s", res.Status)
	}
	return &out, nil
}

func parts(prompt string, images ...*Image) []part {
	ps := make([]part, 0, len(images)+1)
	for _, img := range images {
		if img == nil {
			continue
		}
		ps = append(ps, part{InlineData: &inlineData{
			MIMEType: img.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}
	return append(ps, part{Text: prompt})
}

// GenerateJSON asks the text model for output conforming to schema and
// decodes it into out.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema map[string]any, out any, images ...*Image) error {
	res, err := c.generate(ctx, c.TextModel, generateRequest{
		Contents: []content{{Parts: parts(prompt, images...)}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return err
	}
	text := firstText(res)
	if text == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("gemini: response does not match schema: %w", err)
	}
	return nil
}

// GenerateText asks the text model for a free-text answer.
func (c *Client) GenerateText(ctx context.Context, prompt string, images ...*Image) (string, error) {
	res, err := c.generate(ctx, c.TextModel, generateRequest{
		Contents: []content{{Parts: parts(prompt, images...)}},
	})
	if err != nil {
		return "", err
	}
	text := firstText(res)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GenerateImage asks the image model for a picture and returns the first
// image part of the answer.
func (c *Client) GenerateImage(ctx context.Context, prompt string, images ...*Image) (*Image, error) {
	res, err := c.generate(ctx, c.ImageModel, generateRequest{
		Contents: []content{{Parts: parts(prompt, images...)}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	})
	if err != nil {
		return nil, err
	}
	for _, cand := range res.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil {
				continue
			}
			raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("gemini: decode image: %w", err)
			}
			return &Image{MIMEType: p.InlineData.MIMEType, Data: raw}, nil
		}
	}
	return nil, ErrEmptyResponse
}

func firstText(res *generateResponse) string {
	for _, cand := range res.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}
