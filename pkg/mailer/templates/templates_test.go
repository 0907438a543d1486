package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render("welcome", EmailData{Name: "Ava"},
		WithLogin("203.0.113.7", "Pune, Maharashtra, India", "Mon, 10 Aug 2026 09:00:00 UTC"))
	require.NoError(t, err)

	assert.Contains(t, subject, "Ava")
	assert.Contains(t, text, "203.0.113.7")
	assert.Contains(t, html, "Pune, Maharashtra, India")
	assert.Contains(t, html, "EcoSkin")
}

func TestRenderPlanSummary(t *testing.T) {
	subject, text, html, err := Render("plan_summary", EmailData{Name: "Ava"},
		WithPlan("Hydration", []string{"Drink water", "Sleep early"}, 14))
	require.NoError(t, err)

	assert.Contains(t, subject, "Hydration")
	assert.Contains(t, text, "Drink water")
	assert.Contains(t, text, "14")
	assert.Contains(t, html, "Sleep early")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", EmailData{})
	assert.Error(t, err)
}

func TestFormatGeoSkipsEmptyParts(t *testing.T) {
	assert.Equal(t, "Pune, India", FormatGeo(Geo{City: "Pune", Country: "India"}))
	assert.Equal(t, "", FormatGeo(Geo{}))
}
