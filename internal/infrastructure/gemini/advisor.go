package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
)

// Domain calls against the analysis boundary. Each operation declares the
// response schema it expects; the display layer tolerates incomplete answers.

// Schema builders for the Gemini responseSchema dialect.
func obj(props map[string]any) map[string]any {
	return map[string]any{"type": "OBJECT", "properties": props}
}
func arr(items map[string]any) map[string]any {
	return map[string]any{"type": "ARRAY", "items": items}
}
func str() map[string]any { return map[string]any{"type": "STRING"} }
func num() map[string]any { return map[string]any{"type": "NUMBER"} }
func intg() map[string]any { return map[string]any{"type": "INTEGER"} }

func langSuffix(lang string) string {
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf(" Respond entirely in the language with ISO code %q.", lang)
}

// AnalyzeSkin examines a face photo and returns the structured snapshot that
// replaces the stored skin profile.
func (c *Client) AnalyzeSkin(ctx context.Context, img *Image, lang string) (*entity.SkinAnalysis, error) {
	schema := obj(map[string]any{
		"conditions": arr(obj(map[string]any{
			"condition":  str(),
			"confidence": num(),
			"severity":   str(),
			"location":   obj(map[string]any{"x": num(), "y": num()}),
		})),
		"overallAssessment": str(),
		"skinType":          str(),
		"skinTone":          str(),
		"primaryConcernDeepDive": obj(map[string]any{
			"concern":         str(),
			"description":     str(),
			"potentialCauses": arr(str()),
			"lifestyleTips":   arr(str()),
		}),
	})
	prompt := "Analyze this photo of a person's face for skin conditions such as acne, dryness, oiliness, " +
		"redness, dark spots and fine lines. Identify the skin type and tone, give an overall assessment, " +
		"locate each condition with x/y percent coordinates, and provide a deep dive on the single most " +
		"prominent concern." + langSuffix(lang)

	var out entity.SkinAnalysis
	if err := c.GenerateJSON(ctx, prompt, schema, &out, img); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecommendRemedies suggests ayurvedic and modern remedies for the detected
// conditions. Visuals are generated separately, per remedy.
func (c *Client) RecommendRemedies(ctx context.Context, conditions []string, skinType, lang string) (*entity.SkinRemedies, error) {
	remedy := obj(map[string]any{"name": str(), "description": str()})
	schema := obj(map[string]any{
		"ayurvedic":     arr(remedy),
		"modern":        arr(remedy),
		"generalAdvice": arr(str()),
	})
	prompt := fmt.Sprintf("Suggest eco-friendly remedies for these skin conditions: %v on %s skin. "+
		"Provide ayurvedic home remedies, modern over-the-counter options and general skincare advice.",
		conditions, skinType) + langSuffix(lang)

	var out entity.SkinRemedies
	if err := c.GenerateJSON(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemedyVisual generates an illustrative image for a single remedy.
func (c *Client) RemedyVisual(ctx context.Context, remedyName string) (*Image, error) {
	prompt := fmt.Sprintf("A clean, bright, photorealistic image illustrating the skincare remedy %q "+
		"on a neutral background. No text in the image.", remedyName)
	return c.GenerateImage(ctx, prompt)
}

// GenerateWeeklyPlan builds a 7-day skincare plan for the given topic (a skin
// type or a free-form description). The caller normalizes and tracks it.
func (c *Client) GenerateWeeklyPlan(ctx context.Context, topic, lang string) (*entity.WeeklyRoutine, error) {
	step := obj(map[string]any{
		"step":         intg(),
		"productType":  str(),
		"instructions": str(),
	})
	day := obj(map[string]any{
		"morning":  arr(step),
		"evening":  arr(step),
		"dailyTip": str(),
	})
	schema := obj(map[string]any{
		"weeklyFocus": str(),
		"monday":      day,
		"tuesday":     day,
		"wednesday":   day,
		"thursday":    day,
		"friday":      day,
		"saturday":    day,
		"sunday":      day,
	})
	prompt := fmt.Sprintf("Create a 7-day eco-friendly skincare plan for: %s. Give each day a morning "+
		"and an evening routine with numbered steps (product type plus instructions), a daily tip, and "+
		"an overall weekly focus.", topic) + langSuffix(lang)

	var out entity.WeeklyRoutine
	if err := c.GenerateJSON(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyPlan builds a single-day routine for the given conditions and skin
// type. Advisory only; the weekly tracker has its own generator.
func (c *Client) DailyPlan(ctx context.Context, conditions []string, skinType, lang string) (*entity.DailyPlan, error) {
	step := obj(map[string]any{
		"step":         intg(),
		"productType":  str(),
		"instructions": str(),
	})
	schema := obj(map[string]any{
		"morning": arr(step),
		"evening": arr(step),
	})
	prompt := fmt.Sprintf("Based on these skin conditions: %v and a skin type of %q, generate a "+
		"personalized daily skincare routine with a simple morning routine and an evening routine. "+
		"For each step give a generic product type and brief application instructions.",
		conditions, skinType) + langSuffix(lang)

	var out entity.DailyPlan
	if err := c.GenerateJSON(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompareSkinHealth writes the free-text progress note stored on a new
// journal entry. previous may be nil for the first entry.
func (c *Client) CompareSkinHealth(ctx context.Context, current, previous *Image, notes, lang string) (string, error) {
	prompt := "This is the newest photo in a skin journal."
	imgs := []*Image{current}
	if previous != nil {
		prompt = "Compare the first photo (newest) with the second photo (previous entry) from a skin " +
			"journal and describe the visible changes in skin health."
		imgs = append(imgs, previous)
	}
	if notes != "" {
		prompt += fmt.Sprintf(" The user notes: %q.", notes)
	}
	prompt += " Give a short, encouraging progress assessment in two or three sentences." + langSuffix(lang)
	return c.GenerateText(ctx, prompt, imgs...)
}

// OutfitColors performs a seasonal color analysis from a face photo.
func (c *Client) OutfitColors(ctx context.Context, img *Image, lang string) (*entity.ColorAdvice, error) {
	palette := obj(map[string]any{"name": str(), "hexCodes": arr(str())})
	schema := obj(map[string]any{
		"colorSeason": str(),
		"palettes": obj(map[string]any{
			"summer":  palette,
			"winter":  palette,
			"monsoon": palette,
		}),
		"outfitSuggestions": arr(obj(map[string]any{
			"occasion":    str(),
			"description": str(),
		})),
	})
	prompt := "Based on the skin tone, hair and eye color in this photo, determine the person's color " +
		"season and recommend outfit color palettes for summer, winter and monsoon, plus outfit " +
		"suggestions per occasion." + langSuffix(lang)

	var out entity.ColorAdvice
	if err := c.GenerateJSON(ctx, prompt, schema, &out, img); err != nil {
		return nil, err
	}
	return &out, nil
}

// Makeup recommends foundation/blush/lipstick shades and a suggested look.
func (c *Client) Makeup(ctx context.Context, img *Image, lang string) (*entity.MakeupAdvice, error) {
	schema := obj(map[string]any{
		"recommendations": arr(obj(map[string]any{
			"product":   str(),
			"shadeName": str(),
			"hexCode":   str(),
		})),
		"suggestedLook": obj(map[string]any{
			"lookName":         str(),
			"description":      str(),
			"applicationSteps": arr(str()),
		}),
	})
	prompt := "Recommend makeup shades (foundation, concealer, blush, lipstick) matching the skin tone " +
		"in this photo, with shade names and hex codes, and suggest one complete look with application " +
		"steps." + langSuffix(lang)

	var out entity.MakeupAdvice
	if err := c.GenerateJSON(ctx, prompt, schema, &out, img); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeHair examines a hair/scalp photo.
func (c *Client) AnalyzeHair(ctx context.Context, img *Image, lang string) (*entity.HairAnalysis, error) {
	schema := obj(map[string]any{
		"hairType":          str(),
		"texture":           str(),
		"porosity":          str(),
		"scalpHealth":       str(),
		"faceShape":         str(),
		"overallAssessment": str(),
		"primaryConcernDeepDive": obj(map[string]any{
			"concern":              str(),
			"explanation":          str(),
			"ingredientsToLookFor": arr(str()),
		}),
	})
	prompt := "Analyze the hair and scalp in this photo: hair type, texture, porosity, scalp health and " +
		"face shape, with an overall assessment and a deep dive on the primary concern." + langSuffix(lang)

	var out entity.HairAnalysis
	if err := c.GenerateJSON(ctx, prompt, schema, &out, img); err != nil {
		return nil, err
	}
	return &out, nil
}

// HairAdvice is the stylist counterpart to AnalyzeHair: face shape plus
// flattering hairstyle and color suggestions instead of scalp diagnostics.
func (c *Client) HairAdvice(ctx context.Context, img *Image, lang string) (*entity.HairAdvice, error) {
	schema := obj(map[string]any{
		"hairTypeAnalysis": str(),
		"faceShape":        str(),
		"hairstyleSuggestions": arr(obj(map[string]any{
			"name":        str(),
			"description": str(),
			"reasoning":   str(),
		})),
		"hairColorSuggestions": arr(obj(map[string]any{
			"colorName":   str(),
			"description": str(),
			"reasoning":   str(),
		})),
		"hairCareTips": arr(str()),
	})
	prompt := "Act as an expert hairstylist. From this photo determine the person's face shape and " +
		"current hair type, then suggest three flattering hairstyles and three hair colors, each with " +
		"a name, a detailed description and the reasoning behind it, plus general hair care tips for " +
		"their hair type." + langSuffix(lang)

	var out entity.HairAdvice
	if err := c.GenerateJSON(ctx, prompt, schema, &out, img); err != nil {
		return nil, err
	}
	return &out, nil
}

// VirtualTryOn edits the photo to show the given hairstyle on the person,
// keeping their facial features and the original background.
func (c *Client) VirtualTryOn(ctx context.Context, img *Image, hairstyle string) (*Image, error) {
	prompt := fmt.Sprintf("Photo edit request: give the person in this photo the following hairstyle: "+
		"%q. Keep their facial features and the original background. The result should be a realistic "+
		"portrait showing the new hairstyle.", hairstyle)
	return c.GenerateImage(ctx, prompt, img)
}

// FacialTimeLapse renders the person's face at another life stage. Same
// exchange shape as VirtualTryOn: photo plus transform description in,
// edited portrait out.
func (c *Client) FacialTimeLapse(ctx context.Context, img *Image, stage string) (*Image, error) {
	prompt := fmt.Sprintf("Photo edit request: show the person in this photo as they would look in %s. "+
		"Make the transformation smooth and realistic while keeping them recognizable.", stage)
	return c.GenerateImage(ctx, prompt, img)
}

// Chat answers one turn of the skincare assistant conversation. The caller
// supplies the prior transcript; nothing is held between requests.
func (c *Client) Chat(ctx context.Context, history []entity.ChatTurn, message, lang string) (string, error) {
	var b strings.Builder
	b.WriteString("You are AURA, a friendly and witty skincare expert. Keep replies short and " +
		"engaging, like texting a friend, with emojis where they fit. Only go into detail when asked. " +
		"Stick to skincare, beauty and wellness; politely deflect anything else and steer back to " +
		"skincare.")
	b.WriteString(langSuffix(lang))
	b.WriteString("\n\nConversation so far:")
	for _, turn := range history {
		role := "User"
		if turn.Role == "model" {
			role = "AURA"
		}
		fmt.Fprintf(&b, "\n%s: %s", role, turn.Text)
	}
	fmt.Fprintf(&b, "\nUser: %s\nAURA:", message)
	return c.GenerateText(ctx, b.String())
}

// HairTreatments recommends treatments for a prior hair analysis.
func (c *Client) HairTreatments(ctx context.Context, analysis *entity.HairAnalysis, lang string) (*entity.HairTreatments, error) {
	treatment := obj(map[string]any{"name": str(), "description": str()})
	schema := obj(map[string]any{
		"homeRemedies": arr(treatment),
		"productRecommendations": arr(obj(map[string]any{
			"productType": str(),
			"reason":      str(),
		})),
		"professionalTreatments": arr(treatment),
		"generalTips":            arr(str()),
	})
	prompt := fmt.Sprintf("Given this hair analysis (type: %s, texture: %s, porosity: %s, scalp: %s), "+
		"recommend home remedies, product types, professional treatments and general tips.",
		analysis.HairType, analysis.Texture, analysis.Porosity, analysis.ScalpHealth) + langSuffix(lang)

	var out entity.HairTreatments
	if err := c.GenerateJSON(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeProduct reads a skincare product label photo.
func (c *Client) AnalyzeProduct(ctx context.Context, img *Image, lang string) (*entity.ProductAnalysis, error) {
	schema := obj(map[string]any{
		"productName": str(),
		"keyIngredients": arr(obj(map[string]any{
			"name":    str(),
			"benefit": str(),
		})),
		"usageInstructions": str(),
		"suitableFor":       str(),
		"potentialFlags": arr(obj(map[string]any{
			"type":    str(),
			"message": str(),
		})),
		"ecoFriendlyAlternatives": arr(obj(map[string]any{
			"productType": str(),
			"reason":      str(),
		})),
	})
	prompt := "Read the skincare product label in this photo. Identify the product, its key ingredients " +
		"and their benefits, usage instructions, which skin types it suits, any ingredients worth " +
		"flagging, and eco-friendly alternatives." + langSuffix(lang)

	var out entity.ProductAnalysis
	if err := c.GenerateJSON(ctx, prompt, schema, &out, img); err != nil {
		return nil, err
	}
	return &out, nil
}
