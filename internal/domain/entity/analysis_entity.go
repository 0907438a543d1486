package entity

// Result shapes returned by the external analysis service. The service is
// asked for JSON conforming to these structures; structurally valid but
// incomplete answers are tolerated, so every field is optional on decode.

// SkinCondition is one detected condition with its confidence and an
// approximate face location (percent coordinates).
type SkinCondition struct {
	Condition  string  `json:"condition"`
	Confidence float64 `json:"confidence"`
	Severity   string  `json:"severity"` // Mild / Moderate / Severe, free-form tolerated
	Location   Point   `json:"location"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SkinAnalysis is the most recent skin-analysis snapshot. It is replaced
// wholesale on each new analysis; history lives in the journal.
type SkinAnalysis struct {
	Conditions             []SkinCondition  `json:"conditions"`
	OverallAssessment      string           `json:"overallAssessment"`
	SkinType               string           `json:"skinType"`
	SkinTone               string           `json:"skinTone"`
	PrimaryConcernDeepDive *ConcernDeepDive `json:"primaryConcernDeepDive,omitempty"`
}

type ConcernDeepDive struct {
	Concern         string   `json:"concern"`
	Description     string   `json:"description"`
	PotentialCauses []string `json:"potentialCauses"`
	LifestyleTips   []string `json:"lifestyleTips"`
}

// Remedy is a single suggested treatment. VisualURL points at a generated
// illustration in object storage; empty when generation failed or was
// skipped for this item.
type Remedy struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VisualURL   string `json:"visualUrl,omitempty"`
}

type SkinRemedies struct {
	Ayurvedic     []Remedy `json:"ayurvedic"`
	Modern        []Remedy `json:"modern"`
	GeneralAdvice []string `json:"generalAdvice"`
}

type ColorPalette struct {
	Name     string   `json:"name"`
	HexCodes []string `json:"hexCodes"`
}

type OutfitSuggestion struct {
	Occasion    string `json:"occasion"`
	Description string `json:"description"`
}

type ColorAdvice struct {
	ColorSeason string `json:"colorSeason"`
	Palettes    struct {
		Summer  ColorPalette `json:"summer"`
		Winter  ColorPalette `json:"winter"`
		Monsoon ColorPalette `json:"monsoon"`
	} `json:"palettes"`
	OutfitSuggestions []OutfitSuggestion `json:"outfitSuggestions"`
}

type MakeupRecommendation struct {
	Product   string `json:"product"`
	ShadeName string `json:"shadeName"`
	HexCode   string `json:"hexCode"`
}

type MakeupAdvice struct {
	Recommendations []MakeupRecommendation `json:"recommendations"`
	SuggestedLook   struct {
		LookName         string   `json:"lookName"`
		Description      string   `json:"description"`
		ApplicationSteps []string `json:"applicationSteps"`
	} `json:"suggestedLook"`
}

type HairAnalysis struct {
	HairType          string `json:"hairType"`
	Texture           string `json:"texture"`
	Porosity          string `json:"porosity"`
	ScalpHealth       string `json:"scalpHealth"`
	FaceShape         string `json:"faceShape"`
	OverallAssessment string `json:"overallAssessment"`
	PrimaryConcernDeepDive *struct {
		Concern              string   `json:"concern"`
		Explanation          string   `json:"explanation"`
		IngredientsToLookFor []string `json:"ingredientsToLookFor"`
	} `json:"primaryConcernDeepDive,omitempty"`
}

// PlanStep is one step of an advisory routine suggestion. Tracked plans use
// RoutineStep, which layers completion status on top of this shape.
type PlanStep struct {
	Step         int    `json:"step"`
	ProductType  string `json:"productType"`
	Instructions string `json:"instructions"`
}

// DailyPlan is a single-day routine suggestion, served as-is and never
// persisted or tracked.
type DailyPlan struct {
	Morning []PlanStep `json:"morning"`
	Evening []PlanStep `json:"evening"`
}

type HairstyleSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Reasoning   string `json:"reasoning"`
}

type HairColorSuggestion struct {
	ColorName   string `json:"colorName"`
	Description string `json:"description"`
	Reasoning   string `json:"reasoning"`
}

// HairAdvice is the stylist view of a face photo: face shape, current hair,
// and flattering style and color suggestions with their reasoning. The
// trichology view lives in HairAnalysis.
type HairAdvice struct {
	HairTypeAnalysis     string                `json:"hairTypeAnalysis"`
	FaceShape            string                `json:"faceShape"`
	HairstyleSuggestions []HairstyleSuggestion `json:"hairstyleSuggestions"`
	HairColorSuggestions []HairColorSuggestion `json:"hairColorSuggestions"`
	HairCareTips         []string              `json:"hairCareTips"`
}

// ChatTurn is one prior message of an assistant conversation. The client
// replays the transcript with every request, keeping the boundary stateless.
type ChatTurn struct {
	Role string `json:"role"` // user | model
	Text string `json:"text"`
}

type HairTreatment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type HairTreatments struct {
	HomeRemedies           []HairTreatment `json:"homeRemedies"`
	ProductRecommendations []struct {
		ProductType string `json:"productType"`
		Reason      string `json:"reason"`
	} `json:"productRecommendations"`
	ProfessionalTreatments []HairTreatment `json:"professionalTreatments"`
	GeneralTips            []string        `json:"generalTips"`
}

type ProductAnalysis struct {
	ProductName    string `json:"productName"`
	KeyIngredients []struct {
		Name    string `json:"name"`
		Benefit string `json:"benefit"`
	} `json:"keyIngredients"`
	UsageInstructions string `json:"usageInstructions"`
	SuitableFor       string `json:"suitableFor"`
	PotentialFlags    []struct {
		Type    string `json:"type"` // warning | info
		Message string `json:"message"`
	} `json:"potentialFlags"`
	EcoFriendlyAlternatives []struct {
		ProductType string `json:"productType"`
		Reason      string `json:"reason"`
	} `json:"ecoFriendlyAlternatives"`
}
