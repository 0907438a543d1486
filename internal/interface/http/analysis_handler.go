package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-shet/ecoskin-api/internal/application"
	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/pkg/response"
	"github.com/akshay-shet/ecoskin-api/pkg/validation"
)

// AnalysisHandler serves the photo-analysis endpoints. Each accepts a base64
// data URL image plus an optional response language.
type AnalysisHandler struct {
	Service *application.AnalysisService
}

func NewAnalysisHandler(svc *application.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{Service: svc}
}

type ImageRequest struct {
	Image string `json:"image" binding:"required"`
	Lang  string `json:"lang" binding:"omitempty,min=2,max=8"`
}

// AnalyzeSkin analyzes a face photo and stores the result as the current
// skin profile.
func (h *AnalysisHandler) AnalyzeSkin(c *gin.Context) {
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	out, err := h.Service.AnalyzeSkin(c.Request.Context(), c.GetString("userID"), req.Image, req.Lang)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "skin analyzed", nil)
}

type RemediesRequest struct {
	Conditions []string `json:"conditions" binding:"required,min=1,dive,max=120"`
	SkinType   string   `json:"skinType" binding:"max=60"`
	Lang       string   `json:"lang" binding:"omitempty,min=2,max=8"`
}

// Remedies suggests treatments for the given conditions, with generated
// visuals attached where generation succeeded.
func (h *AnalysisHandler) Remedies(c *gin.Context) {
	var req RemediesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	out, err := h.Service.RecommendRemedies(c.Request.Context(), c.GetString("userID"), req.Conditions, req.SkinType, req.Lang)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "remedies recommended", nil)
}

// OutfitColors performs a seasonal color analysis from a face photo.
func (h *AnalysisHandler) OutfitColors(c *gin.Context) {
	h.imageOp(c, "outfit colors recommended", func(c *gin.Context, req ImageRequest) (any, error) {
		return h.Service.OutfitColors(c.Request.Context(), req.Image, req.Lang)
	})
}

// Makeup recommends makeup shades from a face photo.
func (h *AnalysisHandler) Makeup(c *gin.Context) {
	h.imageOp(c, "makeup recommended", func(c *gin.Context, req ImageRequest) (any, error) {
		return h.Service.Makeup(c.Request.Context(), req.Image, req.Lang)
	})
}

// AnalyzeHair analyzes a hair and scalp photo.
func (h *AnalysisHandler) AnalyzeHair(c *gin.Context) {
	h.imageOp(c, "hair analyzed", func(c *gin.Context, req ImageRequest) (any, error) {
		return h.Service.AnalyzeHair(c.Request.Context(), req.Image, req.Lang)
	})
}

type HairTreatmentsRequest struct {
	Analysis entity.HairAnalysis `json:"analysis" binding:"required"`
	Lang     string              `json:"lang" binding:"omitempty,min=2,max=8"`
}

// HairTreatments recommends treatments for a prior hair analysis.
func (h *AnalysisHandler) HairTreatments(c *gin.Context) {
	var req HairTreatmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	out, err := h.Service.HairTreatments(c.Request.Context(), &req.Analysis, req.Lang)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "hair treatments recommended", nil)
}

// AnalyzeProduct reads a product label photo.
func (h *AnalysisHandler) AnalyzeProduct(c *gin.Context) {
	h.imageOp(c, "product analyzed", func(c *gin.Context, req ImageRequest) (any, error) {
		return h.Service.AnalyzeProduct(c.Request.Context(), req.Image, req.Lang)
	})
}

// DailyPlan generates an advisory one-day routine for the given conditions.
func (h *AnalysisHandler) DailyPlan(c *gin.Context) {
	var req RemediesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	out, err := h.Service.DailyPlan(c.Request.Context(), req.Conditions, req.SkinType, req.Lang)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "daily plan generated", nil)
}

// HairAdvice suggests hairstyles and colors from a face photo.
func (h *AnalysisHandler) HairAdvice(c *gin.Context) {
	h.imageOp(c, "hair advice ready", func(c *gin.Context, req ImageRequest) (any, error) {
		return h.Service.HairAdvice(c.Request.Context(), req.Image, req.Lang)
	})
}

type TryOnRequest struct {
	Image     string `json:"image" binding:"required"`
	Hairstyle string `json:"hairstyle" binding:"required,max=300"`
}

// VirtualTryOn renders the submitted hairstyle onto the user's photo.
func (h *AnalysisHandler) VirtualTryOn(c *gin.Context) {
	var req TryOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	url, err := h.Service.VirtualTryOn(c.Request.Context(), c.GetString("userID"), req.Image, req.Hairstyle)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image": url}, "hairstyle rendered", nil)
}

type TimeLapseRequest struct {
	Image string `json:"image" binding:"required"`
	Stage string `json:"stage" binding:"required,oneof='childhood' 'old age'"`
}

// TimeLapse renders the user's face at another life stage.
func (h *AnalysisHandler) TimeLapse(c *gin.Context) {
	var req TimeLapseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	url, err := h.Service.FacialTimeLapse(c.Request.Context(), c.GetString("userID"), req.Image, req.Stage)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image": url}, "time lapse rendered", nil)
}

type ChatRequest struct {
	Message string            `json:"message" binding:"required,max=2000"`
	History []entity.ChatTurn `json:"history" binding:"omitempty,max=40"`
	Lang    string            `json:"lang" binding:"omitempty,min=2,max=8"`
}

// Chat answers one turn of the skincare assistant conversation. The client
// sends the transcript so far; nothing is held server-side.
func (h *AnalysisHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	reply, err := h.Service.Chat(c.Request.Context(), req.History, req.Message, req.Lang)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reply": reply}, "assistant reply", nil)
}

func (h *AnalysisHandler) imageOp(c *gin.Context, message string, fn func(*gin.Context, ImageRequest) (any, error)) {
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	out, err := fn(c, req)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, message, nil)
}
