package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-shet/ecoskin-api/internal/application"
	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/pkg/response"
	"github.com/akshay-shet/ecoskin-api/pkg/validation"
)

// RoutineHandler serves the weekly routine tracker: plan replacement, daily
// step tracking and the edit session endpoints.
type RoutineHandler struct {
	Service *application.RoutineService
}

func NewRoutineHandler(svc *application.RoutineService) *RoutineHandler {
	return &RoutineHandler{Service: svc}
}

// Get returns the tracked plan with its overall progress.
func (h *RoutineHandler) Get(c *gin.Context) {
	plan, err := h.Service.Get(c.GetString("userID"))
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "tracked routine", progressMeta(plan))
}

type GenerateRoutineRequest struct {
	Topic   string `json:"topic" binding:"required,max=200"`
	Lang    string `json:"lang" binding:"omitempty,min=2,max=8"`
	Confirm bool   `json:"confirm"`
}

// Generate replaces the tracked plan with a freshly generated one. When a
// plan with progress already exists the request must carry confirm=true,
// otherwise 409 comes back and nothing is discarded.
func (h *RoutineHandler) Generate(c *gin.Context) {
	var req GenerateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	userID := c.GetString("userID")
	if !req.Confirm && h.hasPlan(userID) {
		writeRoutineError(c, application.ErrConfirmRequired)
		return
	}
	plan, err := h.Service.Generate(c.Request.Context(), userID, req.Topic, req.Lang)
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "weekly plan generated", progressMeta(plan))
}

type StartBlankRequest struct {
	Focus   string `json:"focus" binding:"max=200"`
	Confirm bool   `json:"confirm"`
}

// StartBlank replaces the tracked plan with an empty plan for manual
// building. The same confirm rule as Generate applies.
func (h *RoutineHandler) StartBlank(c *gin.Context) {
	var req StartBlankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	userID := c.GetString("userID")
	if !req.Confirm && h.hasPlan(userID) {
		writeRoutineError(c, application.ErrConfirmRequired)
		return
	}
	plan, err := h.Service.StartBlank(userID, req.Focus)
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "blank plan started", progressMeta(plan))
}

type ToggleStepRequest struct {
	Day    string            `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Slot   entity.Slot       `json:"slot" binding:"required,oneof=morning evening"`
	Index  *int              `json:"index" binding:"required,min=0"`
	Status entity.StepStatus `json:"status" binding:"required,oneof=pending completed skipped"`
}

// ToggleStep flips one step's status on the live plan. Sending the step's
// current status resets it to pending.
func (h *RoutineHandler) ToggleStep(c *gin.Context) {
	var req ToggleStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	plan, err := h.Service.ToggleStep(c.GetString("userID"), req.Day, req.Slot, *req.Index, req.Status)
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "step toggled", progressMeta(plan))
}

// Replace stores a caller-supplied plan wholesale, normalized. The same
// confirm rule as Generate applies (confirm=true in the query).
func (h *RoutineHandler) Replace(c *gin.Context) {
	var plan entity.WeeklyRoutine
	if err := c.ShouldBindJSON(&plan); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	userID := c.GetString("userID")
	if c.Query("confirm") != "true" && h.hasPlan(userID) {
		writeRoutineError(c, application.ErrConfirmRequired)
		return
	}
	stored, err := h.Service.Replace(userID, &plan)
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stored, "routine replaced", progressMeta(stored))
}

// Clear drops the tracked plan. Requires confirm=true in the query, since
// all progress is lost.
func (h *RoutineHandler) Clear(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.Service.Clear(c.GetString("userID"), confirmed); err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "routine cleared", nil)
}

// BeginEdit snapshots the plan into a working copy.
func (h *RoutineHandler) BeginEdit(c *gin.Context) {
	plan, err := h.Service.BeginEdit(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "edit session started", nil)
}

type StageStepRequest struct {
	Day          string      `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Slot         entity.Slot `json:"slot" binding:"required,oneof=morning evening"`
	Index        *int        `json:"index" binding:"omitempty,min=0"`
	ProductType  string      `json:"productType" binding:"max=120"`
	Instructions string      `json:"instructions" binding:"max=500"`
}

// StageAddStep appends a step to the working copy.
func (h *RoutineHandler) StageAddStep(c *gin.Context) {
	var req StageStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	plan, err := h.Service.StageAddStep(c.Request.Context(), c.GetString("userID"), req.Day, req.Slot, req.ProductType, req.Instructions)
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "step added", nil)
}

// StageUpdateStep rewrites one step's text in the working copy.
func (h *RoutineHandler) StageUpdateStep(c *gin.Context) {
	var req StageStepRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", bindDetails(err))
		return
	}
	plan, err := h.Service.StageUpdateStep(c.Request.Context(), c.GetString("userID"), req.Day, req.Slot, *req.Index, req.ProductType, req.Instructions)
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "step updated", nil)
}

// StageDeleteStep removes one step from the working copy; the remaining
// steps are renumbered densely.
func (h *RoutineHandler) StageDeleteStep(c *gin.Context) {
	var req StageStepRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", bindDetails(err))
		return
	}
	plan, err := h.Service.StageDeleteStep(c.Request.Context(), c.GetString("userID"), req.Day, req.Slot, *req.Index)
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "step deleted", nil)
}

type StageFocusRequest struct {
	WeeklyFocus string `json:"weeklyFocus" binding:"required,max=200"`
}

// StageWeeklyFocus rewrites the plan's focus line in the working copy.
func (h *RoutineHandler) StageWeeklyFocus(c *gin.Context) {
	var req StageFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	plan, err := h.Service.StageWeeklyFocus(c.Request.Context(), c.GetString("userID"), req.WeeklyFocus)
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "weekly focus updated", nil)
}

// SaveEdit commits the working copy as the tracked plan.
func (h *RoutineHandler) SaveEdit(c *gin.Context) {
	plan, err := h.Service.SaveEdit(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "edit saved", progressMeta(plan))
}

// CancelEdit discards the working copy, leaving the tracked plan as it was.
func (h *RoutineHandler) CancelEdit(c *gin.Context) {
	if err := h.Service.CancelEdit(c.Request.Context(), c.GetString("userID")); err != nil {
		writeRoutineError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "edit cancelled", nil)
}

// hasPlan reports whether a committed plan exists. The confirm check and the
// replace that follows are separate repository reads; the store is
// last-write-wins with one owner per profile, so no guard is held between
// them.
func (h *RoutineHandler) hasPlan(userID string) bool {
	_, err := h.Service.Get(userID)
	return err == nil
}

func progressMeta(plan *entity.WeeklyRoutine) gin.H {
	completed, total := plan.Progress()
	return gin.H{"completedSteps": completed, "totalSteps": total}
}

func bindDetails(err error) interface{} {
	if err == nil {
		return map[string]string{"index": "this field is required"}
	}
	return validation.ToDetails(err)
}

func writeRoutineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrConfirmRequired):
		response.Error[any](c, http.StatusConflict, "a tracked plan exists, pass confirm=true to replace it", nil)
	case errors.Is(err, application.ErrNoActivePlan):
		response.Error[any](c, http.StatusNotFound, "no routine is being tracked", nil)
	case errors.Is(err, application.ErrNoEditSession):
		response.Error[any](c, http.StatusNotFound, "no active edit session", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "profile not found", nil)
	case errors.Is(err, entity.ErrUnknownDay), errors.Is(err, entity.ErrUnknownSlot), errors.Is(err, entity.ErrInvalidStatus):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, entity.ErrStepNotFound):
		response.Error[any](c, http.StatusNotFound, "step not found", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
