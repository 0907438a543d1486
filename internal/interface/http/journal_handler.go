package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akshay-shet/ecoskin-api/internal/application"
	"github.com/akshay-shet/ecoskin-api/pkg/response"
	"github.com/akshay-shet/ecoskin-api/pkg/validation"
)

// JournalHandler serves the skin journal: add, list and search.
type JournalHandler struct {
	Service *application.ProfileService
}

func NewJournalHandler(svc *application.ProfileService) *JournalHandler {
	return &JournalHandler{Service: svc}
}

type AddJournalEntryRequest struct {
	Image string `json:"image" binding:"required"`
	Notes string `json:"notes" binding:"max=2000"`
	Lang  string `json:"lang" binding:"omitempty,min=2,max=8"`
}

// Add prepends a new dated entry to the journal. The progress comparison
// against the previous photo happens server-side before the entry is stored.
func (h *JournalHandler) Add(c *gin.Context) {
	var req AddJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	entry, err := h.Service.AddJournalEntry(c.Request.Context(), c.GetString("userID"), req.Image, req.Notes, req.Lang)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry, "journal entry added", nil)
}

// List returns the journal newest-first, as stored.
func (h *JournalHandler) List(c *gin.Context) {
	u, err := h.Service.GetProfile(c.GetString("userID"))
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u.SkinJournal, "journal", gin.H{"count": len(u.SkinJournal)})
}

// Search full-text searches the journal's notes and analysis text.
func (h *JournalHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	hits, err := h.Service.SearchJournal(c.Request.Context(), c.GetString("userID"), query)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "journal search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "journal search", gin.H{"count": len(hits)})
}
