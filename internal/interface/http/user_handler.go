package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-shet/ecoskin-api/internal/application"
	"github.com/akshay-shet/ecoskin-api/internal/domain/entity"
	"github.com/akshay-shet/ecoskin-api/pkg/helpers"
	"github.com/akshay-shet/ecoskin-api/pkg/response"
	"github.com/akshay-shet/ecoskin-api/pkg/validation"
)

// UserHandler serves login, session and profile endpoints.
type UserHandler struct {
	Service *application.ProfileService
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.ProfileService, cookies *helpers.Manager) *UserHandler {
	return &UserHandler{Service: svc, Cookies: cookies}
}

type LoginRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=80"`
	Email string `json:"email" binding:"required,email"`
	DOB   string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
}

// Login opens a session for the given identity. No password: the profile is
// a personal workspace and logging in replaces whatever was stored for that
// email before.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Service.Login(c.Request.Context(), req.Name, req.Email, req.DOB, c.GetString("real_ip"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.Access, pair.AccessExp, pair.Refresh, pair.RefreshExp)
	response.Success(c, http.StatusOK, u, "logged in", nil)
}

// Refresh rotates the token pair from the refresh_token cookie.
func (h *UserHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error[any](c, http.StatusUnauthorized, "refresh token missing", nil)
		return
	}
	u, pair, err := h.Service.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
		return
	}
	h.Cookies.SetPair(c, pair.Access, pair.AccessExp, pair.Refresh, pair.RefreshExp)
	response.Success(c, http.StatusOK, u, "session refreshed", nil)
}

// Logout drops the session, deletes the stored profile and clears cookies.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context(), c.GetString("userID")); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "logout failed", nil)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// GetProfile returns the full profile including sub-documents.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Service.GetProfile(c.GetString("userID"))
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", gin.H{"age": u.Age()})
}

type UpdateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=80"`
	Email     *string `json:"email" binding:"omitempty,email"`
	DOB       *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

// UpdateProfile shallow-merges the provided fields. With no stored profile
// the merge is silently skipped and the response carries no data.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	u, err := h.Service.UpdateUser(c.GetString("userID"), entity.PartialUpdate{
		Name:      req.Name,
		Email:     req.Email,
		DOB:       req.DOB,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeProfileError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

// UploadAvatar accepts a multipart image and stores it in object storage.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file required", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := h.Service.UploadAvatar(c.Request.Context(), c.GetString("userID"), header.Filename, contentType, file)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatarUrl": url}, "avatar uploaded", nil)
}

func writeProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "profile not found", nil)
	case errors.Is(err, application.ErrBadImage):
		response.Error[any](c, http.StatusBadRequest, "image must be a base64 data URL", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
