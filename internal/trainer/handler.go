package trainer

import (
	"errors"
	"net/http"
	"time"

	"activehub/internal/api"
	"activehub/internal/auth"
	"activehub/internal/listing"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Invite godoc
// @Summary      Invite a trainer
// @Description  Creates a trainer without a password and emails a set-password link.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      InviteRequest  true  "Trainer details"
// @Success      201      {object}  Trainer
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/trainers [post]
func (h *Handler) Invite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.service.Invite(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to invite trainer"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Login godoc
// @Summary      Trainer login
// @Tags         trainers
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /trainers/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary      Trainer password reset
// @Description  Sets a new password using the token from the emailed link.
// @Tags         trainers
// @Accept       json
// @Produce      json
// @Param        token    path      string                true  "Reset token"
// @Param        request  body      ResetPasswordRequest  true  "New password"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /trainers/reset-password/{token} [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Passwords do not match"})
		case errors.Is(err, ErrInvalidResetToken):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid or expired reset link"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password has been reset"})
}

// ListMembers godoc
// @Summary      Trainer's member roster
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        search            query     string  false  "Search name or email"
// @Param        membershipStatus  query     string  false  "Filter by status"
// @Param        sortBy            query     string  false  "Sort field"
// @Param        sortDir           query     string  false  "asc or desc"
// @Param        page              query     int     false  "Page number"
// @Param        refresh           query     bool    false  "Bypass snapshot"
// @Success      200  {object}  listing.Result[member.Member]
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /trainers/me/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	p := listing.FromQuery(c.Request.URL.Query(), MemberListOptions)

	result, err := h.service.ListMembers(c.Request.Context(), trainerID, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkAttendance godoc
// @Summary      Mark member attendance
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      MarkAttendanceRequest  true  "Member to mark"
// @Success      200      {object}  member.Member
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /trainers/mark-attendance [post]
func (h *Handler) MarkAttendance(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.MarkAttendance(c.Request.Context(), trainerID, req.MemberID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrAlreadyMarked):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Attendance already marked today"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to mark attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}
