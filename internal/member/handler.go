package member

import (
	"errors"
	"net/http"
	"strconv"

	"activehub/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Invite godoc
// @Summary      Invite a member
// @Description  Creates a member without a password and emails a set-password link.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      InviteRequest  true  "Member details"
// @Success      201      {object}  Member
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/members [post]
func (h *Handler) Invite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Invite(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to invite member"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// Login godoc
// @Summary      Member login
// @Description  Authenticates a gym member by email and password.
// @Tags         member-auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /member-auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordNotSet):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Please set your password using the link from your invite email"})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetPassword godoc
// @Summary      Set member password
// @Description  Sets the initial password using the id and token from the invite link.
// @Tags         member-auth
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Member ID"
// @Param        token    path      string              true  "Setup token"
// @Param        request  body      SetPasswordRequest  true  "New password"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /member-auth/set-password/{id}/{token} [post]
func (h *Handler) SetPassword(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	err = h.service.SetPassword(c.Request.Context(), id, c.Param("token"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Passwords do not match"})
		case errors.Is(err, ErrInvalidSetupToken):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid or expired setup link"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to set password"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password has been set"})
}
