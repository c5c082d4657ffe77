package owner

import (
	"net/http"
	"time"

	"activehub/internal/api"
	"activehub/internal/listing"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListGyms godoc
// @Summary      List gyms
// @Description  Owner-only: all gyms with subscription state, searchable and sortable.
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Param        search   query  string  false  "Substring match on name/email"
// @Param        status   query  string  false  "active|trial|grace|expired|inactive"
// @Param        sortBy   query  string  false  "name|createdAt|totalRevenue|memberCount|status"
// @Param        sortDir  query  string  false  "asc|desc"
// @Param        page     query  int     false  "Page number"
// @Success      200  {object}  listing.Result[Gym]
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /owner/gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	p := listing.FromQuery(c.Request.URL.Query(), GymListOptions)

	result, err := h.service.ListGyms(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gyms"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Analytics godoc
// @Summary      Owner dashboard statistics
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Stats
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /owner/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
	stats, err := h.service.Analytics(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
