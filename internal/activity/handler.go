package activity

import (
	"net/http"

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

// ListLogs godoc
// @Summary      List activity logs
// @Description  Audit trail of admin actions, searchable and filterable by action.
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Param        search   query  string  false  "Substring match on admin/gym/action"
// @Param        action   query  string  false  "Exact action filter"
// @Param        sortBy   query  string  false  "timestamp|gym|action"
// @Param        sortDir  query  string  false  "asc|desc"
// @Param        page     query  int     false  "Page number"
// @Success      200  {object}  listing.Result[Log]
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /auth/logs [get]
func (h *Handler) ListLogs(c *gin.Context) {
	p := listing.FromQuery(c.Request.URL.Query(), ListOptions)

	result, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch activity logs"})
		return
	}

	c.JSON(http.StatusOK, result)
}
