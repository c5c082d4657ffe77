package webhook

import (
	"errors"
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

// Ingest godoc
// @Summary      Record a payment-provider event
// @Description  Stores the event and its reported outcome. No processing happens here.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        request  body      IngestRequest  true  "Provider event"
// @Success      201      {object}  Log
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /webhooks/payment [post]
func (h *Handler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	log, err := h.service.Ingest(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownEventType) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Unknown event type"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record event"})
		return
	}

	c.JSON(http.StatusCreated, log)
}

// List godoc
// @Summary      List webhook logs
// @Description  Owner-only: recorded provider events, filterable by type, status, and date range.
// @Tags         owner,webhooks
// @Security     BearerAuth
// @Produce      json
// @Param        eventType  query  string  false  "Event type filter"
// @Param        status     query  string  false  "success|failed"
// @Param        from       query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to         query  string  false  "End date (YYYY-MM-DD)"
// @Param        sortBy     query  string  false  "createdAt|eventType|status|amount"
// @Param        sortDir    query  string  false  "asc|desc"
// @Param        page       query  int     false  "Page number"
// @Success      200  {object}  listing.Result[Log]
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /owner/webhooks [get]
func (h *Handler) List(c *gin.Context) {
	p := listing.FromQuery(c.Request.URL.Query(), ListOptions)

	result, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch webhook logs"})
		return
	}

	c.JSON(http.StatusOK, result)
}
