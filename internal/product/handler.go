package product

import (
	"errors"
	"net/http"
	"strconv"

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

// List godoc
// @Summary      Product catalog
// @Tags         products
// @Produce      json
// @Param        search    query     string  false  "Search name or category"
// @Param        category  query     string  false  "Filter by category"
// @Param        sortBy    query     string  false  "Sort field"
// @Param        sortDir   query     string  false  "asc or desc"
// @Param        page      query     int     false  "Page number"
// @Param        refresh   query     bool    false  "Bypass snapshot"
// @Success      200  {object}  listing.Result[Product]
// @Failure      500  {object}  api.ErrorResponse
// @Router       /products [get]
func (h *Handler) List(c *gin.Context) {
	p := listing.FromQuery(c.Request.URL.Query(), ListOptions)

	result, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ToggleActive godoc
// @Summary      Toggle product availability
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  Product
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /products/{id} [patch]
func (h *Handler) ToggleActive(c *gin.Context) {
	adminID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	p, err := h.service.ToggleActive(c.Request.Context(), adminID, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, p)
}
