package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dmvas/shop-catalog/internal/models"
)

// CatalogRepository is the data-access surface for reference-data listings.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListManufacturers(ctx context.Context) ([]models.Manufacturer, error)
}

// CatalogHandler handles category and manufacturer listing endpoints.
type CatalogHandler struct {
	catalog       CatalogRepository
	exposeDetails bool
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog CatalogRepository, exposeDetails bool) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, exposeDetails: exposeDetails}
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.serverError(c, "failed to retrieve categories", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// ListManufacturers handles GET /api/manufacturers.
func (h *CatalogHandler) ListManufacturers(c *gin.Context) {
	manufacturers, err := h.catalog.ListManufacturers(c.Request.Context())
	if err != nil {
		h.serverError(c, "failed to retrieve manufacturers", err)
		return
	}
	if manufacturers == nil {
		manufacturers = []models.Manufacturer{}
	}
	c.JSON(http.StatusOK, manufacturers)
}

func (h *CatalogHandler) serverError(c *gin.Context, msg string, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	body := gin.H{"error": msg}
	if h.exposeDetails && err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
