package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dmvas/shop-catalog/internal/models"
	"github.com/dmvas/shop-catalog/internal/repository"
	"github.com/dmvas/shop-catalog/internal/storage"
)

// ProductRepository is the data-access surface the product handler needs.
type ProductRepository interface {
	Create(ctx context.Context, in repository.CreateProductInput, photoPaths []string) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductHandler handles product HTTP endpoints.
type ProductHandler struct {
	products     ProductRepository
	photos       storage.PhotoStore
	maxFileBytes int64
	// exposeDetails gates the "details" field on 500 responses; it is off
	// in production.
	exposeDetails bool
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products ProductRepository, photos storage.PhotoStore, maxFileBytes int64, exposeDetails bool) *ProductHandler {
	return &ProductHandler{
		products:      products,
		photos:        photos,
		maxFileBytes:  maxFileBytes,
		exposeDetails: exposeDetails,
	}
}

// CreateProduct handles POST /api/products (multipart form).
//
// Required fields are validated before any file is persisted, so a rejected
// request never leaves orphaned uploads behind. Files are stored next, and
// the product plus its photo rows are written in one transaction last.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	name := c.PostForm("name")
	description := c.PostForm("description")
	priceRaw := c.PostForm("price")
	categoryRaw := c.PostForm("category_id")
	manufacturerRaw := c.PostForm("manufacturer_id")

	if name == "" || priceRaw == "" || categoryRaw == "" || manufacturerRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "required fields are missing"})
		return
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be numeric"})
		return
	}
	categoryID, err := strconv.ParseInt(categoryRaw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id must be numeric"})
		return
	}
	manufacturerID, err := strconv.ParseInt(manufacturerRaw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manufacturer_id must be numeric"})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		files = form.File["photos[]"]
	}
	for _, f := range files {
		if f.Size > h.maxFileBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the maximum file size"})
			return
		}
	}

	photoPaths := make([]string, 0, len(files))
	for _, f := range files {
		saved, err := h.saveUpload(c.Request.Context(), f)
		if err != nil {
			h.serverError(c, "failed to store photo", err)
			return
		}
		photoPaths = append(photoPaths, saved.URL)
	}

	product, err := h.products.Create(c.Request.Context(), repository.CreateProductInput{
		Name:           name,
		Description:    description,
		Price:          price,
		CategoryID:     categoryID,
		ManufacturerID: manufacturerID,
	}, photoPaths)
	if err != nil {
		if errors.Is(err, repository.ErrBadReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category or manufacturer does not exist"})
			return
		}
		h.serverError(c, "failed to create product", err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// ListProducts handles GET /api/products.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "failed to retrieve products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.serverError(c, "failed to retrieve product", err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.serverError(c, "failed to delete product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// saveUpload reads a multipart file fully and hands it to the photo store.
func (h *ProductHandler) saveUpload(ctx context.Context, f *multipart.FileHeader) (storage.SavedPhoto, error) {
	data, contentType, err := readUpload(f)
	if err != nil {
		return storage.SavedPhoto{}, err
	}
	return h.photos.Save(ctx, f.Filename, contentType, data)
}

// serverError logs the cause and writes a 500 response, attaching the
// underlying error only outside production.
func (h *ProductHandler) serverError(c *gin.Context, msg string, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	body := gin.H{"error": msg}
	if h.exposeDetails && err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
