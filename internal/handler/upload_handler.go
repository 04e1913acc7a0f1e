package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dmvas/shop-catalog/internal/storage"
)

// UploadHandler handles the standalone POST /upload endpoint.
type UploadHandler struct {
	photos        storage.PhotoStore
	maxFileBytes  int64
	exposeDetails bool
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(photos storage.PhotoStore, maxFileBytes int64, exposeDetails bool) *UploadHandler {
	return &UploadHandler{photos: photos, maxFileBytes: maxFileBytes, exposeDetails: exposeDetails}
}

// Upload handles POST /upload with a single "image" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	f, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if f.Size > h.maxFileBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the maximum file size"})
		return
	}

	data, contentType, err := readUpload(f)
	if err != nil {
		h.fail(c, err)
		return
	}

	saved, err := h.photos.Save(c.Request.Context(), f.Filename, contentType, data)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": saved.URL, "filename": saved.Filename})
}

func (h *UploadHandler) fail(c *gin.Context, err error) {
	log.Error().Err(err).Msg("failed to store upload")
	body := gin.H{"error": "failed to store upload"}
	if h.exposeDetails {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// readUpload reads a multipart file fully and reports its content type.
func readUpload(f *multipart.FileHeader) ([]byte, string, error) {
	src, err := f.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}
	return data, f.Header.Get("Content-Type"), nil
}
