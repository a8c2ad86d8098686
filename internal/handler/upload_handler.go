package handler

import (
	"net/http"

	"imeiku/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	cloud cloudinary.Client
}

func NewUploadHandler(cloud cloudinary.Client) *UploadHandler {
	return &UploadHandler{cloud: cloud}
}

// PaymentProof accepts a multipart image and returns the stored URL.
// The storefront submits that URL with the order; the core treats it as
// an opaque reference.
// POST /orders/payment-proof
func (h *UploadHandler) PaymentProof(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload storage not configured"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file wajib diunggah"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file tidak dapat dibaca"})
		return
	}
	defer file.Close()

	url, err := h.cloud.UploadProof(c.Request.Context(), file, uuid.NewString())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store file"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
