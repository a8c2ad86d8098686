package handler

import (
	"errors"
	"net/http"

	"imeiku/internal/cache"
	"imeiku/internal/models"
	"imeiku/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceHandler struct {
	serviceRepo *repository.ServiceRepository
	cache       *cache.Cache
}

func NewServiceHandler(serviceRepo *repository.ServiceRepository, cch *cache.Cache) *ServiceHandler {
	return &ServiceHandler{serviceRepo: serviceRepo, cache: cch}
}

// ListActive returns the purchasable tiers for the storefront, cheapest
// first.
// GET /services
func (h *ServiceHandler) ListActive(c *gin.Context) {
	var cached []models.Service
	if h.cache.GetJSON(c.Request.Context(), cache.KeyActiveServices, &cached) {
		c.JSON(http.StatusOK, gin.H{"services": cached})
		return
	}
	services, err := h.serviceRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list services"})
		return
	}
	h.cache.SetJSON(c.Request.Context(), cache.KeyActiveServices, services, cache.ListTTL)
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// List returns the whole catalog including inactive tiers.
// GET /admin/services
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.serviceRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

type serviceRequest struct {
	Nama         string `json:"nama" binding:"required,max=100"`
	Harga        int64  `json:"harga" binding:"required,gt=0"`
	Estimasi     string `json:"estimasi"`
	Garansi      string `json:"garansi"`
	GaransiBulan *int   `json:"garansi_bulan" binding:"omitempty,gt=0"`
	SuccessRate  int    `json:"success_rate" binding:"min=0,max=100"`
	Active       bool   `json:"active"`
}

// Create adds a catalog entry.
// POST /admin/services
func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data layanan tidak valid: " + err.Error()})
		return
	}
	svc := &models.Service{
		ServiceID:    uuid.NewString(),
		Nama:         req.Nama,
		Harga:        req.Harga,
		Estimasi:     req.Estimasi,
		Garansi:      req.Garansi,
		GaransiBulan: req.GaransiBulan,
		SuccessRate:  req.SuccessRate,
		Active:       req.Active,
	}
	if err := h.serviceRepo.Upsert(svc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save service"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyActiveServices)
	c.JSON(http.StatusCreated, gin.H{"service": svc})
}

// Update replaces a catalog entry. Existing orders keep their snapshot.
// PUT /admin/services/:service_id
func (h *ServiceHandler) Update(c *gin.Context) {
	serviceID := c.Param("service_id")
	if _, err := h.serviceRepo.GetByServiceID(serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "layanan tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up service"})
		return
	}
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data layanan tidak valid: " + err.Error()})
		return
	}
	svc := &models.Service{
		ServiceID:    serviceID,
		Nama:         req.Nama,
		Harga:        req.Harga,
		Estimasi:     req.Estimasi,
		Garansi:      req.Garansi,
		GaransiBulan: req.GaransiBulan,
		SuccessRate:  req.SuccessRate,
		Active:       req.Active,
	}
	if err := h.serviceRepo.Upsert(svc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save service"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyActiveServices)
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// Delete removes a catalog entry for good.
// DELETE /admin/services/:service_id
func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.serviceRepo.Delete(c.Param("service_id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "layanan tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete service"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyActiveServices)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
