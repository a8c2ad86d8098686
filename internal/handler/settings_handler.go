package handler

import (
	"net/http"

	"imeiku/internal/models"
	"imeiku/internal/repository"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsRepo *repository.SettingsRepository
}

func NewSettingsHandler(settingsRepo *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

// GetCompany is public: the storefront shows the company contact,
// schedule and footer from here.
// GET /company
func (h *SettingsHandler) GetCompany(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": settings.Company})
}

// GetPayment is public too: customers need the payment channels on the
// payment step.
// GET /payment-channels
func (h *SettingsHandler) GetPayment(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": settings.Payment})
}

// GetAll returns every settings section for the back-office forms.
// GET /admin/settings
func (h *SettingsHandler) GetAll(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SavePayment replaces the payment channel configuration.
// PUT /admin/settings/payment
func (h *SettingsHandler) SavePayment(c *gin.Context) {
	var req models.PaymentSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data pembayaran tidak valid"})
		return
	}
	if err := h.settingsRepo.SavePayment(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SaveReferral replaces the referral program configuration. The
// commission percentage feeds every later accrual, so it is bounded
// here before anything is persisted.
// PUT /admin/settings/referral
func (h *SettingsHandler) SaveReferral(c *gin.Context) {
	var req models.ReferralSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data referral tidak valid"})
		return
	}
	if req.CommissionPercentage < 0 || req.CommissionPercentage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "persentase komisi harus antara 0 dan 100"})
		return
	}
	if req.MinPayout < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "minimal payout tidak boleh negatif"})
		return
	}
	if err := h.settingsRepo.SaveReferral(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SaveCompany replaces the company profile.
// PUT /admin/settings/company
func (h *SettingsHandler) SaveCompany(c *gin.Context) {
	var req models.CompanySettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data perusahaan tidak valid"})
		return
	}
	if err := h.settingsRepo.SaveCompany(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
