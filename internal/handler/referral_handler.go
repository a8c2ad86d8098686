package handler

import (
	"errors"
	"net/http"

	"imeiku/internal/cache"
	"imeiku/internal/models"
	"imeiku/internal/repository"
	"imeiku/internal/service"
	"imeiku/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReferralHandler struct {
	referralRepo *repository.ReferralRepository
	referrals    *service.ReferralService
	cache        *cache.Cache
	baseURL      string
}

func NewReferralHandler(referralRepo *repository.ReferralRepository, referrals *service.ReferralService, cch *cache.Cache, baseURL string) *ReferralHandler {
	return &ReferralHandler{referralRepo: referralRepo, referrals: referrals, cache: cch, baseURL: baseURL}
}

// shareBlock builds the WhatsApp share payload for a referral code.
func (h *ReferralHandler) shareBlock(code string) gin.H {
	msg := whatsapp.ReferralShareMessage(code, h.baseURL+"/layanan")
	return gin.H{
		"share_message": msg,
		"share_link":    whatsapp.BuildLink("", msg),
	}
}

// Program returns the referral program configuration for the public
// referral page.
// GET /referral-program
func (h *ReferralHandler) Program(c *gin.Context) {
	program, err := h.referrals.Program()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load referral program"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"program": program})
}

// Join mints a referral code for a storefront visitor and returns the
// fresh ledger with the prefilled share message.
// POST /referrals
func (h *ReferralHandler) Join(c *gin.Context) {
	ref, err := h.referrals.Join()
	if err != nil {
		if errors.Is(err, service.ErrProgramDisabled) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create referral"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyReferrals)
	c.JSON(http.StatusCreated, gin.H{
		"referral": ref,
		"whatsapp": h.shareBlock(ref.ReferralCode),
	})
}

// Ledger shows a visitor their code's commission history.
// GET /referrals/:code
func (h *ReferralHandler) Ledger(c *gin.Context) {
	ref, err := h.referrals.Ledger(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrReferralNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up referral"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"referral": ref,
		"whatsapp": h.shareBlock(ref.ReferralCode),
	})
}

// List returns every referral ledger with its commission history.
// GET /admin/referrals
func (h *ReferralHandler) List(c *gin.Context) {
	var cached []models.Referral
	if h.cache.GetJSON(c.Request.Context(), cache.KeyReferrals, &cached) {
		c.JSON(http.StatusOK, gin.H{"referrals": cached, "total": len(cached)})
		return
	}
	referrals, err := h.referralRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list referrals"})
		return
	}
	h.cache.SetJSON(c.Request.Context(), cache.KeyReferrals, referrals, cache.ListTTL)
	c.JSON(http.StatusOK, gin.H{"referrals": referrals, "total": len(referrals)})
}

// Create mints a new referral code with an empty ledger.
// POST /admin/referrals
func (h *ReferralHandler) Create(c *gin.Context) {
	ref, err := h.referrals.Mint()
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate a unique referral code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create referral"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyReferrals)
	c.JSON(http.StatusCreated, gin.H{"referral": ref})
}

// Delete removes a referral ledger.
// DELETE /admin/referrals/:code
func (h *ReferralHandler) Delete(c *gin.Context) {
	if err := h.referralRepo.Delete(c.Param("code")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "referral tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete referral"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyReferrals)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type payoutRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// MarkPaid flips one commission entry from pending to paid.
// PATCH /admin/referrals/:code/payouts
func (h *ReferralHandler) MarkPaid(c *gin.Context) {
	var req payoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id wajib diisi"})
		return
	}
	if err := h.referralRepo.MarkUsagePaid(c.Param("code"), req.OrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "referral atau komisi tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update payout"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyReferrals)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
