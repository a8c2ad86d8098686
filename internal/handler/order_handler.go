package handler

import (
	"errors"
	"net/http"
	"regexp"

	"imeiku/internal/cache"
	"imeiku/internal/domain"
	"imeiku/internal/models"
	"imeiku/internal/repository"
	"imeiku/internal/service"
	"imeiku/internal/validate"
	"imeiku/pkg/whatsapp"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders       *service.OrderService
	settingsRepo *repository.SettingsRepository
	cache        *cache.Cache
	baseURL      string
}

func NewOrderHandler(orders *service.OrderService, settingsRepo *repository.SettingsRepository, cch *cache.Cache, baseURL string) *OrderHandler {
	return &OrderHandler{orders: orders, settingsRepo: settingsRepo, cache: cch, baseURL: baseURL}
}

func (h *OrderHandler) trackingURL(orderID string) string {
	return h.baseURL + "/lacak?order=" + orderID
}

var nonPhone = regexp.MustCompile(`[^\d+]`)

// adminWhatsApp returns the company contact number from settings.
func (h *OrderHandler) adminWhatsApp() string {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		return ""
	}
	return nonPhone.ReplaceAllString(settings.Company.WhatsApp, "")
}

// Brands returns the device brand options for the order form.
// GET /brands
func (h *OrderHandler) Brands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"brands": domain.DeviceBrands})
}

type createOrderRequest struct {
	IMEI          string `json:"imei" binding:"required,imei"`
	Brand         string `json:"brand" binding:"required"`
	Model         string `json:"model" binding:"required,max=100"`
	WhatsApp      string `json:"whatsapp" binding:"required,wanumber"`
	LayananID     string `json:"layanan_id" binding:"required"`
	ReferralCode  string `json:"referral_code"`
	PaymentProof  string `json:"payment_proof"`
	PaymentMethod string `json:"payment_method"`
	Agreed        bool   `json:"agreed" binding:"required"`
}

// Create submits a new order. The response carries the prefilled
// WhatsApp texts so the storefront can open the chats directly.
// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data pesanan tidak valid: " + err.Error()})
		return
	}

	order, err := h.orders.Create(service.CreateOrderInput{
		IMEI:          req.IMEI,
		Brand:         req.Brand,
		Model:         req.Model,
		WhatsApp:      req.WhatsApp,
		LayananID:     req.LayananID,
		ReferralCode:  req.ReferralCode,
		PaymentProof:  req.PaymentProof,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrServiceNotFound) {
			status = http.StatusNotFound
		} else if !isValidationErr(err) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyOrders, cache.KeyReferrals)

	trackingURL := h.trackingURL(order.OrderID)
	adminWA := h.adminWhatsApp()
	newOrderMsg := whatsapp.NewOrderMessage(order, trackingURL)
	c.JSON(http.StatusCreated, gin.H{
		"order": order,
		"whatsapp": gin.H{
			"tracking_url":         trackingURL,
			"confirmation_message": whatsapp.OrderConfirmationMessage(order, trackingURL),
			"admin_link":           whatsapp.BuildLink(adminWA, newOrderMsg),
		},
	})
}

func isValidationErr(err error) bool {
	return errors.Is(err, service.ErrInvalidIMEI) ||
		errors.Is(err, service.ErrInvalidPayment) ||
		errors.Is(err, validate.ErrInvalidWhatsApp)
}

// Track looks up an order by order number or IMEI and returns it with
// the derived display timeline.
// GET /track?q=...
func (h *OrderHandler) Track(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parameter q wajib diisi"})
		return
	}
	order, err := h.orders.Track(query)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"timeline": service.DeriveTimeline(order),
	})
}

// PaymentMessage returns the "I have paid" text plus the wa.me link to
// the admin for an existing order.
// GET /orders/:order_id/payment-message
func (h *OrderHandler) PaymentMessage(c *gin.Context) {
	order, err := h.orders.Get(c.Param("order_id"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up order"})
		return
	}
	msg := whatsapp.PaymentConfirmationMessage(order)
	c.JSON(http.StatusOK, gin.H{
		"message": msg,
		"link":    whatsapp.BuildLink(h.adminWhatsApp(), msg),
	})
}

// List returns all orders newest first for the back-office table.
// GET /admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	var cached []models.Order
	if h.cache.GetJSON(c.Request.Context(), cache.KeyOrders, &cached) {
		c.JSON(http.StatusOK, gin.H{"orders": cached, "total": len(cached)})
		return
	}
	orders, err := h.orders.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list orders"})
		return
	}
	h.cache.SetJSON(c.Request.Context(), cache.KeyOrders, orders, cache.ListTTL)
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

// Get returns one order with its derived timeline.
// GET /admin/orders/:order_id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Param("order_id"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"timeline": service.DeriveTimeline(order),
	})
}

type updateStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	FailureReason string `json:"failure_reason"`
}

// UpdateStatus runs one lifecycle transition. The response includes the
// customer-facing status-update message so the admin can forward it.
// PATCH /admin/orders/:order_id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status wajib diisi"})
		return
	}

	order, err := h.orders.Transition(c.Param("order_id"), models.OrderStatus(req.Status), req.FailureReason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrReasonRequired):
			// Distinct signal: the UI pauses and asks for the reason.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "reason_required": true})
		case errors.Is(err, service.ErrTerminalState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
		}
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyOrders)

	trackingURL := h.trackingURL(order.OrderID)
	msg := whatsapp.StatusUpdateMessage(order, trackingURL)
	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"whatsapp": gin.H{
			"message":       msg,
			"customer_link": whatsapp.BuildLink(order.WhatsApp, msg),
		},
	})
}

// MarkNotified flips the informational notification flag after the
// admin has messaged the customer.
// POST /admin/orders/:order_id/notified
func (h *OrderHandler) MarkNotified(c *gin.Context) {
	if err := h.orders.MarkNotified(c.Param("order_id")); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyOrders)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes an order permanently.
// DELETE /admin/orders/:order_id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Param("order_id")); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete order"})
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyOrders)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
