package router

import (
	"log"
	"time"

	"imeiku/config"
	"imeiku/internal/cache"
	"imeiku/internal/handler"
	"imeiku/internal/middleware"
	"imeiku/internal/repository"
	"imeiku/internal/service"
	"imeiku/internal/validate"
	"imeiku/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cch *cache.Cache, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(100, 60*time.Second)))

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validate.Register(v); err != nil {
			log.Printf("[router] register validators: %v", err)
		}
	}

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	referralSvc := service.NewReferralService(referralRepo, settingsRepo)
	orderSvc := service.NewOrderService(orderRepo, serviceRepo, referralSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, adminRepo)
	orderHandler := handler.NewOrderHandler(orderSvc, settingsRepo, cch, cfg.App.BaseURL)
	serviceHandler := handler.NewServiceHandler(serviceRepo, cch)
	referralHandler := handler.NewReferralHandler(referralRepo, referralSvc, cch, cfg.App.BaseURL)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)
	adminHandler := handler.NewAdminHandler(adminRepo)
	uploadHandler := handler.NewUploadHandler(cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		// Storefront
		api.GET("/services", serviceHandler.ListActive)
		api.GET("/company", settingsHandler.GetCompany)
		api.GET("/payment-channels", settingsHandler.GetPayment)
		api.GET("/brands", orderHandler.Brands)
		api.POST("/orders", orderHandler.Create)
		api.POST("/orders/payment-proof", uploadHandler.PaymentProof)
		api.GET("/orders/:order_id/payment-message", orderHandler.PaymentMessage)
		api.GET("/track", orderHandler.Track)
		api.GET("/referral-program", referralHandler.Program)
		api.POST("/referrals", referralHandler.Join)
		api.GET("/referrals/:code", referralHandler.Ledger)

		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/refresh", authHandler.Refresh)

		// Back-office
		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/orders", orderHandler.List)
			admin.GET("/orders/:order_id", orderHandler.Get)
			admin.PATCH("/orders/:order_id/status", orderHandler.UpdateStatus)
			admin.POST("/orders/:order_id/notified", orderHandler.MarkNotified)
			admin.DELETE("/orders/:order_id", orderHandler.Delete)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PUT("/services/:service_id", serviceHandler.Update)
			admin.DELETE("/services/:service_id", serviceHandler.Delete)

			admin.GET("/referrals", referralHandler.List)
			admin.POST("/referrals", referralHandler.Create)
			admin.DELETE("/referrals/:code", referralHandler.Delete)
			admin.PATCH("/referrals/:code/payouts", referralHandler.MarkPaid)

			admin.GET("/settings", settingsHandler.GetAll)
			admin.PUT("/settings/payment", settingsHandler.SavePayment)
			admin.PUT("/settings/referral", settingsHandler.SaveReferral)
			admin.PUT("/settings/company", settingsHandler.SaveCompany)
		}
	}

	return r
}
