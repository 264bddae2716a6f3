package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dealer-backend/internal/api/handlers"
	"dealer-backend/internal/api/middleware"
	"dealer-backend/internal/config"
	"dealer-backend/internal/repository"
	"dealer-backend/internal/services"
	"dealer-backend/pkg/jwt"
	"dealer-backend/pkg/ratelimit"
	"dealer-backend/pkg/storage"

	"go.uber.org/zap"
)

// Deps carries everything the route tree needs wired in.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Limiter ratelimit.Limiter
	Store   storage.ObjectStore
	Cleaner services.ImageCleaner
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	// Repositories
	vehicleRepo := repository.NewVehicleRepository(deps.DB)
	inquiryRepo := repository.NewInquiryRepository(deps.DB)

	// Services
	jwtUtil := jwt.NewJWTUtil(deps.Config.JWTSecret, deps.Config.JWTExpiry)
	authService := services.NewAuthService(deps.Config.AdminPassHash, jwtUtil, deps.Log)
	vehicleService := services.NewVehicleService(vehicleRepo, deps.Log)
	if deps.Cleaner != nil {
		vehicleService.SetImageCleaner(deps.Cleaner)
	}
	inquiryService := services.NewInquiryService(inquiryRepo, deps.Log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	imageHandler := handlers.NewImageHandler(vehicleService, deps.Store)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	api := router.Group("/api/v1")
	if deps.Limiter != nil {
		api.Use(middleware.RateLimitMiddleware(deps.Limiter))
	}

	api.GET("/health", healthHandler.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Public browsing surface
	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", vehicleHandler.GetVehicles)
		vehicles.GET("/search", vehicleHandler.SearchVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
	}

	inquiries := api.Group("/inquiries")
	{
		inquiries.POST("", inquiryHandler.CreateInquiry)
	}

	// Admin surface
	admin := api.Group("/")
	admin.Use(middleware.AuthMiddleware(jwtUtil))
	{
		admin.POST("/vehicles", vehicleHandler.CreateVehicle)
		admin.PATCH("/vehicles/:id", vehicleHandler.UpdateVehicle)
		admin.DELETE("/vehicles/:id", vehicleHandler.DeleteVehicle)
		admin.GET("/vehicles/stats", vehicleHandler.GetInventoryStats)

		admin.POST("/vehicles/:id/images", imageHandler.UploadImages)
		admin.DELETE("/vehicles/:id/images", imageHandler.RemoveImage)

		admin.GET("/inquiries", inquiryHandler.GetInquiries)
	}
}
