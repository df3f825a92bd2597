package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tecsup/autobody-backend/internal/handlers"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/middleware"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	VehicleHandler *handlers.VehicleHandler
	CompanyHandler *handlers.CompanyHandler
	ServiceHandler *handlers.ServiceHandler
	AdminHandler   *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("autobody-backend"))
	router.Use(middleware.RequestLogger(cfg.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Vehicles
	protected.GET("/vehicles", cfg.VehicleHandler.List)
	protected.POST("/vehicles", cfg.VehicleHandler.Add)
	protected.PATCH("/vehicles/:id", cfg.VehicleHandler.Update)
	protected.DELETE("/vehicles/:id", cfg.VehicleHandler.Delete)
	// Companies
	protected.GET("/companies", cfg.CompanyHandler.ListGlobal)
	protected.GET("/companies/personal", cfg.CompanyHandler.ListPersonal)
	protected.POST("/companies/personal", cfg.CompanyHandler.AddPersonal)
	protected.PATCH("/companies/global/:name", cfg.CompanyHandler.UpdateGlobal)
	protected.DELETE("/companies/global/:name", cfg.CompanyHandler.DeleteGlobal)
	protected.DELETE("/companies/personal/:id", cfg.CompanyHandler.DeletePersonal)
	// Services
	protected.GET("/services", cfg.ServiceHandler.List)
	protected.POST("/services", cfg.ServiceHandler.Create)
	protected.PATCH("/services/:id", cfg.ServiceHandler.Update)
	protected.PATCH("/services/:id/status", cfg.ServiceHandler.ChangeStatus)
	protected.DELETE("/services/:id", cfg.ServiceHandler.Delete)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	admin.GET("/services", cfg.AdminHandler.ListServices)
	admin.PATCH("/services/:userId/:id", cfg.ServiceHandler.AdminUpdate)
	admin.PATCH("/services/:userId/:id/status", cfg.ServiceHandler.AdminChangeStatus)
	admin.DELETE("/services/:userId/:id", cfg.ServiceHandler.AdminDelete)

	return router
}
