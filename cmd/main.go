package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tecsup/autobody-backend/internal/config"
	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/handlers"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/middleware"
	"github.com/tecsup/autobody-backend/internal/observability"
	"github.com/tecsup/autobody-backend/internal/repos"
	"github.com/tecsup/autobody-backend/internal/server"
	"github.com/tecsup/autobody-backend/internal/services"
	"github.com/tecsup/autobody-backend/internal/storage"
	"github.com/tecsup/autobody-backend/internal/tokenstore"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Config load failed", "error", err)
	}

	// Tracing
	ctx := context.Background()
	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "autobody-backend",
		Environment: cfg.Server.Mode,
	})
	if shutdownOtel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(shutdownCtx)
		}()
	}

	// Data gateway
	log.Info("Setting up data gateway from main...", "backend", cfg.Store.Backend)
	var gw gateway.DataGateway
	switch cfg.Store.Backend {
	case "memory":
		gw = gateway.NewMemoryGateway()
	case "postgres":
		store, err := gateway.OpenPostgres(log,
			cfg.Store.Postgres.Host, cfg.Store.Postgres.Port,
			cfg.Store.Postgres.User, cfg.Store.Postgres.Password, cfg.Store.Postgres.Name)
		if err != nil {
			log.Fatal("Postgres init failed", "error", err)
		}
		gw = store
	case "firestore":
		store, err := gateway.NewFirestoreGateway(ctx, log,
			cfg.Store.Firestore.ProjectID, cfg.Store.Firestore.CredentialsFile)
		if err != nil {
			log.Fatal("Firestore init failed", "error", err)
		}
		gw = store
	default:
		store, err := gateway.OpenSQLite(log, cfg.Store.SQLitePath)
		if err != nil {
			log.Fatal("SQLite init failed", "error", err)
		}
		gw = store
	}

	// Blob storage
	log.Info("Setting up blob storage from main...")
	blobStore, err := storage.NewBucketService(log, cfg.Bucket.Name, cfg.Bucket.CDNDomain, cfg.Bucket.CredentialsFile)
	if err != nil {
		log.Fatal("Bucket init failed", "error", err)
	}

	// Session store
	log.Info("Setting up token store from main...")
	tokens, err := tokenstore.NewRedisTokenStore(log, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Redis init failed", "error", err)
	}

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(gw, log)
	vehicleRepo := repos.NewVehicleRepo(gw, log)
	companyRepo := repos.NewCompanyRepo(gw, log)
	serviceRepo := repos.NewServiceRepo(gw, log)

	// Services
	log.Info("Setting up services from main...")
	validator := services.NewValidator(log, userRepo, vehicleRepo)
	avatarService, err := services.NewAvatarService(log, blobStore)
	if err != nil {
		log.Fatal("Avatar service init failed", "error", err)
	}
	authService := services.NewAuthService(log, gw, userRepo, validator, avatarService, tokens,
		cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userService := services.NewUserService(log, userRepo)
	vehicleService := services.NewVehicleService(log, gw, vehicleRepo, validator, blobStore)
	companyService := services.NewCompanyService(log, gw, companyRepo)
	appointmentService := services.NewAppointmentService(log, gw, serviceRepo, vehicleRepo)
	aggregator := services.NewAdminAggregator(log, serviceRepo, userRepo, vehicleRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	serviceHandler := handlers.NewServiceHandler(appointmentService)
	adminHandler := handlers.NewAdminHandler(aggregator)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		UserHandler:    userHandler,
		VehicleHandler: vehicleHandler,
		CompanyHandler: companyHandler,
		ServiceHandler: serviceHandler,
		AdminHandler:   adminHandler,
	})

	log.Info("Starting server", "port", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
