package main

import (
	"context"
	"fmt"
	"log"
	"myFoodMarket/app/echo-server/router"
	"myFoodMarket/business/admin"
	"myFoodMarket/business/event"
	"myFoodMarket/business/product"
	"myFoodMarket/business/store"
	userService "myFoodMarket/business/user"
	"myFoodMarket/internal/middleware"
	"myFoodMarket/internal/repository/notification"
	psqlRepo "myFoodMarket/internal/repository/postgres"
	"myFoodMarket/internal/rest"
	"myFoodMarket/pkg/config"
	"myFoodMarket/pkg/database"
	"myFoodMarket/pkg/logger"
	"myFoodMarket/pkg/metrics"
	"myFoodMarket/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyFoodMarket", "version", cfg.App.Version)

	utils.SetSigningKey(cfg.JWT.SecretKey)
	if cfg.JWT.UsingDefaultSecret {
		logger.Warn("JWT_SECRET is not set, falling back to the built-in development secret")
	}

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	storeRepo := psqlRepo.NewStoreRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	eventRepo := psqlRepo.NewEventRepository(db)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	storeSvc := store.NewStoreService(storeRepo, productRepo)
	productSvc := product.NewProductService(productRepo, storeRepo)
	eventSvc := event.NewEventService(eventRepo)
	adminSvc := admin.NewAdminService(userRepo, storeRepo, productRepo, eventRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	storeHandler := rest.NewStoreHandler(storeSvc)
	productHandler := rest.NewProductHandler(productSvc)
	eventHandler := rest.NewEventHandler(eventSvc)
	adminHandler := rest.NewAdminHandler(adminSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Metrics())

	// Identity resolution runs on every request and never rejects; the
	// guards below enforce access per route group.
	e.Use(middleware.Authenticate(userRepo))
	authRequired := middleware.RequireUser()
	platinumOnly := middleware.RequirePlatinum()

	// Setup routes
	api := e.Group("/api")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupStoreRoutes(api, storeHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired)
	router.SetupEventRoutes(api, eventHandler, authRequired)
	router.SetupAdminRoutes(api, adminHandler, authRequired, platinumOnly)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
