package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onurcolak/whatsapp-message-relay/environments"
	"github.com/onurcolak/whatsapp-message-relay/handlers"
	"github.com/onurcolak/whatsapp-message-relay/internal/middlewares"
	"github.com/onurcolak/whatsapp-message-relay/internal/service"
	"github.com/onurcolak/whatsapp-message-relay/pkg/logger"
	"github.com/onurcolak/whatsapp-message-relay/pkg/response"
	"github.com/onurcolak/whatsapp-message-relay/pkg/validator"
	"github.com/onurcolak/whatsapp-message-relay/pkg/whatsapp"
	"github.com/onurcolak/whatsapp-message-relay/routes"
	"github.com/onurcolak/whatsapp-message-relay/web"

	_ "github.com/onurcolak/whatsapp-message-relay/docs" // swagger docs
)

// @title WhatsApp Message Relay API
// @version 1.0
// @description Relays text messages to the WhatsApp Cloud API and reports their status

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:4000
// @BasePath /

// @schemes http https
func main() {
	// Load config
	cfg := environments.Load()

	logger.Init(cfg.Log.Env, cfg.Log.Level)

	if err := cfg.FileError(); err != nil {
		logger.Warnf("Ignoring config file: %v", err)
	}

	// Hard-fail if provider credentials are missing
	if cfg.WhatsApp.Token == "" {
		logger.Fatalf("WHATSAPP_TOKEN is required but not set")
	}
	if cfg.WhatsApp.PhoneID == "" {
		logger.Fatalf("WHATSAPP_PHONE_ID is required but not set")
	}

	logger.Infof("Starting WhatsApp Message Relay...")

	whatsappClient := whatsapp.NewClient(cfg.WhatsApp)
	logger.Infof("WhatsApp sender configured: phone id %s, api %s", whatsappClient.PhoneID(), cfg.WhatsApp.APIVersion)

	relayService := service.NewRelayService(whatsappClient)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatalf("Failed to load form templates: %v", err)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.WhatsApp)
	whatsappHandler := handlers.NewWhatsAppHandler(relayService)
	formHandler := handlers.NewFormHandler(relayService, cfg.UI)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = response.HTTPErrorHandler

	// Middleware
	e.Use(middlewares.RequestID())
	e.Use(middlewares.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))

	// Setup routes
	routes.RegisterRoutes(e, healthHandler, whatsappHandler, formHandler)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// In-flight provider calls get the same window as open connections.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	logger.Infof("Graceful shutdown completed")
}
