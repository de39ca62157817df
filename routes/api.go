package routes

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/onurcolak/whatsapp-message-relay/handlers"
)

// RegisterRoutes registers the form, the relay API and the operational endpoints.
// The form and the API send through the same service and are equally open.
func RegisterRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	whatsappHandler *handlers.WhatsAppHandler,
	formHandler *handlers.FormHandler,
) {
	e.GET("/", formHandler.Show)
	e.POST("/", formHandler.Submit)

	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/whatsapp")

	api.POST("/send-message", whatsappHandler.SendMessage)
	api.GET("/message-status/:messageId", whatsappHandler.GetMessageStatus)
	// No id at all lands here so callers get the JSON envelope instead of a bare 404.
	api.GET("/message-status", whatsappHandler.GetMessageStatus)
	api.GET("/message-status/", whatsappHandler.GetMessageStatus)
}
