package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-message-relay/environments"
)

// HealthHandler handles health checks.
type HealthHandler struct {
	whatsapp environments.WhatsAppConfig
}

func NewHealthHandler(cfg environments.WhatsAppConfig) *HealthHandler {
	return &HealthHandler{whatsapp: cfg}
}

// Health reports whether provider credentials are present. It never calls the provider.
// @Summary Health check
// @Description Returns overall status and whether WhatsApp credentials are configured
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	overallStatus := "ok"

	providerStatus := "configured"
	if h.whatsapp.Token == "" || h.whatsapp.PhoneID == "" {
		providerStatus = "unconfigured"
		overallStatus = "degraded"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]any{
			"provider": map[string]any{
				"status":     providerStatus,
				"apiVersion": h.whatsapp.APIVersion,
			},
		},
	})
}
