package handlers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-message-relay/internal/domain"
	"github.com/onurcolak/whatsapp-message-relay/internal/service"
	"github.com/onurcolak/whatsapp-message-relay/pkg/response"
	"github.com/onurcolak/whatsapp-message-relay/pkg/validator"
)

type WhatsAppHandler struct {
	service *service.RelayService
}

func NewWhatsAppHandler(service *service.RelayService) *WhatsAppHandler {
	return &WhatsAppHandler{service: service}
}

type SendMessageRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,plus_prefix" example:"+911234567890"`
	Message     string `json:"message" validate:"required" example:"hello"`
}

// SendMessage godoc
// @Summary Send a WhatsApp text message
// @Description Validates the request and relays it to the WhatsApp Cloud API
// @Tags whatsapp
// @Accept json
// @Produce json
// @Param message body SendMessageRequest true "Recipient and text"
// @Success 200 {object} response.SuccessResponse{data=domain.SentMessage}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/whatsapp/send-message [post]
func (h *WhatsAppHandler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		// A body in a content type echo cannot bind counts as empty.
		if !errors.Is(err, echo.ErrUnsupportedMediaType) {
			return response.BadRequest(c, err)
		}
		req = SendMessageRequest{}
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	// A client that hangs up does not abort the provider call; the result is dropped.
	ctx := context.WithoutCancel(c.Request().Context())

	sent, err := h.service.SendMessage(ctx, domain.SendRequest{
		PhoneNumber: req.PhoneNumber,
		Message:     req.Message,
	})
	if err != nil {
		status, body := service.NormalizeSendFailure(err)
		return c.JSON(status, body)
	}

	return response.OkWithMessage(c, service.MessageSent, sent)
}

// GetMessageStatus godoc
// @Summary Get WhatsApp message status
// @Description Returns the provider's message resource unchanged
// @Tags whatsapp
// @Produce json
// @Param messageId path string true "Provider message id (wamid...)"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/whatsapp/message-status/{messageId} [get]
func (h *WhatsAppHandler) GetMessageStatus(c echo.Context) error {
	messageID := c.Param("messageId")
	if messageID == "" {
		return response.BadRequestWithMessage(c, "Message ID is required")
	}

	payload, err := h.service.GetMessageStatus(context.WithoutCancel(c.Request().Context()), messageID)
	if err != nil {
		status, body := service.NormalizeStatusFailure(err)
		return c.JSON(status, body)
	}

	return response.Ok(c, payload)
}
