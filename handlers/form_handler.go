package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-message-relay/environments"
	"github.com/onurcolak/whatsapp-message-relay/internal/domain"
	"github.com/onurcolak/whatsapp-message-relay/internal/form"
	"github.com/onurcolak/whatsapp-message-relay/internal/service"
	"github.com/onurcolak/whatsapp-message-relay/pkg/validator"
	"github.com/onurcolak/whatsapp-message-relay/web"
)

// FormHandler serves the send form and accepts plain (non-JavaScript) submissions of it.
type FormHandler struct {
	service *service.RelayService
	ui      environments.UIConfig
}

func NewFormHandler(service *service.RelayService, ui environments.UIConfig) *FormHandler {
	return &FormHandler{service: service, ui: ui}
}

// FormPage is the data behind web.IndexTemplate.
type FormPage struct {
	CountryCode string
	APIBaseURL  string
	MaxDigits   int
	LocalNumber string
	Message     string
	Result      *domain.SentMessage
	Error       string
}

func (h *FormHandler) page() FormPage {
	return FormPage{
		CountryCode: h.ui.CountryCode,
		APIBaseURL:  strings.TrimRight(h.ui.APIBaseURL, "/"),
		MaxDigits:   form.LocalNumberLength,
	}
}

func (h *FormHandler) Show(c echo.Context) error {
	return c.Render(http.StatusOK, web.IndexTemplate, h.page())
}

func (h *FormHandler) Submit(c echo.Context) error {
	page := h.page()
	page.LocalNumber = form.FilterLocalNumber("", strings.TrimSpace(c.FormValue("localNumber")))
	page.Message = c.FormValue("message")

	if !form.Ready(page.LocalNumber, page.Message) {
		page.Error = "Enter a 10-digit phone number and a message"
		return c.Render(http.StatusBadRequest, web.IndexTemplate, page)
	}

	req := SendMessageRequest{
		PhoneNumber: form.PhoneNumber(h.ui.CountryCode, page.LocalNumber),
		Message:     page.Message,
	}

	if err := c.Validate(&req); err != nil {
		page.Error = err.Error()
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			page.Error = ve.Message()
			if detail, ok := ve.Errors["phoneNumber"]; ok {
				page.Error += ": " + detail
			}
		}
		return c.Render(http.StatusBadRequest, web.IndexTemplate, page)
	}

	sent, err := h.service.SendMessage(context.WithoutCancel(c.Request().Context()), domain.SendRequest{
		PhoneNumber: req.PhoneNumber,
		Message:     req.Message,
	})
	if err != nil {
		status, body := service.NormalizeSendFailure(err)
		page.Error = form.ErrorText(&body)
		return c.Render(status, web.IndexTemplate, page)
	}

	// Clear the inputs once the message is out.
	page.LocalNumber = ""
	page.Message = ""
	page.Result = sent

	return c.Render(http.StatusOK, web.IndexTemplate, page)
}
