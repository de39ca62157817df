package service

import (
	"errors"
	"net/http"

	"github.com/onurcolak/whatsapp-message-relay/pkg/response"
	"github.com/onurcolak/whatsapp-message-relay/pkg/whatsapp"
)

const (
	MessageSent          = "Message sent successfully"
	MessageProviderError = "WhatsApp API Error"
	MessageSendFailed    = "Failed to send WhatsApp message"
	MessageStatusFailed  = "Failed to get message status"

	noAdditionalDetails = "No additional details"
)

// NormalizeSendFailure maps a send error to the status code and envelope returned to callers.
// Structured provider errors are the caller's problem (400); everything else is ours (500).
func NormalizeSendFailure(err error) (int, response.ErrorResponse) {
	var graphErr *whatsapp.GraphError
	if errors.As(err, &graphErr) {
		var details any = noAdditionalDetails
		if subcode, ok := graphErr.Subcode(); ok {
			details = subcode
		}

		return http.StatusBadRequest, response.ErrorResponse{
			Success: false,
			Message: MessageProviderError,
			Error: response.ErrorDetail{
				Code:    graphErr.Code,
				Message: graphErr.Message,
				Details: details,
			},
		}
	}

	return http.StatusInternalServerError, response.ErrorResponse{
		Success: false,
		Message: MessageSendFailed,
		Error:   err.Error(),
	}
}

// NormalizeStatusFailure maps every status lookup failure to a 500 with the raw error text.
func NormalizeStatusFailure(err error) (int, response.ErrorResponse) {
	return http.StatusInternalServerError, response.ErrorResponse{
		Success: false,
		Message: MessageStatusFailed,
		Error:   err.Error(),
	}
}
