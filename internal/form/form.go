// Package form holds the input rules of the send form. The embedded page enforces
// the same rules in the browser; the server applies them to plain form posts.
package form

import (
	"strings"

	"github.com/onurcolak/whatsapp-message-relay/pkg/response"
)

// LocalNumberLength is the number of digits in a domestic number, without country code.
const LocalNumberLength = 10

const fallbackError = "Failed to send message"

// FilterLocalNumber returns the value the phone field should hold after an edit from
// current to next. Edits that introduce a non-digit or exceed LocalNumberLength are rejected.
func FilterLocalNumber(current, next string) string {
	if len(next) > LocalNumberLength || !isDigits(next) {
		return current
	}
	return next
}

// Ready reports whether the form may be submitted.
func Ready(localNumber, message string) bool {
	return len(localNumber) == LocalNumberLength &&
		isDigits(localNumber) &&
		strings.TrimSpace(message) != ""
}

// PhoneNumber prepends the fixed country code to the local number.
func PhoneNumber(countryCode, localNumber string) string {
	return countryCode + strings.TrimSpace(localNumber)
}

// ErrorText picks what the form shows for a failed send: the envelope message, then the
// nested provider message, then a generic fallback.
func ErrorText(body *response.ErrorResponse) string {
	if body == nil {
		return fallbackError
	}
	if body.Message != "" {
		return body.Message
	}
	if detail, ok := body.Error.(response.ErrorDetail); ok && detail.Message != "" {
		return detail.Message
	}
	return fallbackError
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
