package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the failure envelope. Error is either a plain string or an ErrorDetail.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   any    `json:"error,omitempty"`
}

// ErrorDetail carries an upstream error through to the caller.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func Ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func OkWithMessage(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Failure writes an error envelope with an arbitrary status.
func Failure(c echo.Context, status int, message string, detail any) error {
	return c.JSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

func BadRequest(c echo.Context, err error) error {
	return Failure(c, http.StatusBadRequest, "Invalid request", err.Error())
}

func BadRequestWithMessage(c echo.Context, message string) error {
	return Failure(c, http.StatusBadRequest, message, nil)
}

func InternalServerError(c echo.Context, err error) error {
	return Failure(c, http.StatusInternalServerError, "Internal server error", err.Error())
}

// HTTPErrorHandler replaces echo's default so routing errors and recovered panics
// still answer with the envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = Failure(c, he.Code, fmt.Sprint(he.Message), nil)
		return
	}

	_ = InternalServerError(c, err)
}
