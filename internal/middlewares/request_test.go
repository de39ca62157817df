package middlewares

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onurcolak/whatsapp-message-relay/pkg/logger"
)

func TestRequestID_SetsUUIDHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := rec.Header().Get(echo.HeaderXRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a UUID request id, got %q", id)
	}
}

func TestRequestLogger_WritesOneLinePerRequest(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, zerolog.InfoLevel)

	e := echo.New()
	e.Use(RequestID())
	e.Use(RequestLogger())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected one log line, got %q", out)
	}
	for _, want := range []string{`"uri":"/ping"`, `"status":204`, `"method":"GET"`, rec.Header().Get(echo.HeaderXRequestID)} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %s", out, want)
		}
	}
}
