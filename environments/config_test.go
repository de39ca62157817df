package environments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "WHATSAPP_API_BASE_URL", "WHATSAPP_API_VERSION",
		"WHATSAPP_TIMEOUT_SECONDS", "UI_COUNTRY_CODE", "API_BASE_URL", "CONFIG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "https://graph.facebook.com", cfg.WhatsApp.BaseURL)
	assert.Equal(t, "v18.0", cfg.WhatsApp.APIVersion)
	assert.Zero(t, cfg.WhatsApp.Timeout)
	assert.Equal(t, "+91", cfg.UI.CountryCode)
	assert.NoError(t, cfg.FileError())
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "5000")
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_ID", "12345")
	t.Setenv("WHATSAPP_TIMEOUT_SECONDS", "15")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "token", cfg.WhatsApp.Token)
	assert.Equal(t, "12345", cfg.WhatsApp.PhoneID)
	assert.Equal(t, 15*time.Second, cfg.WhatsApp.Timeout)
}

func TestLoad_ConfigFileOverridesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.ini")
	content := `
[server]
port = 7000

[whatsapp]
phone_id = 999
api_version = v19.0
timeout_seconds = 30

[ui]
country_code = +1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "5000")
	t.Setenv("WHATSAPP_TOKEN", "from-env")
	t.Setenv("WHATSAPP_PHONE_ID", "12345")

	cfg := Load()

	require.NoError(t, cfg.FileError())
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.WhatsApp.Token, "keys absent from the file keep their env value")
	assert.Equal(t, "999", cfg.WhatsApp.PhoneID)
	assert.Equal(t, "v19.0", cfg.WhatsApp.APIVersion)
	assert.Equal(t, 30*time.Second, cfg.WhatsApp.Timeout)
	assert.Equal(t, "+1", cfg.UI.CountryCode)
}

func TestLoad_MissingConfigFileIsReported(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.ini"))
	t.Setenv("PORT", "5000")

	cfg := Load()

	assert.Error(t, cfg.FileError())
	assert.Equal(t, "5000", cfg.Server.Port)
}

func TestGetEnvAsInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("RELAY_TEST_INT", "abc")
	assert.Equal(t, 7, GetEnvAsInt("RELAY_TEST_INT", 7))

	t.Setenv("RELAY_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvAsInt("RELAY_TEST_INT", 7))
}
