package environments

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

type Config struct {
	Server   ServerConfig
	WhatsApp WhatsAppConfig
	UI       UIConfig
	Log      LogConfig

	fileErr error
}

type ServerConfig struct {
	Port string
}

type WhatsAppConfig struct {
	Token             string
	PhoneID           string
	BusinessAccountID string
	BaseURL           string
	APIVersion        string
	// Timeout of zero waits for the provider indefinitely.
	Timeout time.Duration
}

type UIConfig struct {
	APIBaseURL  string
	CountryCode string
}

type LogConfig struct {
	Level string
	Env   string
}

// Load reads .env (if present), the process environment and, when CONFIG_FILE
// is set, an INI file whose values override both.
func Load() *Config {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: GetEnv("PORT", "4000"),
		},
		WhatsApp: WhatsAppConfig{
			Token:             GetEnv("WHATSAPP_TOKEN", ""),
			PhoneID:           GetEnv("WHATSAPP_PHONE_ID", ""),
			BusinessAccountID: GetEnv("WHATSAPP_BUSINESS_ACCOUNT_ID", ""),
			BaseURL:           GetEnv("WHATSAPP_API_BASE_URL", "https://graph.facebook.com"),
			APIVersion:        GetEnv("WHATSAPP_API_VERSION", "v18.0"),
			Timeout:           time.Duration(GetEnvAsInt("WHATSAPP_TIMEOUT_SECONDS", 0)) * time.Second,
		},
		UI: UIConfig{
			APIBaseURL:  GetEnv("API_BASE_URL", ""),
			CountryCode: GetEnv("UI_COUNTRY_CODE", "+91"),
		},
		Log: LogConfig{
			Level: GetEnv("LOG_LEVEL", "info"),
			Env:   GetEnv("APP_ENV", "development"),
		},
	}

	if path := GetEnv("CONFIG_FILE", ""); path != "" {
		if err := LoadFile(cfg, path); err != nil {
			// The logger is not initialised yet; main reports config problems itself.
			cfg.fileErr = err
		}
	}

	return cfg
}

// LoadFile overlays values from an INI file onto cfg. Keys that are absent or
// empty leave the current value untouched.
func LoadFile(cfg *Config, path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	server := file.Section("server")
	overlay(&cfg.Server.Port, server.Key("port").String())

	wa := file.Section("whatsapp")
	overlay(&cfg.WhatsApp.Token, wa.Key("token").String())
	overlay(&cfg.WhatsApp.PhoneID, wa.Key("phone_id").String())
	overlay(&cfg.WhatsApp.BusinessAccountID, wa.Key("business_account_id").String())
	overlay(&cfg.WhatsApp.BaseURL, wa.Key("api_base_url").String())
	overlay(&cfg.WhatsApp.APIVersion, wa.Key("api_version").String())
	if secs, err := wa.Key("timeout_seconds").Int(); err == nil && secs >= 0 {
		cfg.WhatsApp.Timeout = time.Duration(secs) * time.Second
	}

	ui := file.Section("ui")
	overlay(&cfg.UI.APIBaseURL, ui.Key("api_base_url").String())
	overlay(&cfg.UI.CountryCode, ui.Key("country_code").String())

	logSection := file.Section("log")
	overlay(&cfg.Log.Level, logSection.Key("level").String())
	overlay(&cfg.Log.Env, logSection.Key("env").String())

	return nil
}

// FileError reports why the CONFIG_FILE overlay could not be applied, if it failed.
func (c *Config) FileError() error {
	return c.fileErr
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
