package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"salonmarket-backend/utils"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	DatabaseURL    string `mapstructure:"DB_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`

	SlotStepMinutes     int `mapstructure:"SLOT_STEP_MINUTES"`
	SlotCacheTTLSeconds int `mapstructure:"SLOT_CACHE_TTL_SECONDS"`
	BookingRatePerMin   int `mapstructure:"BOOKING_RATE_PER_MINUTE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	ReminderCron         string `mapstructure:"REMINDER_CRON"`
	TwilioAccountSID     string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `mapstructure:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `mapstructure:"TWILIO_WHATSAPP_NUMBER"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
}

var defaults = map[string]interface{}{
	"PORT":                    "8080",
	"APP_ENV":                 "production",
	"DB_URL":                  "",
	"JWT_SECRET":              "",
	"JWT_EXPIRY_HOURS":        24,
	"SLOT_STEP_MINUTES":       15,
	"SLOT_CACHE_TTL_SECONDS":  60,
	"BOOKING_RATE_PER_MINUTE": 10,
	"REDIS_ADDR":              "",
	"REDIS_PASSWORD":          "",
	"REMINDER_CRON":           "0 9 * * *",
	"TWILIO_ACCOUNT_SID":      "",
	"TWILIO_AUTH_TOKEN":       "",
	"TWILIO_PHONE_NUMBER":     "",
	"TWILIO_WHATSAPP_NUMBER":  "",
	"CORS_ORIGINS":            "http://localhost:3000",
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET not set")
		}
		// Tokens from a generated secret do not survive a restart.
		cfg.JWTSecret = utils.GenerateJWTSecret()
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c *Config) SlotStep() time.Duration {
	return time.Duration(c.SlotStepMinutes) * time.Minute
}

func (c *Config) SlotCacheTTL() time.Duration {
	return time.Duration(c.SlotCacheTTLSeconds) * time.Second
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}
