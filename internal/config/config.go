package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"membership_system/internal/card"
	"membership_system/internal/sheets"
)

// DefaultAdminDigest is the embedded SHA-256 hex digest the admin access
// code is checked against when ADMIN_ACCESS_DIGEST is unset.
const DefaultAdminDigest = "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9"

// Config holds the application configuration
type Config struct {
	AppPort         string // HTTP listen port
	SpreadsheetID   string // Google spreadsheet ID of the member sheet
	CredentialsFile string // Local service-account key fallback
	AdminDigest     string // SHA-256 hex digest of the admin access code
	RedisAddr       string // Redis server address ("" disables caching)
	RedisPass       string // Redis password
	RedisDB         int    // Redis database number
	CardTemplate    string // Card background image path
	CardFont        string // Card typeface path
	IsProd          bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg := &Config{
		AppPort:         os.Getenv("APP_PORT"),
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		AdminDigest:     os.Getenv("ADMIN_ACCESS_DIGEST"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         redisDB,
		CardTemplate:    os.Getenv("CARD_TEMPLATE"),
		CardFont:        os.Getenv("CARD_FONT"),
		IsProd:          os.Getenv("IS_PROD") == "true",
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = sheets.DefaultCredentialsFile
	}
	if cfg.AdminDigest == "" {
		cfg.AdminDigest = DefaultAdminDigest
	}
	if cfg.CardTemplate == "" {
		cfg.CardTemplate = card.DefaultTemplate
	}
	if cfg.CardFont == "" {
		cfg.CardFont = card.DefaultFont
	}
	return cfg
}
