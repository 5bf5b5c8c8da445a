package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"docdesk/internal/domain"
	"docdesk/internal/logger"
	"docdesk/internal/tax"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Storage StorageConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Company domain.Company
	Tax     TaxConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig selects the repository implementation.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// S3Config holds object storage settings for workbook archives.
// Archiving is disabled when Bucket is empty.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether archive uploads are configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Logger converts the settings to a logger.Config.
func (l LogConfig) Logger() logger.Config {
	return logger.Config{Level: l.Level, Format: l.Format, Output: l.Output}
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TaxConfig holds GST settings for the seller.
type TaxConfig struct {
	SellerStateCode       string  `mapstructure:"seller_state_code"`
	SellerState           string  `mapstructure:"seller_state"`
	Rate                  float64 `mapstructure:"rate"`
	DefaultBuyerStateCode string  `mapstructure:"default_buyer_state_code"`
	RoundOffToRupee       bool    `mapstructure:"round_off_to_rupee"`
}

// Rules converts the settings to tax.Rules.
func (t TaxConfig) Rules() tax.Rules {
	return tax.Rules{
		SellerStateCode:       t.SellerStateCode,
		SellerState:           t.SellerState,
		Rate:                  t.Rate,
		DefaultBuyerStateCode: t.DefaultBuyerStateCode,
	}
}

// Load reads configuration from environment variables with the DOCDESK_ prefix.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("DOCDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docdesk")
	v.SetDefault("db.password", "docdesk_secret")
	v.SetDefault("db.name", "docdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("storage.driver", StorageMemory)

	// S3 defaults; an empty bucket disables archiving
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Company defaults
	v.SetDefault("company.name", "Your Company")
	v.SetDefault("company.state", tax.DefaultSellerState)
	v.SetDefault("company.state_code", tax.DefaultSellerStateCode)

	// Tax defaults
	v.SetDefault("tax.seller_state_code", tax.DefaultSellerStateCode)
	v.SetDefault("tax.seller_state", tax.DefaultSellerState)
	v.SetDefault("tax.rate", tax.DefaultRate)
	v.SetDefault("tax.default_buyer_state_code", tax.DefaultSellerStateCode)
	v.SetDefault("tax.round_off_to_rupee", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "DOCDESK_SERVER_PORT",
		"server.read_timeout":          "DOCDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "DOCDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":           "DOCDESK_SERVER_ENVIRONMENT",
		"db.host":                      "DOCDESK_DB_HOST",
		"db.port":                      "DOCDESK_DB_PORT",
		"db.user":                      "DOCDESK_DB_USER",
		"db.password":                  "DOCDESK_DB_PASSWORD",
		"db.name":                      "DOCDESK_DB_NAME",
		"db.sslmode":                   "DOCDESK_DB_SSLMODE",
		"db.max_open":                  "DOCDESK_DB_MAX_OPEN",
		"db.max_idle":                  "DOCDESK_DB_MAX_IDLE",
		"storage.driver":               "DOCDESK_STORAGE_DRIVER",
		"s3.region":                    "DOCDESK_S3_REGION",
		"s3.bucket":                    "DOCDESK_S3_BUCKET",
		"s3.endpoint":                  "DOCDESK_S3_ENDPOINT",
		"s3.access_key":                "DOCDESK_S3_ACCESS_KEY",
		"s3.secret_key":                "DOCDESK_S3_SECRET_KEY",
		"s3.presign_expiry":            "DOCDESK_S3_PRESIGN_EXPIRY",
		"log.level":                    "DOCDESK_LOG_LEVEL",
		"log.format":                   "DOCDESK_LOG_FORMAT",
		"log.output":                   "DOCDESK_LOG_OUTPUT",
		"cors.allowed_origins":         "DOCDESK_CORS_ALLOWED_ORIGINS",
		"company.name":                 "DOCDESK_COMPANY_NAME",
		"company.address":              "DOCDESK_COMPANY_ADDRESS",
		"company.gstin":                "DOCDESK_COMPANY_GSTIN",
		"company.pan":                  "DOCDESK_COMPANY_PAN",
		"company.state":                "DOCDESK_COMPANY_STATE",
		"company.state_code":           "DOCDESK_COMPANY_STATE_CODE",
		"company.phone":                "DOCDESK_COMPANY_PHONE",
		"company.email":                "DOCDESK_COMPANY_EMAIL",
		"company.bank_name":            "DOCDESK_COMPANY_BANK_NAME",
		"company.account_number":       "DOCDESK_COMPANY_ACCOUNT_NUMBER",
		"company.ifsc":                 "DOCDESK_COMPANY_IFSC",
		"company.branch":               "DOCDESK_COMPANY_BRANCH",
		"tax.seller_state_code":        "DOCDESK_TAX_SELLER_STATE_CODE",
		"tax.seller_state":             "DOCDESK_TAX_SELLER_STATE",
		"tax.rate":                     "DOCDESK_TAX_RATE",
		"tax.default_buyer_state_code": "DOCDESK_TAX_DEFAULT_BUYER_STATE_CODE",
		"tax.round_off_to_rupee":       "DOCDESK_TAX_ROUND_OFF_TO_RUPEE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platforms that inject PORT win unless DOCDESK_SERVER_PORT is set explicitly.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Storage = StorageConfig{Driver: strings.ToLower(v.GetString("storage.driver"))}
	if cfg.Storage.Driver != StorageMemory && cfg.Storage.Driver != StoragePostgres {
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Company = domain.Company{
		Name:          v.GetString("company.name"),
		Address:       v.GetString("company.address"),
		GSTIN:         strings.ToUpper(v.GetString("company.gstin")),
		PAN:           strings.ToUpper(v.GetString("company.pan")),
		State:         v.GetString("company.state"),
		StateCode:     v.GetString("company.state_code"),
		Phone:         v.GetString("company.phone"),
		Email:         v.GetString("company.email"),
		BankName:      v.GetString("company.bank_name"),
		AccountNumber: v.GetString("company.account_number"),
		IFSC:          strings.ToUpper(v.GetString("company.ifsc")),
		Branch:        v.GetString("company.branch"),
	}

	cfg.Tax = TaxConfig{
		SellerStateCode:       v.GetString("tax.seller_state_code"),
		SellerState:           v.GetString("tax.seller_state"),
		Rate:                  v.GetFloat64("tax.rate"),
		DefaultBuyerStateCode: v.GetString("tax.default_buyer_state_code"),
		RoundOffToRupee:       v.GetBool("tax.round_off_to_rupee"),
	}
	if !tax.ValidStateCode(cfg.Tax.SellerStateCode) {
		return nil, fmt.Errorf("invalid seller state code %q", cfg.Tax.SellerStateCode)
	}
	if cfg.Tax.Rate < 0 {
		return nil, fmt.Errorf("tax rate must not be negative, got %v", cfg.Tax.Rate)
	}

	return cfg, nil
}
