package app

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// DataDir is where the table files live.
	DataDir string `envconfig:"DATA_DIR" default:"./data"`
	// ReportDir receives generated report and chart files.
	ReportDir string `envconfig:"REPORT_DIR" default:"./reports"`

	// LowStockThreshold is the default threshold for the low stock view.
	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`

	// AuditTrail toggles the persistent audit log.
	AuditTrail bool `envconfig:"AUDIT_TRAIL" default:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
