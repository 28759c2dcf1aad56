// =============================================================================
// Holded Stock Report - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration:
//
//   1. Main Config (config.yaml): API endpoints, pagination, output
//      directories, file naming and pallet capacities.
//   2. Credentials: the Holded API key, sourced from the environment only.
//      Secrets never live in the yaml file.
//
// The main config is optional: a missing file yields the built-in defaults,
// which point at the production Holded invoicing API. Every field has a
// default, so a minimal deployment needs nothing but HOLDED_API_KEY.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration, loaded from the
// main config.yaml file.
type MainConfig struct {
	// API contains the Holded API settings.
	API APIConfig `yaml:"api"`

	// Output contains output directory and file naming settings.
	Output OutputConfig `yaml:"output"`

	// Pallets contains the per-pallet capacity divisors used by the
	// pallet estimator.
	Pallets PalletConfig `yaml:"pallets"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// APIConfig contains the settings for the Holded invoicing API.
type APIConfig struct {
	// BaseURL is the invoicing API root.
	// Default: "https://api.holded.com/api/invoicing/v1"
	BaseURL string `yaml:"base_url"`

	// PageSize is the page size used for every paginated fetch.
	// Default: 100
	PageSize int `yaml:"page_size"`

	// TimeoutSeconds is the per-request HTTP timeout.
	// Default: 30
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// DocumentEndpoints lists the document types to search, in order.
	// A document number is looked up in each type until found.
	DocumentEndpoints []DocumentEndpoint `yaml:"document_endpoints"`
}

// DocumentEndpoint names one searchable document type.
type DocumentEndpoint struct {
	// Label is the human-facing document type name (used in output).
	Label string `yaml:"label"`

	// Path is the endpoint path segment under /documents.
	Path string `yaml:"path"`
}

// OutputConfig contains output directory and file naming settings.
type OutputConfig struct {
	// Dir is the directory where generated workbooks are placed.
	// Default: "./output"
	Dir string `yaml:"dir"`

	// ArchiveDir, when set, receives a copy of every generated workbook.
	// Default: "" (archival disabled)
	ArchiveDir string `yaml:"archive_dir"`

	// StockFilename is the name format of the stock report workbook.
	// Placeholders: {doc}, {timestamp}, {uuid}.
	// Default: "{doc}_stock.xlsx"
	StockFilename string `yaml:"stock_filename"`

	// PalletFilename is the name format of the pallet summary workbook.
	// Default: "{doc}_pallets.xlsx"
	PalletFilename string `yaml:"pallet_filename"`
}

// PalletConfig contains the per-pallet capacity divisors.
type PalletConfig struct {
	// WeightCapacityKg is the weight one pallet carries, in kilograms.
	// Default: 1300
	WeightCapacityKg float64 `yaml:"weight_capacity_kg"`

	// VolumeCapacityM3 is the volume one pallet holds, in cubic meters.
	// Default: 1.728
	VolumeCapacityM3 float64 `yaml:"volume_capacity_m3"`
}

// =============================================================================
// CREDENTIALS
// =============================================================================

// Credentials holds the Holded API credentials, sourced from the
// environment (HOLDED_API_KEY).
type Credentials struct {
	APIKey string `envconfig:"API_KEY" required:"true"`
}

// LoadCredentials reads the credentials from the environment.
func LoadCredentials() (Credentials, error) {
	var creds Credentials
	if err := envconfig.Process("holded", &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}
	return creds, nil
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct. A missing file is not an error:
//     the built-in defaults are returned.
//   - An error if the file exists but cannot be read or parsed, or if the
//     resulting configuration is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// No file: run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *MainConfig) {
	if config.API.BaseURL == "" {
		config.API.BaseURL = "https://api.holded.com/api/invoicing/v1"
	}
	if config.API.PageSize == 0 {
		config.API.PageSize = 100
	}
	if config.API.TimeoutSeconds == 0 {
		config.API.TimeoutSeconds = 30
	}
	if len(config.API.DocumentEndpoints) == 0 {
		config.API.DocumentEndpoints = []DocumentEndpoint{
			{Label: "Presupuesto", Path: "estimate"},
			{Label: "Proforma", Path: "proform"},
			{Label: "Pedido", Path: "salesorder"},
		}
	}
	if config.Output.Dir == "" {
		config.Output.Dir = "./output"
	}
	if config.Output.StockFilename == "" {
		config.Output.StockFilename = "{doc}_stock.xlsx"
	}
	if config.Output.PalletFilename == "" {
		config.Output.PalletFilename = "{doc}_pallets.xlsx"
	}
	if config.Pallets.WeightCapacityKg == 0 {
		config.Pallets.WeightCapacityKg = 1300
	}
	if config.Pallets.VolumeCapacityM3 == 0 {
		config.Pallets.VolumeCapacityM3 = 1.728
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validate rejects configurations the pipeline cannot run with.
func validate(config *MainConfig) error {
	if config.API.PageSize < 1 {
		return fmt.Errorf("api.page_size must be positive, got %d", config.API.PageSize)
	}
	if config.API.TimeoutSeconds < 1 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", config.API.TimeoutSeconds)
	}
	for i, ep := range config.API.DocumentEndpoints {
		if ep.Label == "" || ep.Path == "" {
			return fmt.Errorf("api.document_endpoints[%d] must set both label and path", i)
		}
	}
	if config.Pallets.WeightCapacityKg <= 0 {
		return fmt.Errorf("pallets.weight_capacity_kg must be positive, got %v", config.Pallets.WeightCapacityKg)
	}
	if config.Pallets.VolumeCapacityM3 <= 0 {
		return fmt.Errorf("pallets.volume_capacity_m3 must be positive, got %v", config.Pallets.VolumeCapacityM3)
	}
	return nil
}
