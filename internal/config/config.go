package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"sentidash/internal/errors"
)

// Variant names the binary a configuration is loaded for; it only changes defaults.
type Variant string

const (
	VariantCombined Variant = "combined"
	VariantMcd      Variant = "mcd"
	VariantTwitter  Variant = "twitter"
	VariantMovies   Variant = "movies"
)

// Config represents the complete application configuration
type Config struct {
	Variant Variant       `validate:"required,oneof=combined mcd twitter movies"`
	Server  ServerConfig  `validate:"required"`
	Data    DataConfig    `validate:"required"`
	Paths   PathConfig    `validate:"required"`
	Logging LoggingConfig `validate:"required"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required,numeric"`
	GinMode string `validate:"required,oneof=debug release test"`
}

// DataConfig holds spreadsheet locations and parsing switches
type DataConfig struct {
	McdFile     string `validate:"required"`
	TwitterFile string `validate:"required"`
	MoviesFile  string `validate:"required"`

	// FoldCaseReviewTime lower-cases review_time text before keyword matching.
	FoldCaseReviewTime bool
}

// PathConfig holds file system paths
type PathConfig struct {
	AssetsDir     string
	WordCloudPath string
}

// LoggingConfig holds log verbosity
type LoggingConfig struct {
	Level string `validate:"required,oneof=ERROR WARN INFO DEBUG TRACE"`
}

var defaultPorts = map[Variant]string{
	VariantCombined: "5050",
	VariantMcd:      "8050",
	VariantTwitter:  "5050",
	VariantMovies:   "5002",
}

// Load reads configuration from environment variables and validates it.
// With an empty environment the result reproduces the fixed file names and ports.
func Load(variant Variant) (*Config, error) {
	port, ok := defaultPorts[variant]
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown variant %q", variant))
	}

	config := &Config{
		Variant: variant,
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", port),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			McdFile:     getEnvOrDefault("MCD_FILE", "McDonald_s_Reviews.xlsx"),
			TwitterFile: getEnvOrDefault("TWITTER_FILE", "twitter_dataset_1.xlsx"),
			MoviesFile:  getEnvOrDefault("MOVIES_FILE", "n_movies_coloured.xlsx"),
			// Only the combined viewer folded case historically.
			FoldCaseReviewTime: getEnvBoolOrDefault("FOLD_CASE_REVIEW_TIME", variant == VariantCombined),
		},
		Paths: PathConfig{
			AssetsDir:     getEnvOrDefault("ASSETS_DIR", "assets"),
			WordCloudPath: loadWordCloudPath(variant),
		},
		Logging: LoggingConfig{
			Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Addr returns the listen address for the configured port
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func loadWordCloudPath(variant Variant) string {
	// Only the standalone twitter dashboard wrote its word cloud to disk.
	def := ""
	if variant == VariantTwitter {
		def = "wordcloud.png"
	}
	if value, ok := os.LookupEnv("WORDCLOUD_PATH"); ok {
		return value
	}
	return def
}

var validate = validator.New()

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %q)", fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value())))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return errors.ConfigInvalid(strings.Join(msgs, "; "))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
