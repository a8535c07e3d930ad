
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	ServerPort        string         `mapstructure:"SERVER_PORT"`
	GinMode           string         `mapstructure:"GIN_MODE"`
	CatalogPath       string         `mapstructure:"CATALOG_PATH"`
	RequirementsPath  string         `mapstructure:"REQUIREMENTS_PATH"`
	RefreshInterval   time.Duration  `mapstructure:"REFRESH_INTERVAL"`
	ExtractionTimeout time.Duration  `mapstructure:"EXTRACTION_TIMEOUT"`
	Forecast          ForecastConfig `mapstructure:"FORECAST"`
}

// ForecastConfig holds the institution-tuned heuristics used by the progress
// aggregator and graduation forecaster. These vary per institution, so they are
// configuration rather than constants.
type ForecastConfig struct {
	CoursesPerSemester int      `mapstructure:"COURSES_PER_SEMESTER"`
	HoursPerCredit     int      `mapstructure:"HOURS_PER_CREDIT"`
	DefaultTotalHours  int      `mapstructure:"DEFAULT_TOTAL_HOURS"`
	OverflowCategories []string `mapstructure:"OVERFLOW_CATEGORIES"`
}

// LoadConfig loads configuration from environment variables and config.yaml
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Set defaults
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("GIN_MODE", "debug") // gin.DebugMode, gin.ReleaseMode, gin.TestMode
	viper.SetDefault("CATALOG_PATH", "data/catalog.json")
	viper.SetDefault("REQUIREMENTS_PATH", "data/requirements.yaml")
	viper.SetDefault("REFRESH_INTERVAL", "30m")
	viper.SetDefault("EXTRACTION_TIMEOUT", "15s")
	viper.SetDefault("FORECAST.COURSES_PER_SEMESTER", 6)
	viper.SetDefault("FORECAST.HOURS_PER_CREDIT", 15)
	viper.SetDefault("FORECAST.DEFAULT_TOTAL_HOURS", 2400)
	viper.SetDefault("FORECAST.OVERFLOW_CATEGORIES", []string{
		"major_elective", "humanities_elective", "extension_elective", "arts_elective",
	})
	// Read from config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("config.yaml not found, using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}
	// Override with environment variables (e.g., GRADPATH_SERVER_PORT)
	viper.SetEnvPrefix("GRADPATH")
	viper.AutomaticEnv()
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}
