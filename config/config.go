// Package config loads the ghl-sheets configuration from an optional YAML file, a
// .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Credentials string     `mapstructure:"credentials"`
	Workdir     string     `mapstructure:"workdir"`
	Log         Log        `mapstructure:"log"`
	Worksheets  Worksheets `mapstructure:"worksheets"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Worksheets holds the worksheet titles used by upload and cross-reference, and the
// grid size of any worksheet that has to be created.
type Worksheets struct {
	Export       string `mapstructure:"export"`
	Appointments string `mapstructure:"appointments"`
	Results      string `mapstructure:"results"`
	Rows         int64  `mapstructure:"rows"`
	Columns      int64  `mapstructure:"columns"`
}

var env = map[string]string{
	"credentials": "GOOGLE_APPLICATION_CREDENTIALS",
	"workdir":     "GHL_SHEETS_WORKDIR",
	"log.level":   "GHL_SHEETS_LOG_LEVEL",
	"log.format":  "GHL_SHEETS_LOG_FORMAT",
}

// Load reads the configuration. If file is empty, ghl-sheets.yaml is looked up in the
// current directory and the default working directory and is optional. Environment
// variables (including any set from ./.env) override file settings.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file (%w)", err)
	}

	v := viper.New()

	v.SetDefault("credentials", DEFAULT_CREDENTIALS)
	v.SetDefault("workdir", DEFAULT_WORKDIR)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("worksheets.export", "GHL export")
	v.SetDefault("worksheets.appointments", "Appointment sheet")
	v.SetDefault("worksheets.results", "Cross-reference results")
	v.SetDefault("worksheets.rows", 100)
	v.SetDefault("worksheets.columns", 20)

	for key, variable := range env {
		if err := v.BindEnv(key, variable); err != nil {
			return nil, err
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading configuration file %v (%w)", file, err)
		}
	} else {
		v.SetConfigName("ghl-sheets")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DEFAULT_WORKDIR)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading configuration (%w)", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration (%w)", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration (%w)", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Worksheets.Export) == "" {
		return fmt.Errorf("missing 'export' worksheet name")
	}

	if strings.TrimSpace(c.Worksheets.Appointments) == "" {
		return fmt.Errorf("missing 'appointments' worksheet name")
	}

	if strings.TrimSpace(c.Worksheets.Results) == "" {
		return fmt.Errorf("missing 'results' worksheet name")
	}

	if c.Worksheets.Rows < 1 || c.Worksheets.Columns < 1 {
		return fmt.Errorf("invalid default worksheet size %vx%v", c.Worksheets.Rows, c.Worksheets.Columns)
	}

	return nil
}
