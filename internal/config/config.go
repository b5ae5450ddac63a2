// Package config loads tool configuration from environment variables
// and an optional YAML file. Environment variables take precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	grerrors "github.com/tonechas/moodle-workshop-group-grades/internal/errors"
)

// envPrefix is the prefix of all environment variables read by the tool,
// e.g. WORKSHOP_PATHS_DATA_DIR.
const envPrefix = "WORKSHOP"

// configFileName is looked up in the data folder and next to the
// executable.
const configFileName = "workshop-grades.yaml"

// Config represents the complete tool configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Workshop WorkshopConfig `yaml:"workshop" envconfig:"WORKSHOP"`
}

// PathsConfig contains file system paths configuration. ReportFile and
// RosterFile are optional; when empty they are discovered inside DataDir.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"." validate:"required"`
	ReportFile string `yaml:"report_file" envconfig:"REPORT_FILE"`
	RosterFile string `yaml:"roster_file" envconfig:"ROSTER_FILE"`
	OutputFile string `yaml:"output_file" envconfig:"OUTPUT_FILE" default:"workshop-grades.csv" validate:"required"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/workshop-grades.log"`
}

// WorkshopConfig contains grading configuration.
type WorkshopConfig struct {
	// GroupingSet pins the grouping set used for submission
	// reconciliation (the "<set>" of G<set>_<group> codes). When empty
	// the set is inferred from the report's group menu or, failing
	// that, from the roster.
	GroupingSet string `yaml:"grouping_set" envconfig:"GROUPING_SET"`
}

// Load loads configuration from environment variables and, if present,
// a YAML config file. Values resolve in order: defaults, file, env.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, grerrors.NewConfigError("failed to load config from env", err)
	}

	if configFile := findConfigFile(cfg.Paths.DataDir); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, grerrors.NewConfigError(fmt.Sprintf("failed to load config from %s", configFile), err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, grerrors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// findConfigFile looks for the YAML config in the data folder first,
// then next to the executable.
func findConfigFile(dataDir string) string {
	candidates := []string{filepath.Join(dataDir, configFileName)}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), configFileName))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// mergeConfigs merges file config with env config. Env values win; a
// field set neither in env nor in the file keeps its envconfig default.
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := envCfg
	if isEnvSet("PATHS_DATA_DIR") == false && fileCfg.Paths.DataDir != "" {
		merged.Paths.DataDir = fileCfg.Paths.DataDir
	}
	if envCfg.Paths.ReportFile == "" {
		merged.Paths.ReportFile = fileCfg.Paths.ReportFile
	}
	if envCfg.Paths.RosterFile == "" {
		merged.Paths.RosterFile = fileCfg.Paths.RosterFile
	}
	if isEnvSet("PATHS_OUTPUT_FILE") == false && fileCfg.Paths.OutputFile != "" {
		merged.Paths.OutputFile = fileCfg.Paths.OutputFile
	}
	if isEnvSet("LOGGING_LEVEL") == false && fileCfg.Logging.Level != "" {
		merged.Logging.Level = fileCfg.Logging.Level
	}
	if isEnvSet("LOGGING_FORMAT") == false && fileCfg.Logging.Format != "" {
		merged.Logging.Format = fileCfg.Logging.Format
	}
	if isEnvSet("LOGGING_OUTPUT") == false && fileCfg.Logging.Output != "" {
		merged.Logging.Output = fileCfg.Logging.Output
	}
	if isEnvSet("LOGGING_FILE_PATH") == false && fileCfg.Logging.FilePath != "" {
		merged.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if envCfg.Workshop.GroupingSet == "" {
		merged.Workshop.GroupingSet = fileCfg.Workshop.GroupingSet
	}
	return merged
}

// isEnvSet reports whether the given suffix is set in the environment
// under the tool's prefix.
func isEnvSet(suffix string) bool {
	_, ok := os.LookupEnv(envPrefix + "_" + suffix)
	return ok
}
