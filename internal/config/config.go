package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"docsorter/internal/adapters/filesystem"
	"docsorter/internal/application"
)

const (
	configFileName = "docsorter"
	configFileType = "yaml"
	envPrefix      = "DOCSORTER"

	DefaultRulesPath  = "search_keys.txt"
	DefaultWorkers    = 4
	DefaultQuarantine = "UNSORTED"
	DefaultMaxRows    = 500
	DefaultMaxCols    = 20
	DefaultMarkerExt  = ".txt"
	DefaultLogName    = "docsorter.log"
)

// Config keys
const (
	KeySource      = "source"
	KeyOutput      = "output"
	KeyRules       = "rules"
	KeyInteractive = "interactive"
	KeyWorkers     = "workers"
	KeyQuarantine  = "quarantine"
	KeyMaxRows     = "limits.max_rows"
	KeyMaxCols     = "limits.max_cols"
	KeyCleanup     = "cleanup.enabled"
	KeyMarkerExt   = "cleanup.marker_ext"
	KeyCache       = "cache.enabled"
	KeyCachePath   = "cache.path"
	KeyLogFile     = "log.file"
	KeyLogLevel    = "log.level"
	KeyEditor      = "editor"
	KeyAssumeYes   = "assume_yes"
)

// Config holds all configuration values.
type Config struct {
	SourceDir   string
	OutputDir   string
	RulesPath   string
	Interactive bool
	Workers     int
	Quarantine  string

	// Spreadsheet reading limits
	MaxRows int
	MaxCols int

	// Stray-marker housekeeping
	CleanupEnabled bool
	MarkerExt      string

	// Extracted-text cache
	CacheEnabled bool
	CachePath    string

	// Logging
	LogFile  string
	LogLevel slog.Level

	Editor    string
	AssumeYes bool

	// File the values were read from, empty when none was found
	File string
}

// New returns a viper instance with defaults and environment binding. A
// config file is read from configFile when given, otherwise from
// docsorter.yaml in the working directory or $XDG_CONFIG_HOME/docsorter.
// A missing file is not an error.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyRules, DefaultRulesPath)
	v.SetDefault(KeyWorkers, DefaultWorkers)
	v.SetDefault(KeyQuarantine, DefaultQuarantine)
	v.SetDefault(KeyMaxRows, DefaultMaxRows)
	v.SetDefault(KeyMaxCols, DefaultMaxCols)
	v.SetDefault(KeyCleanup, true)
	v.SetDefault(KeyMarkerExt, DefaultMarkerExt)
	v.SetDefault(KeyCache, true)
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, &application.ConfigError{Path: configFile, Reason: "unreadable config file", Err: err}
	}
	return v, nil
}

// FromViper resolves the settings held by v.
func FromViper(v *viper.Viper) Config {
	cfg := Config{
		SourceDir:      expand(v.GetString(KeySource)),
		OutputDir:      expand(v.GetString(KeyOutput)),
		RulesPath:      expand(v.GetString(KeyRules)),
		Interactive:    v.GetBool(KeyInteractive),
		Workers:        v.GetInt(KeyWorkers),
		Quarantine:     strings.TrimSpace(v.GetString(KeyQuarantine)),
		MaxRows:        v.GetInt(KeyMaxRows),
		MaxCols:        v.GetInt(KeyMaxCols),
		CleanupEnabled: v.GetBool(KeyCleanup),
		MarkerExt:      v.GetString(KeyMarkerExt),
		CacheEnabled:   v.GetBool(KeyCache),
		CachePath:      expand(v.GetString(KeyCachePath)),
		LogFile:        expand(v.GetString(KeyLogFile)),
		LogLevel:       parseLogLevel(v.GetString(KeyLogLevel)),
		Editor:         v.GetString(KeyEditor),
		AssumeYes:      v.GetBool(KeyAssumeYes),
		File:           v.ConfigFileUsed(),
	}
	if cfg.LogFile == "" && cfg.OutputDir != "" {
		cfg.LogFile = filepath.Join(cfg.OutputDir, DefaultLogName)
	}
	if cfg.MarkerExt != "" && !strings.HasPrefix(cfg.MarkerExt, ".") {
		cfg.MarkerExt = "." + cfg.MarkerExt
	}
	return cfg
}

// Validate checks the settings every command relies on.
func (c Config) Validate() error {
	if err := application.ValidateRequired("rulesPath", c.RulesPath); err != nil {
		return err
	}
	if c.Workers < 1 {
		return &application.ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	if c.MaxRows < 1 || c.MaxCols < 1 {
		return &application.ValidationError{Field: "limits", Message: "max_rows and max_cols must be positive"}
	}
	return application.ValidateRequired("quarantine", c.Quarantine)
}

// ValidateRun additionally checks the directories of a sorting run.
func (c Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := application.ValidateRequired("sourceDir", c.SourceDir); err != nil {
		return err
	}
	if err := application.ValidateRequired("outputDir", c.OutputDir); err != nil {
		return err
	}

	info, err := os.Stat(c.SourceDir)
	if err != nil {
		return &application.ValidationError{Field: "source", Message: fmt.Sprintf("cannot access %s: %v", c.SourceDir, err)}
	}
	if !info.IsDir() {
		return &application.ValidationError{Field: "source", Message: c.SourceDir + " is not a directory"}
	}

	src, _ := filepath.Abs(c.SourceDir)
	out, _ := filepath.Abs(c.OutputDir)
	if src == out {
		return &application.ValidationError{Field: "output", Message: "must differ from the source directory"}
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/docsorter
func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "docsorter")
}

func expand(path string) string {
	if path == "" {
		return ""
	}
	return filesystem.ExpandHome(strings.TrimSpace(path))
}
