package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/kontovy/kontovy/internal/importer"
	"github.com/kontovy/kontovy/internal/recurring"
)

// Config is the application configuration loaded from kontovy.yaml.
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Bank     string         `mapstructure:"bank"`
	Dialect  DialectConfig  `mapstructure:"dialect"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Detector DetectorConfig `mapstructure:"detector"`
}

// DialectConfig holds the default parsing conventions for export files.
type DialectConfig struct {
	Delimiter        string `mapstructure:"delimiter"`
	HasHeader        bool   `mapstructure:"has_header"`
	Encoding         string `mapstructure:"encoding"`
	DateLayout       string `mapstructure:"date_layout"`
	DecimalSeparator string `mapstructure:"decimal_separator"`
}

// PathsConfig locates the project's data files, relative to the project root.
type PathsConfig struct {
	Rules      string `mapstructure:"rules"`
	Categories string `mapstructure:"categories"`
	Ledger     string `mapstructure:"ledger"`
	Store      string `mapstructure:"store"`
}

// DetectorConfig tunes recurring-payment detection.
type DetectorConfig struct {
	MinOccurrences int `mapstructure:"min_occurrences"`
	MinConfidence  int `mapstructure:"min_confidence"`
	PrefixMergeLen int `mapstructure:"prefix_merge_len"`
}

// setDefaults registers every default so a partial config file still yields
// a complete Config.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("bank", "")
	v.SetDefault("dialect.delimiter", ";")
	v.SetDefault("dialect.has_header", true)
	v.SetDefault("dialect.encoding", "utf-8")
	v.SetDefault("dialect.date_layout", "2006-01-02")
	v.SetDefault("dialect.decimal_separator", ",")
	v.SetDefault("paths.rules", "rules/user-rules.yaml")
	v.SetDefault("paths.categories", "categories/registry.csv")
	v.SetDefault("paths.ledger", "data/transactions.csv")
	v.SetDefault("paths.store", "data/kontovy.db")
	v.SetDefault("detector.min_occurrences", 2)
	v.SetDefault("detector.min_confidence", 50)
	v.SetDefault("detector.prefix_merge_len", 6)
}

// Load reads configuration from path, filling unset values with defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Default returns a Config holding only defaults.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshal over pure defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// ImporterDialect converts the configured dialect to the importer's form.
func (c *Config) ImporterDialect() importer.Dialect {
	d := importer.DefaultDialect()
	if c.Dialect.Delimiter != "" {
		d.Delimiter = []rune(c.Dialect.Delimiter)[0]
	}
	d.HasHeader = c.Dialect.HasHeader
	if c.Dialect.Encoding != "" {
		d.Encoding = c.Dialect.Encoding
	}
	if c.Dialect.DateLayout != "" {
		d.DateLayout = c.Dialect.DateLayout
	}
	if c.Dialect.DecimalSeparator != "" {
		d.DecimalSeparator = []rune(c.Dialect.DecimalSeparator)[0]
	}
	return d
}

// RecurringConfig converts the configured thresholds to the detector's form.
func (c *Config) RecurringConfig() recurring.Config {
	cfg := recurring.DefaultConfig()
	if c.Detector.MinOccurrences > 0 {
		cfg.MinOccurrences = c.Detector.MinOccurrences
	}
	if c.Detector.MinConfidence > 0 {
		cfg.MinConfidence = c.Detector.MinConfidence
	}
	if c.Detector.PrefixMergeLen > 0 {
		cfg.PrefixMergeLen = c.Detector.PrefixMergeLen
	}
	return cfg
}

// DefaultYAML is the config file written by `kontovy init`.
const DefaultYAML = `log_level: info
bank: ""

dialect:
  delimiter: ";"
  has_header: true
  encoding: utf-8
  date_layout: "2006-01-02"
  decimal_separator: ","

paths:
  rules: rules/user-rules.yaml
  categories: categories/registry.csv
  ledger: data/transactions.csv
  store: data/kontovy.db

detector:
  min_occurrences: 2
  min_confidence: 50
  prefix_merge_len: 6
`
