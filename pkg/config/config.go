/*
Package config manages TOML config for SiteSuggest services.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/sitesuggest/internal/utils"
	"github.com/bastiangx/sitesuggest/pkg/session"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	"github.com/charmbracelet/log"
)

const appDirName = "sitesuggest"

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Site    SiteConfig    `toml:"site"`
	Catalog CatalogConfig `toml:"catalog"`
	UI      UIConfig      `toml:"ui"`
}

// SearchConfig has matching and input timing options.
type SearchConfig struct {
	MinQuery    int    `toml:"min_query"`
	MaxResults  int    `toml:"max_results"`
	DebounceMs  int    `toml:"debounce_ms"`
	MarkerOpen  string `toml:"marker_open"`
	MarkerClose string `toml:"marker_close"`
}

// SiteConfig holds where selections and submitted searches lead.
type SiteConfig struct {
	BaseURL     string `toml:"base_url"`
	ResultsPage string `toml:"results_page"`
	QueryParam  string `toml:"query_param"`
}

// CatalogConfig points at an optional catalog file.
type CatalogConfig struct {
	Path string `toml:"path"`
}

// UIConfig holds terminal interface options.
type UIConfig struct {
	ToastMs   int `toml:"toast_ms"`
	TermLimit int `toml:"term_limit"`
}

// GetDefaultConfigPath returns the default path for config.toml. The
// directory comes from the same PathResolver the binary uses for its catalog
// and log files, so every path agrees on one config dir.
func GetDefaultConfigPath() (string, error) {
	pr, err := utils.NewPathResolver(appDirName)
	if err != nil {
		log.Errorf("Failed to resolve config dir: %v", err)
		return "", err
	}
	return pr.GetConfigPath("config.toml")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/sitesuggest/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MinQuery:    session.DefaultMinQueryLength,
			MaxResults:  suggest.DefaultMaxResults,
			DebounceMs:  300,
			MarkerOpen:  suggest.DefaultMarker.Open,
			MarkerClose: suggest.DefaultMarker.Close,
		},
		Site: SiteConfig{
			BaseURL:     "",
			ResultsPage: session.DefaultResultsPage,
			QueryParam:  session.DefaultQueryParam,
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		UI: UIConfig{
			ToastMs:   3000,
			TermLimit: 5,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.DecodeTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse keeps every section that still decodes when the file as a whole does not
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.DecodeTOMLTable(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.Section(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.Section(tempConfig, "site"); ok {
		extractSiteConfig(section, &config.Site)
	}
	if section, ok := utils.Section(tempConfig, "catalog"); ok {
		extractCatalogConfig(section, &config.Catalog)
	}
	if section, ok := utils.Section(tempConfig, "ui"); ok {
		extractUIConfig(section, &config.UI)
	}
	config.normalize()
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.IntField(data, "min_query"); ok {
		search.MinQuery = val
	}
	if val, ok := utils.IntField(data, "max_results"); ok {
		search.MaxResults = val
	}
	if val, ok := utils.IntField(data, "debounce_ms"); ok {
		search.DebounceMs = val
	}
	if val, ok := utils.StringField(data, "marker_open"); ok {
		search.MarkerOpen = val
	}
	if val, ok := utils.StringField(data, "marker_close"); ok {
		search.MarkerClose = val
	}
}

func extractSiteConfig(data map[string]any, site *SiteConfig) {
	if val, ok := utils.StringField(data, "base_url"); ok {
		site.BaseURL = val
	}
	if val, ok := utils.StringField(data, "results_page"); ok {
		site.ResultsPage = val
	}
	if val, ok := utils.StringField(data, "query_param"); ok {
		site.QueryParam = val
	}
}

func extractCatalogConfig(data map[string]any, catalog *CatalogConfig) {
	if val, ok := utils.StringField(data, "path"); ok {
		catalog.Path = val
	}
}

func extractUIConfig(data map[string]any, ui *UIConfig) {
	if val, ok := utils.IntField(data, "toast_ms"); ok {
		ui.ToastMs = val
	}
	if val, ok := utils.IntField(data, "term_limit"); ok {
		ui.TermLimit = val
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Search.MinQuery < 1 {
		log.Warnf("search.min_query must be >= 1, got %d. Using %d", c.Search.MinQuery, def.Search.MinQuery)
		c.Search.MinQuery = def.Search.MinQuery
	}
	if c.Search.MaxResults < 1 {
		log.Warnf("search.max_results must be >= 1, got %d. Using %d", c.Search.MaxResults, def.Search.MaxResults)
		c.Search.MaxResults = def.Search.MaxResults
	}
	if c.Search.DebounceMs < 0 {
		c.Search.DebounceMs = def.Search.DebounceMs
	}
	if c.Site.ResultsPage == "" {
		c.Site.ResultsPage = def.Site.ResultsPage
	}
	if c.Site.QueryParam == "" {
		c.Site.QueryParam = def.Site.QueryParam
	}
	if c.UI.ToastMs <= 0 {
		c.UI.ToastMs = def.UI.ToastMs
	}
	if c.UI.TermLimit < 0 {
		c.UI.TermLimit = def.UI.TermLimit
	}
}

// Marker returns the configured emphasis marker.
func (c *Config) Marker() suggest.Marker {
	return suggest.Marker{Open: c.Search.MarkerOpen, Close: c.Search.MarkerClose}
}

// Debounce returns the keystroke quiet interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// ToastDuration returns how long transient notices stay visible.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastMs) * time.Millisecond
}

// SessionOptions maps the config onto session options.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		MinQueryLength: c.Search.MinQuery,
		Debounce:       c.Debounce(),
		BaseURL:        c.Site.BaseURL,
		ResultsPage:    c.Site.ResultsPage,
		QueryParam:     c.Site.QueryParam,
	}
}

// IndexOptions maps the config onto index options.
func (c *Config) IndexOptions() []suggest.Option {
	return []suggest.Option{
		suggest.WithMaxResults(c.Search.MaxResults),
		suggest.WithMarker(c.Marker()),
	}
}

// Overrides holds settings given on the command line. They win over the
// file on every load, including reloads. Zero fields leave the file's value.
type Overrides struct {
	MaxResults int
	MinQuery   int
}

// Apply writes the set fields of o onto c.
func (o Overrides) Apply(c *Config) {
	if o.MaxResults > 0 {
		c.Search.MaxResults = o.MaxResults
	}
	if o.MinQuery > 0 {
		c.Search.MinQuery = o.MinQuery
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
