package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
)

// FileName is the config file looked up in the user config directory
const FileName = ".modgrip.toml"

// CacheOff disables the local listing cache when used as Cache.Path
const CacheOff = "off"

var (
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidFilter   = errors.New("invalid filter")
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	API     APISettings    `toml:"api"`
	Search  SearchSettings `toml:"search"`
	UI      UISettings     `toml:"ui"`
	Cache   CacheSettings  `toml:"cache"`
}

// APISettings configures the remote catalog client
type APISettings struct {
	Endpoint          string  `toml:"endpoint"`
	Token             string  `toml:"token"`
	Timeout           string  `toml:"timeout"` // Go duration, e.g. "15s"
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// SearchSettings configures the search controller
type SearchSettings struct {
	DebounceMs      int    `toml:"debounce_ms"`
	PageSizes       []int  `toml:"page_sizes"`
	DefaultPageSize int    `toml:"default_page_size"`
	DefaultFilter   string `toml:"default_filter"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowTags bool `toml:"show_tags"`
}

// CacheSettings locates the sqlite listing cache
type CacheSettings struct {
	Path string `toml:"path"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return &configService{filePath: filepath.Join(Dir(), FileName)}
}

// NewConfigServiceAt creates a config service bound to path. The bus may be nil.
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus, filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Dir returns the modgrip config directory
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "modgrip")
}

// Load loads the configuration, writing defaults on first run
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			Endpoint:          "http://localhost:8080/api",
			Timeout:           "15s",
			RequestsPerSecond: 5,
		},
		Search: SearchSettings{
			DebounceMs:      1500,
			PageSizes:       []int{10, 25, 50, 100},
			DefaultPageSize: 25,
			DefaultFilter:   string(domain.FilterAll),
		},
		UI: UISettings{
			ShowTags: true,
		},
	}
}

// Validate checks the search settings and the API timeout
func (c *Config) Validate() error {
	if len(c.Search.PageSizes) == 0 {
		return fmt.Errorf("%w: no page sizes configured", ErrInvalidPageSize)
	}
	for _, size := range c.Search.PageSizes {
		if size <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
		}
	}
	if !slices.Contains(c.Search.PageSizes, c.Search.DefaultPageSize) {
		return fmt.Errorf("%w: default %d is not in %v", ErrInvalidPageSize, c.Search.DefaultPageSize, c.Search.PageSizes)
	}

	filter, err := domain.ParseFilterMode(c.Search.DefaultFilter)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	if !filter.Selectable() {
		return fmt.Errorf("%w: %q cannot be selected", ErrInvalidFilter, filter)
	}

	if c.Search.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative: %d", c.Search.DebounceMs)
	}
	if _, err := c.API.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// Debounce returns the quiescence window
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// Filter returns the default filter mode
func (s SearchSettings) Filter() domain.FilterMode {
	return domain.FilterMode(s.DefaultFilter)
}

// TimeoutDuration parses the HTTP timeout. An empty value means no timeout.
func (a APISettings) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api timeout %q: %w", a.Timeout, err)
	}
	return d, nil
}

// CachePath resolves the cache location. An empty result means the cache is off.
func (c CacheSettings) CachePath() string {
	switch c.Path {
	case CacheOff:
		return ""
	case "":
		return filepath.Join(Dir(), "cache.db")
	default:
		return c.Path
	}
}
