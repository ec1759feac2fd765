package logdw

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all transport configuration values
type Config struct {
	// Collector endpoint
	SocketPath string `toml:"socket_path"`
	MaxPayload int64  `toml:"max_payload"` // Caller payload cap per record

	// Self-filter
	SuppressSelf bool  `toml:"suppress_self"` // Drop records when running as the daemon
	DaemonUID    int64 `toml:"daemon_uid"`    // Daemon identity after privilege drop

	// Loggable thresholds
	MinPriority string `toml:"min_priority"` // Fallback threshold, letter or name
	TagLevels   string `toml:"tag_levels"`   // Per-tag thresholds, "TAG=d,OTHER=w"

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	SocketPath: DefaultSocketPath,
	MaxPayload: MaxPayload,

	SuppressSelf: true,
	DaemonUID:    AIDLogd,

	MinPriority: "info",
	TagLevels:   "",

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config.
// Keys live under the [logdw] table; a missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("logdw.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "logdw.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.SocketPath) == "" {
		return fmtErrorf("socket_path cannot be empty")
	}

	// sockaddr_un path limit, including the terminator
	if len(c.SocketPath) > 107 {
		return fmtErrorf("socket_path too long: %d bytes (max 107)", len(c.SocketPath))
	}

	if c.MaxPayload <= 0 || c.MaxPayload > 65535-headerLen {
		return fmtErrorf("max_payload must be between 1 and %d: %d", 65535-headerLen, c.MaxPayload)
	}

	if c.DaemonUID < 0 {
		return fmtErrorf("daemon_uid cannot be negative: %d", c.DaemonUID)
	}

	if _, err := c.thresholds(); err != nil {
		return err
	}

	return nil
}

// thresholds holds the parsed Loggable configuration
type thresholds struct {
	min  Priority
	tags map[string]Priority
}

func (c *Config) thresholds() (*thresholds, error) {
	prio, err := ParsePriority(c.MinPriority)
	if err != nil {
		return nil, fmtErrorf("invalid min_priority: %w", err)
	}
	tags, err := parseTagLevels(c.TagLevels)
	if err != nil {
		return nil, err
	}
	return &thresholds{min: prio, tags: tags}, nil
}

// parseTagLevels parses "TAG=d,OTHER=w" into a lookup table
func parseTagLevels(s string) (map[string]Priority, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	levels := make(map[string]Priority)
	for _, entry := range strings.Split(s, ",") {
		tag, value, err := parseKeyValue(entry)
		if err != nil {
			return nil, fmtErrorf("invalid tag_levels entry: %w", err)
		}
		prio, err := ParsePriority(value)
		if err != nil {
			return nil, fmtErrorf("invalid tag_levels entry for '%s': %w", tag, err)
		}
		levels[tag] = prio
	}
	return levels, nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
