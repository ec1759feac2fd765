package logdw

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, DefaultSocketPath, cfg.SocketPath)
	assert.Equal(t, int64(MaxPayload), cfg.MaxPayload)
	assert.True(t, cfg.SuppressSelf)
	assert.Equal(t, int64(AIDLogd), cfg.DaemonUID)
	assert.Equal(t, "info", cfg.MinPriority)
	assert.Empty(t, cfg.TagLevels)
	assert.False(t, cfg.InternalErrorsToStderr)
	assert.NoError(t, cfg.validate())

	// each call is a fresh copy
	cfg.SocketPath = "/changed"
	assert.Equal(t, DefaultSocketPath, DefaultConfig().SocketPath)
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.SocketPath = "/custom/path"

	cfg2 := cfg1.Clone()
	assert.Equal(t, cfg1.SocketPath, cfg2.SocketPath)

	cfg1.SocketPath = "/other"
	assert.Equal(t, "/custom/path", cfg2.SocketPath)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:      "valid config",
			modify:    func(c *Config) {},
			wantError: "",
		},
		{
			name:      "empty socket path",
			modify:    func(c *Config) { c.SocketPath = "  " },
			wantError: "socket_path cannot be empty",
		},
		{
			name:      "socket path too long",
			modify:    func(c *Config) { c.SocketPath = "/" + strings.Repeat("s", 107) },
			wantError: "socket_path too long",
		},
		{
			name:      "zero payload",
			modify:    func(c *Config) { c.MaxPayload = 0 },
			wantError: "max_payload must be between",
		},
		{
			name:      "payload beyond a datagram",
			modify:    func(c *Config) { c.MaxPayload = 65535 },
			wantError: "max_payload must be between",
		},
		{
			name:      "negative daemon uid",
			modify:    func(c *Config) { c.DaemonUID = -1 },
			wantError: "daemon_uid cannot be negative",
		},
		{
			name:      "invalid min priority",
			modify:    func(c *Config) { c.MinPriority = "loud" },
			wantError: "invalid min_priority",
		},
		{
			name:      "malformed tag levels",
			modify:    func(c *Config) { c.TagLevels = "A=d,B" },
			wantError: "invalid tag_levels entry",
		},
		{
			name:      "unknown tag level",
			modify:    func(c *Config) { c.TagLevels = "A=x" },
			wantError: "invalid tag_levels entry for 'A'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.validate()

			if tt.wantError == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
			}
		})
	}
}

func TestApplyConfigString(t *testing.T) {
	tests := []struct {
		name      string
		overrides []string
		check     func(t *testing.T, cfg *Config)
		wantError string
	}{
		{
			name:      "all keys",
			overrides: []string{"socket_path=/run/logdw", "max_payload=512", "suppress_self=false", "daemon_uid=99", "min_priority=d", "tag_levels=A=e", "internal_errors_to_stderr=true"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/run/logdw", cfg.SocketPath)
				assert.Equal(t, int64(512), cfg.MaxPayload)
				assert.False(t, cfg.SuppressSelf)
				assert.Equal(t, int64(99), cfg.DaemonUID)
				assert.Equal(t, "d", cfg.MinPriority)
				assert.Equal(t, "A=e", cfg.TagLevels)
				assert.True(t, cfg.InternalErrorsToStderr)
			},
		},
		{
			name:      "unknown key",
			overrides: []string{"level=1"},
			wantError: "unknown configuration key 'level'",
		},
		{
			name:      "bad integer",
			overrides: []string{"max_payload=big"},
			wantError: "invalid integer value for max_payload",
		},
		{
			name:      "bad boolean",
			overrides: []string{"suppress_self=maybe"},
			wantError: "invalid boolean value for suppress_self",
		},
		{
			name:      "errors are combined",
			overrides: []string{"nokey", "daemon_uid=x"},
			wantError: "multiple configuration errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := createTestTransport(t)
			err := tr.ApplyConfigString(tt.overrides...)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.Equal(t, DefaultConfig(), tr.GetConfig())
				return
			}
			require.NoError(t, err)
			tt.check(t, tr.GetConfig())
		})
	}
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("values override defaults", func(t *testing.T) {
		path := filepath.Join(dir, "logdw.toml")
		content := `
[logdw]
socket_path = "/run/collector"
max_payload = 2048
suppress_self = false
tag_levels = "Wifi=v"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := NewConfigFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/run/collector", cfg.SocketPath)
		assert.Equal(t, int64(2048), cfg.MaxPayload)
		assert.False(t, cfg.SuppressSelf)
		assert.Equal(t, "Wifi=v", cfg.TagLevels)
		// untouched keys keep defaults
		assert.Equal(t, int64(AIDLogd), cfg.DaemonUID)
		assert.Equal(t, "info", cfg.MinPriority)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := NewConfigFromFile(filepath.Join(dir, "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[logdw]\nmax_payload = 0\n"), 0644))

		_, err := NewConfigFromFile(path)
		assert.Error(t, err)
	})
}

func TestBuilder_Build(t *testing.T) {
	t.Run("successful build returns configured transport", func(t *testing.T) {
		tr, err := NewBuilder().
			SocketPath("/run/test/logdw").
			MaxPayload(1000).
			SuppressSelf(false).
			DaemonUID(1234).
			MinPriority("debug").
			TagLevels("X=e").
			InternalErrorsToStderr(true).
			Build()
		require.NoError(t, err)
		require.NotNil(t, tr)

		cfg := tr.GetConfig()
		assert.Equal(t, "/run/test/logdw", cfg.SocketPath)
		assert.Equal(t, int64(1000), cfg.MaxPayload)
		assert.False(t, cfg.SuppressSelf)
		assert.Equal(t, int64(1234), cfg.DaemonUID)
		assert.Equal(t, "debug", cfg.MinPriority)
		assert.True(t, cfg.InternalErrorsToStderr)
		assert.True(t, tr.Loggable(PriorityDebug, "any"))
		assert.False(t, tr.Loggable(PriorityWarn, "X"))
	})

	t.Run("builder error accumulation", func(t *testing.T) {
		tr, err := NewBuilder().
			MinPriority("shout").
			SocketPath("/not/evaluated").
			Build()
		require.Error(t, err)
		assert.Nil(t, tr)
		assert.Contains(t, err.Error(), "invalid priority")
	})

	t.Run("validation error", func(t *testing.T) {
		_, err := NewBuilder().MaxPayload(-1).Build()
		assert.Error(t, err)
	})
}
