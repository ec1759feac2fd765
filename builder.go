package logdw

// Builder provides a fluent API for building transport configurations.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Transport with the specified configuration.
func (b *Builder) Build() (*Transport, error) {
	if b.err != nil {
		return nil, b.err
	}

	t := NewTransport()
	if err := t.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return t, nil
}

// SocketPath sets the collector socket path.
func (b *Builder) SocketPath(path string) *Builder {
	b.cfg.SocketPath = path
	return b
}

// MaxPayload sets the per-record payload cap.
func (b *Builder) MaxPayload(size int64) *Builder {
	b.cfg.MaxPayload = size
	return b
}

// SuppressSelf enables or disables the daemon self-filter.
func (b *Builder) SuppressSelf(enable bool) *Builder {
	b.cfg.SuppressSelf = enable
	return b
}

// DaemonUID sets the identity treated as the collector daemon.
func (b *Builder) DaemonUID(uid int64) *Builder {
	b.cfg.DaemonUID = uid
	return b
}

// MinPriority sets the Loggable fallback threshold from a letter or name.
func (b *Builder) MinPriority(prio string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParsePriority(prio); err != nil {
		b.err = err
		return b
	}
	b.cfg.MinPriority = prio
	return b
}

// TagLevels sets per-tag Loggable thresholds, "TAG=d,OTHER=w".
func (b *Builder) TagLevels(levels string) *Builder {
	b.cfg.TagLevels = levels
	return b
}

// InternalErrorsToStderr reports transport failures on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}
