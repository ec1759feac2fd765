package logdw

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Transport is the process-wide connection to the collector daemon.
// All methods are safe for concurrent use and never block on the collector.
type Transport struct {
	currentConfig atomic.Value // stores *Config
	levels        atomic.Value // stores *thresholds
	available     atomic.Int32 // 0 unknown, 1 writable, 2 not writable
	state         State
	stats         counters
	initMu        sync.Mutex

	// collaborators, replaced in tests
	dial     Dialer
	uid      func() int64
	threadID func() uint16
	now      func() time.Time
}

// NewTransport creates a Transport with default settings.
// No socket is opened until the first write.
func NewTransport() *Transport {
	t := &Transport{
		dial:     dialSocket,
		uid:      currentUID,
		threadID: currentThreadID,
		now:      time.Now,
	}

	cfg := DefaultConfig()
	levels, _ := cfg.thresholds()
	t.currentConfig.Store(cfg)
	t.levels.Store(levels)

	t.state.channel.Store(&channelBox{})
	t.state.lastUID.Store(uidUnchecked)
	t.setStrategy(strategyUninitialized)

	return t
}

// ApplyConfig applies a validated configuration to the transport.
// Changing the socket path drops the current channel; the next write reconnects.
func (t *Transport) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}
	levels, _ := cfg.thresholds()

	t.initMu.Lock()
	defer t.initMu.Unlock()

	oldCfg := t.getConfig()
	t.currentConfig.Store(cfg.Clone())
	t.levels.Store(levels)

	if oldCfg.SocketPath == cfg.SocketPath {
		return nil
	}

	t.available.Store(0)
	t.setStrategy(strategyUninitialized)
	t.state.disabledErrno.Store(0)
	if ch := t.loadChannel(); ch != nil {
		t.state.channel.Store(&channelBox{})
		if err := ch.Close(); err != nil {
			t.internalLog("warning - failed to close channel on socket path change: %v\n", err)
		}
	}
	return nil
}

// ApplyConfigString applies string key-value overrides to the current configuration.
// Each override should be in the format "key=value".
func (t *Transport) ApplyConfigString(overrides ...string) error {
	cfg := t.getConfig().Clone()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return t.ApplyConfig(cfg)
}

// GetConfig returns a copy of current configuration
func (t *Transport) GetConfig() *Config {
	return t.getConfig().Clone()
}

// getConfig returns the current configuration (thread-safe)
func (t *Transport) getConfig() *Config {
	return t.currentConfig.Load().(*Config)
}

// dispatch routes one record through the current write strategy
func (t *Transport) dispatch(id LogID, payload [][]byte) (int, error) {
	if t.suppressSelf() {
		t.stats.Suppressed.Add(1)
		return 0, nil
	}

	switch t.currentStrategy() {
	case strategyActive:
		return t.writeActive(id, payload)
	case strategyDisabled:
		t.stats.Dropped.Add(1)
		return 0, t.disabledError()
	default:
		return t.writeInit(id, payload)
	}
}

// writeInit performs the one-time channel setup, then forwards the record
func (t *Transport) writeInit(id LogID, payload [][]byte) (int, error) {
	t.initMu.Lock()
	if t.currentStrategy() == strategyUninitialized {
		if err := t.initialize(); err != nil {
			errno := toErrno(err)
			t.disable(errno)
			t.initMu.Unlock()
			t.internalLog("collector setup failed, transport disabled: %v\n", errno)
			t.stats.Dropped.Add(1)
			return 0, errno
		}
		t.setStrategy(strategyActive)
	}
	t.initMu.Unlock()

	switch t.currentStrategy() {
	case strategyActive:
		return t.writeActive(id, payload)
	case strategyDisabled:
		t.stats.Dropped.Add(1)
		return 0, t.disabledError()
	default:
		// reset by Close between unlock and here
		t.stats.Dropped.Add(1)
		return 0, syscall.EBADF
	}
}

// writeActive is the lock-free hot path.
// The write below can be lost but never blocks: EAGAIN means the collector is
// overloaded, ENOTCONN means it went away and triggers one reconnect.
func (t *Transport) writeActive(id LogID, payload [][]byte) (int, error) {
	cfg := t.getConfig()
	frame := buildFrame(id, t.threadID(), t.now(), payload, int(cfg.MaxPayload))

	n, err := send(t.loadChannel(), frame)
	if err == syscall.ENOTCONN {
		n, err = t.reconnect(frame)
	}
	if err != nil {
		t.stats.Dropped.Add(1)
		return 0, err
	}

	n -= headerLen
	if n < 0 {
		n = 0
	}
	t.stats.FramesSent.Add(1)
	t.stats.BytesSent.Add(uint64(n))
	return n, nil
}

// reconnect re-runs channel setup and resends frame once.
// The retry carries the original header, timestamp included.
func (t *Transport) reconnect(frame [][]byte) (int, error) {
	t.initMu.Lock()
	if t.currentStrategy() != strategyActive {
		t.initMu.Unlock()
		return 0, syscall.EBADF
	}
	t.stats.Reconnects.Add(1)
	err := t.initialize()
	ch := t.loadChannel()
	t.initMu.Unlock()

	if err != nil {
		errno := toErrno(err)
		t.internalLog("reconnect to collector failed: %v\n", errno)
		return 0, errno
	}
	return send(ch, frame)
}

// send writes one frame; a missing channel reads as not connected
func send(ch Channel, frame [][]byte) (int, error) {
	if ch == nil {
		return 0, syscall.ENOTCONN
	}
	n, err := ch.Writev(frame)
	if err != nil {
		return 0, toErrno(err)
	}
	return n, nil
}

// Available reports whether the collector socket exists and is writable.
// The answer is cached until the socket path changes.
func (t *Transport) Available() bool {
	switch t.available.Load() {
	case 1:
		return true
	case 2:
		return false
	}
	ok := socketWritable(t.getConfig().SocketPath)
	if ok {
		t.available.Store(1)
	} else {
		t.available.Store(2)
	}
	return ok
}

// internalLog handles writing internal transport diagnostics to stderr, if enabled.
// The transport never logs through itself.
func (t *Transport) internalLog(format string, args ...any) {
	cfg := t.getConfig()
	if !cfg.InternalErrorsToStderr {
		return
	}

	// Ensure consistent "logdw: " prefix
	if !strings.HasPrefix(format, "logdw: ") {
		format = "logdw: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
