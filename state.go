package logdw

import (
	"sync/atomic"
	"syscall"
)

// strategy is the write path currently selected by the dispatcher
type strategy uint32

const (
	strategyUninitialized strategy = iota
	strategyDisabled
	strategyActive
)

func (s strategy) String() string {
	switch s {
	case strategyUninitialized:
		return "UNINITIALIZED"
	case strategyDisabled:
		return "DISABLED"
	case strategyActive:
		return "ACTIVE"
	default:
		return "INVALID"
	}
}

// State encapsulates the runtime state of the transport
type State struct {
	strategy atomic.Uint32 // stores strategy
	channel  atomic.Value  // stores *channelBox
	lastUID  atomic.Int64  // uidUnchecked until the first write

	// set under initMu before strategy moves to disabled
	disabledErrno atomic.Uintptr
}

func (t *Transport) currentStrategy() strategy {
	return strategy(t.state.strategy.Load())
}

func (t *Transport) setStrategy(s strategy) {
	t.state.strategy.Store(uint32(s))
}

// disable records the setup failure and selects the disabled strategy. initMu held.
func (t *Transport) disable(errno syscall.Errno) {
	t.state.disabledErrno.Store(uintptr(errno))
	t.setStrategy(strategyDisabled)
}

// disabledError is the error every write returns while disabled
func (t *Transport) disabledError() error {
	if errno := syscall.Errno(t.state.disabledErrno.Load()); errno != 0 {
		return errno
	}
	// raced with Close
	return syscall.EBADF
}

// Close releases the collector channel. The next write reconnects.
// Writers racing with Close may see EBADF; tearing down the transport while
// other goroutines still log is the caller's responsibility.
func (t *Transport) Close() error {
	t.initMu.Lock()
	defer t.initMu.Unlock()

	t.setStrategy(strategyUninitialized)
	t.state.disabledErrno.Store(0)

	ch := t.loadChannel()
	if ch == nil {
		return nil
	}
	t.state.channel.Store(&channelBox{})
	if err := ch.Close(); err != nil {
		return fmtErrorf("failed to close collector channel: %w", err)
	}
	return nil
}
