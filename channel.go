package logdw

// Channel is an open, connected, non-blocking datagram endpoint.
// One Writev call sends exactly one datagram.
type Channel interface {
	Writev(segs [][]byte) (int, error)
	Close() error
}

// Dialer opens a Channel to the collector socket at path
type Dialer func(path string) (Channel, error)

// channelBox is a wrapper around a Channel, atomic value type change workaround
type channelBox struct {
	ch Channel
}

// loadChannel returns the installed channel, or nil
func (t *Transport) loadChannel() Channel {
	if b, ok := t.state.channel.Load().(*channelBox); ok && b != nil {
		return b.ch
	}
	return nil
}

// initialize replaces the installed channel with a freshly dialed one.
// initMu held.
func (t *Transport) initialize() error {
	if old := t.loadChannel(); old != nil {
		t.state.channel.Store(&channelBox{})
		if err := old.Close(); err != nil {
			t.internalLog("warning - failed to close previous channel: %v\n", err)
		}
	}

	cfg := t.getConfig()
	t.stats.Setups.Add(1)
	ch, err := t.dial(cfg.SocketPath)
	if err != nil {
		return toErrno(err)
	}
	t.state.channel.Store(&channelBox{ch: ch})
	return nil
}
