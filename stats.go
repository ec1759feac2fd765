package logdw

import (
	"fmt"
	"sync/atomic"
)

// counters are updated on every write without locking
type counters struct {
	FramesSent atomic.Uint64 // Frames accepted by the socket
	BytesSent  atomic.Uint64 // Caller payload bytes in those frames
	Dropped    atomic.Uint64 // Records lost to any error
	Suppressed atomic.Uint64 // Records dropped by the self-filter
	Setups     atomic.Uint64 // Channel dial attempts
	Reconnects atomic.Uint64 // Reconnects triggered by a vanished collector
}

// Stats is a point in time copy of the transport counters
type Stats struct {
	FramesSent uint64
	BytesSent  uint64
	Dropped    uint64
	Suppressed uint64
	Setups     uint64
	Reconnects uint64
}

// Stats returns the current counters
func (t *Transport) Stats() Stats {
	return Stats{
		FramesSent: t.stats.FramesSent.Load(),
		BytesSent:  t.stats.BytesSent.Load(),
		Dropped:    t.stats.Dropped.Load(),
		Suppressed: t.stats.Suppressed.Load(),
		Setups:     t.stats.Setups.Load(),
		Reconnects: t.stats.Reconnects.Load(),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("frames=%d bytes=%d dropped=%d suppressed=%d setups=%d reconnects=%d",
		s.FramesSent, s.BytesSent, s.Dropped, s.Suppressed, s.Setups, s.Reconnects)
}
