package logdw

import (
	"context"
	"time"
)

// StartHeartbeat writes a statistics event every interval until ctx is done.
// The records go to the events buffer under HeartbeatTag. Interval defaults to
// one minute when not positive.
func (t *Transport) StartHeartbeat(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.logHeartbeat()
			}
		}
	}()
}

// logHeartbeat reports the counters as they were before this record
func (t *Transport) logHeartbeat() {
	stats := t.Stats()
	if _, err := t.BSWrite(HeartbeatTag, stats.String()); err != nil {
		t.internalLog("warning - heartbeat dropped: %v\n", err)
	}
}
