package logdw

// suppressSelf reports whether this process is the collector daemon itself.
// Libraries the daemon links against log through the same path, and those
// records would otherwise loop back into it.
func (t *Transport) suppressSelf() bool {
	cfg := t.getConfig()
	if !cfg.SuppressSelf {
		return false
	}

	uid := t.state.lastUID.Load()
	if uid == uidUnchecked {
		uid = t.uid()
		t.state.lastUID.Store(uid)
	}
	return uid == cfg.DaemonUID
}

// Loggable reports whether a record of prio for tag passes the configured threshold.
// A per-tag level wins over min_priority.
func (t *Transport) Loggable(prio Priority, tag string) bool {
	levels := t.levels.Load().(*thresholds)
	threshold := levels.min
	if p, ok := levels.tags[tag]; ok {
		threshold = p
	}
	return prio >= threshold
}
