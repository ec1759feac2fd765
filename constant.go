package logdw

// LogID selects the collector-side buffer a frame is routed into
type LogID uint8

const (
	LogMain LogID = iota
	LogRadio
	LogEvents
	LogSystem
	LogCrash
	logIDMax
)

var logIDNames = [logIDMax]string{
	LogMain:   "main",
	LogRadio:  "radio",
	LogEvents: "events",
	LogSystem: "system",
	LogCrash:  "crash",
}

// String returns the buffer name; out of range ids report as main
func (id LogID) String() string {
	if id >= logIDMax {
		id = LogMain
	}
	return logIDNames[id]
}

// Priority is the one byte severity carried by textual records
type Priority uint8

const (
	PriorityUnknown Priority = iota
	PriorityDefault
	PriorityVerbose
	PriorityDebug
	PriorityInfo
	PriorityWarn
	PriorityError
	PriorityFatal
	PrioritySilent
)

var priorityLetters = [...]string{
	PriorityUnknown: "?",
	PriorityDefault: "?",
	PriorityVerbose: "V",
	PriorityDebug:   "D",
	PriorityInfo:    "I",
	PriorityWarn:    "W",
	PriorityError:   "E",
	PriorityFatal:   "F",
	PrioritySilent:  "S",
}

// String returns the one letter form used by log viewers
func (p Priority) String() string {
	if int(p) >= len(priorityLetters) {
		return "?"
	}
	return priorityLetters[p]
}

// EventType tags the value that follows the numeric tag of a binary record
type EventType uint8

const (
	EventTypeInt EventType = iota
	EventTypeLong
	EventTypeString
	EventTypeList
	EventTypeFloat
)

// Wire and platform constants
const (
	// DefaultSocketPath is where the collector daemon accepts datagrams
	DefaultSocketPath = "/dev/socket/logdw"
	// MaxPayload is the largest caller payload the collector accepts per record
	MaxPayload = 4076
	// AIDRoot is the identity the daemon starts with
	AIDRoot = 0
	// AIDLogd is the daemon identity after it drops privileges
	AIDLogd = 1036

	// header: log id (1) + thread id (2) + seconds (4) + nanoseconds (4)
	headerLen = 1 + 2 + 4 + 4

	// formatted message buffer, including the terminator
	logBufSize = 1024
	// rewritten radio tag buffer, including the terminator
	radioTagSize = 32
	radioTagPrefix = "use-Rlog/RLOG-"

	uidUnchecked int64 = -1
)

// HeartbeatTag is the event tag used by StartHeartbeat records
const HeartbeatTag int32 = 0x6c6f6764
