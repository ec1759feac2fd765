package logdw

import (
	"fmt"
	"strings"
)

// Legacy radio subsystem tags that belong in the radio buffer
var radioTags = map[string]struct{}{
	"HTC_RIL": {},
	"AT":      {},
	"GSM":     {},
	"STK":     {},
	"CDMA":    {},
	"PHONE":   {},
	"SMS":     {},
}

func isRadioTag(tag string) bool {
	if strings.HasPrefix(tag, "RIL") || strings.HasPrefix(tag, "IMS") {
		return true
	}
	_, ok := radioTags[tag]
	return ok
}

// radioTag flags the caller for migration to the radio logging API
func radioTag(tag string) string {
	rewritten := radioTagPrefix + tag
	if len(rewritten) > radioTagSize-1 {
		rewritten = rewritten[:radioTagSize-1]
	}
	return rewritten
}

// textPayload lays out priority, tag and message as three segments
func textPayload(prio Priority, tag, msg string) [][]byte {
	tagBuf := make([]byte, 0, len(tag)+1)
	tagBuf = append(append(tagBuf, tag...), 0)
	msgBuf := make([]byte, 0, len(msg)+1)
	msgBuf = append(append(msgBuf, msg...), 0)
	return [][]byte{{byte(prio)}, tagBuf, msgBuf}
}

// Write sends a textual record to the main buffer. Radio tags are rerouted.
// It returns the number of payload bytes sent.
func (t *Transport) Write(prio Priority, tag, msg string) (int, error) {
	id := LogMain
	tag = cstring(tag)
	if isRadioTag(tag) {
		id = LogRadio
		tag = radioTag(tag)
	}
	return t.dispatch(id, textPayload(prio, tag, cstring(msg)))
}

// BufWrite sends a textual record to buffer id. Radio tags written anywhere
// but the radio buffer are rerouted.
func (t *Transport) BufWrite(id LogID, prio Priority, tag, msg string) (int, error) {
	tag = cstring(tag)
	if id != LogRadio && isRadioTag(tag) {
		id = LogRadio
		tag = radioTag(tag)
	}
	return t.dispatch(id, textPayload(prio, tag, cstring(msg)))
}

// Print formats a message printf-style and writes it
func (t *Transport) Print(prio Priority, tag, format string, args ...any) (int, error) {
	return t.Write(prio, tag, formatMessage(format, args...))
}

// BufPrint formats a message printf-style and writes it to buffer id
func (t *Transport) BufPrint(id LogID, prio Priority, tag, format string, args ...any) (int, error) {
	return t.BufWrite(id, prio, tag, formatMessage(format, args...))
}

// Println writes args as space-separated values
func (t *Transport) Println(prio Priority, tag string, args ...any) (int, error) {
	return t.Write(prio, tag, capMessage(string(appendValues(nil, args))))
}

// Assert writes a fatal record and panics with the same message.
// cond is the text of the failed condition, used when format is empty.
func (t *Transport) Assert(cond, tag, format string, args ...any) {
	var msg string
	switch {
	case format != "":
		msg = formatMessage(format, args...)
	case cond != "":
		// cond is never used as a format string, it may contain '%'
		msg = capMessage("Assertion failed: " + cond)
	default:
		msg = "Unspecified assertion failed"
	}

	_, _ = t.Write(PriorityFatal, tag, msg)
	panic(msg)
}

func formatMessage(format string, args ...any) string {
	return capMessage(fmt.Sprintf(format, args...))
}

// capMessage limits a formatted message to the format buffer size
func capMessage(msg string) string {
	if len(msg) > logBufSize-1 {
		return msg[:logBufSize-1]
	}
	return msg
}
