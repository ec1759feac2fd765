// Package formatter renders decoded collector frames for display.
package formatter

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strconv"

	"github.com/lixenwraith/logdw"
	"github.com/lixenwraith/logdw/sanitizer"
)

// Output formats
const (
	FormatTxt  = "txt"
	FormatJSON = "json"
)

// DefaultTimestampFormat is the month-day clock layout log viewers print
const DefaultTimestampFormat = "01-02 15:04:05.000"

// Formatter renders frames into a reused buffer. Not safe for concurrent use.
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	format          string
	timestampFormat string
	showTimestamp   bool
	showThread      bool
	buf             []byte
}

// New creates a txt formatter. Without a sanitizer, text is made terminal safe.
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New().Policy(sanitizer.PolicyTerminal)
	}
	return &Formatter{
		sanitizer:       san,
		format:          FormatTxt,
		timestampFormat: DefaultTimestampFormat,
		showTimestamp:   true,
		showThread:      true,
		buf:             make([]byte, 0, 1024),
	}
}

// Type sets the output format, "txt" or "json"
func (f *Formatter) Type(format string) *Formatter {
	f.format = format
	return f
}

// TimestampFormat sets the time layout
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// ShowTimestamp sets whether to include the frame time
func (f *Formatter) ShowTimestamp(show bool) *Formatter {
	f.showTimestamp = show
	return f
}

// ShowThread sets whether to include the thread id
func (f *Formatter) ShowThread(show bool) *Formatter {
	f.showThread = show
	return f
}

// record is the displayable content of one frame
type record struct {
	text     bool
	prio     logdw.Priority
	tag      string
	msg      string
	eventTag int32
	value    any
	err      error
}

func decode(frame logdw.Frame) record {
	if frame.ID == logdw.LogEvents {
		tag, data, err := frame.Event()
		if err != nil {
			return record{err: err}
		}
		return record{eventTag: tag, value: eventValue(data)}
	}

	prio, tag, msg, err := frame.Text()
	if err != nil {
		return record{err: err}
	}
	return record{text: true, prio: prio, tag: tag, msg: msg}
}

// eventValue decodes a single typed value. Anything else stays raw bytes.
func eventValue(data []byte) any {
	if len(data) == 0 {
		return data
	}
	v := data[1:]
	switch typ := logdw.EventType(data[0]); {
	case typ == logdw.EventTypeInt && len(v) == 4:
		return int32(binary.LittleEndian.Uint32(v))
	case typ == logdw.EventTypeLong && len(v) == 8:
		return int64(binary.LittleEndian.Uint64(v))
	case typ == logdw.EventTypeFloat && len(v) == 4:
		return math.Float32frombits(binary.LittleEndian.Uint32(v))
	case typ == logdw.EventTypeString && len(v) >= 4:
		size := binary.LittleEndian.Uint32(v)
		s := v[4:]
		if uint32(len(s)) > size {
			s = s[:size]
		}
		return string(s)
	default:
		return data
	}
}

// Format renders frame as one newline-terminated line.
// The returned slice is valid until the next call.
func (f *Formatter) Format(frame logdw.Frame) []byte {
	f.buf = f.buf[:0]
	rec := decode(frame)

	switch f.format {
	case FormatJSON:
		f.formatJSON(frame, rec)
	default:
		f.formatTxt(frame, rec)
	}
	return f.buf
}

func (f *Formatter) formatTxt(frame logdw.Frame, rec record) {
	if f.showTimestamp {
		f.buf = frame.Time.AppendFormat(f.buf, f.timestampFormat)
		f.buf = append(f.buf, ' ')
	}
	if f.showThread {
		tid := strconv.Itoa(int(frame.ThreadID))
		for i := len(tid); i < 5; i++ {
			f.buf = append(f.buf, ' ')
		}
		f.buf = append(f.buf, tid...)
		f.buf = append(f.buf, ' ')
	}
	f.buf = append(f.buf, frame.ID.String()...)
	f.buf = append(f.buf, ' ')

	switch {
	case rec.err != nil:
		f.buf = append(f.buf, "malformed: "...)
		f.buf = f.sanitizer.Append(f.buf, rec.err.Error())
	case rec.text:
		f.buf = append(f.buf, rec.prio.String()...)
		f.buf = append(f.buf, '/')
		f.buf = f.sanitizer.Append(f.buf, rec.tag)
		f.buf = append(f.buf, ": "...)
		f.buf = f.sanitizer.Append(f.buf, rec.msg)
	default:
		f.buf = append(f.buf, '[')
		f.buf = strconv.AppendInt(f.buf, int64(rec.eventTag), 10)
		f.buf = append(f.buf, "] "...)
		f.appendTxtValue(rec.value)
	}
	f.buf = append(f.buf, '\n')
}

func (f *Formatter) appendTxtValue(v any) {
	switch val := v.(type) {
	case int32:
		f.buf = strconv.AppendInt(f.buf, int64(val), 10)
	case int64:
		f.buf = strconv.AppendInt(f.buf, val, 10)
	case float32:
		f.buf = strconv.AppendFloat(f.buf, float64(val), 'g', -1, 32)
	case string:
		f.buf = append(f.buf, '"')
		f.buf = f.sanitizer.Append(f.buf, val)
		f.buf = append(f.buf, '"')
	case []byte:
		f.buf = hex.AppendEncode(f.buf, val)
	}
}

func (f *Formatter) formatJSON(frame logdw.Frame, rec record) {
	f.buf = append(f.buf, '{')
	if f.showTimestamp {
		f.buf = append(f.buf, `"time":"`...)
		f.buf = frame.Time.AppendFormat(f.buf, f.timestampFormat)
		f.buf = append(f.buf, `",`...)
	}
	if f.showThread {
		f.buf = append(f.buf, `"tid":`...)
		f.buf = strconv.AppendUint(f.buf, uint64(frame.ThreadID), 10)
		f.buf = append(f.buf, ',')
	}
	f.buf = append(f.buf, `"buffer":"`...)
	f.buf = append(f.buf, frame.ID.String()...)
	f.buf = append(f.buf, '"')

	switch {
	case rec.err != nil:
		f.buf = append(f.buf, `,"error":`...)
		f.buf = sanitizer.AppendJSONString(f.buf, f.sanitizer, rec.err.Error())
	case rec.text:
		f.buf = append(f.buf, `,"priority":"`...)
		f.buf = append(f.buf, rec.prio.String()...)
		f.buf = append(f.buf, `","tag":`...)
		f.buf = sanitizer.AppendJSONString(f.buf, f.sanitizer, rec.tag)
		f.buf = append(f.buf, `,"message":`...)
		f.buf = sanitizer.AppendJSONString(f.buf, f.sanitizer, rec.msg)
	default:
		f.buf = append(f.buf, `,"event_tag":`...)
		f.buf = strconv.AppendInt(f.buf, int64(rec.eventTag), 10)
		f.buf = append(f.buf, `,"value":`...)
		f.appendJSONValue(rec.value)
	}
	f.buf = append(f.buf, '}', '\n')
}

func (f *Formatter) appendJSONValue(v any) {
	switch val := v.(type) {
	case string:
		f.buf = sanitizer.AppendJSONString(f.buf, f.sanitizer, val)
	case []byte:
		f.buf = append(f.buf, '"')
		f.buf = hex.AppendEncode(f.buf, val)
		f.buf = append(f.buf, '"')
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			f.buf = append(f.buf, "null"...)
			return
		}
		f.appendTxtValue(val)
	default:
		f.appendTxtValue(val)
	}
}
