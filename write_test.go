package logdw

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastFrame writes through fn and returns the single datagram it produced
func lastFrame(t *testing.T, fn func(tr *Transport) (int, error)) (Frame, int) {
	t.Helper()
	tr, d := createTestTransport(t)
	n, err := fn(tr)
	require.NoError(t, err)

	frames := d.channel(0).sent()
	require.Len(t, frames, 1)
	frame, err := DecodeFrame(frames[0])
	require.NoError(t, err)
	return frame, n
}

func TestWriteRadioReroute(t *testing.T) {
	tests := []struct {
		name  string
		write func(tr *Transport) (int, error)
		id    LogID
		tag   string
	}{
		{
			name:  "ril prefix",
			write: func(tr *Transport) (int, error) { return tr.Write(PriorityInfo, "RIL-foo", "m") },
			id:    LogRadio,
			tag:   "use-Rlog/RLOG-RIL-foo",
		},
		{
			name:  "ims prefix",
			write: func(tr *Transport) (int, error) { return tr.Write(PriorityInfo, "IMSService", "m") },
			id:    LogRadio,
			tag:   "use-Rlog/RLOG-IMSService",
		},
		{
			name:  "exact legacy tag",
			write: func(tr *Transport) (int, error) { return tr.Write(PriorityInfo, "SMS", "m") },
			id:    LogRadio,
			tag:   "use-Rlog/RLOG-SMS",
		},
		{
			name:  "legacy tag is case sensitive",
			write: func(tr *Transport) (int, error) { return tr.Write(PriorityInfo, "sms", "m") },
			id:    LogMain,
			tag:   "sms",
		},
		{
			name:  "ordinary tag",
			write: func(tr *Transport) (int, error) { return tr.Write(PriorityInfo, "ATLAS", "m") },
			id:    LogMain,
			tag:   "ATLAS",
		},
		{
			name:  "rewritten tag is capped",
			write: func(tr *Transport) (int, error) { return tr.Write(PriorityInfo, "RIL"+strings.Repeat("x", 40), "m") },
			id:    LogRadio,
			tag:   ("use-Rlog/RLOG-RIL" + strings.Repeat("x", 40))[:radioTagSize-1],
		},
		{
			name:  "buffer write moves radio tags",
			write: func(tr *Transport) (int, error) { return tr.BufWrite(LogSystem, PriorityInfo, "PHONE", "m") },
			id:    LogRadio,
			tag:   "use-Rlog/RLOG-PHONE",
		},
		{
			name:  "radio buffer keeps the tag",
			write: func(tr *Transport) (int, error) { return tr.BufWrite(LogRadio, PriorityInfo, "RILJ", "m") },
			id:    LogRadio,
			tag:   "RILJ",
		},
		{
			name:  "other buffers pass through",
			write: func(tr *Transport) (int, error) { return tr.BufWrite(LogCrash, PriorityFatal, "init", "m") },
			id:    LogCrash,
			tag:   "init",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, _ := lastFrame(t, tt.write)
			assert.Equal(t, tt.id, frame.ID)
			_, tag, msg, err := frame.Text()
			require.NoError(t, err)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, "m", msg)
		})
	}
}

func TestWriteCutsAtNUL(t *testing.T) {
	frame, n := lastFrame(t, func(tr *Transport) (int, error) {
		return tr.Write(PriorityDebug, "ta\x00g", "me\x00ssage")
	})
	assert.Equal(t, 1+3+3, n)

	prio, tag, msg, err := frame.Text()
	require.NoError(t, err)
	assert.Equal(t, PriorityDebug, prio)
	assert.Equal(t, "ta", tag)
	assert.Equal(t, "me", msg)
}

func TestWriteEmpty(t *testing.T) {
	frame, n := lastFrame(t, func(tr *Transport) (int, error) {
		return tr.Write(PriorityInfo, "", "")
	})
	assert.Equal(t, 3, n)
	_, tag, msg, err := frame.Text()
	require.NoError(t, err)
	assert.Empty(t, tag)
	assert.Empty(t, msg)
}

func TestWritePayloadCap(t *testing.T) {
	tr, d := createTestTransport(t)
	require.NoError(t, tr.ApplyConfigString("max_payload=16"))

	n, err := tr.Write(PriorityInfo, "tag", strings.Repeat("y", 100))
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	frames := d.channel(0).sent()
	require.Len(t, frames, 1)
	assert.Len(t, frames[0], headerLen+16)
}

func TestWriteDefaultCap(t *testing.T) {
	tr, d := createTestTransport(t)
	n, err := tr.Write(PriorityInfo, "tag", strings.Repeat("z", 2*MaxPayload))
	require.NoError(t, err)
	assert.Equal(t, MaxPayload, n)
	assert.Len(t, d.channel(0).sent()[0], headerLen+MaxPayload)
}

func TestPrint(t *testing.T) {
	t.Run("formats", func(t *testing.T) {
		frame, _ := lastFrame(t, func(tr *Transport) (int, error) {
			return tr.Print(PriorityWarn, "net", "iface %s down after %d ms", "wlan0", 250)
		})
		_, _, msg, err := frame.Text()
		require.NoError(t, err)
		assert.Equal(t, "iface wlan0 down after 250 ms", msg)
	})

	t.Run("caps the formatted message", func(t *testing.T) {
		frame, _ := lastFrame(t, func(tr *Transport) (int, error) {
			return tr.Print(PriorityInfo, "t", "%s", strings.Repeat("q", 5000))
		})
		_, _, msg, err := frame.Text()
		require.NoError(t, err)
		assert.Len(t, msg, logBufSize-1)
	})

	t.Run("buffer print", func(t *testing.T) {
		frame, _ := lastFrame(t, func(tr *Transport) (int, error) {
			return tr.BufPrint(LogSystem, PriorityInfo, "svc", "pid=%d", 7)
		})
		assert.Equal(t, LogSystem, frame.ID)
		_, _, msg, err := frame.Text()
		require.NoError(t, err)
		assert.Equal(t, "pid=7", msg)
	})
}

func TestPrintln(t *testing.T) {
	type point struct{ X, Y int }

	frame, _ := lastFrame(t, func(tr *Transport) (int, error) {
		return tr.Println(PriorityInfo, "t", "count", 3, true, 1.5, nil, []byte{0x00, 0xab}, point{1, 2})
	})
	_, _, msg, err := frame.Text()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "count 3 true 1.5 nil 00ab "), msg)
	assert.Contains(t, msg, "point")
	assert.NotContains(t, msg, "\x00")
}

func TestAssert(t *testing.T) {
	tests := []struct {
		name     string
		cond     string
		format   string
		args     []any
		expected string
	}{
		{"formatted", "x > 0", "x was %d", []any{-1}, "x was -1"},
		{"condition only", "x > 0", "", nil, "Assertion failed: x > 0"},
		{"condition with percent", "load < 90%", "", nil, "Assertion failed: load < 90%"},
		{"nothing", "", "", nil, "Unspecified assertion failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, d := createTestTransport(t)
			assert.PanicsWithValue(t, tt.expected, func() {
				tr.Assert(tt.cond, "check", tt.format, tt.args...)
			})

			frames := d.channel(0).sent()
			require.Len(t, frames, 1)
			_, prio, tag, msg := decodeText(t, frames[0])
			assert.Equal(t, PriorityFatal, prio)
			assert.Equal(t, "check", tag)
			assert.Equal(t, tt.expected, msg)
		})
	}
}

func TestEvents(t *testing.T) {
	tests := []struct {
		name     string
		write    func(tr *Transport) (int, error)
		tag      int32
		expected []byte
	}{
		{
			name:     "opaque",
			write:    func(tr *Transport) (int, error) { return tr.BWrite(100, []byte{1, 2, 3}) },
			tag:      100,
			expected: []byte{1, 2, 3},
		},
		{
			name:     "typed",
			write:    func(tr *Transport) (int, error) { return tr.BTWrite(101, EventTypeList, []byte{9}) },
			tag:      101,
			expected: []byte{byte(EventTypeList), 9},
		},
		{
			name:     "string",
			write:    func(tr *Transport) (int, error) { return tr.BSWrite(102, "hi") },
			tag:      102,
			expected: []byte{byte(EventTypeString), 2, 0, 0, 0, 'h', 'i'},
		},
		{
			name:     "int",
			write:    func(tr *Transport) (int, error) { return tr.BWriteInt(-5, -2) },
			tag:      -5,
			expected: []byte{byte(EventTypeInt), 0xfe, 0xff, 0xff, 0xff},
		},
		{
			name:     "long",
			write:    func(tr *Transport) (int, error) { return tr.BWriteLong(104, 1<<40) },
			tag:      104,
			expected: append([]byte{byte(EventTypeLong)}, binary.LittleEndian.AppendUint64(nil, 1<<40)...),
		},
		{
			name:     "float",
			write:    func(tr *Transport) (int, error) { return tr.BWriteFloat(105, 0.25) },
			tag:      105,
			expected: append([]byte{byte(EventTypeFloat)}, binary.LittleEndian.AppendUint32(nil, math.Float32bits(0.25))...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, n := lastFrame(t, tt.write)
			assert.Equal(t, LogEvents, frame.ID)
			assert.Equal(t, 4+len(tt.expected), n)

			tag, data, err := frame.Event()
			require.NoError(t, err)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.expected, data)
		})
	}
}

func TestEventStringCap(t *testing.T) {
	frame, n := lastFrame(t, func(tr *Transport) (int, error) {
		return tr.BSWrite(1, strings.Repeat("s", MaxPayload))
	})
	assert.Equal(t, MaxPayload, n)

	_, data, err := frame.Event()
	require.NoError(t, err)
	// the length prefix still carries the original size
	assert.Equal(t, uint32(MaxPayload), binary.LittleEndian.Uint32(data[1:5]))
	assert.Len(t, data, MaxPayload-4)
}

func TestLoggable(t *testing.T) {
	tr, _ := createTestTransport(t)
	require.NoError(t, tr.ApplyConfigString("min_priority=w", "tag_levels=Chatty=v, Quiet=s"))

	assert.False(t, tr.Loggable(PriorityInfo, "any"))
	assert.True(t, tr.Loggable(PriorityWarn, "any"))
	assert.True(t, tr.Loggable(PriorityVerbose, "Chatty"))
	assert.False(t, tr.Loggable(PriorityFatal, "Quiet"))
	assert.True(t, tr.Loggable(PrioritySilent, "Quiet"))

	// defaults
	tr2, _ := createTestTransport(t)
	assert.True(t, tr2.Loggable(PriorityInfo, "x"))
	assert.False(t, tr2.Loggable(PriorityDebug, "x"))
}
