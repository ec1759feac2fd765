package logdw

import (
	"bytes"
	"encoding/binary"
	"time"
)

// capPayload limits the total length of segs to max bytes.
// The segment crossing the limit is re-sliced so the total is exactly max and is
// kept only if anything is left of it; all later segments are dropped.
// The input slice is never modified.
func capPayload(segs [][]byte, max int) [][]byte {
	total := 0
	for i, seg := range segs {
		total += len(seg)
		if total <= max {
			continue
		}

		out := make([][]byte, i, i+1)
		copy(out, segs[:i])
		if keep := len(seg) - (total - max); keep > 0 {
			out = append(out, seg[:keep])
		}
		return out
	}
	return segs
}

// payloadLen sums segment lengths
func payloadLen(segs [][]byte) int {
	n := 0
	for _, seg := range segs {
		n += len(seg)
	}
	return n
}

// buildFrame prepends the log id, thread id and timestamp header segments
func buildFrame(id LogID, tid uint16, ts time.Time, payload [][]byte, max int) [][]byte {
	hdr := make([]byte, headerLen)
	hdr[0] = byte(id)
	binary.LittleEndian.PutUint16(hdr[1:3], tid)
	binary.LittleEndian.PutUint32(hdr[3:7], uint32(ts.Unix()))
	binary.LittleEndian.PutUint32(hdr[7:11], uint32(ts.Nanosecond()))

	capped := capPayload(payload, max)
	frame := make([][]byte, 0, 3+len(capped))
	frame = append(frame, hdr[0:1], hdr[1:3], hdr[3:11])
	return append(frame, capped...)
}

// Frame is one decoded datagram as the collector sees it
type Frame struct {
	ID       LogID
	ThreadID uint16
	Time     time.Time
	Payload  []byte
}

// DecodeFrame parses a datagram produced by the transport
func DecodeFrame(datagram []byte) (Frame, error) {
	if len(datagram) < headerLen {
		return Frame{}, fmtErrorf("short frame: %d bytes, header needs %d", len(datagram), headerLen)
	}
	sec := binary.LittleEndian.Uint32(datagram[3:7])
	nsec := binary.LittleEndian.Uint32(datagram[7:11])
	return Frame{
		ID:       LogID(datagram[0]),
		ThreadID: binary.LittleEndian.Uint16(datagram[1:3]),
		Time:     time.Unix(int64(sec), int64(nsec)),
		Payload:  datagram[headerLen:],
	}, nil
}

// Text splits a textual payload into priority, tag and message.
// A payload truncated by the size cap yields the message without its terminator.
func (f Frame) Text() (Priority, string, string, error) {
	if len(f.Payload) < 1 {
		return PriorityUnknown, "", "", fmtErrorf("empty text payload")
	}
	prio := Priority(f.Payload[0])
	rest := f.Payload[1:]
	tag, rest, found := bytes.Cut(rest, []byte{0})
	if !found {
		return prio, string(tag), "", fmtErrorf("unterminated tag")
	}
	msg, _, _ := bytes.Cut(rest, []byte{0})
	return prio, string(tag), string(msg), nil
}

// Event splits a binary payload into its numeric tag and the remaining bytes
func (f Frame) Event() (int32, []byte, error) {
	if len(f.Payload) < 4 {
		return 0, nil, fmtErrorf("short event payload: %d bytes", len(f.Payload))
	}
	return int32(binary.LittleEndian.Uint32(f.Payload[:4])), f.Payload[4:], nil
}
