package logdw

import (
	"encoding/binary"
	"math"
)

func eventTag(tag int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(tag))
	return b
}

// BWrite sends a binary event record with an opaque payload
func (t *Transport) BWrite(tag int32, payload []byte) (int, error) {
	return t.dispatch(LogEvents, [][]byte{eventTag(tag), payload})
}

// BTWrite sends a binary event record whose payload is a single value of typ
func (t *Transport) BTWrite(tag int32, typ EventType, payload []byte) (int, error) {
	return t.dispatch(LogEvents, [][]byte{eventTag(tag), {byte(typ)}, payload})
}

// BSWrite sends a binary event record carrying one string value
func (t *Transport) BSWrite(tag int32, s string) (int, error) {
	length := make([]byte, 4)
	binary.LittleEndian.PutUint32(length, uint32(len(s)))
	return t.dispatch(LogEvents, [][]byte{eventTag(tag), {byte(EventTypeString)}, length, []byte(s)})
}

// BWriteInt sends a binary event record carrying one 32-bit integer
func (t *Transport) BWriteInt(tag int32, v int32) (int, error) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return t.BTWrite(tag, EventTypeInt, b)
}

// BWriteLong sends a binary event record carrying one 64-bit integer
func (t *Transport) BWriteLong(tag int32, v int64) (int, error) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return t.BTWrite(tag, EventTypeLong, b)
}

// BWriteFloat sends a binary event record carrying one 32-bit float
func (t *Transport) BWriteFloat(tag int32, v float32) (int, error) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return t.BTWrite(tag, EventTypeFloat, b)
}
