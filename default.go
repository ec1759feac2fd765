package logdw

import (
	"context"
	"time"
)

// Global instance for package-level functions
var defaultTransport = NewTransport()

// Default returns the process-wide transport used by the package-level functions
func Default() *Transport {
	return defaultTransport
}

// ApplyConfig applies a validated configuration to the default transport
func ApplyConfig(cfg *Config) error {
	return defaultTransport.ApplyConfig(cfg)
}

// ApplyConfigString applies "key=value" overrides to the default transport
func ApplyConfigString(overrides ...string) error {
	return defaultTransport.ApplyConfigString(overrides...)
}

// Write sends a textual record to the main buffer
func Write(prio Priority, tag, msg string) (int, error) {
	return defaultTransport.Write(prio, tag, msg)
}

// BufWrite sends a textual record to buffer id
func BufWrite(id LogID, prio Priority, tag, msg string) (int, error) {
	return defaultTransport.BufWrite(id, prio, tag, msg)
}

// Print formats a message printf-style and writes it
func Print(prio Priority, tag, format string, args ...any) (int, error) {
	return defaultTransport.Print(prio, tag, format, args...)
}

// BufPrint formats a message printf-style and writes it to buffer id
func BufPrint(id LogID, prio Priority, tag, format string, args ...any) (int, error) {
	return defaultTransport.BufPrint(id, prio, tag, format, args...)
}

// Println writes args as space-separated values
func Println(prio Priority, tag string, args ...any) (int, error) {
	return defaultTransport.Println(prio, tag, args...)
}

// Assert writes a fatal record and panics
func Assert(cond, tag, format string, args ...any) {
	defaultTransport.Assert(cond, tag, format, args...)
}

// BWrite sends a binary event record
func BWrite(tag int32, payload []byte) (int, error) {
	return defaultTransport.BWrite(tag, payload)
}

// BTWrite sends a typed binary event record
func BTWrite(tag int32, typ EventType, payload []byte) (int, error) {
	return defaultTransport.BTWrite(tag, typ, payload)
}

// BSWrite sends a string event record
func BSWrite(tag int32, s string) (int, error) {
	return defaultTransport.BSWrite(tag, s)
}

// BWriteInt sends a 32-bit integer event record
func BWriteInt(tag int32, v int32) (int, error) {
	return defaultTransport.BWriteInt(tag, v)
}

// BWriteLong sends a 64-bit integer event record
func BWriteLong(tag int32, v int64) (int, error) {
	return defaultTransport.BWriteLong(tag, v)
}

// BWriteFloat sends a 32-bit float event record
func BWriteFloat(tag int32, v float32) (int, error) {
	return defaultTransport.BWriteFloat(tag, v)
}

// Loggable checks prio against the configured threshold for tag
func Loggable(prio Priority, tag string) bool {
	return defaultTransport.Loggable(prio, tag)
}

// Available reports whether the collector socket is writable
func Available() bool {
	return defaultTransport.Available()
}

// GetStats returns the default transport's counters.
// Named apart from the Stats type it returns.
func GetStats() Stats {
	return defaultTransport.Stats()
}

// GetConfig returns a copy of the default transport's configuration
func GetConfig() *Config {
	return defaultTransport.GetConfig()
}

// Close releases the default transport's channel
func Close() error {
	return defaultTransport.Close()
}

// StartHeartbeat reports default transport statistics every interval until ctx ends
func StartHeartbeat(ctx context.Context, interval time.Duration) {
	defaultTransport.StartHeartbeat(ctx, interval)
}
