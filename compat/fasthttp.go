package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/logdw"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter forwards fasthttp server logging to the collector
type FastHTTPAdapter struct {
	writer          RecordWriter
	tag             string
	defaultPriority logdw.Priority
	levelDetector   func(string) logdw.Priority // Function to detect priority from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(writer RecordWriter, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		writer:          writer,
		tag:             "fasthttp",
		defaultPriority: logdw.PriorityInfo,
		levelDetector:   DetectPriority, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultPriority sets the priority used when detection finds nothing
func WithDefaultPriority(prio logdw.Priority) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultPriority = prio
	}
}

// WithLevelDetector sets a custom function to detect priority from message content
func WithLevelDetector(detector func(string) logdw.Priority) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// WithFastHTTPTag overrides the record tag
func WithFastHTTPTag(tag string) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.tag = tag
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	prio := a.defaultPriority
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != logdw.PriorityUnknown {
			prio = detected
		}
	}

	_, _ = a.writer.Write(prio, a.tag, msg)
}

// DetectPriority guesses a priority from message content.
// It returns PriorityUnknown when nothing matches.
func DetectPriority(msg string) logdw.Priority {
	msgLower := strings.ToLower(msg)

	// Check for error indicators
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return logdw.PriorityError
	}

	// Check for warning indicators
	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return logdw.PriorityWarn
	}

	// Check for debug indicators
	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return logdw.PriorityDebug
	}

	return logdw.PriorityUnknown
}
