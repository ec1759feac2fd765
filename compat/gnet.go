package compat

import (
	"fmt"
	"os"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/logdw"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter forwards gnet's internal logging to the collector
type GnetAdapter struct {
	writer       RecordWriter
	tag          string
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(writer RecordWriter, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		writer: writer,
		tag:    "gnet",
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetTag overrides the record tag
func WithGnetTag(tag string) GnetOption {
	return func(a *GnetAdapter) {
		a.tag = tag
	}
}

// Debugf logs at debug priority with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.write(logdw.PriorityDebug, format, args)
}

// Infof logs at info priority with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.write(logdw.PriorityInfo, format, args)
}

// Warnf logs at warn priority with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.write(logdw.PriorityWarn, format, args)
}

// Errorf logs at error priority with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.write(logdw.PriorityError, format, args)
}

// Fatalf logs at fatal priority and triggers the fatal handler.
// Records are sent synchronously, there is nothing to flush.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := a.write(logdw.PriorityFatal, format, args)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *GnetAdapter) write(prio logdw.Priority, format string, args []any) string {
	msg := fmt.Sprintf(format, args...)
	_, _ = a.writer.Write(prio, a.tag, msg)
	return msg
}
