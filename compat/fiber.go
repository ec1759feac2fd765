package compat

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/logdw"
)

// FiberAdapter forwards Fiber's logging to the collector.
// It satisfies Fiber's AllLogger interface structurally, so no Fiber import is needed.
type FiberAdapter struct {
	writer       RecordWriter
	tag          string
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter
func NewFiberAdapter(writer RecordWriter, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		writer: writer,
		tag:    "fiber",
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior
		},
		panicHandler: func(msg string) {
			panic(msg) // Default behavior
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

// WithFiberTag overrides the record tag
func WithFiberTag(tag string) FiberOption {
	return func(a *FiberAdapter) {
		a.tag = tag
	}
}

// --- Logger interface implementation (7 methods) ---

// Trace logs at verbose priority
func (a *FiberAdapter) Trace(v ...any) {
	a.send(logdw.PriorityVerbose, fmt.Sprint(v...))
}

// Debug logs at debug priority
func (a *FiberAdapter) Debug(v ...any) {
	a.send(logdw.PriorityDebug, fmt.Sprint(v...))
}

// Info logs at info priority
func (a *FiberAdapter) Info(v ...any) {
	a.send(logdw.PriorityInfo, fmt.Sprint(v...))
}

// Warn logs at warn priority
func (a *FiberAdapter) Warn(v ...any) {
	a.send(logdw.PriorityWarn, fmt.Sprint(v...))
}

// Error logs at error priority
func (a *FiberAdapter) Error(v ...any) {
	a.send(logdw.PriorityError, fmt.Sprint(v...))
}

// Fatal logs at fatal priority and triggers the fatal handler
func (a *FiberAdapter) Fatal(v ...any) {
	a.fatalWith(fmt.Sprint(v...))
}

// Panic logs at fatal priority and triggers the panic handler
func (a *FiberAdapter) Panic(v ...any) {
	a.panicWith(fmt.Sprint(v...))
}

// Write makes FiberAdapter an io.Writer for fiber.Config output redirection
func (a *FiberAdapter) Write(p []byte) (n int, err error) {
	a.send(logdw.PriorityInfo, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// --- FormatLogger interface implementation (7 methods) ---

// Tracef logs at verbose priority with printf-style formatting
func (a *FiberAdapter) Tracef(format string, v ...any) {
	a.send(logdw.PriorityVerbose, fmt.Sprintf(format, v...))
}

// Debugf logs at debug priority with printf-style formatting
func (a *FiberAdapter) Debugf(format string, v ...any) {
	a.send(logdw.PriorityDebug, fmt.Sprintf(format, v...))
}

// Infof logs at info priority with printf-style formatting
func (a *FiberAdapter) Infof(format string, v ...any) {
	a.send(logdw.PriorityInfo, fmt.Sprintf(format, v...))
}

// Warnf logs at warn priority with printf-style formatting
func (a *FiberAdapter) Warnf(format string, v ...any) {
	a.send(logdw.PriorityWarn, fmt.Sprintf(format, v...))
}

// Errorf logs at error priority with printf-style formatting
func (a *FiberAdapter) Errorf(format string, v ...any) {
	a.send(logdw.PriorityError, fmt.Sprintf(format, v...))
}

// Fatalf logs at fatal priority and triggers the fatal handler
func (a *FiberAdapter) Fatalf(format string, v ...any) {
	a.fatalWith(fmt.Sprintf(format, v...))
}

// Panicf logs at fatal priority and triggers the panic handler
func (a *FiberAdapter) Panicf(format string, v ...any) {
	a.panicWith(fmt.Sprintf(format, v...))
}

// --- WithLogger interface implementation (7 methods) ---

// Tracew logs at verbose priority with key-value pairs appended to the text
func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.send(logdw.PriorityVerbose, renderFields(msg, keysAndValues))
}

// Debugw logs at debug priority with key-value pairs appended to the text
func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.send(logdw.PriorityDebug, renderFields(msg, keysAndValues))
}

// Infow logs at info priority with key-value pairs appended to the text
func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.send(logdw.PriorityInfo, renderFields(msg, keysAndValues))
}

// Warnw logs at warn priority with key-value pairs appended to the text
func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.send(logdw.PriorityWarn, renderFields(msg, keysAndValues))
}

// Errorw logs at error priority with key-value pairs appended to the text
func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.send(logdw.PriorityError, renderFields(msg, keysAndValues))
}

// Fatalw logs at fatal priority with key-value pairs and triggers the fatal handler
func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.fatalWith(renderFields(msg, keysAndValues))
}

// Panicw logs at fatal priority with key-value pairs and triggers the panic handler
func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.panicWith(renderFields(msg, keysAndValues))
}

func (a *FiberAdapter) send(prio logdw.Priority, msg string) {
	_, _ = a.writer.Write(prio, a.tag, msg)
}

// Records are sent synchronously, there is nothing to flush before the handlers run.
func (a *FiberAdapter) fatalWith(msg string) {
	a.send(logdw.PriorityFatal, msg)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *FiberAdapter) panicWith(msg string) {
	a.send(logdw.PriorityFatal, msg)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// renderFields appends key=value pairs to msg. A trailing key without a value is rendered as key=
func renderFields(msg string, keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, keysAndValues[i])
		sb.WriteByte('=')
		if i+1 < len(keysAndValues) {
			sb.WriteString(fieldValue(keysAndValues[i+1]))
		}
	}
	return sb.String()
}

// fieldValue quotes values that would break key=value parsing
func fieldValue(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n=\"") {
		return strconv.Quote(s)
	}
	return s
}
