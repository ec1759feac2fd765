package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lixenwraith/logdw"
)

var (
	// Common structured patterns like "key=%v" or "key: %v"
	keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcU]`)
	verbPattern     = regexp.MustCompile(`%%|%[-+# 0-9.]*[a-zA-Z]`)
)

// countVerbs returns how many arguments a format fragment consumes
func countVerbs(format string) int {
	n := 0
	for _, m := range verbPattern.FindAllString(format, -1) {
		if m != "%%" {
			n++
		}
	}
	return n
}

// parseFormat extracts key/value pairs from a printf-style format string.
// The remaining text becomes the message; fields is nil when nothing was extracted.
func parseFormat(format string, args []any) (msg string, fields []any) {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	if len(matches) == 0 {
		return fmt.Sprintf(format, args...), nil
	}

	var text []string
	fields = make([]any, 0, len(matches)*2)
	lastEnd, argIndex := 0, 0

	appendText := func(segment string, n int) {
		s := strings.Trim(fmt.Sprintf(segment, args[argIndex:argIndex+n]...), " \t,;|")
		if s != "" {
			text = append(text, s)
		}
		argIndex += n
	}

	for _, match := range matches {
		segment := format[lastEnd:match[0]]
		n := countVerbs(segment)
		// The segment and the matched value must both have arguments
		if argIndex+n >= len(args) {
			return fmt.Sprintf(format, args...), nil
		}
		appendText(segment, n)

		fields = append(fields, format[match[2]:match[3]], args[argIndex])
		argIndex++
		lastEnd = match[1]
	}

	segment := format[lastEnd:]
	n := countVerbs(segment)
	if argIndex+n > len(args) {
		return fmt.Sprintf(format, args...), nil
	}
	appendText(segment, n)

	return strings.Join(text, " "), fields
}

// StructuredGnetAdapter rewrites gnet messages so extracted fields trail the text as key=value pairs
type StructuredGnetAdapter struct {
	*GnetAdapter
	extractFields bool
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(writer RecordWriter, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter:   NewGnetAdapter(writer, opts...),
		extractFields: true,
	}
}

// SetFieldExtraction toggles field extraction. Not safe to call while logging.
func (a *StructuredGnetAdapter) SetFieldExtraction(enabled bool) {
	a.extractFields = enabled
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	a.structured(logdw.PriorityDebug, format, args)
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	a.structured(logdw.PriorityInfo, format, args)
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	a.structured(logdw.PriorityWarn, format, args)
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	a.structured(logdw.PriorityError, format, args)
}

func (a *StructuredGnetAdapter) structured(prio logdw.Priority, format string, args []any) {
	if !a.extractFields {
		a.write(prio, format, args)
		return
	}
	msg, fields := parseFormat(format, args)
	_, _ = a.writer.Write(prio, a.tag, renderFields(msg, fields))
}
