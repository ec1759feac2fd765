package logdw

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "logdw: ") {
		format = "logdw: " + format
	}
	return fmt.Errorf(format, args...)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// Code converts a transport result error to the negated errno convention.
// nil maps to 0; errors that carry no errno map to -EIO.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return -int(errno)
	}
	return -int(syscall.EIO)
}

// toErrno normalizes a non-nil error coming out of a Channel or Dialer
func toErrno(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return errno
	}
	return syscall.EIO
}

// cstring returns s up to its first NUL, which is what the collector reads anyway
func cstring(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// ParsePriority converts a priority letter or name to its constant
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v", "verbose":
		return PriorityVerbose, nil
	case "d", "debug":
		return PriorityDebug, nil
	case "i", "info":
		return PriorityInfo, nil
	case "w", "warn":
		return PriorityWarn, nil
	case "e", "error":
		return PriorityError, nil
	case "f", "fatal":
		return PriorityFatal, nil
	case "s", "silent":
		return PrioritySilent, nil
	case "default":
		return PriorityDefault, nil
	default:
		return PriorityUnknown, fmtErrorf("invalid priority: '%s' (use v, d, i, w, e, f, s)", s)
	}
}

// ParseLogID converts a buffer name to its id
func ParseLogID(s string) (LogID, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for id, n := range logIDNames {
		if n == name {
			return LogID(id), nil
		}
	}
	return LogMain, fmtErrorf("invalid log buffer: '%s' (use main, radio, events, system, crash)", s)
}
