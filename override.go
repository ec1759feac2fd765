package logdw

import (
	"fmt"
	"strconv"
	"strings"
)

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("logdw: multiple configuration errors:")
	for i, err := range errors {
		// Remove "logdw: " prefix from individual errors to avoid duplication
		errMsg := strings.TrimPrefix(err.Error(), "logdw: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Collector endpoint
	case "socket_path":
		cfg.SocketPath = value
	case "max_payload":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_payload '%s': %w", value, err)
		}
		cfg.MaxPayload = intVal

	// Self-filter
	case "suppress_self":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for suppress_self '%s': %w", value, err)
		}
		cfg.SuppressSelf = boolVal
	case "daemon_uid":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for daemon_uid '%s': %w", value, err)
		}
		cfg.DaemonUID = intVal

	// Loggable thresholds
	case "min_priority":
		cfg.MinPriority = value
	case "tag_levels":
		cfg.TagLevels = value

	// Internal error handling
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
