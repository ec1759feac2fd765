package logdw

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input    string
		expected Priority
		wantErr  bool
	}{
		{"v", PriorityVerbose, false},
		{"D", PriorityDebug, false},
		{" info ", PriorityInfo, false},
		{"w", PriorityWarn, false},
		{"error", PriorityError, false},
		{"f", PriorityFatal, false},
		{"silent", PrioritySilent, false},
		{"default", PriorityDefault, false},
		{"", PriorityUnknown, true},
		{"x", PriorityUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prio, err := ParsePriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, prio)
		})
	}
}

func TestParseLogID(t *testing.T) {
	for id := LogMain; id < logIDMax; id++ {
		parsed, err := ParseLogID(id.String())
		assert.NoError(t, err)
		assert.Equal(t, id, parsed)
	}

	_, err := ParseLogID("kernel")
	assert.Error(t, err)

	assert.Equal(t, "main", LogID(200).String())
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "V", PriorityVerbose.String())
	assert.Equal(t, "F", PriorityFatal.String())
	assert.Equal(t, "?", PriorityUnknown.String())
	assert.Equal(t, "?", Priority(42).String())
}

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"key=value", "key", "value", false},
		{" key = value ", "key", "value", false},
		{"key=value=with=equals", "key", "value=with=equals", false},
		{"noequals", "", "", true},
		{"=value", "", "", true},
		{"key=", "key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := parseKeyValue(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantKey, key)
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestFmtErrorf(t *testing.T) {
	err := fmtErrorf("test error: %s", "details")
	assert.Error(t, err)
	assert.Equal(t, "logdw: test error: details", err.Error())

	// Already prefixed
	err = fmtErrorf("logdw: already prefixed")
	assert.Equal(t, "logdw: already prefixed", err.Error())
}

func TestCode(t *testing.T) {
	assert.Equal(t, 0, Code(nil))
	assert.Equal(t, -int(syscall.EAGAIN), Code(syscall.EAGAIN))
	assert.Equal(t, -int(syscall.ENOTCONN), Code(fmt.Errorf("wrapped: %w", syscall.ENOTCONN)))
	assert.Equal(t, -int(syscall.EIO), Code(errors.New("no errno")))
}

func TestCString(t *testing.T) {
	assert.Equal(t, "abc", cstring("abc"))
	assert.Equal(t, "ab", cstring("ab\x00c"))
	assert.Equal(t, "", cstring("\x00"))
}
