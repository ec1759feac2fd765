// Package sanitizer makes untrusted record text safe to display.
//
// Tags and messages arrive from any process that can reach the collector
// socket, so they may carry terminal escape sequences, NULs or invalid UTF-8.
// A Sanitizer applies an ordered list of filter/transform rules rune by rune;
// the first matching rule wins.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for rune matching
const (
	FilterNonPrintable uint64 = 1 << iota // Runes strconv.IsPrint rejects
	FilterControl                         // unicode.IsControl
	FilterLineBreak                       // '\n' and '\r'
	FilterInvalidUTF8                     // utf8.RuneError from a bad encoding
)

// Transform flags for matched runes
const (
	TransformStrip      uint64 = 1 << iota // Drop the rune
	TransformHexEncode                     // "<XX>" of the rune's bytes
	TransformJSONEscape                    // Backslash escape, "\u00XX" for the rest
	TransformSpace                         // Replace with a single space
)

// PolicyPreset names a pre-configured rule set
type PolicyPreset string

const (
	PolicyRaw      PolicyPreset = "raw"      // No-op
	PolicyTerminal PolicyPreset = "terminal" // One record per line on a tty
	PolicyJSON     PolicyPreset = "json"     // Content of a JSON string literal
)

type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw: {},
	PolicyTerminal: {
		{filter: FilterLineBreak, transform: TransformSpace},
		{filter: FilterNonPrintable | FilterInvalidUTF8, transform: TransformHexEncode},
	},
	PolicyJSON: {
		{filter: FilterInvalidUTF8, transform: TransformHexEncode},
		{filter: FilterControl, transform: TransformJSONEscape},
	},
}

// filter checks in flag order so matching is deterministic
var filterCheckers = []struct {
	flag  uint64
	check func(rune) bool
}{
	{FilterNonPrintable, func(r rune) bool { return !strconv.IsPrint(r) }},
	{FilterControl, unicode.IsControl},
	{FilterLineBreak, func(r rune) bool { return r == '\n' || r == '\r' }},
	{FilterInvalidUTF8, func(r rune) bool { return r == utf8.RuneError }},
}

// Sanitizer provides chainable text sanitization. Not safe for concurrent use.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New creates a passthrough Sanitizer
func New() *Sanitizer {
	return &Sanitizer{buf: make([]byte, 0, 256)}
}

// Rule appends a custom rule
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset. Unknown presets are ignored.
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to data
func (s *Sanitizer) Sanitize(data string) string {
	s.buf = s.Append(s.buf[:0], data)
	return string(s.buf)
}

// Append writes the sanitized form of data to buf
func (s *Sanitizer) Append(buf []byte, data string) []byte {
	return s.appendRunes(buf, data, false)
}

func (s *Sanitizer) appendRunes(buf []byte, data string, quoteJSON bool) []byte {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRuneInString(data[i:])
		raw := data[i : i+size]
		i += size

		if quoteJSON && (r == '"' || r == '\\') {
			buf = append(buf, '\\', byte(r))
			continue
		}

		// a literal U+FFFD is valid input
		if r == utf8.RuneError && size > 1 {
			buf = append(buf, raw...)
			continue
		}

		matched := false
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				buf = applyTransform(buf, r, raw, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			buf = append(buf, raw...)
		}
	}
	return buf
}

func matchesFilter(r rune, filterMask uint64) bool {
	for _, fc := range filterCheckers {
		if filterMask&fc.flag != 0 && fc.check(r) {
			return true
		}
	}
	return false
}

// applyTransform appends the transformed rune; raw is its original encoding
func applyTransform(buf []byte, r rune, raw string, transformMask uint64) []byte {
	switch {
	case transformMask&TransformStrip != 0:
		return buf

	case transformMask&TransformSpace != 0:
		return append(buf, ' ')

	case transformMask&TransformHexEncode != 0:
		buf = append(buf, '<')
		buf = hex.AppendEncode(buf, []byte(raw))
		return append(buf, '>')

	case transformMask&TransformJSONEscape != 0:
		switch r {
		case '\n':
			return append(buf, '\\', 'n')
		case '\r':
			return append(buf, '\\', 'r')
		case '\t':
			return append(buf, '\\', 't')
		case '\b':
			return append(buf, '\\', 'b')
		case '\f':
			return append(buf, '\\', 'f')
		default:
			if r < 0x20 || r == 0x7f {
				return append(buf, fmt.Sprintf("\\u%04x", r)...)
			}
			return append(buf, raw...)
		}
	}
	return append(buf, raw...)
}

// AppendJSONString writes s as a quoted JSON string, sanitized by san.
// san must escape control characters, as PolicyJSON does; nil selects PolicyJSON.
func AppendJSONString(buf []byte, san *Sanitizer, s string) []byte {
	if san == nil {
		san = New().Policy(PolicyJSON)
	}
	buf = append(buf, '"')
	buf = san.appendRunes(buf, s, true)
	return append(buf, '"')
}
