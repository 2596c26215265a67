package bytesize

import (
	"fmt"
	"strconv"
	"strings"
)

// Binary multipliers (1024-based).
const (
	KB int64 = 1 << 10
	MB int64 = 1 << 20
	GB int64 = 1 << 30
)

// Parse converts a human-readable size string to a byte count.
// The input is a decimal integer optionally followed by a single unit
// letter K, M or G (case-insensitive); no suffix means bytes. Unknown
// suffixes act as a no-op multiplier and a malformed numeric part
// degrades to zero. Parse never fails.
//
// Example:
//
//	bytesize.Parse("8M")  // 8388608
//	bytesize.Parse("500") // 500
func Parse(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	mult := int64(1)
	last := s[len(s)-1]
	switch last {
	case 'k', 'K':
		mult = KB
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = MB
		s = s[:len(s)-1]
	case 'g', 'G':
		mult = GB
		s = s[:len(s)-1]
	}

	return leadingInt(strings.TrimSpace(s)) * mult
}

// leadingInt parses the leading decimal integer of s, ignoring any
// trailing garbage. A string with no leading digits yields zero.
func leadingInt(s string) int64 {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}

	n, err := strconv.ParseInt(s[:j], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Size is a byte count that unmarshals from the human-readable syntax
// accepted by Parse, so size limits can be read directly from
// environment variables ("MAX_UPLOAD_SIZE=8M").
type Size int64

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	*s = Size(Parse(string(text)))
	return nil
}

// Bytes returns the size as a plain int64.
func (s Size) Bytes() int64 { return int64(s) }

// String renders the size in the largest exact binary unit.
func (s Size) String() string {
	v := int64(s)
	switch {
	case v >= GB && v%GB == 0:
		return strconv.FormatInt(v/GB, 10) + "G"
	case v >= MB && v%MB == 0:
		return strconv.FormatInt(v/MB, 10) + "M"
	case v >= KB && v%KB == 0:
		return strconv.FormatInt(v/KB, 10) + "K"
	default:
		return fmt.Sprintf("%d", v)
	}
}
