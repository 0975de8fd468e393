package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bamsammich/darch/internal/stats"
)

// HexStyle selects how integers are rendered in the report.
type HexStyle int

const (
	// HexUpper renders "0x" followed by uppercase digits, e.g. 0x992FF.
	HexUpper HexStyle = iota
	// HexLower renders "0x" followed by lowercase digits, e.g. 0x992ff.
	HexLower
	// HexPrefixUpper renders "0X" followed by uppercase digits, e.g. 0X992FF.
	HexPrefixUpper
)

var hexStyleNames = map[string]HexStyle{
	"upper":        HexUpper,
	"lower":        HexLower,
	"prefix-upper": HexPrefixUpper,
}

func (s HexStyle) String() string {
	switch s {
	case HexUpper:
		return "upper"
	case HexLower:
		return "lower"
	case HexPrefixUpper:
		return "prefix-upper"
	default:
		return "unknown"
	}
}

// ParseHexStyle parses a style name: upper, lower or prefix-upper.
func ParseHexStyle(name string) (HexStyle, error) {
	s, ok := hexStyleNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return HexUpper, fmt.Errorf("unknown hex style %q (use upper, lower or prefix-upper)", name)
	}
	return s, nil
}

// FormatHex renders n in hexadecimal. Negative values keep their sign in
// front of the prefix: -0x5.
func FormatHex(n int64, style HexStyle) string {
	sign := ""
	u := uint64(n) //nolint:gosec // G115: two's complement reinterpretation
	if n < 0 {
		sign = "-"
		u = -u
	}

	digits := strconv.FormatUint(u, 16)
	prefix := "0x"
	switch style {
	case HexLower:
	case HexPrefixUpper:
		prefix = "0X"
		digits = strings.ToUpper(digits)
	default:
		digits = strings.ToUpper(digits)
	}
	return sign + prefix + digits
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes wraps stats.FormatBytes for UI use.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
