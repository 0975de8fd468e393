package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errBadSize = errors.New("invalid size")

// sizeUnits maps accepted suffixes to their multipliers. Units are binary,
// so "1K", "1KB" and "1 KiB" are all 1024 bytes.
var sizeUnits = map[string]int64{
	"":    1,
	"b":   1,
	"k":   1 << 10,
	"kb":  1 << 10,
	"kib": 1 << 10,
	"m":   1 << 20,
	"mb":  1 << 20,
	"mib": 1 << 20,
	"g":   1 << 30,
	"gb":  1 << 30,
	"gib": 1 << 30,
	"t":   1 << 40,
	"tb":  1 << 40,
	"tib": 1 << 40,
}

// ParseSize parses a size bound for --min-size and --max-size.
//
// Accepted forms are the hex values the listing prints ("0x400"), plain
// decimal byte counts, and decimal values with a binary unit ("1.5M",
// "100 KiB"), the last matching what the summary line shows.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errBadSize)
	}

	if hex, ok := cutHexPrefix(s); ok {
		n, err := strconv.ParseInt(hex, 16, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", errBadSize, s)
		}
		return n, nil
	}

	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], strings.ToLower(strings.TrimSpace(s[i:]))
	}
	mult, ok := sizeUnits[unit]
	if !ok || num == "" {
		return 0, fmt.Errorf("%w: %q", errBadSize, s)
	}

	if n, err := strconv.ParseInt(num, 10, 64); err == nil {
		if n > math.MaxInt64/mult {
			return 0, fmt.Errorf("%w: %q overflows", errBadSize, s)
		}
		return n * mult, nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", errBadSize, s)
	}
	// float64(MaxInt64) rounds up to 2^63, so >= rejects everything that
	// would not convert back.
	v := f * float64(mult)
	if math.IsNaN(v) || math.IsInf(v, 0) || v >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q overflows", errBadSize, s)
	}
	return int64(v), nil
}

func cutHexPrefix(s string) (string, bool) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:], true
	}
	return "", false
}
