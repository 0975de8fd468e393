package filter

import (
	"regexp"
	"strings"
)

// compiledPattern is a compiled glob pattern that can match entry paths.
type compiledPattern struct {
	re       *regexp.Regexp
	original string
	anchored bool // pattern starts with /
	dirOnly  bool // pattern ends with /
}

// compilePattern converts a rsync-style glob pattern into a compiled matcher.
// Archives store only file entries, so a directory pattern (trailing /)
// matches every entry beneath a directory of that name.
func compilePattern(pattern string) (*compiledPattern, error) {
	cp := &compiledPattern{original: pattern}

	if strings.HasSuffix(pattern, "/") {
		cp.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}

	// Leading / means anchored to root.
	if strings.HasPrefix(pattern, "/") {
		cp.anchored = true
		pattern = strings.TrimPrefix(pattern, "/")
	} else if strings.Contains(pattern, "/") {
		// Contains a / but doesn't start with /; still anchored per rsync rules.
		cp.anchored = true
	}

	// Convert glob to regex.
	reStr := globToRegex(pattern)

	tail := "$"
	if cp.dirOnly {
		tail = "/"
	}
	if cp.anchored {
		// Match from the start of the relative path.
		reStr = "^" + reStr + tail
	} else {
		// Match against basename or any path suffix.
		reStr = "(^|/)" + reStr + tail
	}

	re, err := regexp.Compile(reStr)
	if err != nil {
		return nil, err
	}
	cp.re = re
	return cp, nil
}

// match tests whether an entry's stored path matches this pattern. Archives
// written on Windows join paths with a backslash; both separators count.
func (cp *compiledPattern) match(relPath string) bool {
	return cp.re.MatchString(normalizeSeparators(relPath))
}

func normalizeSeparators(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// globToRegex translates glob syntax: * and ? stop at a separator, ** crosses
// separators, [...] and [!...] are character classes.
func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		switch {
		case strings.HasPrefix(pattern[i:], "**/"):
			b.WriteString("(.*/)?")
			i += 3
		case strings.HasPrefix(pattern[i:], "**"):
			b.WriteString(".*")
			i += 2
		case pattern[i] == '*':
			b.WriteString("[^/]*")
			i++
		case pattern[i] == '?':
			b.WriteString("[^/]")
			i++
		case pattern[i] == '[':
			cls, n := charClass(pattern[i:])
			if n == 0 {
				b.WriteString(`\[`)
				i++
				continue
			}
			b.WriteString(cls)
			i += n
		default:
			b.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
			i++
		}
	}
	return b.String()
}

// charClass converts a bracket expression at the start of s into a regex
// class and reports how many bytes it consumed, or 0 if s has no closing ].
// A ] directly after [ or [! is literal.
func charClass(s string) (string, int) {
	j := 1
	if j < len(s) && s[j] == '!' {
		j++
	}
	if j < len(s) && s[j] == ']' {
		j++
	}
	end := strings.IndexByte(s[j:], ']')
	if end < 0 {
		return "", 0
	}
	end += j
	body := s[1:end]
	if strings.HasPrefix(body, "!") {
		body = "^" + body[1:]
	}
	return "[" + body + "]", end + 1
}
