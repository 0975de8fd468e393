package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile appends the rules in a filter file to the chain. One directive per
// line:
//
//	+ PATTERN         show matching entries
//	- PATTERN         hide matching entries
//	PATTERN           same as "- PATTERN"
//	min-size SIZE     hide entries with a smaller body
//	max-size SIZE     hide entries with a larger body
//
// Blank lines and lines starting with # are ignored. Size directives use
// ParseSize syntax and may be overridden later by SetMinSize/SetMaxSize.
func (c *Chain) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open filter file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		if err := c.applyDirective(text); err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read filter file: %w", err)
	}
	return nil
}

func (c *Chain) applyDirective(text string) error {
	verb, arg, found := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	if !found {
		return c.AddExclude(text)
	}

	switch verb {
	case "+":
		return c.AddInclude(arg)
	case "-":
		return c.AddExclude(arg)
	case "min-size", "max-size":
		n, err := ParseSize(arg)
		if err != nil {
			return fmt.Errorf("%s: %w", verb, err)
		}
		if verb == "min-size" {
			c.SetMinSize(n)
		} else {
			c.SetMaxSize(n)
		}
		return nil
	default:
		// Patterns may contain spaces.
		return c.AddExclude(text)
	}
}
