// Package filter decides which archive entries are shown in a listing,
// using ordered rsync-style include/exclude globs plus body size bounds.
// Filtering never affects decoding; hidden entries are still validated.
package filter

// Rule is one include or exclude glob. The first rule whose pattern matches
// an entry decides whether it is shown.
type Rule struct {
	Pattern *compiledPattern
	Include bool
}

// sizeRange bounds an entry's declared body size. Each end applies only once
// set, so a maximum of 0 selects empty entries.
type sizeRange struct {
	min, max       int64
	hasMin, hasMax bool
}

func (r sizeRange) contains(n int64) bool {
	return (!r.hasMin || n >= r.min) && (!r.hasMax || n <= r.max)
}

// Chain is an ordered rule list plus a size range. The zero value shows
// every entry.
type Chain struct {
	rules []Rule
	size  sizeRange
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// AddExclude appends a rule hiding entries that match pattern.
func (c *Chain) AddExclude(pattern string) error {
	return c.add(pattern, false)
}

// AddInclude appends a rule showing entries that match pattern.
func (c *Chain) AddInclude(pattern string) error {
	return c.add(pattern, true)
}

func (c *Chain) add(pattern string, include bool) error {
	cp, err := compilePattern(pattern)
	if err != nil {
		return err
	}
	c.rules = append(c.rules, Rule{Pattern: cp, Include: include})
	return nil
}

// SetMinSize hides entries whose body is smaller than n bytes.
func (c *Chain) SetMinSize(n int64) { c.size.min, c.size.hasMin = n, true }

// SetMaxSize hides entries whose body is larger than n bytes.
func (c *Chain) SetMaxSize(n int64) { c.size.max, c.size.hasMax = n, true }

// Empty reports whether the chain would show every entry.
func (c *Chain) Empty() bool {
	return len(c.rules) == 0 && c.size == sizeRange{}
}

// Match reports whether the entry with stored path relPath and declared body
// size should be shown.
func (c *Chain) Match(relPath string, size int64) bool {
	if !c.size.contains(size) {
		return false
	}
	for _, r := range c.rules {
		if r.Pattern.match(relPath) {
			return r.Include
		}
	}
	return true
}
