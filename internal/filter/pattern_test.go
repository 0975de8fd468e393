package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, pattern string) *compiledPattern {
	t.Helper()
	p, err := compilePattern(pattern)
	require.NoError(t, err)
	return p
}

func TestPatternMatching(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.txt", "notes.txt", true},
		{"*.txt", "a/b/notes.txt", true},
		{"*.txt", "notes.txt.bak", false},
		{"*.txt", "notes.md", false},

		{"**/*.c", "main.c", true},
		{"**/*.c", "src/lib/util.c", true},
		{"**/*.c", "main.h", false},

		{"/top.txt", "top.txt", true},
		{"/top.txt", "sub/top.txt", false},

		{"docs/*.md", "docs/a.md", true},
		{"docs/*.md", "other/docs/a.md", false},

		{"file?.bin", "file1.bin", true},
		{"file?.bin", "file12.bin", false},
		{"file?.bin", "file/.bin", false},

		{"[ab]*.log", "a1.log", true},
		{"[!ab]*.log", "a1.log", false},
		{"[!ab]*.log", "c1.log", true},

		{"v1.0", "v1.0", true},
		{"v1.0", "v1x0", false},

		{"cache/", "cache/entry", true},
		{"cache/", "x/cache/entry", true},
		{"cache/", "cache", false},

		{"*.txt", `docs\notes.txt`, true},
		{"docs/*.md", `docs\a.md`, true},
		{"cache/", `x\cache\entry`, true},
		{"*.md", `docs\a.md.bak`, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			p := mustCompile(t, tt.pattern)
			assert.Equal(t, tt.want, p.match(tt.path))
		})
	}
}

func TestPatternFlags(t *testing.T) {
	p := mustCompile(t, "/out/")
	assert.True(t, p.anchored)
	assert.True(t, p.dirOnly)
	assert.Equal(t, "/out/", p.original)

	p = mustCompile(t, "a/b")
	assert.True(t, p.anchored)
	assert.False(t, p.dirOnly)

	p = mustCompile(t, "*.tmp")
	assert.False(t, p.anchored)
}

func TestGlobToRegex(t *testing.T) {
	tests := []struct {
		glob string
		want string
	}{
		{"*", "[^/]*"},
		{"**", ".*"},
		{"**/x", "(.*/)?x"},
		{"?", "[^/]"},
		{"a.b", `a\.b`},
		{"[!x]", "[^x]"},
		{"[unterminated", `\[unterminated`},
	}
	for _, tt := range tests {
		t.Run(tt.glob, func(t *testing.T) {
			assert.Equal(t, tt.want, globToRegex(tt.glob))
		})
	}
}
