package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "list.rules")

	content := `# show sources, hide objects
+ *.c
- *.o

- build/
README
`
	require.NoError(t, os.WriteFile(rules, []byte(content), 0o644))

	c := NewChain()
	require.NoError(t, c.LoadFile(rules))

	require.Len(t, c.rules, 4)
	assert.True(t, c.rules[0].Include)
	assert.False(t, c.rules[1].Include)
	assert.False(t, c.rules[2].Include)
	assert.False(t, c.rules[3].Include)

	assert.True(t, c.Match("src/main.c", 100))
	assert.False(t, c.Match("src/main.o", 100))
	assert.False(t, c.Match("build/tool", 100))
	assert.False(t, c.Match("README", 100))
	assert.True(t, c.Match("LICENSE", 100))
}

func TestLoadFileSizeDirectives(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "size.rules")
	content := "min-size 0x10\nmax-size 1K\n- *.tmp\nold notes.txt\n"
	require.NoError(t, os.WriteFile(rules, []byte(content), 0o644))

	c := NewChain()
	require.NoError(t, c.LoadFile(rules))

	require.Len(t, c.rules, 2)
	assert.False(t, c.Match("a.bin", 15))
	assert.True(t, c.Match("a.bin", 16))
	assert.True(t, c.Match("a.bin", 1024))
	assert.False(t, c.Match("a.bin", 1025))
	assert.False(t, c.Match("x.tmp", 100))
	assert.False(t, c.Match("old notes.txt", 100))
}

func TestLoadFileBadSize(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "bad.rules")
	require.NoError(t, os.WriteFile(rules, []byte("# sizes\nmax-size lots\n"), 0o644))

	err := NewChain().LoadFile(rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.rules:2: max-size")
	assert.ErrorIs(t, err, errBadSize)
}

func TestLoadFileOnlyComments(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "empty.rules")
	require.NoError(t, os.WriteFile(rules, []byte("# nothing\n\n   \n"), 0o644))

	c := NewChain()
	require.NoError(t, c.LoadFile(rules))
	assert.Empty(t, c.rules)
	assert.True(t, c.Empty())
}

func TestLoadFileNotExists(t *testing.T) {
	c := NewChain()
	err := c.LoadFile("/nonexistent/list.rules")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
