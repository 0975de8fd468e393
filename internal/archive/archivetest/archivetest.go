// Package archivetest builds darch archives for tests.
package archivetest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bamsammich/darch/internal/archive"
)

// Entry describes one entry to write. Zero Magic means archive.MagicNumber.
// PathLength and BodySize override the lengths derived from Path and Body,
// which lets tests declare lengths the bytes do not back.
type Entry struct {
	PathLength  *int64
	BodySize    *int64
	Path        string
	Body        []byte
	Magic       int64
	Permissions int64
}

// Builder accumulates an archive in memory.
type Builder struct {
	count   *int64
	entries []Entry
	magic   int64
}

// New returns a Builder with a valid archive magic and no entries.
func New() *Builder {
	return &Builder{magic: archive.MagicNumber}
}

// Int64 returns a pointer to v, for Entry overrides.
func Int64(v int64) *int64 { return &v }

// WithMagic sets the archive-level magic.
func (b *Builder) WithMagic(m int64) *Builder {
	b.magic = m
	return b
}

// WithEntryCount overrides the declared entry count.
func (b *Builder) WithEntryCount(n int64) *Builder {
	b.count = &n
	return b
}

// Add appends a well-formed entry.
func (b *Builder) Add(path string, body []byte) *Builder {
	return b.AddEntry(Entry{Path: path, Body: body, Permissions: 0o644})
}

// AddEntry appends e as given.
func (b *Builder) AddEntry(e Entry) *Builder {
	b.entries = append(b.entries, e)
	return b
}

// EntryOffset returns the byte offset of entry i's magic in Bytes().
func (b *Builder) EntryOffset(i int) int64 {
	off := int64(2 * archive.IntSize)
	for _, e := range b.entries[:i] {
		off += entrySize(e)
	}
	return off
}

// Bytes encodes the archive.
func (b *Builder) Bytes() []byte {
	count := int64(len(b.entries))
	if b.count != nil {
		count = *b.count
	}

	buf := appendInt64(nil, b.magic)
	buf = appendInt64(buf, count)
	for _, e := range b.entries {
		magic := e.Magic
		if magic == 0 {
			magic = archive.MagicNumber
		}
		pathLen := int64(len(e.Path))
		if e.PathLength != nil {
			pathLen = *e.PathLength
		}
		bodySize := int64(len(e.Body))
		if e.BodySize != nil {
			bodySize = *e.BodySize
		}

		buf = appendInt64(buf, magic)
		buf = appendInt64(buf, pathLen)
		buf = append(buf, e.Path...)
		buf = appendInt64(buf, e.Permissions)
		buf = appendInt64(buf, bodySize)
		buf = append(buf, e.Body...)
	}
	return buf
}

// WriteFile writes the archive to name under dir and returns its path.
func (b *Builder) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive %s: %v", path, err)
	}
	return path
}

func entrySize(e Entry) int64 {
	return 4*archive.IntSize + int64(len(e.Path)) + int64(len(e.Body))
}

//nolint:gosec // G115: two's complement reinterpretation
func appendInt64(b []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(b, uint64(v))
}
