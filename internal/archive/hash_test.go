package archive_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/darch/internal/archive"
	"github.com/bamsammich/darch/internal/archive/archivetest"
)

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	p1 := archivetest.New().Add("a.txt", []byte("alpha")).WriteFile(t, dir, "one.darch")
	p2 := archivetest.New().Add("a.txt", []byte("alpha")).WriteFile(t, dir, "two.darch")
	p3 := archivetest.New().Add("a.txt", []byte("beta")).WriteFile(t, dir, "three.darch")

	h1, err := archive.Fingerprint(p1)
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, err := archive.Fingerprint(p2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := archive.Fingerprint(p3)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestFingerprintEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.darch")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	h, err := archive.Fingerprint(path)
	require.NoError(t, err)
	// BLAKE3 of the empty input.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", h)
}

func TestFingerprintNotExist(t *testing.T) {
	_, err := archive.Fingerprint("/nonexistent/archive.darch")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
