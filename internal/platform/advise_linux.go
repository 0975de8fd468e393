//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// AdviseSequential tells the kernel the first size bytes of f will be read
// front to back. Errors are ignored as fadvise is only a hint.
//
//nolint:gosec // G115: fd values are small non-negative integers
func AdviseSequential(f *os.File, size int64) {
	//nolint:errcheck // fadvise is advisory; not supported on all filesystems
	unix.Fadvise(int(f.Fd()), 0, size, unix.FADV_SEQUENTIAL)
}
