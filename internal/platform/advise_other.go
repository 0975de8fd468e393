//go:build !linux

package platform

import "os"

// AdviseSequential is a no-op on non-Linux platforms (fadvise is Linux-only).
func AdviseSequential(_ *os.File, _ int64) {}
