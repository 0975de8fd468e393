// Package platform wraps OS-specific I/O hints used when reading archives.
package platform
