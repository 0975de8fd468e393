// Package archive decodes darch archives: a magic number and entry count,
// followed by length-prefixed entries whose bodies are skipped, never read.
//
// Layout (all integers signed 64-bit little-endian):
//
//	magic | entryCount | entry[0] ... entry[entryCount-1]
//	entry: magic | pathLength | path | permissions(8) | bodySize | body
package archive

const (
	// MagicNumber tags both the archive header and every entry header.
	MagicNumber int64 = 627455

	// IntSize is the width in bytes of every integer field.
	IntSize = 8

	// PermissionsSize is the width of the opaque per-entry permissions field.
	PermissionsSize = 8
)
