package archive

import (
	"encoding/binary"
	"errors"
	"io"
)

// Decoder is a forward-only cursor over an archive. It tracks its own offset
// and bounds every read and skip against the archive size, so a bad length
// field surfaces as ErrTruncatedRead before anything is allocated or sought.
type Decoder struct {
	r      io.ReadSeeker
	size   int64
	offset int64
	buf    [IntSize]byte
}

// NewDecoder returns a Decoder reading from r, which must be positioned at
// the start of an archive of the given size.
func NewDecoder(r io.ReadSeeker, size int64) *Decoder {
	return &Decoder{r: r, size: size}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 { return d.offset }

// Size returns the total archive size.
func (d *Decoder) Size() int64 { return d.size }

// Remaining returns the number of bytes between the cursor and the end.
func (d *Decoder) Remaining() int64 { return max(d.size-d.offset, 0) }

// ReadInt64 reads a signed little-endian 64-bit integer.
func (d *Decoder) ReadInt64() (int64, error) {
	if err := d.check("read", IntSize); err != nil {
		return 0, err
	}
	if err := d.readFull(d.buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(d.buf[:])), nil //nolint:gosec // G115: two's complement reinterpretation
}

// ReadBytes reads exactly n bytes.
func (d *Decoder) ReadBytes(n int64) ([]byte, error) {
	if err := d.check("read", n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if err := d.readFull(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Skip advances the cursor by n bytes without reading them.
func (d *Decoder) Skip(n int64) error {
	if err := d.check("skip", n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if _, err := d.r.Seek(n, io.SeekCurrent); err != nil {
		return d.fail("skip", n, err)
	}
	d.offset += n
	return nil
}

func (d *Decoder) check(op string, n int64) error {
	if n < 0 {
		return d.fail(op, n, ErrInvalidLength)
	}
	if n > d.Remaining() {
		return d.fail(op, n, ErrTruncatedRead)
	}
	return nil
}

func (d *Decoder) readFull(b []byte) error {
	n, err := io.ReadFull(d.r, b)
	if err != nil {
		// The source shrank underneath us.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrTruncatedRead
		}
		return d.fail("read", int64(len(b)), err)
	}
	d.offset += int64(n)
	return nil
}

func (d *Decoder) fail(op string, n int64, err error) error {
	return &DecodeError{
		Op:        op,
		Offset:    d.offset,
		Want:      n,
		Remaining: d.Remaining(),
		Err:       err,
	}
}
