package archive

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bamsammich/darch/internal/event"
	"github.com/bamsammich/darch/internal/platform"
)

// Status is the outcome of a scan.
type Status int

const (
	// Complete means every declared entry was decoded.
	Complete Status = iota
	// StoppedAtHeader means the archive magic did not match.
	StoppedAtHeader
	// StoppedAtEntry means an entry magic did not match; see Result.StopIndex.
	StoppedAtEntry
	// Failed means a decode error aborted the scan; see Result.Err.
	Failed
)

func (s Status) String() string {
	switch s {
	case Complete:
		return "complete"
	case StoppedAtHeader:
		return "stopped at header"
	case StoppedAtEntry:
		return "stopped at entry"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Header is the archive-level header.
type Header struct {
	Magic      int64
	EntryCount int64
}

// Entry is one decoded entry header. The permissions field and the body are
// skipped and not retained.
type Entry struct {
	Path       string
	Index      int64
	Offset     int64 // offset of the entry magic
	Magic      int64
	PathLength int64
	BodySize   int64
}

// Result reports what a scan learned.
type Result struct {
	Err       error
	Entries   []Entry
	Header    Header
	Size      int64
	StopIndex int64 // valid when Status == StoppedAtEntry
	Status    Status
}

// Config controls scan behavior.
type Config struct {
	// Handler receives events as the scan progresses. Nil discards them.
	Handler event.Handler
}

// ScanFile opens the archive at path and scans it. The file is closed before
// ScanFile returns.
func ScanFile(path string, cfg Config) Result {
	f, err := os.Open(path)
	if err != nil {
		return newScanner(nil, 0, cfg).fail(Result{}, fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return newScanner(nil, 0, cfg).fail(Result{}, fmt.Errorf("stat %s: %w", path, err))
	}
	platform.AdviseSequential(f, info.Size())

	return Scan(f, info.Size(), cfg)
}

// Scan decodes the archive header and entry table from src, which holds size
// bytes. A magic mismatch stops the scan without an error.
func Scan(src io.ReadSeeker, size int64, cfg Config) Result {
	return newScanner(src, size, cfg).run()
}

func newScanner(src io.ReadSeeker, size int64, cfg Config) *scanner {
	s := &scanner{
		dec:     NewDecoder(src, size),
		handler: cfg.Handler,
	}
	if s.handler == nil {
		s.handler = event.Discard
	}
	return s
}

type scanner struct {
	dec     *Decoder
	handler event.Handler
}

func (s *scanner) emit(ev event.Event) {
	ev.Timestamp = time.Now()
	s.handler.Handle(ev)
}

func (s *scanner) run() Result {
	res := Result{Size: s.dec.Size()}
	s.emit(event.Event{Type: event.ArchiveOpened, Size: res.Size})

	magic, err := s.dec.ReadInt64()
	if err != nil {
		return s.fail(res, fmt.Errorf("archive magic: %w", err))
	}
	res.Header.Magic = magic
	s.emit(event.Event{Type: event.HeaderMagic, Magic: magic})

	if magic != MagicNumber {
		s.emit(event.Event{Type: event.BadMagic, Magic: magic})
		res.Status = StoppedAtHeader
		return res
	}

	count, err := s.dec.ReadInt64()
	if err != nil {
		return s.fail(res, fmt.Errorf("entry count: %w", err))
	}
	res.Header.EntryCount = count
	s.emit(event.Event{Type: event.HeaderDecoded, Count: count})

	// A negative count iterates zero times.
	for i := int64(0); i < count; i++ {
		entry, err := s.readEntry(i)
		if err != nil {
			return s.fail(res, fmt.Errorf("entry %d: %w", i, err))
		}
		if entry.Magic != MagicNumber {
			s.emit(event.Event{
				Type:   event.BadEntryMagic,
				Index:  i,
				Offset: entry.Offset,
				Magic:  entry.Magic,
			})
			res.Status = StoppedAtEntry
			res.StopIndex = i
			return res
		}
		res.Entries = append(res.Entries, entry)
		s.emit(event.Event{
			Type:   event.EntryDecoded,
			Index:  i,
			Offset: entry.Offset,
			Path:   entry.Path,
			Size:   entry.BodySize,
		})
	}

	res.Status = Complete
	s.emit(event.Event{Type: event.ScanComplete, Count: int64(len(res.Entries))})
	return res
}

// readEntry decodes one entry header and skips its body. When the entry magic
// does not match, only Index, Offset and Magic are set.
func (s *scanner) readEntry(i int64) (Entry, error) {
	e := Entry{Index: i, Offset: s.dec.Offset()}

	var err error
	if e.Magic, err = s.dec.ReadInt64(); err != nil {
		return e, fmt.Errorf("magic: %w", err)
	}
	if e.Magic != MagicNumber {
		return e, nil
	}

	if e.PathLength, err = s.dec.ReadInt64(); err != nil {
		return e, fmt.Errorf("path length: %w", err)
	}
	raw, err := s.dec.ReadBytes(e.PathLength)
	if err != nil {
		return e, fmt.Errorf("path: %w", err)
	}
	if e.Path, err = decodeASCII(raw); err != nil {
		return e, fmt.Errorf("path: %w", err)
	}

	if err := s.dec.Skip(PermissionsSize); err != nil {
		return e, fmt.Errorf("permissions: %w", err)
	}

	if e.BodySize, err = s.dec.ReadInt64(); err != nil {
		return e, fmt.Errorf("body size: %w", err)
	}
	if err := s.dec.Skip(e.BodySize); err != nil {
		return e, fmt.Errorf("body: %w", err)
	}
	return e, nil
}

func (s *scanner) fail(res Result, err error) Result {
	res.Status = Failed
	res.Err = err
	s.emit(event.Event{Type: event.ScanFailed, Error: err})
	return res
}

func decodeASCII(b []byte) (string, error) {
	for i, c := range b {
		if c > 0x7F {
			return "", fmt.Errorf("%w: non-ASCII byte 0x%02X at position %d", ErrInvalidEncoding, c, i)
		}
	}
	return string(b), nil
}
