package stats

import (
	"fmt"
	"time"

	"github.com/bamsammich/darch/internal/event"
)

// Collector tallies one scan from its events. Scans are single-threaded, so
// the counters are plain fields; a Collector must not be shared between
// goroutines.
type Collector struct {
	startTime time.Time
	endTime   time.Time
	snap      Snapshot
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	ArchiveSize     int64
	EntriesDeclared int64
	EntriesDecoded  int64
	EntriesShown    int64
	EntriesFiltered int64
	PathBytes       int64
	BodyBytes       int64
	Elapsed         time.Duration
	Stopped         bool // a magic mismatch ended the scan early
	Failed          bool // a decode error aborted the scan
}

// Handle updates the counters from a scan event.
func (c *Collector) Handle(ev event.Event) {
	switch ev.Type {
	case event.ArchiveOpened:
		c.snap.ArchiveSize = ev.Size
	case event.HeaderDecoded:
		c.snap.EntriesDeclared = ev.Count
	case event.EntryDecoded:
		c.snap.EntriesDecoded++
		c.snap.PathBytes += int64(len(ev.Path))
		c.snap.BodyBytes += ev.Size
	case event.BadMagic, event.BadEntryMagic:
		c.snap.Stopped = true
		c.endTime = ev.Timestamp
	case event.ScanFailed:
		c.snap.Failed = true
		c.endTime = ev.Timestamp
	case event.ScanComplete:
		c.endTime = ev.Timestamp
	}
}

// AddEntriesShown records entries the reporter printed.
func (c *Collector) AddEntriesShown(n int64) { c.snap.EntriesShown += n }

// AddEntriesFiltered records entries the reporter's filter suppressed.
func (c *Collector) AddEntriesFiltered(n int64) { c.snap.EntriesFiltered += n }

// Snapshot returns the current counters.
func (c *Collector) Snapshot() Snapshot {
	s := c.snap
	s.Elapsed = c.Elapsed()
	return s
}

// Elapsed returns the scan duration, or the time since creation while the
// scan is still running.
func (c *Collector) Elapsed() time.Duration {
	if !c.endTime.IsZero() {
		return c.endTime.Sub(c.startTime)
	}
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"size=%d declared=%d decoded=%d shown=%d filtered=%d path_bytes=%d body_bytes=%d",
		s.ArchiveSize, s.EntriesDeclared, s.EntriesDecoded, s.EntriesShown,
		s.EntriesFiltered, s.PathBytes, s.BodyBytes,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
