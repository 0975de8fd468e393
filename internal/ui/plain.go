package ui

import (
	"fmt"
	"io"

	"github.com/bamsammich/darch/internal/event"
	"github.com/bamsammich/darch/internal/stats"
)

// plainReporter writes the line-oriented archive listing.
type plainReporter struct {
	w      io.Writer
	stats  *stats.Collector
	filter Matcher
	style  HexStyle
}

func (p *plainReporter) hex(n int64) string {
	return FormatHex(n, p.style)
}

func (p *plainReporter) Handle(ev event.Event) {
	switch ev.Type {
	case event.ArchiveOpened:
		fmt.Fprintf(p.w, "Archive size: %s.\n", p.hex(ev.Size))
	case event.HeaderMagic:
		fmt.Fprintf(p.w, "Magic number: %s.\n", p.hex(ev.Magic))
	case event.BadMagic:
		fmt.Fprintln(p.w, "Bad magic number.")
	case event.HeaderDecoded:
		fmt.Fprintf(p.w, "Entry count: %s.\n", p.hex(ev.Count))
	case event.EntryDecoded:
		if p.filter != nil && !p.filter.Match(ev.Path, ev.Size) {
			p.stats.AddEntriesFiltered(1)
			return
		}
		p.stats.AddEntriesShown(1)
		fmt.Fprintf(p.w, "Entry %s: \n", p.hex(ev.Index))
		fmt.Fprintf(p.w, "\tRelative Path: %s.\n", ev.Path)
		fmt.Fprintf(p.w, "\tFile Size: %s.\n", p.hex(ev.Size))
	case event.BadEntryMagic:
		fmt.Fprintf(p.w, "Bad magic number at idx %s.\n", p.hex(ev.Index))
	case event.ScanFailed:
		fmt.Fprintf(p.w, "Error: %v.\n", ev.Error)
	case event.DigestComputed:
		fmt.Fprintf(p.w, "Archive BLAKE3: %s.\n", ev.Digest)
	case event.ScanComplete:
		// nothing beyond the per-entry lines
	}
}

func (p *plainReporter) Summary() string {
	return completionSummary(p.stats.Snapshot())
}
