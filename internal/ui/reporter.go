package ui

import (
	"io"

	"github.com/bamsammich/darch/internal/event"
	"github.com/bamsammich/darch/internal/stats"
)

// Reporter renders scan events as they arrive.
type Reporter interface {
	event.Handler
	// Summary returns the final summary line, or "" when there is none.
	Summary() string
}

// Matcher decides whether an entry is listed.
type Matcher interface {
	Match(relPath string, size int64) bool
}

// Config configures a Reporter.
type Config struct {
	Writer   io.Writer
	Stats    *stats.Collector
	Filter   Matcher // nil lists every entry
	HexStyle HexStyle
	Quiet    bool
}

// NewReporter creates the appropriate reporter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewReporter(cfg Config) Reporter {
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	if cfg.Quiet {
		return &quietReporter{stats: cfg.Stats}
	}
	return &plainReporter{
		w:      cfg.Writer,
		stats:  cfg.Stats,
		filter: cfg.Filter,
		style:  cfg.HexStyle,
	}
}
