package ui

import (
	"github.com/bamsammich/darch/internal/event"
	"github.com/bamsammich/darch/internal/stats"
)

// quietReporter consumes events but produces no output.
type quietReporter struct {
	stats *stats.Collector
}

func (p *quietReporter) Handle(_ event.Event) {
	// Decode totals are tallied by the collector itself; nothing is listed,
	// so nothing counts as shown or filtered.
}

func (p *quietReporter) Summary() string {
	return ""
}
