package ui

import (
	"fmt"

	"github.com/bamsammich/darch/internal/stats"
)

// completionSummary builds a final summary line from a snapshot.
// Format: done ✓  entries 1,204  shown 1,100  bodies 2.1 GiB  time 0s
func completionSummary(snap stats.Snapshot) string {
	label, icon := "done", "✓"
	switch {
	case snap.Failed:
		label, icon = "failed", "✗"
	case snap.Stopped:
		label, icon = "stopped", "✗"
	}

	base := fmt.Sprintf("%s %s  entries %s  shown %s  bodies %s  time %s",
		label, icon,
		FormatCount(snap.EntriesDecoded),
		FormatCount(snap.EntriesShown),
		FormatBytes(snap.BodyBytes),
		FormatDuration(snap.Elapsed),
	)

	if snap.EntriesFiltered > 0 {
		base += fmt.Sprintf("  filtered %s", FormatCount(snap.EntriesFiltered))
	}
	return base
}
