package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "ArchiveOpened", typ: ArchiveOpened},
		{want: "HeaderMagic", typ: HeaderMagic},
		{want: "BadMagic", typ: BadMagic},
		{want: "HeaderDecoded", typ: HeaderDecoded},
		{want: "EntryDecoded", typ: EntryDecoded},
		{want: "BadEntryMagic", typ: BadEntryMagic},
		{want: "ScanComplete", typ: ScanComplete},
		{want: "ScanFailed", typ: ScanFailed},
		{want: "DigestComputed", typ: DigestComputed},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
	assert.Equal(t, "Unknown", Type(-1).String())
}

type recorder struct {
	events []Event
}

func (r *recorder) Handle(ev Event) { r.events = append(r.events, ev) }

func TestTeeOrder(t *testing.T) {
	var order []string
	a := HandlerFunc(func(Event) { order = append(order, "a") })
	b := HandlerFunc(func(Event) { order = append(order, "b") })

	h := Tee(a, nil, b)
	h.Handle(Event{Type: ArchiveOpened})
	h.Handle(Event{Type: ScanComplete})

	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard.Handle(Event{Type: EntryDecoded}) })
}

func TestLoggedForwardsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := &recorder{}

	h := Logged(logger, rec)
	h.Handle(Event{Type: EntryDecoded, Index: 2, Offset: 96, Path: "a/b.txt", Size: 12})

	require.Len(t, rec.events, 1)
	assert.Equal(t, "a/b.txt", rec.events[0].Path)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "darch.event", line["msg"])
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "EntryDecoded", line["type"])
	assert.Equal(t, "a/b.txt", line["path"])
	assert.InDelta(t, 96, line["offset"], 0)
	assert.InDelta(t, 12, line["size"], 0)
}

func TestLoggedErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	h := Logged(logger, nil)
	h.Handle(Event{Type: HeaderDecoded, Count: 4})
	assert.Empty(t, buf.String(), "non-error events log at debug")

	h.Handle(Event{Type: ScanFailed, Error: errors.New("truncated read")})
	out := buf.String()
	assert.True(t, strings.Contains(out, "level=ERROR"), out)
	assert.Contains(t, out, `error="truncated read"`)
	assert.Contains(t, out, "type=ScanFailed")
}
