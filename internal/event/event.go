package event

import (
	"context"
	"log/slog"
	"time"
)

// Type identifies the kind of event.
type Type int

const (
	ArchiveOpened Type = iota + 1
	HeaderMagic
	BadMagic
	HeaderDecoded
	EntryDecoded
	BadEntryMagic
	ScanComplete
	ScanFailed
	DigestComputed
)

var typeNames = [...]string{
	ArchiveOpened:  "ArchiveOpened",
	HeaderMagic:    "HeaderMagic",
	BadMagic:       "BadMagic",
	HeaderDecoded:  "HeaderDecoded",
	EntryDecoded:   "EntryDecoded",
	BadEntryMagic:  "BadEntryMagic",
	ScanComplete:   "ScanComplete",
	ScanFailed:     "ScanFailed",
	DigestComputed: "DigestComputed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event is a single record emitted while scanning an archive.
type Event struct {
	Timestamp time.Time
	Error     error
	Path      string // entry relative path (EntryDecoded)
	Digest    string // hex digest (DigestComputed)
	Type      Type
	Index     int64 // entry index
	Offset    int64 // byte offset of the entry header
	Magic     int64 // magic as read (HeaderMagic, BadMagic, BadEntryMagic)
	Size      int64 // archive size (ArchiveOpened) or body size (EntryDecoded)
	Count     int64 // declared entry count (HeaderDecoded) or decoded count (ScanComplete)
}

// Handler receives events synchronously, in emission order.
type Handler interface {
	Handle(ev Event)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(ev Event)

// Handle calls f(ev).
func (f HandlerFunc) Handle(ev Event) { f(ev) }

// Discard drops every event.
var Discard Handler = HandlerFunc(func(Event) {})

type tee []Handler

func (t tee) Handle(ev Event) {
	for _, h := range t {
		h.Handle(ev)
	}
}

// Tee returns a Handler that forwards each event to every handler in order.
// Nil handlers are skipped.
//
//nolint:ireturn // combinator returns interface by design
func Tee(handlers ...Handler) Handler {
	var t tee
	for _, h := range handlers {
		if h != nil {
			t = append(t, h)
		}
	}
	return t
}

// Logged returns a Handler that writes each event to logger as a structured
// "darch.event" record before forwarding it to next.
//
//nolint:ireturn // combinator returns interface by design
func Logged(logger *slog.Logger, next Handler) Handler {
	return HandlerFunc(func(ev Event) {
		attrs := []slog.Attr{
			slog.String("type", ev.Type.String()),
		}
		switch ev.Type {
		case ArchiveOpened:
			attrs = append(attrs, slog.Int64("size", ev.Size))
		case HeaderMagic, BadMagic:
			attrs = append(attrs, slog.Int64("magic", ev.Magic))
		case HeaderDecoded, ScanComplete:
			attrs = append(attrs, slog.Int64("count", ev.Count))
		case EntryDecoded:
			attrs = append(attrs,
				slog.Int64("index", ev.Index),
				slog.Int64("offset", ev.Offset),
				slog.String("path", ev.Path),
				slog.Int64("size", ev.Size),
			)
		case BadEntryMagic:
			attrs = append(attrs,
				slog.Int64("index", ev.Index),
				slog.Int64("offset", ev.Offset),
				slog.Int64("magic", ev.Magic),
			)
		case DigestComputed:
			attrs = append(attrs, slog.String("digest", ev.Digest))
		}
		level := slog.LevelDebug
		if ev.Error != nil {
			level = slog.LevelError
			attrs = append(attrs, slog.String("error", ev.Error.Error()))
		}
		logger.LogAttrs(context.Background(), level, "darch.event", attrs...)
		if next != nil {
			next.Handle(ev)
		}
	})
}
