package cifkit

import (
	"log"

	"github.com/google/uuid"
	"github.com/lichman0405/cifkit/internal/tokenizer"
)

// WarningKind mirrors the tokenizer's diagnostic classification at the
// public API boundary, so callers never need to import internal/tokenizer
// just to switch on a Warning's kind.
type WarningKind int

const (
	WarningUnterminatedString WarningKind = WarningKind(tokenizer.WarningUnterminatedString)
	WarningUnflushedData      WarningKind = WarningKind(tokenizer.WarningUnflushedData)
)

// Warning is a non-fatal diagnostic produced while parsing. SessionID
// ties every warning from one Parse call back to that call, so a caller
// batch-parsing many files can tell which file a given warning came
// from even after results have been merged or reordered.
type Warning struct {
	SessionID uuid.UUID
	Kind      WarningKind
	Message   string
}

// Parse tokenizes and builds data into a Cif. Parse never fails outright
// on malformed or truncated input: problems are reported as Warnings
// alongside whatever could still be recovered, since a library handing
// back "nothing" on the first bad byte of an otherwise-good file is
// worse than a caller that can inspect what went wrong.
func Parse(data []byte, opts ...Option) (*Cif, []Warning) {
	cfg := newConfig(opts)
	sessionID := uuid.New()
	trace := func(format string, args ...any) {
		if cfg.debugTrace {
			log.Printf("cifkit: "+format, args...)
			return
		}
		debugf(format, args...)
	}

	trace("session %s: parsing %d bytes", sessionID, len(data))

	doc, raw := build(data)

	warnings := make([]Warning, 0, len(raw))
	for _, w := range raw {
		warnings = append(warnings, Warning{
			SessionID: sessionID,
			Kind:      WarningKind(w.Kind),
			Message:   w.Message,
		})
	}

	trace("session %s: found %d blocks, %d warnings", sessionID, len(doc.blocks), len(warnings))

	return doc, warnings
}
