package cifkit

import "github.com/lichman0405/cifkit/internal/tokenizer"

// builder consumes a token stream and assembles it into a Cif, replaying
// the same zip-style name/value commit logic the tokenizer's ancestor
// used internally: a run of consecutive DataName tokens declares the
// columns of the row(s) that follow (one column for a scalar
// assignment, many for a loop_), and a row is committed to the current
// block the instant enough Value tokens have arrived to pair off with
// every pending name.
//
// Loop bookkeeping is intentionally NOT reset when a new data_ block
// header appears mid-stream: a file that ends a loop_ without a trailing
// data name to terminate it will carry that loop's column list (and any
// partial row) into the next block, exactly as the original algorithm
// does. This is a faithfully preserved quirk, not an oversight. Outside
// a loop, a pending scalar name/value pair is committed to the old block
// if complete and dropped otherwise (see flushBalancedScalar).
type builder struct {
	doc *Cif

	current *DataBlock

	inLoop                  bool
	loopNames               []string
	valuesCommittedThisLoop int

	pendingNames  []string
	pendingValues []string

	warnings []tokenizer.Warning
}

func newBuilder() *builder {
	return &builder{doc: newCif()}
}

func (b *builder) handle(tok tokenizer.Token) {
	switch tok.Kind {
	case tokenizer.KindDataBlockHeader:
		b.flushBalancedScalar()
		b.current = b.doc.startBlock(tok.Text)

	case tokenizer.KindLoopHeader:
		b.flushBalancedScalar()
		b.inLoop = true
		b.loopNames = nil
		b.valuesCommittedThisLoop = 0

	case tokenizer.KindDataName:
		if b.inLoop && b.valuesCommittedThisLoop == 0 {
			b.loopNames = append(b.loopNames, tok.Text)
			return
		}
		b.inLoop = false
		b.pendingNames = []string{tok.Text}
		b.pendingValues = nil

	case tokenizer.KindValue:
		if b.current == nil {
			return
		}
		if b.inLoop {
			b.pendingValues = append(b.pendingValues, tok.Text)
			if len(b.loopNames) > 0 && len(b.pendingValues) == len(b.loopNames) {
				b.commitRow(b.loopNames, b.pendingValues)
				b.pendingValues = nil
				b.valuesCommittedThisLoop++
			}
			return
		}
		b.pendingValues = append(b.pendingValues, tok.Text)
		if len(b.pendingNames) > 0 && len(b.pendingValues) == len(b.pendingNames) {
			b.commitRow(b.pendingNames, b.pendingValues)
			b.pendingNames = nil
			b.pendingValues = nil
		}
	}
}

func (b *builder) commitRow(names, values []string) {
	for i, name := range names {
		b.current.append(name, values[i])
	}
}

// flushBalancedScalar commits a scalar name/value pair that completed
// right before a block or loop boundary, rather than discarding it.
func (b *builder) flushBalancedScalar() {
	if b.inLoop {
		return
	}
	if len(b.pendingNames) > 0 && len(b.pendingNames) == len(b.pendingValues) {
		b.commitRow(b.pendingNames, b.pendingValues)
	}
	b.pendingNames = nil
	b.pendingValues = nil
}

// finish reports any data that was pending but could never be committed
// because the file ended mid-name or mid-row.
func (b *builder) finish() {
	if len(b.pendingNames) > 0 || len(b.pendingValues) > 0 {
		b.warnings = append(b.warnings, tokenizer.Warning{
			Kind:    tokenizer.WarningUnflushedData,
			Message: "input ended with an incomplete tag/value assignment",
		})
	}
}

// build tokenizes data and assembles it into a Cif, returning every
// diagnostic collected along the way. It never returns an error: a
// malformed or truncated file degrades to a partial document plus
// warnings, since callers exploring unfamiliar CIF files need bad input
// to surface, not abort the whole parse.
func build(data []byte) (*Cif, []tokenizer.Warning) {
	tk := tokenizer.New(data)
	bld := newBuilder()

	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		bld.handle(tok)
	}
	bld.finish()

	warnings := append([]tokenizer.Warning{}, tk.Warnings()...)
	warnings = append(warnings, bld.warnings...)
	return bld.doc, warnings
}
