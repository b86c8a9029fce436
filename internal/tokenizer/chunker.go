// Package tokenizer implements the CIF line-oriented lexical layer: the
// Chunker (whitespace-inclusive byte-slice splitting) and the Tokenizer
// state machine that turns chunks into logical CIF tokens.
package tokenizer

// Chunker splits a byte buffer into maximal slices delimited by any of
// '\n', '\t', or ' ' — retaining the delimiter as the last byte of each
// slice so callers can ask "did this chunk end with a newline?" without a
// second scan. Slices that are nothing but a single space or tab are
// dropped, as are empty slices.
//
// Chunker borrows its input for its entire lifetime and never allocates
// per-chunk; it is a single-pass lazy sequence, not an iterator object
// with internal buffering. Next only moves forward: there is no way to
// rewind a Chunker to the start of its input.
type Chunker struct {
	data []byte
	pos  int
}

// NewChunker returns a Chunker over data. The Chunker does not copy data;
// the caller must keep data alive for as long as the Chunker (and anything
// derived from it, such as a Tokenizer) is in use.
func NewChunker(data []byte) *Chunker {
	return &Chunker{data: data}
}

// Next returns the next non-empty, non-delimiter-only chunk, or ok=false
// once the input is exhausted.
func (c *Chunker) Next() (chunk []byte, ok bool) {
	for c.pos < len(c.data) {
		start := c.pos
		end := c.scanOne(start)
		c.pos = end

		piece := c.data[start:end]
		if len(piece) == 0 {
			continue
		}
		if len(piece) == 1 && (piece[0] == ' ' || piece[0] == '\t') {
			continue
		}
		return piece, true
	}
	return nil, false
}

// scanOne finds the end of the next split-inclusive chunk starting at
// start: the byte range up to and including the next '\n', '\t', or ' ',
// or the end of input if none remains.
func (c *Chunker) scanOne(start int) int {
	for i := start; i < len(c.data); i++ {
		switch c.data[i] {
		case '\n', '\t', ' ':
			return i + 1
		}
	}
	return len(c.data)
}
