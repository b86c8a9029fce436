package tokenizer

import (
	"bytes"
	"strings"
)

// Tokenizer is a cooperative, single-threaded consumer of a Chunker. It
// never suspends, holds no locks, and is not safe for concurrent use by
// more than one goroutine — distinct Tokenizers over distinct inputs are
// entirely independent and may run in parallel.
//
// It resolves everything chunk-local to CIF's grammar — comments,
// quoting, `;`-delimited multi-line strings, and the `data_`/`loop_`/`_tag`
// vs. bare-value distinction — and hands the result to its caller (the
// builder) as a flat stream of Tokens. Loop-row bookkeeping (matching
// `loop_` column names against the values that follow) is deliberately
// not a tokenizer concern: it requires counting committed rows, which is
// the builder's state, not the lexer's.
type Tokenizer struct {
	chunker         *Chunker
	st              state
	inComment       bool
	atLineStart     bool
	foundFirstBlock bool
	warnings        []Warning
	done            bool
}

// New returns a Tokenizer over data. data is borrowed for the Tokenizer's
// entire lifetime.
func New(data []byte) *Tokenizer {
	return &Tokenizer{
		chunker:     NewChunker(data),
		st:          stateNormal{},
		atLineStart: true,
	}
}

// Warnings returns the diagnostics collected so far. Meaningful once Next
// has returned ok=false.
func (t *Tokenizer) Warnings() []Warning { return t.warnings }

func endsWithNewline(chunk []byte) bool {
	if len(chunk) == 0 {
		return false
	}
	last := chunk[len(chunk)-1]
	return last == '\n' || last == '\r'
}

// Next pulls the next logical token, returning ok=false once the input
// (and any trailing partial string) is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	if t.done {
		return Token{}, false
	}

	for {
		chunk, ok := t.chunker.Next()
		if !ok {
			t.done = true
			return t.flushAtEOF()
		}

		endsNL := endsWithNewline(chunk)
		lineStart := t.atLineStart
		t.atLineStart = endsNL

		if bytes.HasPrefix(chunk, []byte("#")) {
			t.inComment = true
		}
		if t.inComment {
			if endsNL {
				t.inComment = false
			}
			continue
		}

		chunk = bytes.TrimRight(chunk, " \t\n\r\v\f")
		if len(chunk) == 0 {
			continue
		}

		isHeader := lineStart && bytes.HasPrefix(chunk, []byte("data_"))

		if !t.foundFirstBlock {
			if isHeader {
				t.foundFirstBlock = true
				return Token{Kind: KindDataBlockHeader, Text: blockName(chunk)}, true
			}
			continue
		}

		if isHeader {
			return Token{Kind: KindDataBlockHeader, Text: blockName(chunk)}, true
		}

		switch st := t.st.(type) {
		case stateMultiline:
			if lineStart && chunk[0] == ';' {
				// Closing delimiter: commit what has accumulated and drop
				// this chunk, which carries no content of its own.
				t.st = stateNormal{}
				value := strings.TrimSpace(string(bytes.TrimSuffix(st.buf, []byte{' '})))
				return Token{Kind: KindValue, Text: value}, true
			}
			st.buf = append(st.buf, trimLineEnd(chunk)...)
			st.buf = append(st.buf, ' ')
			t.st = st
			continue

		case stateQuoted:
			st.buf = append(st.buf, filterQuoteBytes(chunk)...)
			st.buf = append(st.buf, ' ')
			if isClosingQuote(chunk) {
				t.st = stateNormal{}
				value := string(bytes.TrimSuffix(st.buf, []byte{' '}))
				return Token{Kind: KindValue, Text: value}, true
			}
			t.st = st
			continue
		}

		if lineStart && chunk[0] == ';' {
			buf := append([]byte{}, trimLineEnd(chunk[1:])...)
			buf = append(buf, ' ')
			t.st = stateMultiline{buf: buf}
			continue
		}

		if chunk[0] == '\'' || chunk[0] == '"' {
			buf := append([]byte{}, filterQuoteBytes(chunk)...)
			buf = append(buf, ' ')
			if isClosingQuote(chunk) {
				value := string(bytes.TrimSuffix(buf, []byte{' '}))
				return Token{Kind: KindValue, Text: value}, true
			}
			t.st = stateQuoted{buf: buf}
			continue
		}

		if bytes.Equal(chunk, []byte("loop_")) {
			return Token{Kind: KindLoopHeader}, true
		}

		if chunk[0] == '_' {
			return Token{Kind: KindDataName, Text: string(chunk)}, true
		}

		return Token{Kind: KindValue, Text: string(chunk)}, true
	}
}

// flushAtEOF handles input that ended while still inside a quoted or
// multi-line string: the partial contents are still emitted, tagged with
// a warning, rather than silently dropped.
func (t *Tokenizer) flushAtEOF() (Token, bool) {
	switch st := t.st.(type) {
	case stateMultiline:
		t.st = stateNormal{}
		value := strings.TrimSpace(string(bytes.TrimSuffix(st.buf, []byte{' '})))
		t.warnings = append(t.warnings, Warning{
			Kind:    WarningUnterminatedString,
			Message: "unterminated multi-line string at end of input",
		})
		if value == "" {
			return Token{}, false
		}
		return Token{Kind: KindValue, Text: value}, true

	case stateQuoted:
		t.st = stateNormal{}
		value := string(bytes.TrimSuffix(st.buf, []byte{' '}))
		t.warnings = append(t.warnings, Warning{
			Kind:    WarningUnterminatedString,
			Message: "unterminated quoted string at end of input",
		})
		if value == "" {
			return Token{}, false
		}
		return Token{Kind: KindValue, Text: value}, true
	}
	return Token{}, false
}

// blockName extracts and trims the name portion of a `data_<name>` chunk.
func blockName(chunk []byte) string {
	return strings.TrimSpace(strings.TrimPrefix(string(chunk), "data_"))
}

// isClosingQuote reports whether chunk's last byte is a quote character,
// matching the original parser's check of either quote type regardless
// of which one opened the string.
func isClosingQuote(chunk []byte) bool {
	last := chunk[len(chunk)-1]
	return last == '\'' || last == '"'
}

// trimLineEnd strips a single trailing "\n" then a single trailing "\r",
// mirroring the original's ordered double strip_suffix.
func trimLineEnd(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte("\n"))
	b = bytes.TrimSuffix(b, []byte("\r"))
	return b
}

// filterQuoteBytes drops quote characters and line terminators from a
// chunk that is being accumulated into a quoted-string buffer.
func filterQuoteBytes(chunk []byte) []byte {
	out := make([]byte, 0, len(chunk))
	for _, b := range chunk {
		if b == '\'' || b == '"' || b == '\r' || b == '\n' {
			continue
		}
		out = append(out, b)
	}
	return out
}
