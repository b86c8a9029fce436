package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, text string) ([]Token, []Warning) {
	t.Helper()
	tok := New([]byte(text))
	var out []Token
	for {
		tk, ok := tok.Next()
		if !ok {
			break
		}
		out = append(out, tk)
	}
	return out, tok.Warnings()
}

func TestTokenizerScalarAssignment(t *testing.T) {
	toks, warnings := collectTokens(t, "data_example\n_cell_length_a 4.0094\n")
	assert.Empty(t, warnings)
	require.Len(t, toks, 3)
	assert.Equal(t, Token{Kind: KindDataBlockHeader, Text: "example"}, toks[0])
	assert.Equal(t, Token{Kind: KindDataName, Text: "_cell_length_a"}, toks[1])
	assert.Equal(t, Token{Kind: KindValue, Text: "4.0094"}, toks[2])
}

func TestTokenizerDiscardsContentBeforeFirstBlock(t *testing.T) {
	toks, _ := collectTokens(t, "# a stray header comment\n_orphan_tag value\ndata_x\n_a b\n")
	require.Len(t, toks, 3)
	assert.Equal(t, KindDataBlockHeader, toks[0].Kind)
	assert.Equal(t, "x", toks[0].Text)
}

func TestTokenizerLoopHeaderAndColumns(t *testing.T) {
	toks, _ := collectTokens(t, "data_x\nloop_\n_atom_site_label\n_atom_site_type_symbol\nBa1 Ba\nTi1 Ti\n")
	kinds := make([]Kind, len(toks))
	for i, tk := range toks {
		kinds[i] = tk.Kind
	}
	assert.Equal(t, []Kind{
		KindDataBlockHeader, KindLoopHeader, KindDataName, KindDataName,
		KindValue, KindValue, KindValue, KindValue,
	}, kinds)
	assert.Equal(t, "Ba1", toks[4].Text)
	assert.Equal(t, "Ti", toks[7].Text)
}

func TestTokenizerQuotedStringSpansChunks(t *testing.T) {
	toks, warnings := collectTokens(t, "data_x\n_journal_name_full 'Acta Crystallographica Section B'\n")
	assert.Empty(t, warnings)
	require.Len(t, toks, 3)
	assert.Equal(t, "Acta Crystallographica Section B", toks[2].Text)
}

func TestTokenizerMultilineString(t *testing.T) {
	text := "data_x\n_publ_section_abstract\n;\nfirst line\nsecond line\n;\n"
	toks, warnings := collectTokens(t, text)
	assert.Empty(t, warnings)
	require.Len(t, toks, 3)
	assert.Equal(t, "first line second line", toks[2].Text)
}

func TestTokenizerCommentInterruptsThenResumesMultiline(t *testing.T) {
	text := "data_x\n_publ_section_abstract\n;\nfirst line\n# a dropped comment line\nsecond line\n;\n"
	toks, warnings := collectTokens(t, text)
	assert.Empty(t, warnings)
	require.Len(t, toks, 3)
	assert.Equal(t, "first line second line", toks[2].Text)
}

func TestTokenizerUnterminatedQuoteWarnsAndEmitsPartial(t *testing.T) {
	toks, warnings := collectTokens(t, "data_x\n_a 'unterminated")
	require.Len(t, toks, 3)
	assert.Equal(t, "unterminated", toks[2].Text)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningUnterminatedString, warnings[0].Kind)
}

func TestTokenizerIsDeterministic(t *testing.T) {
	text := "data_x\nloop_\n_a\n_b\n1 2\n3 4\n"
	first, _ := collectTokens(t, text)
	second, _ := collectTokens(t, text)
	assert.Equal(t, first, second)
}

func TestTokenizerTrailingCommentLineIsDropped(t *testing.T) {
	toks, _ := collectTokens(t, "data_x\n_a 1 # inline trailing comment\n_b 2\n")
	require.Len(t, toks, 5)
	assert.Equal(t, Token{Kind: KindValue, Text: "1"}, toks[2])
}
