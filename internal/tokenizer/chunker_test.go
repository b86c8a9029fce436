package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectChunks(t *testing.T, data []byte) [][]byte {
	t.Helper()
	c := NewChunker(data)
	var out [][]byte
	for {
		chunk, ok := c.Next()
		if !ok {
			break
		}
		out = append(out, append([]byte{}, chunk...))
	}
	return out
}

func TestChunkerSplitsOnNewlineTabSpace(t *testing.T) {
	chunks := collectChunks(t, []byte("data_x\n_cell_length_a 4.0094\n"))
	require.NotEmpty(t, chunks)
	assert.Equal(t, "data_x\n", string(chunks[0]))
	assert.Equal(t, "_cell_length_a ", string(chunks[1]))
	assert.Equal(t, "4.0094\n", string(chunks[2]))
}

func TestChunkerDropsLoneDelimiters(t *testing.T) {
	chunks := collectChunks(t, []byte("a  b\t\tc"))
	var texts []string
	for _, c := range chunks {
		texts = append(texts, string(c))
	}
	assert.Equal(t, []string{"a ", "b\t", "c"}, texts)
}

func TestChunkerEmptyInput(t *testing.T) {
	chunks := collectChunks(t, nil)
	assert.Empty(t, chunks)
}

func TestChunkerNoTrailingDelimiter(t *testing.T) {
	chunks := collectChunks(t, []byte("loop_"))
	require.Len(t, chunks, 1)
	assert.Equal(t, "loop_", string(chunks[0]))
}
