package tokenizer

// Kind classifies a logical CIF token. The tokenizer resolves comments,
// quoting, and multi-line string concatenation before a Kind is ever
// assigned — by the time a Token reaches its consumer, whitespace and
// quote bookkeeping are already gone.
type Kind int

const (
	// KindDataBlockHeader marks the start of a new `data_<name>` block.
	// Text holds the trimmed block name (without the `data_` prefix).
	KindDataBlockHeader Kind = iota
	// KindLoopHeader marks a bare `loop_` chunk. Text is empty.
	KindLoopHeader
	// KindDataName marks a chunk beginning with `_`. Text is the tag,
	// including its leading underscore.
	KindDataName
	// KindValue marks a committed value: a bare whitespace-delimited
	// word, or the fully assembled contents of a quoted or semicolon
	// multi-line string. Text is the decoded value.
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindDataBlockHeader:
		return "DataBlockHeader"
	case KindLoopHeader:
		return "LoopHeader"
	case KindDataName:
		return "DataName"
	case KindValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// Token is one logical unit of a CIF file as seen by the builder.
type Token struct {
	Kind Kind
	Text string
}

// WarningKind distinguishes the tokenizer's non-fatal diagnostics.
type WarningKind int

const (
	// WarningUnterminatedString: input ended while still inside a
	// quoted or semicolon multi-line string. The partially accumulated
	// text is still emitted as a Value token.
	WarningUnterminatedString WarningKind = iota
	// WarningUnflushedData: input ended with a pending data-name/value
	// mismatch that could never be committed to a block (e.g. a value
	// with no preceding name, or a loop row cut short).
	WarningUnflushedData
)

// Warning is a non-fatal tokenizer/builder diagnostic. The parser never
// fails outright on malformed input; malformations surface here instead.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string { return w.Message }
