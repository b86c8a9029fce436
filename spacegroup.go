package cifkit

import (
	"strconv"
	"strings"
)

// SpaceGroupLookup resolves between a space-group Hermann-Mauguin
// symbol and its International Tables number. PhaseFrom depends only on
// this small capability, not on a specific dictionary implementation —
// the full 230-entry International Tables list is a downstream
// collaborator's concern (see WithSpaceGroupLookup).
type SpaceGroupLookup interface {
	SymbolToNumber(symbol string) (uint8, error)
	NumberToSymbol(number uint8) (string, error)
}

// builtinSpaceGroupLookup is a small embedded table covering the space
// groups this module's own tests exercise plus a handful of the most
// common ones a CIF reader is likely to meet. It is not a substitute
// for the full International Tables dictionary.
type builtinSpaceGroupLookup struct {
	bySymbol map[string]uint8
	byNumber map[uint8]string
}

var defaultSpaceGroupLookup = newBuiltinSpaceGroupLookup()

func newBuiltinSpaceGroupLookup() *builtinSpaceGroupLookup {
	entries := map[string]uint8{
		"P 1":          1,
		"P -1":         2,
		"P 2/m":        10,
		"C 2/c":        15,
		"P n m a":      62,
		"I 4/m m m":    139,
		"R -3 c":       167,
		"P 6_3/m m c":  194,
		"F m -3 m":     225,
		"F d -3 m":     227,
		"P m -3 m":     221,
		"I a -3 d":     230,
	}
	l := &builtinSpaceGroupLookup{
		bySymbol: make(map[string]uint8, len(entries)),
		byNumber: make(map[uint8]string, len(entries)),
	}
	for symbol, number := range entries {
		l.bySymbol[normalizeSymbol(symbol)] = number
		l.byNumber[number] = symbol
	}
	return l
}

func normalizeSymbol(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

func (l *builtinSpaceGroupLookup) SymbolToNumber(symbol string) (uint8, error) {
	n, ok := l.bySymbol[normalizeSymbol(symbol)]
	if !ok {
		return 0, &LookupFailed{Query: symbol, Cause: errUnknownSpaceGroup}
	}
	return n, nil
}

func (l *builtinSpaceGroupLookup) NumberToSymbol(number uint8) (string, error) {
	s, ok := l.byNumber[number]
	if !ok {
		return "", &LookupFailed{Query: strconv.Itoa(int(number)), Cause: errUnknownSpaceGroup}
	}
	return s, nil
}
