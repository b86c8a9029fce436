package symmetry

import "errors"

var (
	errEmptyColumn = errors.New("empty symmetry column")
	errNoAxis      = errors.New("no axis term found in column")
	errBadFraction = errors.New("fragment is neither an axis term nor a valid fraction")
)
