package cifkit

import (
	"strconv"
	"strings"

	"github.com/lichman0405/cifkit/internal/scalar"
)

// FloatValue parses the first value of tag as a float64, stripping any
// trailing uncertainty annotation first.
func (b *DataBlock) FloatValue(tag string) (float64, error) {
	values, _ := b.Values(tag)
	return scalar.One(values, tag, parseFloat)
}

// FloatValues parses every value of tag as a float64, stripping
// uncertainty annotations.
func (b *DataBlock) FloatValues(tag string) ([]float64, error) {
	values, _ := b.Values(tag)
	return scalar.All(values, tag, parseFloat)
}

// StringValue returns the first value of tag, trimmed of surrounding
// whitespace.
func (b *DataBlock) StringValue(tag string) (string, error) {
	values, _ := b.Values(tag)
	return scalar.One(values, tag, parseString)
}

// StringValues returns every value of tag, each trimmed of surrounding
// whitespace.
func (b *DataBlock) StringValues(tag string) ([]string, error) {
	values, _ := b.Values(tag)
	return scalar.All(values, tag, parseString)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseString(s string) (string, error) {
	return strings.TrimSpace(s), nil
}

// firstPresent returns the tag (and its first value) of whichever tag in
// aliases is present and non-empty in b, in alias order. Used by the
// Phase projector to walk fallback chains like
// _symmetry_space_group_name_H-M -> _space_group_name_H-M_alt.
func firstPresent(b *DataBlock, aliases ...string) (tag, value string, ok bool) {
	for _, tag := range aliases {
		if v, present := b.First(tag); present && strings.TrimSpace(v) != "" {
			return tag, v, true
		}
	}
	return "", "", false
}
