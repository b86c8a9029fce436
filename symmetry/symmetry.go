// Package symmetry parses CIF symmetry-equivalent-position strings
// (`x, 1/2-y, z+1/4`) into affine transforms over fractional coordinates
// and applies them to generate equivalent atom positions.
package symmetry

import (
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/lichman0405/cifkit"
)

// Axis names one of the three fractional-coordinate axes a symmetry
// column reads its input from.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Column is one comma-separated component of a symmetry operation:
// output = input[Axis]*Sign + Translation.
type Column struct {
	Axis        Axis
	Sign        int8
	Translation *big.Rat
}

// Transform is one full symmetry operation, one Column per output axis.
type Transform [3]Column

// Ops is the set of symmetry operations declared for a structure.
type Ops []Transform

// ParseOps parses every operation string in raw (one CIF loop row each)
// into a Transform.
func ParseOps(raw []string) (Ops, error) {
	ops := make(Ops, 0, len(raw))
	for _, line := range raw {
		t, err := parseTransform(line)
		if err != nil {
			return nil, err
		}
		ops = append(ops, t)
	}
	return ops, nil
}

func parseTransform(line string) (Transform, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return Transform{}, &cifkit.BadSymmetryArity{Raw: line, Got: len(parts)}
	}
	var t Transform
	for i, part := range parts {
		col, err := parseColumn(part)
		if err != nil {
			return Transform{}, err
		}
		t[i] = col
	}
	return t, nil
}

// parseColumn parses one axis/sign/translation component, e.g.
// "1/2-y" or "z+1/4" or "-x".
func parseColumn(raw string) (Column, error) {
	s := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	if s == "" {
		return Column{}, &cifkit.BadSymmetryFragment{Fragment: raw, Cause: errEmptyColumn}
	}

	col := Column{Translation: new(big.Rat)}
	haveAxis := false

	for _, frag := range splitSignedFragments(s) {
		sign := int8(1)
		body := frag
		switch {
		case strings.HasPrefix(frag, "+"):
			body = frag[1:]
		case strings.HasPrefix(frag, "-"):
			sign = -1
			body = frag[1:]
		}

		switch body {
		case "x":
			col.Axis, col.Sign, haveAxis = AxisX, sign, true
		case "y":
			col.Axis, col.Sign, haveAxis = AxisY, sign, true
		case "z":
			col.Axis, col.Sign, haveAxis = AxisZ, sign, true
		default:
			frac, ok := new(big.Rat).SetString(body)
			if !ok {
				return Column{}, &cifkit.BadSymmetryFragment{Fragment: raw, Cause: errBadFraction}
			}
			if sign < 0 {
				frac.Neg(frac)
			}
			col.Translation.Add(col.Translation, frac)
		}
	}

	if !haveAxis {
		return Column{}, &cifkit.BadSymmetryFragment{Fragment: raw, Cause: errNoAxis}
	}
	return col, nil
}

// splitSignedFragments re-splits s at every '+'/'-' boundary, keeping
// the sign attached to the fragment that follows it. The first fragment
// keeps whatever (possibly absent) sign it was written with.
func splitSignedFragments(s string) []string {
	var frags []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			frags = append(frags, s[start:i])
			start = i
		}
	}
	frags = append(frags, s[start:])
	return frags
}

func axisIndex(a Axis) int {
	switch a {
	case AxisX:
		return 0
	case AxisY:
		return 1
	default:
		return 2
	}
}

// Apply evaluates the transform at fractional point p.
func (t Transform) Apply(p [3]float64) [3]float64 {
	var out [3]float64
	for i, col := range t {
		translation, _ := col.Translation.Float64()
		out[i] = p[axisIndex(col.Axis)]*float64(col.Sign) + translation
	}
	return out
}

// Apply evaluates every transform in o at point p, in declaration order.
func (o Ops) Apply(p [3]float64) [][3]float64 {
	out := make([][3]float64, len(o))
	for i, t := range o {
		out[i] = t.Apply(p)
	}
	return out
}

// Equivalents generates the symmetry-equivalent positions of p, sorted
// and deduplicated. The sort is total only over non-NaN coordinates; a
// NaN component in any candidate point (e.g. from a Transform applied
// to a NaN input) would make sort.Slice's ordering non-deterministic,
// so that case is rejected outright.
func (o Ops) Equivalents(p [3]float64) ([][3]float64, error) {
	points := o.Apply(p)
	for _, pt := range points {
		if hasNaN(pt) {
			return nil, &cifkit.NonComparablePoint{Point: pt}
		}
	}

	sort.Slice(points, func(i, j int) bool { return lessPoint(points[i], points[j]) })

	out := points[:0:0]
	for i, pt := range points {
		if i == 0 || pt != points[i-1] {
			out = append(out, pt)
		}
	}
	return out, nil
}

func hasNaN(p [3]float64) bool {
	for _, v := range p {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func lessPoint(a, b [3]float64) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// SymmetryFrom reads symmetry operations from block, trying
// _space_group_symop_operation_xyz first and falling back to
// _symmetry_equiv_pos_as_xyz.
func SymmetryFrom(block *cifkit.DataBlock) (Ops, error) {
	for _, tag := range []string{"_space_group_symop_operation_xyz", "_symmetry_equiv_pos_as_xyz"} {
		if values, ok := block.Values(tag); ok && len(values) > 0 {
			return ParseOps(values)
		}
	}
	return nil, &cifkit.MissingKey{Tags: []string{
		"_space_group_symop_operation_xyz",
		"_symmetry_equiv_pos_as_xyz",
	}}
}
