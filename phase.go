package cifkit

import (
	"math"
	"strconv"
	"strings"
)

// AdpType classifies an atom's atomic displacement parameter: isotropic
// (a single U_iso value), anisotropic (a full U_ij tensor), or unknown
// when _atom_site_adp_type holds a value other than Uiso/Uani. PhaseFrom
// uses AdpUiso for every site when the block has no _atom_site_adp_type.
type AdpType int

const (
	AdpUnknown AdpType = iota
	AdpUiso
	AdpUani
)

func (t AdpType) String() string {
	switch t {
	case AdpUiso:
		return "Uiso"
	case AdpUani:
		return "Uani"
	default:
		return "Unknown"
	}
}

// Cell is a crystallographic unit cell.
type Cell struct {
	A, B, C          float64
	Alpha, Beta, Gamma float64
	Volume           float64
	SpaceGroup       string
	SpaceGroupNumber uint8
}

// Atom is one atom site. Multiplicity is nil when the block carries
// neither an _atom_site_symmetry_multiplicity nor an
// _atom_site_site_symmetry_multiplicity column, distinguishing
// "unspecified" from the zero value.
type Atom struct {
	Label, Type                  string
	X, Y, Z                      float64
	Occupancy                    float64
	Multiplicity                 *float64
	AdpType                      AdpType
	UIsoOrEquiv                  float64
	U11, U22, U33, U12, U13, U23 float64
}

// Phase is a projected crystal structure: one Cell plus its atom sites.
type Phase struct {
	Cell  Cell
	Atoms []Atom
}

// bIsoToUIso converts a Debye-Waller B factor to the equivalent
// isotropic displacement parameter U: U = B / (8*pi^2).
func bIsoToUIso(b float64) float64 {
	return b / (8 * math.Pi * math.Pi)
}

var (
	spaceGroupSymbolTags = []string{
		"_symmetry_space_group_name_H-M",
		"_space_group_name_H-M_alt",
		"_space_group_name_Hall",
		"_symmetry_space_group_name_Hall",
	}
	spaceGroupNumberTags = []string{
		"_symmetry_Int_Tables_number",
		"_space_group_IT_number",
	}
)

// PhaseFrom projects block's cell and atom-site tags into a Phase.
func PhaseFrom(block *DataBlock, opts ...Option) (*Phase, error) {
	cfg := newConfig(opts)

	cell, err := cellFrom(block, cfg)
	if err != nil {
		return nil, err
	}

	atoms, err := atomsFrom(block, cfg)
	if err != nil {
		return nil, err
	}

	return &Phase{Cell: cell, Atoms: atoms}, nil
}

func cellFrom(block *DataBlock, cfg *config) (Cell, error) {
	var cell Cell
	var err error

	if cell.A, err = requireFloat(block, "_cell_length_a"); err != nil {
		return Cell{}, err
	}
	if cell.B, err = requireFloat(block, "_cell_length_b"); err != nil {
		return Cell{}, err
	}
	if cell.C, err = requireFloat(block, "_cell_length_c"); err != nil {
		return Cell{}, err
	}
	if cell.Alpha, err = requireFloat(block, "_cell_angle_alpha"); err != nil {
		return Cell{}, err
	}
	if cell.Beta, err = requireFloat(block, "_cell_angle_beta"); err != nil {
		return Cell{}, err
	}
	if cell.Gamma, err = requireFloat(block, "_cell_angle_gamma"); err != nil {
		return Cell{}, err
	}
	// _cell_volume is frequently absent from hand-written CIFs; it is
	// not load-bearing for anything downstream, so its absence is not
	// an error.
	cell.Volume, _ = requireFloat(block, "_cell_volume")

	_, symbolRaw, haveSymbol := firstPresent(block, spaceGroupSymbolTags...)
	numberTag, numberRaw, haveNumber := firstPresent(block, spaceGroupNumberTags...)

	var number uint8
	if haveNumber {
		n, err := strconv.Atoi(strings.TrimSpace(numberRaw))
		if err != nil {
			return Cell{}, &ParseFailed{Tag: numberTag, Raw: numberRaw, Cause: err}
		}
		number = uint8(n)
	}

	switch {
	case haveSymbol:
		cell.SpaceGroup = strings.TrimSpace(symbolRaw)
		if haveNumber {
			cell.SpaceGroupNumber = number
		} else if n, err := cfg.lookup.SymbolToNumber(cell.SpaceGroup); err == nil {
			cell.SpaceGroupNumber = n
		}

	case haveNumber:
		symbol, err := cfg.lookup.NumberToSymbol(number)
		if err != nil {
			return Cell{}, err
		}
		cell.SpaceGroup = symbol
		cell.SpaceGroupNumber = number

	default:
		return Cell{}, &MissingSpaceGroup{Tried: append(append([]string{}, spaceGroupSymbolTags...), spaceGroupNumberTags...)}
	}

	return cell, nil
}

func requireFloat(block *DataBlock, tag string) (float64, error) {
	v, err := block.FloatValue(tag)
	if err != nil {
		return 0, &ParseFailed{Tag: tag, Raw: "", Cause: err}
	}
	return v, nil
}

func atomsFrom(block *DataBlock, cfg *config) ([]Atom, error) {
	labels, ok := block.Values("_atom_site_label")
	if !ok || len(labels) == 0 {
		return nil, &MissingKey{Tags: []string{"_atom_site_label"}}
	}
	n := len(labels)

	types, err := alignedStrings(block, "_atom_site_type_symbol", n)
	if err != nil {
		return nil, err
	}
	xs, err := alignedFloats(block, "_atom_site_fract_x", n)
	if err != nil {
		return nil, err
	}
	ys, err := alignedFloats(block, "_atom_site_fract_y", n)
	if err != nil {
		return nil, err
	}
	zs, err := alignedFloats(block, "_atom_site_fract_z", n)
	if err != nil {
		return nil, err
	}
	occ, err := alignedFloats(block, "_atom_site_occupancy", n)
	if err != nil {
		return nil, err
	}
	multTag := "_atom_site_symmetry_multiplicity"
	mult, hasMult := block.Values(multTag)
	if !hasMult {
		multTag = "_atom_site_site_symmetry_multiplicity"
		mult, hasMult = block.Values(multTag)
	}
	adp, hasAdp := block.Values("_atom_site_adp_type")
	uiso, hasUiso := block.Values("_atom_site_U_iso_or_equiv")
	biso, hasBiso := block.Values("_atom_site_B_iso_or_equiv")

	aniso, err := anisoByLabel(block)
	if err != nil {
		return nil, err
	}

	atoms := make([]Atom, n)
	for i := range atoms {
		a := Atom{
			Label:     strings.TrimSpace(labels[i]),
			Type:      types[i],
			X:         xs[i],
			Y:         ys[i],
			Z:         zs[i],
			Occupancy: occ[i],
		}

		if hasMult && i < len(mult) {
			v, err := strconv.ParseFloat(strings.TrimSpace(scalarStrip(mult[i])), 64)
			if err != nil {
				return nil, &ParseFailed{Tag: multTag, Raw: mult[i], Cause: err}
			}
			a.Multiplicity = &v
		}

		switch {
		case hasAdp && i < len(adp):
			switch strings.TrimSpace(adp[i]) {
			case "Uani", "Uanis":
				a.AdpType = AdpUani
			case "Uiso":
				a.AdpType = AdpUiso
			default:
				a.AdpType = AdpUnknown
			}
		default:
			a.AdpType = AdpUiso
		}

		switch {
		case hasUiso && i < len(uiso):
			v, err := strconv.ParseFloat(strings.TrimSpace(scalarStrip(uiso[i])), 64)
			if err != nil {
				return nil, &ParseFailed{Tag: "_atom_site_U_iso_or_equiv", Raw: uiso[i], Cause: err}
			}
			a.UIsoOrEquiv = v
		case hasBiso && i < len(biso):
			v, err := strconv.ParseFloat(strings.TrimSpace(scalarStrip(biso[i])), 64)
			if err != nil {
				return nil, &ParseFailed{Tag: "_atom_site_B_iso_or_equiv", Raw: biso[i], Cause: err}
			}
			a.UIsoOrEquiv = bIsoToUIso(v)
		}

		if values, ok := aniso[a.Label]; ok {
			a.AdpType = AdpUani
			a.U11, a.U22, a.U33 = values[0], values[1], values[2]
			a.U12, a.U13, a.U23 = values[3], values[4], values[5]
		} else if a.AdpType == AdpUani && cfg.strictAniso {
			return nil, &MissingKey{Tags: []string{"_atom_site_aniso_U_11 (for " + a.Label + ")"}}
		}

		atoms[i] = a
	}

	return atoms, nil
}

// alignedFloats parses a loop column expected to have exactly want rows,
// reporting AlignmentMismatch rather than silently truncating or
// panicking on a short column.
func alignedFloats(block *DataBlock, tag string, want int) ([]float64, error) {
	raw, ok := block.Values(tag)
	if !ok || len(raw) != want {
		return nil, &AlignmentMismatch{Tag: tag, Want: want, Got: len(raw)}
	}
	out := make([]float64, want)
	for i, v := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(scalarStrip(v)), 64)
		if err != nil {
			return nil, &ParseFailed{Tag: tag, Raw: v, Cause: err}
		}
		out[i] = f
	}
	return out, nil
}

// alignedStrings parses a loop column expected to have exactly want
// rows, reporting AlignmentMismatch (which also covers the tag being
// absent entirely, i.e. Got: 0) rather than defaulting silently.
func alignedStrings(block *DataBlock, tag string, want int) ([]string, error) {
	raw, ok := block.Values(tag)
	if !ok || len(raw) != want {
		return nil, &AlignmentMismatch{Tag: tag, Want: want, Got: len(raw)}
	}
	out := make([]string, want)
	for i, v := range raw {
		out[i] = strings.TrimSpace(v)
	}
	return out, nil
}

// anisoByLabel reads the anisotropic-displacement loop, if present, and
// indexes it by atom label so it can be matched against the main
// _atom_site loop regardless of row order.
func anisoByLabel(block *DataBlock) (map[string][6]float64, error) {
	labels, ok := block.Values("_atom_site_aniso_label")
	if !ok {
		return nil, nil
	}
	tags := [6]string{
		"_atom_site_aniso_U_11", "_atom_site_aniso_U_22", "_atom_site_aniso_U_33",
		"_atom_site_aniso_U_12", "_atom_site_aniso_U_13", "_atom_site_aniso_U_23",
	}
	var cols [6][]string
	for i, tag := range tags {
		v, ok := block.Values(tag)
		if !ok || len(v) != len(labels) {
			return nil, &AlignmentMismatch{Tag: tag, Want: len(labels), Got: len(v)}
		}
		cols[i] = v
	}

	out := make(map[string][6]float64, len(labels))
	for i, label := range labels {
		var values [6]float64
		for j := 0; j < 6; j++ {
			f, err := strconv.ParseFloat(strings.TrimSpace(scalarStrip(cols[j][i])), 64)
			if err != nil {
				return nil, &ParseFailed{Tag: tags[j], Raw: cols[j][i], Cause: err}
			}
			values[j] = f
		}
		out[strings.TrimSpace(label)] = values
	}
	return out, nil
}

func scalarStrip(raw string) string {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '(' {
			return raw[:i]
		}
	}
	return raw
}
