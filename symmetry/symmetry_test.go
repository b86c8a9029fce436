package symmetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lichman0405/cifkit"
)

func TestParseOpsRejectsWrongArity(t *testing.T) {
	_, err := ParseOps([]string{"x, y"})
	require.Error(t, err)
	var arity *cifkit.BadSymmetryArity
	assert.ErrorAs(t, err, &arity)
}

func TestParseOpsIdentity(t *testing.T) {
	ops, err := ParseOps([]string{"x, y, z"})
	require.NoError(t, err)
	require.Len(t, ops, 1)

	out := ops[0].Apply([3]float64{0.25, 0.5, 0.75})
	assert.Equal(t, [3]float64{0.25, 0.5, 0.75}, out)
}

func TestColumnSignAndTranslation(t *testing.T) {
	ops, err := ParseOps([]string{"z+1/4, x+1/4, y"})
	require.NoError(t, err)
	require.Len(t, ops, 1)

	out := ops[0].Apply([3]float64{0.0, 1.0, 1.0})
	assert.InDelta(t, 1.25, out[0], 1e-12)
	assert.InDelta(t, 0.25, out[1], 1e-12)
	assert.InDelta(t, 1.0, out[2], 1e-12)
}

func TestColumnNegativeSign(t *testing.T) {
	ops, err := ParseOps([]string{"1/2-y, x, -z"})
	require.NoError(t, err)

	out := ops[0].Apply([3]float64{0.1, 0.2, 0.3})
	assert.InDelta(t, 0.3, out[0], 1e-12)
	assert.InDelta(t, 0.1, out[1], 1e-12)
	assert.InDelta(t, -0.3, out[2], 1e-12)
}

func TestEquivalentsSortsAndDedups(t *testing.T) {
	ops, err := ParseOps([]string{
		"x, y, z",
		"-x, -y, -z",
		"x, y, z",
	})
	require.NoError(t, err)

	points, err := ops.Equivalents([3]float64{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, [][3]float64{{-0.5, -0.5, -0.5}, {0.5, 0.5, 0.5}}, points)
}

func TestEquivalentsRejectsNaNComponent(t *testing.T) {
	ops, err := ParseOps([]string{"x, y, z"})
	require.NoError(t, err)

	_, err = ops.Equivalents([3]float64{math.NaN(), 0.5, 0.5})
	require.Error(t, err)
	var nonComparable *cifkit.NonComparablePoint
	assert.ErrorAs(t, err, &nonComparable)
}

func TestEquivalentsBaTiO3TiSite(t *testing.T) {
	ops, err := ParseOps([]string{
		"x, y, z",
		"-x, -y, -z",
		"-x, y, -z",
		"x, -y, z",
		"-x, -y, z",
		"x, y, -z",
		"x, -y, -z",
		"-x, y, z",
	})
	require.NoError(t, err)

	points, err := ops.Equivalents([3]float64{0.5, 0.5, 0.5})
	require.NoError(t, err)
	// No modular wrapping is applied (matching the un-wrapped affine
	// transform semantics), so all eight +-0.5 sign combinations are
	// distinct equivalent positions.
	assert.Len(t, points, 8)
	assert.Contains(t, points, [3]float64{0.5, 0.5, 0.5})
	assert.Contains(t, points, [3]float64{-0.5, -0.5, -0.5})
}

func TestSymmetryFromPrefersSymopOperationXYZ(t *testing.T) {
	doc, _ := cifkit.Parse([]byte(
		"data_x\nloop_\n_space_group_symop_operation_xyz\n'x, y, z'\n'-x, -y, -z'\n" +
			"loop_\n_symmetry_equiv_pos_as_xyz\n'x, y, z'\n"))
	block, ok := doc.Block("x")
	require.True(t, ok)

	ops, err := SymmetryFrom(block)
	require.NoError(t, err)
	assert.Len(t, ops, 2)
}

func TestSymmetryFromFallsBackToEquivPosAsXYZ(t *testing.T) {
	doc, _ := cifkit.Parse([]byte(
		"data_x\nloop_\n_symmetry_equiv_pos_as_xyz\n'x, y, z'\n"))
	block, ok := doc.Block("x")
	require.True(t, ok)

	ops, err := SymmetryFrom(block)
	require.NoError(t, err)
	assert.Len(t, ops, 1)
}
