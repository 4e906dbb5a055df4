package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/edhearn84/stan/internal/autodiff"
)

func TestLogDetSPD(t *testing.T) {
	tape := autodiff.NewTape()
	m := VarDense(tape, spd22())

	y, err := LogDetSPD(m)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(11), y.Value(), 1e-12)

	tape.Backward(y)
	// ∂ log|M| / ∂M = M⁻¹ = [[3, -1], [-1, 4]]/11.
	want := [][]float64{{3.0 / 11, -1.0 / 11}, {-1.0 / 11, 4.0 / 11}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, want[i][j], m.At(i, j).Adjoint(), 1e-12)
		}
	}
}

func TestLogDetSPD_MatchesLU(t *testing.T) {
	tape := autodiff.NewTape()
	m := VarDense(tape, spd33())

	y, err := LogDetSPD(m)
	require.NoError(t, err)

	var lu mat.LU
	lu.Factorize(spd33())
	want, sign := lu.LogDet()
	require.Equal(t, 1.0, sign)
	assert.InDelta(t, want, y.Value(), 1e-12)
}

func TestLogDetSPDDual(t *testing.T) {
	a, e := spd33(), sym33()

	d, err := LogDetSPDDual(DualDense(a, e))
	require.NoError(t, err)

	numeric := fd.Derivative(alongLine(a, e, func(p *mat.Dense) float64 {
		ch, err := spdFactor("test", p)
		require.NoError(t, err)
		return ch.LogDet()
	}), 0, nil)
	assert.InDelta(t, numeric, float64(d.Tangent), 1e-6)
}

func TestLogDetSPD_Rejects(t *testing.T) {
	tape := autodiff.NewTape()
	m := VarDense(tape, mat.NewDense(2, 2, []float64{1, 2, 2, 1}))
	before := tape.Len()

	_, err := LogDetSPD(m)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "LogDetSPD", derr.Func)
	assert.Contains(t, derr.Msg, "not positive definite")
	assert.Equal(t, before, tape.Len())
}
