package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bce-toolkit/bce/internal/chem"
	"github.com/bce-toolkit/bce/internal/solver"
	"github.com/bce-toolkit/bce/internal/value"
)

func strs(vs []value.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func TestBuildMatrix(t *testing.T) {
	m, err := BuildMatrix(mustParse(t, "H2+O2=H2O"))
	require.NoError(t, err)
	assert.Equal(t, "[2, 0, -2, 0]\n[0, 2, -1, 0]\n", m.String())
}

func TestBuildMatrixSigns(t *testing.T) {
	m, err := BuildMatrix(mustParse(t, "H2-O2=H2O-O3"))
	require.NoError(t, err)
	assert.Equal(t, "[2, 0, -2, 0, 0]\n[0, -2, -1, 3, 0]\n", m.String())
}

func TestBuildMatrixRowOrderFollowsDiscovery(t *testing.T) {
	// O is seen before H, and the electron row comes first within Fe<3e+>.
	m, err := BuildMatrix(mustParse(t, "O2+Fe<3e+>=H2O"))
	require.NoError(t, err)
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, "[2, 0, -1, 0]\n[0, 3, 0, 0]\n[0, 1, 0, 0]\n[0, 0, -2, 0]\n", m.String())
}

func TestPinParameters(t *testing.T) {
	xa := value.Symbol("Xa")
	xb := value.Symbol("Xb")

	one := &solver.SolvedEquation{Answers: []value.Value{xa, xa.Mul(value.Frac(1, 2)), xa}, FreeCount: 1}
	got, err := PinParameters(one, chem.FormNormal, "X")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1/2", "1"}, strs(got))

	none := &solver.SolvedEquation{Answers: []value.Value{value.Int(0), value.Int(0)}}
	got, err = PinParameters(none, chem.FormNormal, "X")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0"}, strs(got))

	two := &solver.SolvedEquation{Answers: []value.Value{xa, xb}, FreeCount: 2}
	_, err = PinParameters(two, chem.FormNormal, "X")
	assert.True(t, IsCode(err, ErrCodeMultipleAnswers))

	got, err = PinParameters(two, chem.FormAutoArrange, "X")
	require.NoError(t, err)
	assert.Equal(t, []string{"Xa", "Xb"}, strs(got))
}

func TestClearFractions(t *testing.T) {
	got := ClearFractions([]value.Value{value.Frac(1, 2), value.Int(1), value.Frac(1, 2)})
	assert.Equal(t, []string{"1", "2", "1"}, strs(got))

	got = ClearFractions([]value.Value{value.Frac(2, 3), value.Frac(3, 4)})
	assert.Equal(t, []string{"8", "9"}, strs(got))

	got = ClearFractions([]value.Value{value.Symbol("Xa").Mul(value.Frac(1, 2)), value.Int(1)})
	assert.Equal(t, []string{"Xa", "2"}, strs(got))
}

func TestReduceGCD(t *testing.T) {
	got := ReduceGCD([]value.Value{value.Int(4), value.Int(6), value.Int(0)})
	assert.Equal(t, []string{"2", "3", "0"}, strs(got))

	got = ReduceGCD([]value.Value{value.Int(-4), value.Int(8)})
	assert.Equal(t, []string{"-1", "2"}, strs(got))

	got = ReduceGCD([]value.Value{value.Int(0), value.Int(0)})
	assert.Equal(t, []string{"0", "0"}, strs(got))

	got = ReduceGCD([]value.Value{value.Int(2), value.Symbol("Xa")})
	assert.Equal(t, []string{"2", "Xa"}, strs(got))
}

func TestArrangeOrdersMovedItems(t *testing.T) {
	// Left: A keeps, B moves right. Right: C moves left, D keeps.
	eq := mustParse(t, "H2+O2=He+Ne")
	solved := &solver.SolvedEquation{Answers: []value.Value{
		value.Int(1), value.Int(-2), value.Int(-3), value.Int(4),
	}}
	require.NoError(t, Arrange(eq, solved, DefaultOptions()))
	assert.Equal(t, "H2+3He=2O2+4Ne", chem.Format(eq))
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, "balance: CONFLICTING_EQUATIONS", newError(ErrCodeConflictingEquations).Error())
	assert.Equal(t, "balance: WRONG_SIDE_MOLECULE (H2)", newMoleculeError(ErrCodeWrongSide, "H2").Error())
	assert.True(t, IsSideEliminated(newError(ErrCodeLeftSideEliminated)))
	assert.False(t, IsSideEliminated(newError(ErrCodeMultipleAnswers)))
}
