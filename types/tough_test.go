package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodalDistance(t *testing.T) {
	nd, err := NewNodalDistance("Orthogonal")
	require.NoError(t, err)
	assert.Equal(t, OrthogonalDistance, nd)

	nd, err = NewNodalDistance("")
	require.NoError(t, err)
	assert.Equal(t, LineDistance, nd)
	assert.Equal(t, "line", nd.String())

	_, err = NewNodalDistance("diagonal")
	assert.Error(t, err)
}

func TestEOS(t *testing.T) {
	e, err := NewEOS("TMVOC")
	require.NoError(t, err)
	assert.Equal(t, EOSTMVOC, e)
	assert.Equal(t, -1, e.MaxPrimaryVariables())

	e, err = NewEOS("eco2n")
	require.NoError(t, err)
	assert.Equal(t, 4, e.MaxPrimaryVariables())

	_, err = NewEOS("eos99")
	assert.Error(t, err)
}

func TestIsotString(t *testing.T) {
	assert.Equal(t, "Isotropic", Isotropic.String())
	assert.Equal(t, "Z", IsotZ.String())
	assert.Equal(t, "Isot(9)", Isot(9).String())

	// Written as is in the ISOT column, 1 to 3 index PER in ROCKS
	assert.Equal(t, []int{0, 1, 2, 3}, []int{int(Isotropic), int(IsotX), int(IsotY), int(IsotZ)})
}
