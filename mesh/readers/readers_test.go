package readers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keurfonluu/toughio-sub000/geometry"
	"github.com/keurfonluu/toughio-sub000/mesh"
)

const twoCubesGmsh = `$MeshFormat
2.2 0 8
$EndMeshFormat
$PhysicalNames
3
2 3 "top"
3 1 "rock"
3 2 "clay"
$EndPhysicalNames
$Nodes
12
1 0 0 0
2 1 0 0
3 1 1 0
4 0 1 0
5 0 0 1
6 1 0 1
7 1 1 1
8 0 1 1
9 2 0 0
10 2 1 0
11 2 0 1
12 2 1 1
$EndNodes
$Elements
4
1 15 2 0 1 1
2 3 2 3 7 5 6 7 8
3 5 2 1 1 1 2 3 4 5 6 7 8
4 5 2 2 2 2 9 10 3 6 11 12 7
$EndElements
$NodeData
1
"pressure"
$EndNodeData
`

const brickPyramidGambit = `        CONTROL INFO 2.0.0
** GAMBIT NEUTRAL FILE
brick and pyramid
PROGRAM:                Gambit     VERSION:  2.0.0
Oct 2026
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         9         2         1         0         3         3
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1  0.00000000000e+00  0.00000000000e+00  0.00000000000e+00
         2  1.00000000000e+00  0.00000000000e+00  0.00000000000e+00
         3  0.00000000000e+00  1.00000000000e+00  0.00000000000e+00
         4  1.00000000000e+00  1.00000000000e+00  0.00000000000e+00
         5  0.00000000000e+00  0.00000000000e+00  1.00000000000e+00
         6  1.00000000000e+00  0.00000000000e+00  1.00000000000e+00
         7  0.00000000000e+00  1.00000000000e+00  1.00000000000e+00
         8  1.00000000000e+00  1.00000000000e+00  1.00000000000e+00
         9  5.00000000000e-01  5.00000000000e-01  2.00000000000e+00
ENDOFSECTION
      ELEMENTS/CELLS 2.0.0
       1  4  8        1       2       3       4       5       6       7
               8
       2  7  5        5       6       7       8       9
ENDOFSECTION
       ELEMENT GROUP 2.0.0
GROUP:          1 ELEMENTS:          2 MATERIAL:          2 NFLAGS:          1
                           fluid
       0
       1       2
ENDOFSECTION
`

func TestParseGmsh22(t *testing.T) {
	m, err := ParseGmsh22(strings.NewReader(twoCubesGmsh))
	require.NoError(t, err)

	// Point and boundary quad are dropped
	require.Len(t, m.Cells, 1)
	assert.Equal(t, mesh.Hexahedron, m.Cells[0].Type)
	assert.Equal(t, 2, m.NumCells())
	assert.Equal(t, 12, m.NumPoints())
	assert.Equal(t, []int{1, 8, 9, 2, 5, 10, 11, 6}, m.Cells[0].Data[1])

	names, err := m.MaterialNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"rock", "clay"}, names)
	_, ok := m.Materials.Code("top")
	assert.False(t, ok)

	g, err := geometry.Compute(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, g.Volumes, 1e-12)
	require.Len(t, g.Connections, 1)
}

func TestParseGmsh22Errors(t *testing.T) {
	_, err := ParseGmsh22(strings.NewReader("$MeshFormat\n4.1 0 8\n$EndMeshFormat\n"))
	assert.Error(t, err)

	_, err = ParseGmsh22(strings.NewReader("$MeshFormat\n2.2 1 8\n$EndMeshFormat\n"))
	assert.Error(t, err)

	bad := strings.Replace(twoCubesGmsh, "3 5 2 1 1 1 2 3 4 5 6 7 8", "3 5 2 1 1 1 2 3 4 5 6 7 99", 1)
	_, err = ParseGmsh22(strings.NewReader(bad))
	assert.Error(t, err)

	short := strings.Replace(twoCubesGmsh, "3 5 2 1 1 1 2 3 4 5 6 7 8", "3 5 2 1 1 1 2 3 4 5 6 7", 1)
	_, err = ParseGmsh22(strings.NewReader(short))
	assert.Error(t, err)
}

func TestParseGmsh22Untagged(t *testing.T) {
	content := `$MeshFormat
2.2 0 8
$EndMeshFormat
$Nodes
4
1 0 0 0
2 1 0 0
3 0 1 0
4 0 0 1
$EndNodes
$Elements
1
1 4 0 1 2 3 4
$EndElements
`
	m, err := ParseGmsh22(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, 1, m.NumCells())
	_, ok := m.CellData[mesh.MaterialKey]
	assert.False(t, ok)
	assert.InDelta(t, 1./6, geometry.Volumes(m)[0], 1e-15)
}

func TestParseGambitNeutral(t *testing.T) {
	m, err := ParseGambitNeutral(strings.NewReader(brickPyramidGambit))
	require.NoError(t, err)
	require.Len(t, m.Cells, 2)
	assert.Equal(t, mesh.Hexahedron, m.Cells[0].Type)
	assert.Equal(t, mesh.Pyramid, m.Cells[1].Type)

	// Gambit zigzag reordered into the catalogue ordering
	assert.Equal(t, []int{0, 1, 3, 2, 4, 5, 7, 6}, m.Cells[0].Data[0])
	assert.Equal(t, []int{4, 5, 7, 6, 8}, m.Cells[1].Data[0])

	g, err := geometry.Compute(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1. / 3}, g.Volumes, 1e-12)
	assert.InDelta(t, 0., r3.Norm(r3.Sub(g.Normals[0][3], r3.Vec{X: 1})), 1e-12)
	require.Len(t, g.Connections, 1)
	assert.Equal(t, [2]int{1, 0}, g.Connections[0].Faces)

	names, err := m.MaterialNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"fluid", "fluid"}, names)
}

func TestReadMeshFile(t *testing.T) {
	dir := t.TempDir()
	msh := filepath.Join(dir, "cubes.msh")
	require.NoError(t, os.WriteFile(msh, []byte(twoCubesGmsh), 0644))
	neu := filepath.Join(dir, "brick.NEU")
	require.NoError(t, os.WriteFile(neu, []byte(brickPyramidGambit), 0644))

	m, err := ReadMeshFile(msh)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumCells())

	m, err = ReadMeshFile(neu)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumCells())

	v4 := filepath.Join(dir, "v4.msh")
	require.NoError(t, os.WriteFile(v4, []byte("$MeshFormat\n4.1 0 8\n$EndMeshFormat\n"), 0644))
	_, err = ReadMeshFile(v4)
	assert.Error(t, err)

	_, err = ReadMeshFile(filepath.Join(dir, "mesh.vtk"))
	assert.Error(t, err)
	_, err = ReadMeshFile(filepath.Join(dir, "missing.msh"))
	assert.Error(t, err)
}
