package meshmaker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/keurfonluu/toughio-sub000/geometry"
	"github.com/keurfonluu/toughio-sub000/mesh"
	"github.com/keurfonluu/toughio-sub000/types"
)

func TestStructuredGrid(t *testing.T) {
	dx := []float64{1, 2, 3}
	dy := []float64{0.5, 1.5}
	dz := []float64{2, 1, 1, 3}
	m, err := StructuredGrid(dx, dy, dz, nil)
	require.NoError(t, err)
	assert.Equal(t, 24, m.NumCells())
	assert.Equal(t, 4*3*5, m.NumPoints())

	vols := geometry.Volumes(m)
	assert.InDelta(t, floats.Sum(dx)*floats.Sum(dy)*floats.Sum(dz), floats.Sum(vols), 1e-12)

	g, err := geometry.Compute(m)
	require.NoError(t, err)
	assert.Len(t, g.Connections, 2*2*4+3*1*4+3*2*3)

	counts := make(map[types.Isot]int)
	for _, isot := range g.PermeabilityDirections() {
		counts[isot]++
	}
	assert.Equal(t, map[types.Isot]int{types.IsotX: 16, types.IsotY: 12, types.IsotZ: 18}, counts)

	// x fastest
	assert.InDelta(t, 0.5, g.Centers[0].X, 1e-15)
	assert.InDelta(t, 2., g.Centers[1].X, 1e-15)
	assert.InDelta(t, 1.25, g.Centers[3].Y, 1e-15)
	assert.InDelta(t, 2.5, g.Centers[6].Z, 1e-15)
}

func TestStructuredGridOrigin(t *testing.T) {
	m, err := StructuredGrid([]float64{1}, []float64{1}, []float64{1}, []float64{10, 20, -5})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, -5}, m.Points[0])
	assert.Equal(t, []float64{11, 21, -4}, m.Points[len(m.Points)-1])

	_, err = StructuredGrid([]float64{1}, []float64{1}, []float64{1}, []float64{0, 0})
	assert.Error(t, err)
	_, err = StructuredGrid([]float64{1, -1}, []float64{1}, []float64{1}, nil)
	assert.Error(t, err)
	_, err = StructuredGrid([]float64{}, []float64{1}, []float64{1}, nil)
	assert.Error(t, err)
}

func TestStructuredGrid2D(t *testing.T) {
	m, err := StructuredGrid([]float64{1, 1}, []float64{2}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dim())
	require.Len(t, m.Cells, 1)
	assert.Equal(t, mesh.Quad, m.Cells[0].Type)
	assert.InDeltaSlice(t, []float64{2, 2}, geometry.Volumes(m), 1e-12)
}

func TestCylindricGrid(t *testing.T) {
	dr := []float64{1, 2, 3}
	dz := []float64{1, 2}
	m, err := CylindricGrid(dr, dz, false, nil)
	require.NoError(t, err)
	require.Equal(t, 6, m.NumCells())

	var (
		R, Z = floats.Sum(dr), floats.Sum(dz)
		sums [mesh.MaxFaces]float64
		tol  = 1e-10
	)
	for _, row := range geometry.FaceAreas(m) {
		for f, a := range row {
			sums[f] += a
		}
	}
	assert.InDelta(t, float64(len(dz))*math.Pi*R*R, sums[0], tol)
	assert.InDelta(t, float64(len(dz))*math.Pi*R*R, sums[1], tol)
	assert.InDelta(t, R*Z, sums[2], tol)
	assert.InDelta(t, 2*math.Pi*(1+3+6)*Z, sums[3], tol)
	assert.InDelta(t, R*Z, sums[4], tol)
	assert.InDelta(t, 2*math.Pi*(0+1+3)*Z, sums[5], tol)
	assert.InDelta(t, math.Pi*R*R*Z, floats.Sum(geometry.Volumes(m)), tol)

	g, err := geometry.Compute(m)
	require.NoError(t, err)
	// cell 0 connects through its top face first, then radially
	require.Len(t, g.Connections, 7)
	c := g.Connections[1]
	require.Equal(t, [2]int{0, 1}, c.Cells)
	assert.InDelta(t, 2*math.Pi, g.Area(c), tol)
	assert.Equal(t, types.IsotX, g.PermeabilityDirections()[1])
	assert.InDelta(t, math.Pi, g.Area(g.Connections[0]), tol)
}

func TestCylindricGridLayer(t *testing.T) {
	m, err := CylindricGrid([]float64{1}, []float64{1, 2}, true, []float64{0, 0, 10})
	require.NoError(t, err)
	centers := geometry.Centers(m)
	assert.InDelta(t, 9.5, centers[0].Z, 1e-12)
	assert.InDelta(t, 8., centers[1].Z, 1e-12)
	assert.InDeltaSlice(t, []float64{math.Pi, 2 * math.Pi}, geometry.Volumes(m), 1e-12)

	_, err = CylindricGrid([]float64{1}, nil, false, nil)
	assert.Error(t, err)
}

func TestExtrude(t *testing.T) {
	sq := mesh.UnitSquareMesh()
	require.NoError(t, sq.AddCellData(mesh.PorosityKey, mesh.NewScalarArray([]float64{0.3})))
	require.NoError(t, sq.SetMaterial("SAND", []int{0}))

	m, err := Extrude(sq, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 12, m.NumPoints())
	assert.Equal(t, mesh.Hexahedron, m.Cells[0].Type)
	assert.InDeltaSlice(t, []float64{1, 2}, geometry.Volumes(m), 1e-12)
	assert.Equal(t, []float64{0.3, 0.3}, m.CellData[mesh.PorosityKey].Values)

	names, err := m.MaterialNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"SAND", "SAND"}, names)

	g, err := geometry.Compute(m)
	require.NoError(t, err)
	require.Len(t, g.Connections, 1)
	assert.Equal(t, types.IsotZ, g.PermeabilityDirections()[0])

	_, err = Extrude(mesh.UnitCubeMesh(), []float64{1})
	assert.Error(t, err)
}

func TestTriangulate(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0.5, 0.5}}
	m, err := Triangulate(points)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumCells())
	assert.InDelta(t, 1., floats.Sum(geometry.Volumes(m)), 1e-12)

	ext, err := Extrude(m, []float64{2})
	require.NoError(t, err)
	assert.Equal(t, mesh.Wedge, ext.Cells[0].Type)
	assert.InDelta(t, 2., floats.Sum(geometry.Volumes(ext)), 1e-12)
	conns, err := geometry.ConnectionList(ext)
	require.NoError(t, err)
	assert.Len(t, conns, 4)

	_, err = Triangulate(points[:2])
	assert.Error(t, err)
}
