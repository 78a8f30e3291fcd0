package mesh

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCatalogue(t *testing.T) {
	tests := []struct {
		ct              CellType
		nodes, faces    int
		dim, tetras     int
		triangles, quads int
	}{
		{Triangle, 3, 1, 2, 0, 1, 0},
		{Quad, 4, 1, 2, 0, 0, 1},
		{Tetra, 4, 4, 3, 1, 4, 0},
		{Pyramid, 5, 5, 3, 2, 4, 1},
		{Wedge, 6, 5, 3, 3, 2, 3},
		{Hexahedron, 8, 6, 3, 5, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.ct.String(), func(t *testing.T) {
			assert.Equal(t, tt.nodes, tt.ct.NumNodes())
			assert.Equal(t, tt.faces, tt.ct.NumFaces())
			assert.Equal(t, tt.dim, tt.ct.Dimension())
			assert.Len(t, tt.ct.TetraTable(), tt.tetras)
			var ntri, nquad int
			for _, f := range tt.ct.FaceTable() {
				switch len(f) {
				case 3:
					ntri++
				case 4:
					nquad++
				}
				for _, lv := range f {
					assert.Less(t, lv, tt.nodes)
				}
			}
			assert.Equal(t, tt.triangles, ntri)
			assert.Equal(t, tt.quads, nquad)
			assert.LessOrEqual(t, tt.ct.NumFaces(), MaxFaces)
		})
	}
}

func TestNewCellType(t *testing.T) {
	ct, err := NewCellType("Hexahedron")
	require.NoError(t, err)
	assert.Equal(t, Hexahedron, ct)

	_, err = NewCellType("polyhedron")
	assert.True(t, errors.Is(err, ErrUnknownCellType))
	assert.Equal(t, "CellType(42)", CellType(42).String())
}

func TestGetCellFaces(t *testing.T) {
	faces := GetCellFaces(Tetra, []int{10, 11, 12, 13})
	assert.Equal(t, [][]int{{10, 12, 11}, {10, 11, 13}, {11, 12, 13}, {10, 13, 12}}, faces)
}

func TestNewMeshValidation(t *testing.T) {
	_, err := NewMesh([][]float64{{0, 0, 0}}, []CellBlock{
		{Type: Tetra, Data: [][]int{{0, 0, 0}}},
	})
	assert.Error(t, err, "wrong arity")

	_, err = NewMesh([][]float64{{0, 0, 0}}, []CellBlock{
		{Type: Triangle, Data: [][]int{{0, 0, 1}}},
	})
	assert.Error(t, err, "point index out of range")

	_, err = NewMesh([][]float64{{0, 0, 0}, {1, 0}}, nil)
	assert.Error(t, err, "mixed dimensions")

	_, err = NewMesh([][]float64{{0, 0, 0}}, []CellBlock{{Type: CellType(17)}})
	assert.True(t, errors.Is(err, ErrUnknownCellType))
}

func TestMeshAccessors(t *testing.T) {
	m := MixedMesh()
	assert.Equal(t, 12, m.NumPoints())
	assert.Equal(t, 4, m.NumCells())
	assert.Equal(t, 3, m.Dim())
	assert.Equal(t, []int{0, 1, 2, 3}, m.BlockOffsets())

	ct, verts := m.Cell(2)
	assert.Equal(t, Pyramid, ct)
	assert.Equal(t, []int{4, 5, 6, 7, 10}, verts)
	assert.Panics(t, func() { m.Cell(4) })
}

func TestSplit(t *testing.T) {
	m := TwoCubesMesh()
	require.NoError(t, m.AddCellBlock(CellBlock{Type: Tetra, Data: [][]int{{0, 1, 3, 4}}}))

	a := NewScalarArray([]float64{1, 2, 3})
	parts, err := m.Split(a)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, []float64{1, 2}, parts[0].Values)
	assert.Equal(t, []float64{3}, parts[1].Values)

	// Views share storage with the flat array
	parts[1].Set(0, 30)
	assert.Equal(t, 30., a.Scalar(2))

	_, err = m.Split(NewScalarArray([]float64{1}))
	assert.True(t, errors.Is(err, ErrDataLength))
}

func TestDataConsistency(t *testing.T) {
	m := TwoCubesMesh()
	assert.True(t, errors.Is(m.AddCellData("porosity", NewScalarArray([]float64{0.1})), ErrDataLength))
	require.NoError(t, m.AddCellData("porosity", NewScalarArray([]float64{0.1, 0.2})))

	// Cell count can no longer change
	err := m.AddCellBlock(CellBlock{Type: Tetra, Data: [][]int{{0, 1, 3, 4}}})
	assert.True(t, errors.Is(err, ErrDataLength))
	assert.Equal(t, 2, m.NumCells())

	assert.True(t, errors.Is(m.SetPoints(m.Points[:4]), ErrDataLength))
	assert.True(t, errors.Is(m.AddPointData("p", NewScalarArray([]float64{1})), ErrDataLength))
	require.NoError(t, m.AddPointData("p", NewArray(12, 1, 0)))

	shifted := copyPoints(m.Points)
	for _, p := range shifted {
		p[2] += 10
	}
	require.NoError(t, m.SetPoints(shifted))
	assert.Equal(t, 10., m.Points[0][2])
}

func TestMaterials(t *testing.T) {
	m := MixedMesh()
	require.NoError(t, m.SetMaterial("SAND", []int{0, 1}))
	require.NoError(t, m.SetMaterial("CLAY", []int{2}))
	require.NoError(t, m.SetMaterial("SAND", []int{3}))
	assert.Error(t, m.SetMaterial("SAND", []int{4}))

	names, err := m.MaterialNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"SAND", "SAND", "CLAY", "SAND"}, names)
	assert.Equal(t, []string{"SAND", "CLAY"}, m.Materials.Names())

	code, ok := m.Materials.Code("CLAY")
	assert.True(t, ok)
	assert.Equal(t, 2, code)

	// A code without a name breaks the registry invariant
	m.CellData[MaterialKey].Set(0, 9)
	_, err = m.MaterialNames()
	assert.Error(t, err)
}

func TestMaterialRegistryCodes(t *testing.T) {
	mr := NewMaterialRegistry()
	require.NoError(t, mr.RegisterCode("rock", 5))
	assert.Error(t, mr.RegisterCode("soil", 5))
	assert.Error(t, mr.RegisterCode("rock", 6))
	assert.Error(t, mr.RegisterCode("zero", 0))
	code, err := mr.Register("soil")
	require.NoError(t, err)
	assert.Equal(t, 6, code)
	_, err = mr.Register("")
	assert.Error(t, err)
}

func TestBoundaryConditionsAndLabels(t *testing.T) {
	m := TwoCubesMesh()
	assert.Equal(t, []bool{false, false}, m.BoundaryConditions())
	require.NoError(t, m.SetBoundaryCondition([]int{1}))
	assert.Equal(t, []bool{false, true}, m.BoundaryConditions())
	assert.Error(t, m.SetBoundaryCondition([]int{2}))

	assert.Error(t, m.SetLabels([]string{"AAA01", "AAA01"}))
	assert.Error(t, m.SetLabels([]string{"AAA01", "AAA002"}))
	assert.Error(t, m.SetLabels([]string{"AAA01"}))
	assert.Error(t, m.SetLabels([]string{" AA01", "AAA02"}))
	assert.Error(t, m.SetLabels([]string{"", ""}))
	require.NoError(t, m.SetLabels([]string{"10001", "10002"}))
	require.NoError(t, m.SetLabels([]string{"AAA01", "AAA02"}))
}

func TestPrintStatistics(t *testing.T) {
	m := MixedMesh()
	require.NoError(t, m.SetMaterial("ROCK", []int{0, 1}))
	require.NoError(t, m.SetMaterial("CLAY", []int{2, 3}))

	var buf bytes.Buffer
	m.PrintStatistics(&buf)
	out := buf.String()
	assert.Contains(t, out, "  Points: 12\n")
	assert.Contains(t, out, "  Cells: 4\n")
	assert.Contains(t, out, "    tetra: 1\n")
	assert.Contains(t, out, "    hexahedron: 1\n")
	assert.Contains(t, out, "  Materials: [ROCK CLAY]\n")
}

func TestGeometryOverrides(t *testing.T) {
	m := TwoCubesMesh()
	assert.Error(t, m.SetVolumes([]float64{1}))
	require.NoError(t, m.SetVolumes([]float64{1, 2}))
	assert.Equal(t, []float64{1, 2}, m.Volumes())

	assert.Error(t, m.SetFaceAreas([][]float64{{1, 1, 1, 1, 1, 1}, {1}}))
	require.NoError(t, m.SetFaceAreas([][]float64{{1, 1, 1, 1, 1, 1}, {2, 2, 2, 2, 2, 2}}))
	assert.Equal(t, 2., m.FaceAreas()[1][3])
}

func TestArray(t *testing.T) {
	a, err := NewVectorArray([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []float64{4, 5, 6}, a.At(1))

	_, err = NewVectorArray([][]float64{{1, 2, 3}, {4}})
	assert.True(t, errors.Is(err, ErrDataLength))

	u := NewUnsetArray(2, 3)
	assert.False(t, u.IsSet(0))
	u.Set(1, math.NaN(), 1e-13, math.NaN())
	assert.True(t, u.IsSet(1))

	c := a.Copy()
	c.Set(0, 0, 0, 0)
	assert.Equal(t, 1., a.Scalar(0))
	assert.Equal(t, 0, Array{}.Len())
}
