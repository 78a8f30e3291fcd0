package mesh

// Standard meshes shared by the tests of this module and its readers, codecs
// and geometry.

var cubePoints = [][]float64{
	{0, 0, 0}, // 0
	{1, 0, 0}, // 1
	{1, 1, 0}, // 2
	{0, 1, 0}, // 3
	{0, 0, 1}, // 4
	{1, 0, 1}, // 5
	{1, 1, 1}, // 6
	{0, 1, 1}, // 7
}

func copyPoints(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = append([]float64(nil), p...)
	}
	return out
}

func mustMesh(points [][]float64, cells []CellBlock) *Mesh {
	m, err := NewMesh(points, cells)
	if err != nil {
		panic(err)
	}
	return m
}

// UnitCubeMesh is a single unit hexahedron
func UnitCubeMesh() *Mesh {
	return mustMesh(copyPoints(cubePoints), []CellBlock{
		{Type: Hexahedron, Data: [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}},
	})
}

// TwoCubesMesh is two unit hexahedra sharing the face x = 1
func TwoCubesMesh() *Mesh {
	points := copyPoints(cubePoints)
	points = append(points,
		[]float64{2, 0, 0}, // 8
		[]float64{2, 1, 0}, // 9
		[]float64{2, 0, 1}, // 10
		[]float64{2, 1, 1}, // 11
	)
	return mustMesh(points, []CellBlock{
		{Type: Hexahedron, Data: [][]int{
			{0, 1, 2, 3, 4, 5, 6, 7},
			{1, 8, 9, 2, 5, 10, 11, 6},
		}},
	})
}

// TwoTetMesh is two tetrahedra sharing the face {1,2,3}
func TwoTetMesh() *Mesh {
	points := [][]float64{
		{0, 0, 0}, // 0
		{1, 0, 0}, // 1
		{0, 1, 0}, // 2
		{0, 0, 1}, // 3
		{1, 1, 1}, // 4
	}
	return mustMesh(points, []CellBlock{
		{Type: Tetra, Data: [][]int{
			{0, 1, 2, 3},
			{1, 2, 3, 4},
		}},
	})
}

// MixedMesh is a unit hexahedron with a wedge on its x+ face, a pyramid on its
// top face and a tetrahedron on the y- face of the pyramid. Cells 0-1, 0-2
// and 2-3 are connected.
//
//	volumes: hexahedron 1, wedge 0.5, pyramid 1/3, tetra 1.25/6
func MixedMesh() *Mesh {
	points := copyPoints(cubePoints)
	points = append(points,
		[]float64{2, 0.5, 0},     // 8
		[]float64{2, 0.5, 1},     // 9
		[]float64{0.5, 0.5, 2},   // 10 apex
		[]float64{0.5, -1, 1.5},  // 11
	)
	return mustMesh(points, []CellBlock{
		{Type: Hexahedron, Data: [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}},
		{Type: Wedge, Data: [][]int{{1, 8, 2, 5, 9, 6}}},
		{Type: Pyramid, Data: [][]int{{4, 5, 6, 7, 10}}},
		{Type: Tetra, Data: [][]int{{4, 5, 10, 11}}},
	})
}

// UnitSquareMesh is a single quad in the plane
func UnitSquareMesh() *Mesh {
	return mustMesh([][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, []CellBlock{
		{Type: Quad, Data: [][]int{{0, 1, 2, 3}}},
	})
}
