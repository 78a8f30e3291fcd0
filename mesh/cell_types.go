package mesh

import (
	"fmt"
	"strings"
)

// CellType represents the supported cell shapes
type CellType int

const (
	Triangle CellType = iota
	Quad
	Tetra
	Pyramid
	Wedge
	Hexahedron
)

// MaxFaces is the largest number of faces of any supported cell
const MaxFaces = 6

func (c CellType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("CellType(%d)", int(c))
	}
	return [...]string{"triangle", "quad", "tetra", "pyramid", "wedge", "hexahedron"}[c]
}

var CellTypeNameMap = map[string]CellType{
	"triangle":   Triangle,
	"quad":       Quad,
	"tetra":      Tetra,
	"pyramid":    Pyramid,
	"wedge":      Wedge,
	"hexahedron": Hexahedron,
}

func NewCellType(label string) (CellType, error) {
	ct, ok := CellTypeNameMap[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCellType, label)
	}
	return ct, nil
}

type shape struct {
	nodes  int
	dim    int
	faces  [][]int
	tetras [][4]int
}

// Face tables are wound so that the right hand normal points out of the cell
// for the usual VTK vertex ordering. Tetrahedral decompositions only use the
// cell's own vertices.
var catalogue = [...]shape{
	Triangle: {
		nodes: 3, dim: 2,
		faces: [][]int{{0, 1, 2}},
	},
	Quad: {
		nodes: 4, dim: 2,
		faces: [][]int{{0, 1, 2, 3}},
	},
	Tetra: {
		nodes: 4, dim: 3,
		faces: [][]int{
			{0, 2, 1},
			{0, 1, 3},
			{1, 2, 3},
			{0, 3, 2},
		},
		tetras: [][4]int{{0, 1, 2, 3}},
	},
	Pyramid: {
		nodes: 5, dim: 3,
		faces: [][]int{
			{0, 3, 2, 1}, // base
			{0, 1, 4},
			{1, 2, 4},
			{2, 3, 4},
			{3, 0, 4},
		},
		tetras: [][4]int{{0, 1, 3, 4}, {1, 2, 3, 4}},
	},
	Wedge: {
		nodes: 6, dim: 3,
		faces: [][]int{
			{0, 2, 1}, // bottom
			{3, 4, 5}, // top
			{0, 1, 4, 3},
			{1, 2, 5, 4},
			{2, 0, 3, 5},
		},
		tetras: [][4]int{{0, 1, 2, 5}, {0, 1, 5, 4}, {0, 4, 5, 3}},
	},
	Hexahedron: {
		nodes: 8, dim: 3,
		faces: [][]int{
			{0, 3, 2, 1}, // bottom
			{4, 5, 6, 7}, // top
			{0, 1, 5, 4}, // y-
			{1, 2, 6, 5}, // x+
			{2, 3, 7, 6}, // y+
			{3, 0, 4, 7}, // x-
		},
		tetras: [][4]int{
			{0, 1, 3, 4},
			{1, 2, 3, 6},
			{1, 4, 5, 6},
			{3, 4, 6, 7},
			{1, 3, 4, 6},
		},
	},
}

func (c CellType) Valid() bool {
	return c >= Triangle && c <= Hexahedron
}

// NumNodes returns the number of vertices of a cell of this type
func (c CellType) NumNodes() int { return catalogue[c].nodes }

// Dimension returns 2 for surface cells and 3 for volume cells
func (c CellType) Dimension() int { return catalogue[c].dim }

func (c CellType) NumFaces() int { return len(catalogue[c].faces) }

// FaceTable returns the local vertex indices of each face
func (c CellType) FaceTable() [][]int { return catalogue[c].faces }

// TetraTable returns the local vertex indices of each sub-tetrahedron. Surface
// cells have none.
func (c CellType) TetraTable() [][4]int { return catalogue[c].tetras }

// GetCellFaces returns the global vertex indices of each face of a cell
func GetCellFaces(c CellType, vertices []int) [][]int {
	table := catalogue[c].faces
	faces := make([][]int, len(table))
	for f, local := range table {
		faces[f] = make([]int, len(local))
		for j, lv := range local {
			faces[f][j] = vertices[lv]
		}
	}
	return faces
}
