package geometry

import (
	"github.com/james-bowman/sparse"
)

// Adjacency assembles the symmetric cell-to-cell connection matrix, entry
// (i, j) holding the number of faces shared by cells i and j
func Adjacency(conns []Connection, ncells int) *sparse.CSR {
	if ncells == 0 {
		return nil
	}
	dok := sparse.NewDOK(ncells, ncells)
	for _, c := range conns {
		i, j := c.Cells[0], c.Cells[1]
		dok.Set(i, j, dok.At(i, j)+1)
		dok.Set(j, i, dok.At(j, i)+1)
	}
	return dok.ToCSR()
}

// Degrees returns the number of neighbors of each cell
func Degrees(adj *sparse.CSR) []int {
	if adj == nil {
		return nil
	}
	n, _ := adj.Dims()
	deg := make([]int, n)
	adj.DoNonZero(func(i, j int, v float64) {
		deg[i]++
	})
	return deg
}

// IsolatedCells returns the cells without any connection
func IsolatedCells(adj *sparse.CSR) (cells []int) {
	for i, d := range Degrees(adj) {
		if d == 0 {
			cells = append(cells, i)
		}
	}
	return
}

func (g *Geometry) Adjacency() *sparse.CSR {
	return Adjacency(g.Connections, g.NumCells())
}
