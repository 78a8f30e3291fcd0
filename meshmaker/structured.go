package meshmaker

import (
	"fmt"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// StructuredGrid builds an axis aligned grid from cell sizes along each
// axis. Cells are ordered x fastest, then y, then z. A nil dz gives a 2D
// quad grid. origin may be nil.
func StructuredGrid(dx, dy, dz []float64, origin []float64) (*mesh.Mesh, error) {
	dim := 3
	if dz == nil {
		dim = 2
	}
	if origin == nil {
		origin = make([]float64, dim)
	}
	if len(origin) != dim {
		return nil, fmt.Errorf("origin has %d coordinates, expected %d", len(origin), dim)
	}
	xs, err := nodes(dx, origin[0], 1)
	if err != nil {
		return nil, fmt.Errorf("dx: %w", err)
	}
	ys, err := nodes(dy, origin[1], 1)
	if err != nil {
		return nil, fmt.Errorf("dy: %w", err)
	}
	if dim == 2 {
		return quadGrid(xs, ys)
	}
	zs, err := nodes(dz, origin[2], 1)
	if err != nil {
		return nil, fmt.Errorf("dz: %w", err)
	}
	return hexGrid(xs, ys, zs)
}

// nodes accumulates cell sizes into node coordinates, walking from x0 in
// the direction of sign
func nodes(d []float64, x0, sign float64) ([]float64, error) {
	if len(d) == 0 {
		return nil, fmt.Errorf("no cell sizes")
	}
	xs := make([]float64, len(d)+1)
	xs[0] = x0
	for i, v := range d {
		if !(v > 0) {
			return nil, fmt.Errorf("cell size %d must be positive, got %g", i, v)
		}
		xs[i+1] = xs[i] + sign*v
	}
	return xs, nil
}

func hexGrid(xs, ys, zs []float64) (*mesh.Mesh, error) {
	var (
		nx, ny, nz = len(xs) - 1, len(ys) - 1, len(zs) - 1
		points     = make([][]float64, 0, len(xs)*len(ys)*len(zs))
		cells      = make([][]int, 0, nx*ny*nz)
	)
	for _, z := range zs {
		for _, y := range ys {
			for _, x := range xs {
				points = append(points, []float64{x, y, z})
			}
		}
	}
	p := func(i, j, k int) int { return i + j*(nx+1) + k*(nx+1)*(ny+1) }
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				cells = append(cells, []int{
					p(i, j, k), p(i+1, j, k), p(i+1, j+1, k), p(i, j+1, k),
					p(i, j, k+1), p(i+1, j, k+1), p(i+1, j+1, k+1), p(i, j+1, k+1),
				})
			}
		}
	}
	return mesh.NewMesh(points, []mesh.CellBlock{{Type: mesh.Hexahedron, Data: cells}})
}

func quadGrid(xs, ys []float64) (*mesh.Mesh, error) {
	var (
		nx, ny = len(xs) - 1, len(ys) - 1
		points = make([][]float64, 0, len(xs)*len(ys))
		cells  = make([][]int, 0, nx*ny)
	)
	for _, y := range ys {
		for _, x := range xs {
			points = append(points, []float64{x, y})
		}
	}
	p := func(i, j int) int { return i + j*(nx+1) }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cells = append(cells, []int{p(i, j), p(i+1, j), p(i+1, j+1), p(i, j+1)})
		}
	}
	return mesh.NewMesh(points, []mesh.CellBlock{{Type: mesh.Quad, Data: cells}})
}
