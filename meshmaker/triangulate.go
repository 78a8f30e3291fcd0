package meshmaker

import (
	"fmt"

	"github.com/pradeep-pyro/triangle"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// Triangulate builds the Delaunay triangulation of a 2D point cloud
func Triangulate(points [][]float64) (*mesh.Mesh, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("triangulation needs at least 3 points, got %d", len(points))
	}
	pts := make([][2]float64, len(points))
	for i, p := range points {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates, expected 2", i, len(p))
		}
		pts[i] = [2]float64{p[0], p[1]}
	}
	tris := triangle.Delaunay(pts)
	if len(tris) == 0 {
		return nil, fmt.Errorf("triangulation of %d points produced no triangles", len(points))
	}
	cells := make([][]int, len(tris))
	for i, tri := range tris {
		cells[i] = []int{int(tri[0]), int(tri[1]), int(tri[2])}
	}
	return mesh.NewMesh(points, []mesh.CellBlock{{Type: mesh.Triangle, Data: cells}})
}
