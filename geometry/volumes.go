package geometry

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// Volumes returns the volume of each cell as the sum of its sub-tetrahedra.
// Surface cells report their area. Blocks are processed concurrently; they
// write disjoint ranges of the output and only read the points.
func Volumes(m *mesh.Mesh) []float64 {
	if override := m.Volumes(); override != nil {
		out := make([]float64, len(override))
		copy(out, override)
		return out
	}
	var (
		pts     = Points(m)
		volumes = make([]float64, m.NumCells())
		offsets = m.BlockOffsets()
		wg      sync.WaitGroup
	)
	for ib := range m.Cells {
		wg.Add(1)
		go func(b mesh.CellBlock, out []float64) {
			defer wg.Done()
			for ic, verts := range b.Data {
				out[ic] = cellVolume(pts, b.Type, verts)
			}
		}(m.Cells[ib], volumes[offsets[ib]:offsets[ib]+len(m.Cells[ib].Data)])
	}
	wg.Wait()
	return volumes
}

func cellVolume(pts []r3.Vec, ct mesh.CellType, verts []int) (vol float64) {
	if ct.Dimension() == 2 {
		_, area := polygonNormal(pts, verts)
		return area
	}
	for _, tet := range ct.TetraTable() {
		vol += TetraVolume(pts[verts[tet[0]]], pts[verts[tet[1]]], pts[verts[tet[2]]], pts[verts[tet[3]]])
	}
	return
}

// TetraVolume returns |e1 . (e2 x e3)| / 6
func TetraVolume(p0, p1, p2, p3 r3.Vec) float64 {
	e1, e2, e3 := r3.Sub(p1, p0), r3.Sub(p2, p0), r3.Sub(p3, p0)
	return math.Abs(r3.Dot(e1, r3.Cross(e2, e3))) / 6
}

// Centers returns the centroid of each cell as the mean of its points
func Centers(m *mesh.Mesh) []r3.Vec {
	pts := Points(m)
	centers := make([]r3.Vec, 0, m.NumCells())
	for _, b := range m.Cells {
		for _, verts := range b.Data {
			centers = append(centers, polygonCenter(pts, verts))
		}
	}
	return centers
}
