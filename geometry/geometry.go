package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// Geometry holds every derived array of a 3D mesh, computed once and shared
// by the codec. The mesh points must not change while it is in use.
type Geometry struct {
	Mesh          *mesh.Mesh
	Points        []r3.Vec
	Faces         [][][]int
	Normals       [][]r3.Vec
	Areas         [][]float64
	Volumes       []float64
	Centers       []r3.Vec
	Neighbors     [][mesh.MaxFaces]int
	NeighborFaces [][mesh.MaxFaces]int
	Connections   []Connection
}

// Compute derives the geometry of m. Nothing is returned on error.
func Compute(m *mesh.Mesh) (*Geometry, error) {
	var (
		err error
		g   = &Geometry{Mesh: m}
	)
	g.Points = Points(m)
	g.Faces = Faces(m)
	if g.Neighbors, g.NeighborFaces, err = buildConnectivity(m, g.Faces); err != nil {
		return nil, err
	}
	g.Centers = Centers(m)
	g.Normals, g.Areas = faceGeometry(m, g.Points, g.Faces, g.Centers)
	g.Volumes = Volumes(m)
	g.Connections = listConnections(g.Neighbors, g.NeighborFaces)
	return g, nil
}

func (g *Geometry) NumCells() int { return len(g.Centers) }

// Line returns the vector from the center of the first cell of c to the
// center of the second
func (g *Geometry) Line(c Connection) r3.Vec {
	return r3.Sub(g.Centers[c.Cells[1]], g.Centers[c.Cells[0]])
}

// Normal returns the normal of the shared face as seen from the first cell
func (g *Geometry) Normal(c Connection) r3.Vec {
	return g.Normals[c.Cells[0]][c.Faces[0]]
}

// Area returns the interface area as seen from the first cell
func (g *Geometry) Area(c Connection) float64 {
	return g.Areas[c.Cells[0]][c.Faces[0]]
}

// FacePoint returns the first point of the shared face
func (g *Geometry) FacePoint(c Connection) r3.Vec {
	return g.Points[g.Faces[c.Cells[0]][c.Faces[0]][0]]
}

// Near returns the index of the cell whose center is closest to p
func (g *Geometry) Near(p r3.Vec) int {
	best, dmin := -1, 0.
	for i, c := range g.Centers {
		d := r3.Norm2(r3.Sub(c, p))
		if best < 0 || d < dmin {
			best, dmin = i, d
		}
	}
	return best
}
