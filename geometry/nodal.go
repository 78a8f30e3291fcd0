package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keurfonluu/toughio-sub000/types"
)

// BoundaryNodalDistance replaces the nodal distance of boundary cells
const BoundaryNodalDistance = 1e-9

// IntersectLinePlane returns the point where the line through p0 and p1
// crosses the plane through q with normal n
func IntersectLinePlane(p0, p1, q, n r3.Vec) (r3.Vec, error) {
	u := r3.Sub(p1, p0)
	denom := r3.Dot(n, u)
	if math.Abs(denom) <= 1e-14*r3.Norm(u)*r3.Norm(n) {
		return r3.Vec{}, fmt.Errorf("%w: line %v is parallel to plane with normal %v", ErrDegenerate, u, n)
	}
	t := r3.Dot(n, r3.Sub(q, p0)) / denom
	return r3.Add(p0, r3.Scale(t, u)), nil
}

// DistancePointPlane returns the distance from p to the plane through q with
// unit normal n
func DistancePointPlane(p, q, n r3.Vec) float64 {
	return math.Abs(r3.Dot(r3.Sub(p, q), n))
}

// NodalDistances returns the distance from each cell center of every
// connection to the shared interface. Boundary cells are contracted to
// BoundaryNodalDistance. boundary may be nil.
func (g *Geometry) NodalDistances(policy types.NodalDistance, boundary []bool) ([][2]float64, error) {
	if boundary != nil && len(boundary) != g.NumCells() {
		return nil, fmt.Errorf("boundary flags have %d entries, mesh has %d cells", len(boundary), g.NumCells())
	}
	out := make([][2]float64, len(g.Connections))
	for k, c := range g.Connections {
		var (
			c1, c2 = g.Centers[c.Cells[0]], g.Centers[c.Cells[1]]
			fp, fn = g.FacePoint(c), g.Normal(c)
		)
		switch policy {
		case types.LineDistance:
			x, err := IntersectLinePlane(c1, c2, fp, fn)
			if err != nil {
				return nil, fmt.Errorf("connection %d-%d: %w", c.Cells[0], c.Cells[1], err)
			}
			out[k] = [2]float64{r3.Norm(r3.Sub(x, c1)), r3.Norm(r3.Sub(x, c2))}
		case types.OrthogonalDistance:
			out[k] = [2]float64{DistancePointPlane(c1, fp, fn), DistancePointPlane(c2, fp, fn)}
		default:
			return nil, fmt.Errorf("unknown nodal distance policy %v", policy)
		}
		if boundary != nil {
			for s := 0; s < 2; s++ {
				if boundary[c.Cells[s]] {
					out[k][s] = BoundaryNodalDistance
				}
			}
		}
	}
	return out, nil
}

// PermeabilityDirection classifies line as aligned with a Cartesian axis only
// when both other components are exactly zero
func PermeabilityDirection(line r3.Vec) types.Isot {
	switch {
	case line.X != 0 && line.Y == 0 && line.Z == 0:
		return types.IsotX
	case line.X == 0 && line.Y != 0 && line.Z == 0:
		return types.IsotY
	case line.X == 0 && line.Y == 0 && line.Z != 0:
		return types.IsotZ
	}
	return types.Isotropic
}

func (g *Geometry) PermeabilityDirections() []types.Isot {
	out := make([]types.Isot, len(g.Connections))
	for k, c := range g.Connections {
		out[k] = PermeabilityDirection(g.Line(c))
	}
	return out
}

// GravityCosines returns the cosine of the angle between each connection line
// and the gravity direction
func (g *Geometry) GravityCosines(gravity r3.Vec) ([]float64, error) {
	gn := r3.Norm(gravity)
	if gn == 0 {
		return nil, fmt.Errorf("gravity vector cannot be zero")
	}
	gravity = r3.Scale(1/gn, gravity)
	out := make([]float64, len(g.Connections))
	for k, c := range g.Connections {
		line := g.Line(c)
		cos := r3.Dot(line, gravity) / r3.Norm(line)
		if cos == 0 {
			cos = 0 // no negative zero in output
		}
		out[k] = cos
	}
	return out, nil
}
