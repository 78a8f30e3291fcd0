package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// Qualities returns, per cell, the absolute cosine between the line joining
// the cell centers and the face normal of each of its connections, in local
// face order. 1 is an orthogonal connection.
func Qualities(m *mesh.Mesh) ([][]float64, error) {
	g, err := Compute(m)
	if err != nil {
		return nil, err
	}
	return g.Qualities(), nil
}

func (g *Geometry) Qualities() [][]float64 {
	q := make([][]float64, g.NumCells())
	for i := range q {
		q[i] = []float64{}
		for f, j := range g.Neighbors[i] {
			if j < 0 {
				continue
			}
			line := r3.Sub(g.Centers[j], g.Centers[i])
			norm := r3.Norm(line)
			if norm == 0 {
				q[i] = append(q[i], 0)
				continue
			}
			q[i] = append(q[i], math.Abs(r3.Dot(line, g.Normals[i][f]))/norm)
		}
	}
	return q
}

// MinQualities reduces per-cell qualities to their minimum, NaN for cells
// without connections
func MinQualities(q [][]float64) []float64 {
	out := make([]float64, len(q))
	for i, qi := range q {
		if len(qi) == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = floats.Min(qi)
	}
	return out
}
