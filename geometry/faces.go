package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// Points returns the mesh points as 3D vectors, 2D points lie in z = 0
func Points(m *mesh.Mesh) []r3.Vec {
	pts := make([]r3.Vec, len(m.Points))
	for i, p := range m.Points {
		pts[i].X, pts[i].Y = p[0], p[1]
		if len(p) > 2 {
			pts[i].Z = p[2]
		}
	}
	return pts
}

// Faces returns, per cell, the global point indices of each of its faces in
// the winding of the cell-shape catalogue
func Faces(m *mesh.Mesh) [][][]int {
	faces := make([][][]int, 0, m.NumCells())
	for _, b := range m.Cells {
		for _, verts := range b.Data {
			faces = append(faces, mesh.GetCellFaces(b.Type, verts))
		}
	}
	return faces
}

// FaceNormals returns the unit normal of every face, pointing out of the cell
// for volume cells
func FaceNormals(m *mesh.Mesh) [][]r3.Vec {
	pts := Points(m)
	normals, _ := faceGeometry(m, pts, Faces(m), Centers(m))
	return normals
}

// FaceAreas returns the area of every face
func FaceAreas(m *mesh.Mesh) [][]float64 {
	pts := Points(m)
	_, areas := faceGeometry(m, pts, Faces(m), Centers(m))
	return areas
}

// faceGeometry computes normals and areas. Quadrilaterals are split along
// the 0-2 diagonal: areas are summed and the two normals averaged, which is
// exact for planar faces only.
func faceGeometry(m *mesh.Mesh, pts []r3.Vec, faces [][][]int, centers []r3.Vec) (normals [][]r3.Vec, areas [][]float64) {
	normals = make([][]r3.Vec, len(faces))
	areas = make([][]float64, len(faces))
	i := 0
	for _, b := range m.Cells {
		volumeCell := b.Type.Dimension() == 3
		for range b.Data {
			normals[i] = make([]r3.Vec, len(faces[i]))
			areas[i] = make([]float64, len(faces[i]))
			for f, face := range faces[i] {
				n, area := polygonNormal(pts, face)
				if volumeCell && r3.Dot(n, r3.Sub(polygonCenter(pts, face), centers[i])) < 0 {
					n = r3.Scale(-1, n)
				}
				normals[i][f] = n
				areas[i][f] = area
			}
			i++
		}
	}
	if override := m.FaceAreas(); override != nil {
		areas = override
	}
	return
}

func polygonNormal(pts []r3.Vec, face []int) (normal r3.Vec, area float64) {
	p0 := pts[face[0]]
	var sum r3.Vec
	// Fan triangulation: [0,1,2] for triangles, [0,1,2] and [0,2,3] for quads
	for j := 1; j+1 < len(face); j++ {
		c := r3.Cross(r3.Sub(pts[face[j]], p0), r3.Sub(pts[face[j+1]], p0))
		area += 0.5 * r3.Norm(c)
		sum = r3.Add(sum, c)
	}
	if norm := r3.Norm(sum); norm > 0 {
		normal = r3.Scale(1/norm, sum)
	}
	return normal, math.Abs(area)
}

func polygonCenter(pts []r3.Vec, face []int) (c r3.Vec) {
	for _, ip := range face {
		c = r3.Add(c, pts[ip])
	}
	return r3.Scale(1/float64(len(face)), c)
}
