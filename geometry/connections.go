package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

var (
	ErrNot3D        = errors.New("operation requires a 3D mesh")
	ErrNonConformal = errors.New("face shared by more than two cells")
	ErrDegenerate   = errors.New("degenerate line-plane intersection")
)

// Connection is a pair of cells sharing a face, with the local index of the
// shared face in each cell. Cells[0] < Cells[1].
type Connection struct {
	Cells [2]int
	Faces [2]int
}

type faceOwner struct {
	cell, local int
}

type (
	triKey  [3]int
	quadKey [4]int
)

// Connections returns, per cell and local face, the index of the neighbor
// cell through that face, -1 where there is none
func Connections(m *mesh.Mesh) ([][mesh.MaxFaces]int, error) {
	neighbors, _, err := buildConnectivity(m, Faces(m))
	return neighbors, err
}

// ConnectionList returns each connection once, ordered by first cell and
// local face
func ConnectionList(m *mesh.Mesh) ([]Connection, error) {
	neighbors, neighborFaces, err := buildConnectivity(m, Faces(m))
	if err != nil {
		return nil, err
	}
	return listConnections(neighbors, neighborFaces), nil
}

func require3D(m *mesh.Mesh) error {
	if m.Dim() != 3 {
		return fmt.Errorf("%w: points have %d coordinates", ErrNot3D, m.Dim())
	}
	for _, b := range m.Cells {
		if b.Type.Dimension() != 3 {
			return fmt.Errorf("%w: mesh contains %s cells", ErrNot3D, b.Type)
		}
	}
	return nil
}

// buildConnectivity groups faces by their sorted point indices. Triangles and
// quadrilaterals are matched separately. A key found twice is an interior
// face, once a boundary face, more than twice an invalid mesh.
func buildConnectivity(m *mesh.Mesh, faces [][][]int) (neighbors, neighborFaces [][mesh.MaxFaces]int, err error) {
	if err = require3D(m); err != nil {
		return nil, nil, err
	}
	var (
		tris  = make(map[triKey][]faceOwner)
		quads = make(map[quadKey][]faceOwner)
	)
	for i, cellFaces := range faces {
		for f, face := range cellFaces {
			sorted := append([]int(nil), face...)
			sort.Ints(sorted)
			owner := faceOwner{cell: i, local: f}
			switch len(sorted) {
			case 3:
				key := triKey{sorted[0], sorted[1], sorted[2]}
				tris[key] = append(tris[key], owner)
			case 4:
				key := quadKey{sorted[0], sorted[1], sorted[2], sorted[3]}
				quads[key] = append(quads[key], owner)
			default:
				return nil, nil, fmt.Errorf("cell %d face %d: unsupported face with %d points", i, f, len(sorted))
			}
		}
	}

	neighbors = make([][mesh.MaxFaces]int, len(faces))
	neighborFaces = make([][mesh.MaxFaces]int, len(faces))
	for i := range neighbors {
		for f := 0; f < mesh.MaxFaces; f++ {
			neighbors[i][f] = -1
			neighborFaces[i][f] = -1
		}
	}
	link := func(key interface{}, owners []faceOwner) error {
		switch len(owners) {
		case 1:
		case 2:
			a, b := owners[0], owners[1]
			neighbors[a.cell][a.local], neighborFaces[a.cell][a.local] = b.cell, b.local
			neighbors[b.cell][b.local], neighborFaces[b.cell][b.local] = a.cell, a.local
		default:
			cells := make([]int, len(owners))
			for k, o := range owners {
				cells[k] = o.cell
			}
			return fmt.Errorf("%w: face %v belongs to cells %v", ErrNonConformal, key, cells)
		}
		return nil
	}
	for key, owners := range tris {
		if err = link(key, owners); err != nil {
			return nil, nil, err
		}
	}
	for key, owners := range quads {
		if err = link(key, owners); err != nil {
			return nil, nil, err
		}
	}
	return neighbors, neighborFaces, nil
}

func listConnections(neighbors, neighborFaces [][mesh.MaxFaces]int) (conns []Connection) {
	for i := range neighbors {
		for f, j := range neighbors[i] {
			if j > i {
				conns = append(conns, Connection{
					Cells: [2]int{i, j},
					Faces: [2]int{f, neighborFaces[i][f]},
				})
			}
		}
	}
	return
}
