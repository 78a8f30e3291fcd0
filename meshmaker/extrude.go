package meshmaker

import (
	"fmt"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// Extrude sweeps a surface mesh along z with the layer thicknesses dz.
// Triangles become wedges and quads hexahedra. Output cells keep the block
// order of m, each block listing its cells layer by layer from the bottom.
// Cell and point data are repeated per layer and materials are carried
// over; labels and geometry overrides are not.
func Extrude(m *mesh.Mesh, dz []float64) (*mesh.Mesh, error) {
	for ib, b := range m.Cells {
		if b.Type != mesh.Triangle && b.Type != mesh.Quad {
			return nil, fmt.Errorf("cell block %d: cannot extrude %s cells", ib, b.Type)
		}
	}
	zs, err := nodes(dz, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("dz: %w", err)
	}
	var (
		np     = m.NumPoints()
		nl     = len(dz)
		points = make([][]float64, 0, np*len(zs))
	)
	for _, z := range zs {
		for _, p := range m.Points {
			base := 0.
			if len(p) > 2 {
				base = p[2]
			}
			points = append(points, []float64{p[0], p[1], base + z})
		}
	}

	cells := make([]mesh.CellBlock, len(m.Cells))
	for ib, b := range m.Cells {
		out := mesh.CellBlock{Type: mesh.Wedge, Data: make([][]int, 0, len(b.Data)*nl)}
		if b.Type == mesh.Quad {
			out.Type = mesh.Hexahedron
		}
		for k := 0; k < nl; k++ {
			lo, hi := k*np, (k+1)*np
			for _, verts := range b.Data {
				row := make([]int, 0, 2*len(verts))
				for _, v := range verts {
					row = append(row, v+lo)
				}
				for _, v := range verts {
					row = append(row, v+hi)
				}
				out.Data = append(out.Data, row)
			}
		}
		cells[ib] = out
	}
	ext, err := mesh.NewMesh(points, cells)
	if err != nil {
		return nil, err
	}

	parts := make(map[string][]mesh.Array, len(m.CellData))
	for name, a := range m.CellData {
		if parts[name], err = m.Split(a); err != nil {
			return nil, fmt.Errorf("cell data %q: %w", name, err)
		}
	}
	for name, blocks := range parts {
		a := mesh.Array{NComp: m.CellData[name].NComp}
		for _, part := range blocks {
			for k := 0; k < nl; k++ {
				a.Values = append(a.Values, part.Values...)
			}
		}
		if err = ext.AddCellData(name, a); err != nil {
			return nil, err
		}
	}
	for name, a := range m.PointData {
		rep := mesh.Array{NComp: a.NComp, Values: make([]float64, 0, len(a.Values)*len(zs))}
		for range zs {
			rep.Values = append(rep.Values, a.Values...)
		}
		if err = ext.AddPointData(name, rep); err != nil {
			return nil, err
		}
	}
	if m.Materials != nil {
		for _, name := range m.Materials.Names() {
			code, _ := m.Materials.Code(name)
			if err = ext.Materials.RegisterCode(name, code); err != nil {
				return nil, err
			}
		}
	}
	return ext, nil
}
