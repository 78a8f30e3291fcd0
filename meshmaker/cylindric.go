package meshmaker

import (
	"fmt"
	"math"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// CylindricGrid builds a radial grid with x as the radius and a single unit
// cell along y. Volumes and face areas are replaced by those of the
// corresponding annuli so that the written MESH describes a true cylinder.
//
// When layer is set, dz lists the layer thicknesses from the top down and
// origin[2] is the top of the grid; cells are then numbered from the top.
// origin may be nil.
func CylindricGrid(dr, dz []float64, layer bool, origin []float64) (*mesh.Mesh, error) {
	if origin == nil {
		origin = make([]float64, 3)
	}
	if len(origin) != 3 {
		return nil, fmt.Errorf("origin has %d coordinates, expected 3", len(origin))
	}
	rs, err := nodes(dr, origin[0], 1)
	if err != nil {
		return nil, fmt.Errorf("dr: %w", err)
	}
	sign := 1.
	if layer {
		sign = -1
	}
	zs, err := nodes(dz, origin[2], sign)
	if err != nil {
		return nil, fmt.Errorf("dz: %w", err)
	}
	m, err := hexGrid(rs, []float64{origin[1], origin[1] + 1}, zs)
	if err != nil {
		return nil, err
	}

	var (
		nr, nz  = len(dr), len(dz)
		volumes = make([]float64, 0, nr*nz)
		areas   = make([][]float64, 0, nr*nz)
	)
	for k := 0; k < nz; k++ {
		h := dz[k]
		for i := 0; i < nr; i++ {
			r1, r2 := rs[i]-origin[0], rs[i+1]-origin[0]
			disk := math.Pi * (r2*r2 - r1*r1)
			section := (r2 - r1) * h
			volumes = append(volumes, disk*h)
			// bottom, top, y-, x+ (outer), y+, x- (inner)
			areas = append(areas, []float64{
				disk, disk,
				section, 2 * math.Pi * r2 * h,
				section, 2 * math.Pi * r1 * h,
			})
		}
	}
	if err = m.SetVolumes(volumes); err != nil {
		return nil, err
	}
	if err = m.SetFaceAreas(areas); err != nil {
		return nil, err
	}
	return m, nil
}
