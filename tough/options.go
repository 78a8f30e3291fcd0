package tough

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keurfonluu/toughio-sub000/types"
)

// VolumeFactor multiplies the volume of boundary condition cells in ELEME
// records
const VolumeFactor = 1e50

// WriteOptions configures the MESH and INCON writers
type WriteOptions struct {
	NodalDistance types.NodalDistance
	MaterialName  map[string]string // Renames materials on output
	MaterialEnd   []string          // Materials whose cells are written last
	Incon         bool              // Also write the INCON file, see WriteMeshFile
	Coord         bool              // Write the COORD block
	EOS           types.EOS
	Gravity       r3.Vec // Zero selects -Z
	LabelLength   int    // Zero selects the length from the labels or the cell count
}

// DefaultWriteOptions returns line nodal distances and gravity along -Z
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		NodalDistance: types.LineDistance,
		Gravity:       r3.Vec{Z: -1},
	}
}

func (o WriteOptions) gravity() r3.Vec {
	if o.Gravity == (r3.Vec{}) {
		return r3.Vec{Z: -1}
	}
	return o.Gravity
}

func (o WriteOptions) isMaterialEnd(name string) bool {
	for _, end := range o.MaterialEnd {
		if name == end {
			return true
		}
	}
	return false
}

func (o WriteOptions) rename(name string) string {
	if to, ok := o.MaterialName[name]; ok {
		return to
	}
	return name
}
