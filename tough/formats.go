package tough

import (
	"fmt"

	"github.com/keurfonluu/toughio-sub000/labels"
)

// ruler follows the block keyword in headers, up to column 80
const ruler = "----1----*----2----*----3----*----4----*----5----*----6----*----7----*----8"

// layout holds the record formats for one label length
type layout struct {
	eleme, coord, conne, incon1, incon1Phase, incon2 Format
}

var layouts = func() map[int]layout {
	lts := make(map[int]layout)
	for n := labels.MinLength; n <= labels.MaxLength; n++ {
		lts[n] = newLayout(n)
	}
	return lts
}()

func newLayout(n int) layout {
	return layout{
		eleme: Format{
			{Name: "label", Width: n},
			{Name: "nseq", Width: 10 - n, Kind: IntField},
			{Name: "nadd", Width: 5, Kind: IntField},
			{Name: "material", Width: 5},
			{Name: "volume", Width: 10, Kind: FloatField, Prec: 4},
			{Name: "heat_exchange_area", Width: 10, Kind: FloatField, Prec: 4},
			{Name: "permeability_modifier", Width: 10, Kind: FloatField, Prec: 4},
			{Name: "x", Width: 10, Kind: FloatField, Prec: 4},
			{Name: "y", Width: 10, Kind: FloatField, Prec: 4},
			{Name: "z", Width: 10, Kind: FloatField, Prec: 4},
		},
		coord: Format{
			{Name: "x", Width: 20, Kind: FloatField, Prec: 13},
			{Name: "y", Width: 20, Kind: FloatField, Prec: 13},
			{Name: "z", Width: 20, Kind: FloatField, Prec: 13},
		},
		conne: Format{
			{Name: "labels", Width: 2 * n},
			{Name: "nseq", Width: 25 - 2*n, Kind: IntField},
			{Name: "isot", Width: 5, Kind: IntField},
			{Name: "d1", Width: 10, Kind: FloatField, Prec: 4},
			{Name: "d2", Width: 10, Kind: FloatField, Prec: 4},
			{Name: "area", Width: 10, Kind: FloatField, Prec: 4},
			{Name: "betax", Width: 10, Kind: FloatField, Prec: 3},
			{Name: "sigx", Width: 10, Kind: FloatField, Prec: 3},
		},
		incon1: Format{
			{Name: "label", Width: n},
			{Name: "nseq", Width: 10 - n, Kind: IntField},
			{Name: "nadd", Width: 5, Kind: IntField},
			{Name: "porosity", Width: 15, Kind: FloatField, Prec: 9},
			{Name: "userx1", Width: 10, Kind: FloatField, Prec: 3},
			{Name: "userx2", Width: 10, Kind: FloatField, Prec: 3},
			{Name: "userx3", Width: 10, Kind: FloatField, Prec: 3},
		},
		incon1Phase: Format{
			{Name: "label", Width: n},
			{Name: "nseq", Width: 10 - n, Kind: IntField},
			{Name: "nadd", Width: 5, Kind: IntField},
			{Name: "porosity", Width: 15, Kind: FloatField, Prec: 9},
			{Name: "phase", Width: 5, Kind: IntField},
		},
		incon2: Format{
			{Name: "x1", Width: 20, Kind: FloatField, Prec: 13},
			{Name: "x2", Width: 20, Kind: FloatField, Prec: 13},
			{Name: "x3", Width: 20, Kind: FloatField, Prec: 13},
			{Name: "x4", Width: 20, Kind: FloatField, Prec: 13},
		},
	}
}

func getLayout(n int) (layout, error) {
	lt, ok := layouts[n]
	if !ok {
		return layout{}, fmt.Errorf("%w: %d, must be in [%d,%d]", ErrLabelLength, n, labels.MinLength, labels.MaxLength)
	}
	return lt, nil
}

func header(keyword string) string {
	return keyword + ruler
}
