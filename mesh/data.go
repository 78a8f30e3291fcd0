package mesh

import (
	"fmt"
	"math"
)

// Array is a dense per-point or per-cell data array. Values are stored flat,
// NComp values per entry. NaN marks an unset value.
type Array struct {
	NComp  int
	Values []float64
}

// NewArray allocates an array of n entries filled with val
func NewArray(n, ncomp int, val float64) Array {
	a := Array{NComp: ncomp, Values: make([]float64, n*ncomp)}
	for i := range a.Values {
		a.Values[i] = val
	}
	return a
}

// NewUnsetArray allocates an array of n entries with every value unset
func NewUnsetArray(n, ncomp int) Array {
	return NewArray(n, ncomp, math.NaN())
}

func NewScalarArray(values []float64) Array {
	return Array{NComp: 1, Values: values}
}

// NewVectorArray packs rows of equal width into an Array
func NewVectorArray(rows [][]float64) (Array, error) {
	if len(rows) == 0 {
		return Array{NComp: 1}, nil
	}
	a := Array{NComp: len(rows[0]), Values: make([]float64, 0, len(rows)*len(rows[0]))}
	for i, row := range rows {
		if len(row) != a.NComp {
			return Array{}, fmt.Errorf("%w: row %d has %d components, expected %d",
				ErrDataLength, i, len(row), a.NComp)
		}
		a.Values = append(a.Values, row...)
	}
	return a, nil
}

// Len returns the number of entries
func (a Array) Len() int {
	if a.NComp == 0 {
		return 0
	}
	return len(a.Values) / a.NComp
}

// At returns a view on the components of entry i
func (a Array) At(i int) []float64 {
	return a.Values[i*a.NComp : (i+1)*a.NComp]
}

func (a Array) Scalar(i int) float64 {
	return a.Values[i*a.NComp]
}

func (a Array) Set(i int, values ...float64) {
	copy(a.Values[i*a.NComp:(i+1)*a.NComp], values)
}

// IsSet reports whether any component of entry i holds a value
func (a Array) IsSet(i int) bool {
	for _, v := range a.At(i) {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Slice returns the entries [lo, hi) sharing storage with a
func (a Array) Slice(lo, hi int) Array {
	return Array{NComp: a.NComp, Values: a.Values[lo*a.NComp : hi*a.NComp]}
}

func (a Array) Copy() Array {
	values := make([]float64, len(a.Values))
	copy(values, a.Values)
	return Array{NComp: a.NComp, Values: values}
}
