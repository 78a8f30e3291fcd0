package types

import (
	"fmt"
	"strings"
)

// Isot is the permeability direction flag written in CONNE records. The
// simulator reads it as the index of PER(1..3) in ROCKS, IsotX to IsotZ
// select the absolute permeability along that axis. Isotropic (0) is written
// for connections whose center line is not aligned with an axis, it selects no
// PER entry, so such a mesh is only consistent with materials whose three
// permeabilities are equal.
type Isot uint8

const (
	Isotropic Isot = iota
	IsotX
	IsotY
	IsotZ
)

func (i Isot) String() string {
	switch i {
	case Isotropic:
		return "Isotropic"
	case IsotX:
		return "X"
	case IsotY:
		return "Y"
	case IsotZ:
		return "Z"
	}
	return fmt.Sprintf("Isot(%d)", uint8(i))
}

// NodalDistance selects how the distance from a cell center to a shared
// interface is measured
type NodalDistance uint8

const (
	LineDistance NodalDistance = iota
	OrthogonalDistance
)

var NodalDistanceNameMap = map[string]NodalDistance{
	"line":       LineDistance,
	"orthogonal": OrthogonalDistance,
}

func (nd NodalDistance) String() string {
	switch nd {
	case LineDistance:
		return "line"
	case OrthogonalDistance:
		return "orthogonal"
	}
	return fmt.Sprintf("NodalDistance(%d)", uint8(nd))
}

func NewNodalDistance(label string) (nd NodalDistance, err error) {
	var ok bool
	if len(label) == 0 {
		return LineDistance, nil
	}
	if nd, ok = NodalDistanceNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown nodal distance policy %q, use one of line, orthogonal", label)
	}
	return
}

// EOS identifies equation-of-state modules whose INCON layout differs
// from the default one
type EOS uint8

const (
	EOSDefault EOS = iota
	EOSTMVOC
)

var EOSNameMap = map[string]EOS{
	"":      EOSDefault,
	"eos1":  EOSDefault,
	"eos2":  EOSDefault,
	"eos3":  EOSDefault,
	"eos4":  EOSDefault,
	"eco2n": EOSDefault,
	"tmvoc": EOSTMVOC,
}

func (e EOS) String() string {
	switch e {
	case EOSDefault:
		return "default"
	case EOSTMVOC:
		return "tmvoc"
	}
	return fmt.Sprintf("EOS(%d)", uint8(e))
}

// MaxPrimaryVariables is the number of primary variables allowed per cell
// in an INCON record, -1 means unlimited
func (e EOS) MaxPrimaryVariables() int {
	if e == EOSTMVOC {
		return -1
	}
	return 4
}

func NewEOS(label string) (e EOS, err error) {
	var ok bool
	if e, ok = EOSNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unsupported equation of state %q", label)
	}
	return
}
