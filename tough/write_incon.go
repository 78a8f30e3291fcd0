package tough

import (
	"fmt"
	"io"
	"math"

	"github.com/keurfonluu/toughio-sub000/mesh"
	"github.com/keurfonluu/toughio-sub000/types"
)

// WriteIncon writes the INCON block of m, one record pair per cell holding
// an initial condition, a porosity or a permeability. Cells follow the ELEME
// order of WriteMesh with the same options.
func WriteIncon(w io.Writer, m *mesh.Mesh, opts WriteOptions) error {
	t, err := newCellTable(m, opts)
	if err != nil {
		return err
	}
	lines, err := inconLines(m, t, opts)
	if err != nil {
		return err
	}
	return writeLines(w, lines)
}

func inconLines(m *mesh.Mesh, t *cellTable, opts WriteOptions) ([]string, error) {
	var (
		lt, _      = getLayout(t.length)
		ic, hasIC  = m.CellData[mesh.InitialConditionKey]
		por, hasPo = m.CellData[mesh.PorosityKey]
		per, hasPe = m.CellData[mesh.PermeabilityKey]
		phase, hPh = m.CellData[mesh.PhaseKey]
		tmvoc      = opts.EOS == types.EOSTMVOC
		lines      = []string{header("INCON")}
	)
	if limit := opts.EOS.MaxPrimaryVariables(); hasIC && limit >= 0 && ic.NComp > limit {
		return nil, fmt.Errorf("%w: initial conditions have %d primary variables, %s allows %d",
			mesh.ErrDataLength, ic.NComp, opts.EOS, limit)
	}
	if hasPe && per.NComp > 3 {
		return nil, fmt.Errorf("%w: permeability has %d components, at most 3 allowed", mesh.ErrDataLength, per.NComp)
	}
	set := func(a mesh.Array, ok bool, i int) bool { return ok && a.IsSet(i) }

	for _, i := range t.order {
		if !set(ic, hasIC, i) && !set(por, hasPo, i) && !set(per, hasPe, i) {
			continue
		}
		label := t.labels[i]
		porosity := math.NaN()
		if hasPo {
			porosity = por.Scalar(i)
		}

		var (
			record1 string
			err     error
		)
		if tmvoc {
			var ph interface{}
			if hPh && phase.IsSet(i) {
				ph = int(phase.Scalar(i))
			}
			record1, err = lt.incon1Phase.Encode(label, nil, nil, porosity, ph)
		} else {
			userx := []interface{}{label, nil, nil, porosity}
			if hasPe {
				for _, v := range per.At(i) {
					userx = append(userx, v)
				}
			}
			record1, err = lt.incon1.Encode(userx...)
		}
		if err != nil {
			return nil, fmt.Errorf("INCON %s: %w", label, err)
		}
		lines = append(lines, record1)

		var values []float64
		if hasIC {
			values = ic.At(i)
			if v := values[0]; !math.IsNaN(v) && v < 0 {
				logger.Printf("cell %s has a negative initial pressure %g", label, v)
			}
		}
		record2, err := valueLines(lt.incon2, values)
		if err != nil {
			return nil, fmt.Errorf("INCON %s: %w", label, err)
		}
		lines = append(lines, record2...)
	}
	return append(lines, ""), nil
}

// valueLines writes primary variables four per line, always at least one line.
// Trailing unset values are dropped so that no continuation line is blank.
func valueLines(f Format, values []float64) ([]string, error) {
	values = trimNaN(values)
	per := len(f)
	var lines []string
	for lo := 0; lo < len(values) || lo == 0; lo += per {
		hi := lo + per
		if hi > len(values) {
			hi = len(values)
		}
		row := make([]interface{}, 0, per)
		for _, v := range values[lo:hi] {
			row = append(row, v)
		}
		line, err := f.Encode(row...)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
