package tough

import (
	"fmt"

	"github.com/keurfonluu/toughio-sub000/labels"
	"github.com/keurfonluu/toughio-sub000/mesh"
)

// cellTable resolves what the writers need per cell before any output:
// labels, renamed materials and the output order
type cellTable struct {
	length    int
	labels    []string // indexed by cell
	materials []string // indexed by cell, empty for none
	order     []int    // cells in output order
}

func newCellTable(m *mesh.Mesh, opts WriteOptions) (*cellTable, error) {
	var (
		n   = m.NumCells()
		t   = &cellTable{}
		err error
	)
	if len(m.Labels) > 0 {
		if len(m.Labels) != n {
			return nil, fmt.Errorf("%w: %d labels for %d cells", mesh.ErrDataLength, len(m.Labels), n)
		}
		t.length = len(m.Labels[0])
		if opts.LabelLength != 0 && opts.LabelLength != t.length {
			return nil, fmt.Errorf("%w: mesh labels have %d characters, %d requested",
				ErrLabelLength, t.length, opts.LabelLength)
		}
		if _, err = getLayout(t.length); err != nil {
			return nil, err
		}
		t.labels = m.Labels
	} else {
		if opts.LabelLength != 0 {
			if _, err = getLayout(opts.LabelLength); err != nil {
				return nil, err
			}
		}
		if t.labels, err = labels.Labels(n, opts.LabelLength); err != nil {
			return nil, err
		}
		t.length = labels.AutoLength(n)
		if opts.LabelLength != 0 {
			t.length = opts.LabelLength
		}
	}

	names, err := m.MaterialNames()
	if err != nil {
		return nil, err
	}
	t.materials = make([]string, n)
	for i, name := range names {
		if name != "" {
			t.materials[i] = opts.rename(name)
		}
	}

	// Stable partition, materials listed in MaterialEnd last. Either the
	// original or the renamed material name may be listed.
	t.order = make([]int, 0, n)
	var last []int
	for i, name := range names {
		if name != "" && (opts.isMaterialEnd(name) || opts.isMaterialEnd(t.materials[i])) {
			last = append(last, i)
			continue
		}
		t.order = append(t.order, i)
	}
	t.order = append(t.order, last...)
	return t, nil
}
