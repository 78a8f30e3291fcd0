package readers

import (
	"fmt"
	"sort"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// meshBuilder accumulates nodes and cells keyed by file ids and assembles a
// mesh.Mesh. Only the cells of the highest dimension present are kept, lower
// dimensional ones being boundary or embedded entities.
type meshBuilder struct {
	points  [][]float64
	nodeIdx map[int]int // file node id -> point index

	order  []mesh.CellType
	blocks map[mesh.CellType]*cellSet

	names map[int]string // material code -> name
}

type cellSet struct {
	rows [][]int
	tags []int
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{
		nodeIdx: make(map[int]int),
		blocks:  make(map[mesh.CellType]*cellSet),
		names:   make(map[int]string),
	}
}

func (b *meshBuilder) addNode(id int, coords []float64) error {
	if _, ok := b.nodeIdx[id]; ok {
		return fmt.Errorf("duplicate node id %d", id)
	}
	b.nodeIdx[id] = len(b.points)
	b.points = append(b.points, coords)
	return nil
}

// addCell records a cell from file node ids. tag is the material code, 0 for
// none.
func (b *meshBuilder) addCell(ct mesh.CellType, nodeIDs []int, tag int) error {
	row := make([]int, len(nodeIDs))
	for i, id := range nodeIDs {
		idx, ok := b.nodeIdx[id]
		if !ok {
			return fmt.Errorf("%s cell references unknown node %d", ct, id)
		}
		row[i] = idx
	}
	set, ok := b.blocks[ct]
	if !ok {
		set = &cellSet{}
		b.blocks[ct] = set
		b.order = append(b.order, ct)
	}
	set.rows = append(set.rows, row)
	set.tags = append(set.tags, tag)
	return nil
}

func (b *meshBuilder) build() (*mesh.Mesh, error) {
	maxDim := 0
	for _, ct := range b.order {
		if ct.Dimension() > maxDim {
			maxDim = ct.Dimension()
		}
	}
	var (
		cells []mesh.CellBlock
		tags  []float64
	)
	for _, ct := range b.order {
		if ct.Dimension() != maxDim {
			continue
		}
		set := b.blocks[ct]
		cells = append(cells, mesh.CellBlock{Type: ct, Data: set.rows})
		for _, tag := range set.tags {
			tags = append(tags, float64(tag))
		}
	}
	m, err := mesh.NewMesh(b.points, cells)
	if err != nil {
		return nil, err
	}

	used := make(map[int]bool)
	for _, tag := range tags {
		if tag > 0 {
			used[int(tag)] = true
		}
	}
	if len(used) == 0 {
		return m, nil
	}
	codes := make([]int, 0, len(used))
	for code := range used {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		name, ok := b.names[code]
		if !ok {
			name = fmt.Sprintf("%d", code)
		}
		if err = m.Materials.RegisterCode(name, code); err != nil {
			return nil, err
		}
	}
	if err = m.AddCellData(mesh.MaterialKey, mesh.NewScalarArray(tags)); err != nil {
		return nil, err
	}
	return m, nil
}
