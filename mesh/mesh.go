package mesh

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

var (
	ErrDataLength      = errors.New("data array length does not match mesh")
	ErrUnknownCellType = errors.New("unknown cell type")
)

// Reserved cell data names
const (
	MaterialKey             = "material"
	BoundaryConditionKey    = "boundary_condition"
	PorosityKey             = "porosity"
	PermeabilityKey         = "permeability"
	InitialConditionKey     = "initial_condition"
	HeatExchangeAreaKey     = "heat_exchange_area"
	PermeabilityModifierKey = "permeability_modifier"
	PhaseKey                = "phase"
)

// CellBlock holds cells of a single type, one row of point indices per cell
type CellBlock struct {
	Type CellType
	Data [][]int
}

// Mesh represents an unstructured mesh of mixed cell types. The global index
// of a cell is its position in the concatenation of the cell blocks.
type Mesh struct {
	// Geometry
	Points [][]float64 // Point coordinates [npoints][2 or 3]

	// Cell data
	Cells     []CellBlock
	PointData map[string]Array
	CellData  map[string]Array
	Materials *MaterialRegistry
	Labels    []string // Optional user supplied labels, one per cell

	// Analytic geometry replacing the computed one, see meshmaker.CylindricGrid
	volumes   []float64
	faceAreas [][]float64
}

// NewMesh creates a mesh and checks its topology
func NewMesh(points [][]float64, cells []CellBlock) (*Mesh, error) {
	m := &Mesh{
		Points:    points,
		Cells:     cells,
		PointData: make(map[string]Array),
		CellData:  make(map[string]Array),
		Materials: NewMaterialRegistry(),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mesh) NumPoints() int { return len(m.Points) }

func (m *Mesh) NumCells() (n int) {
	for _, b := range m.Cells {
		n += len(b.Data)
	}
	return
}

// Dim returns the number of coordinates per point
func (m *Mesh) Dim() int {
	if len(m.Points) == 0 {
		return 0
	}
	return len(m.Points[0])
}

// Validate checks point dimensions, cell arity and point indices
func (m *Mesh) Validate() error {
	dim := m.Dim()
	if dim != 0 && dim != 2 && dim != 3 {
		return fmt.Errorf("points must have 2 or 3 coordinates, got %d", dim)
	}
	for i, p := range m.Points {
		if len(p) != dim {
			return fmt.Errorf("point %d has %d coordinates, expected %d", i, len(p), dim)
		}
	}
	np := len(m.Points)
	for ib, b := range m.Cells {
		if !b.Type.Valid() {
			return fmt.Errorf("cell block %d: %w", ib, ErrUnknownCellType)
		}
		nn := b.Type.NumNodes()
		for ic, row := range b.Data {
			if len(row) != nn {
				return fmt.Errorf("cell block %d (%s), cell %d: expected %d points, got %d",
					ib, b.Type, ic, nn, len(row))
			}
			for _, ip := range row {
				if ip < 0 || ip >= np {
					return fmt.Errorf("cell block %d (%s), cell %d: point index %d out of range [0,%d)",
						ib, b.Type, ic, ip, np)
				}
			}
		}
	}
	return nil
}

// Cell returns the type and point indices of the global cell i
func (m *Mesh) Cell(i int) (CellType, []int) {
	offset := 0
	for _, b := range m.Cells {
		if i < offset+len(b.Data) {
			return b.Type, b.Data[i-offset]
		}
		offset += len(b.Data)
	}
	panic(fmt.Errorf("cell index %d out of range [0,%d)", i, offset))
}

// BlockOffsets returns the global index of the first cell of each block
func (m *Mesh) BlockOffsets() []int {
	offsets := make([]int, len(m.Cells))
	n := 0
	for ib, b := range m.Cells {
		offsets[ib] = n
		n += len(b.Data)
	}
	return offsets
}

// Split returns one view per cell block on a per-cell array
func (m *Mesh) Split(a Array) ([]Array, error) {
	if a.Len() != m.NumCells() {
		return nil, fmt.Errorf("%w: array has %d entries, mesh has %d cells",
			ErrDataLength, a.Len(), m.NumCells())
	}
	parts := make([]Array, len(m.Cells))
	offset := 0
	for ib, b := range m.Cells {
		parts[ib] = a.Slice(offset, offset+len(b.Data))
		offset += len(b.Data)
	}
	return parts, nil
}

// SetPoints replaces the point coordinates. The point count cannot change
// since cells and point data refer to it.
func (m *Mesh) SetPoints(points [][]float64) error {
	if len(points) != len(m.Points) {
		return fmt.Errorf("%w: %d points given, mesh has %d", ErrDataLength, len(points), len(m.Points))
	}
	old := m.Points
	m.Points = points
	if err := m.Validate(); err != nil {
		m.Points = old
		return err
	}
	return nil
}

// AddCellBlock appends cells. It is rejected when per-cell data exists, since
// that data would no longer cover every cell.
func (m *Mesh) AddCellBlock(b CellBlock) error {
	if len(m.CellData) > 0 || len(m.Labels) > 0 || m.volumes != nil || m.faceAreas != nil {
		return fmt.Errorf("%w: cannot add cells to a mesh carrying cell data", ErrDataLength)
	}
	m.Cells = append(m.Cells, b)
	if err := m.Validate(); err != nil {
		m.Cells = m.Cells[:len(m.Cells)-1]
		return err
	}
	return nil
}

func (m *Mesh) AddCellData(name string, a Array) error {
	if a.Len() != m.NumCells() {
		return fmt.Errorf("%w: cell data %q has %d entries, mesh has %d cells",
			ErrDataLength, name, a.Len(), m.NumCells())
	}
	if m.CellData == nil {
		m.CellData = make(map[string]Array)
	}
	m.CellData[name] = a
	return nil
}

func (m *Mesh) AddPointData(name string, a Array) error {
	if a.Len() != m.NumPoints() {
		return fmt.Errorf("%w: point data %q has %d entries, mesh has %d points",
			ErrDataLength, name, a.Len(), m.NumPoints())
	}
	if m.PointData == nil {
		m.PointData = make(map[string]Array)
	}
	m.PointData[name] = a
	return nil
}

// cellArray returns the named cell data, allocating it with val when missing
func (m *Mesh) cellArray(name string, ncomp int, val float64) Array {
	a, ok := m.CellData[name]
	if !ok {
		a = NewArray(m.NumCells(), ncomp, val)
		if m.CellData == nil {
			m.CellData = make(map[string]Array)
		}
		m.CellData[name] = a
	}
	return a
}

// SetMaterial assigns material name to the given cells
func (m *Mesh) SetMaterial(name string, cells []int) error {
	if m.Materials == nil {
		m.Materials = NewMaterialRegistry()
	}
	code, err := m.Materials.Register(name)
	if err != nil {
		return err
	}
	mat := m.cellArray(MaterialKey, 1, 0)
	n := m.NumCells()
	for _, i := range cells {
		if i < 0 || i >= n {
			return fmt.Errorf("cell index %d out of range [0,%d)", i, n)
		}
		mat.Set(i, float64(code))
	}
	return nil
}

// MaterialNames returns the material name of each cell, empty for cells
// without a material
func (m *Mesh) MaterialNames() ([]string, error) {
	names := make([]string, m.NumCells())
	mat, ok := m.CellData[MaterialKey]
	if !ok {
		return names, nil
	}
	for i := range names {
		code := int(mat.Scalar(i))
		if code == 0 {
			continue
		}
		name, ok := m.Materials.Name(code)
		if !ok {
			return nil, fmt.Errorf("cell %d: material code %d has no registered name", i, code)
		}
		names[i] = name
	}
	return names, nil
}

// SetBoundaryCondition flags cells as fixed-state boundary cells
func (m *Mesh) SetBoundaryCondition(cells []int) error {
	bc := m.cellArray(BoundaryConditionKey, 1, 0)
	n := m.NumCells()
	for _, i := range cells {
		if i < 0 || i >= n {
			return fmt.Errorf("cell index %d out of range [0,%d)", i, n)
		}
		bc.Set(i, 1)
	}
	return nil
}

// BoundaryConditions returns one flag per cell
func (m *Mesh) BoundaryConditions() []bool {
	flags := make([]bool, m.NumCells())
	if bc, ok := m.CellData[BoundaryConditionKey]; ok {
		for i := range flags {
			flags[i] = bc.Scalar(i) > 0
		}
	}
	return flags
}

// SetLabels installs user supplied cell labels, which must be unique and of
// equal length
func (m *Mesh) SetLabels(labels []string) error {
	if len(labels) != m.NumCells() {
		return fmt.Errorf("%w: %d labels given, mesh has %d cells", ErrDataLength, len(labels), m.NumCells())
	}
	seen := make(map[string]int, len(labels))
	for i, label := range labels {
		if label == "" || label[0] == ' ' {
			return fmt.Errorf("label %q of cell %d must start with a non-blank character", label, i)
		}
		if len(label) != len(labels[0]) {
			return fmt.Errorf("label %q of cell %d differs in length from %q", label, i, labels[0])
		}
		if j, ok := seen[label]; ok {
			return fmt.Errorf("label %q shared by cells %d and %d", label, j, i)
		}
		seen[label] = i
	}
	m.Labels = labels
	return nil
}

// SetVolumes overrides the computed cell volumes
func (m *Mesh) SetVolumes(volumes []float64) error {
	if volumes != nil && len(volumes) != m.NumCells() {
		return fmt.Errorf("%w: %d volumes given, mesh has %d cells", ErrDataLength, len(volumes), m.NumCells())
	}
	m.volumes = volumes
	return nil
}

func (m *Mesh) Volumes() []float64 { return m.volumes }

// SetFaceAreas overrides the computed face areas, one row per cell in local
// face order
func (m *Mesh) SetFaceAreas(areas [][]float64) error {
	if areas == nil {
		m.faceAreas = nil
		return nil
	}
	if len(areas) != m.NumCells() {
		return fmt.Errorf("%w: %d face area rows given, mesh has %d cells", ErrDataLength, len(areas), m.NumCells())
	}
	for i, row := range areas {
		ct, _ := m.Cell(i)
		if len(row) != ct.NumFaces() {
			return fmt.Errorf("%w: cell %d (%s) has %d faces, %d areas given",
				ErrDataLength, i, ct, ct.NumFaces(), len(row))
		}
	}
	m.faceAreas = areas
	return nil
}

func (m *Mesh) FaceAreas() [][]float64 { return m.faceAreas }

// PrintStatistics prints mesh statistics to w
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Points: %d\n", m.NumPoints())
	fmt.Fprintf(w, "  Cells: %d\n", m.NumCells())

	typeCounts := make(map[CellType]int)
	for _, b := range m.Cells {
		typeCounts[b.Type] += len(b.Data)
	}
	types := make([]int, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, int(t))
	}
	sort.Ints(types)
	fmt.Fprintf(w, "  Cell types:\n")
	for _, t := range types {
		fmt.Fprintf(w, "    %s: %d\n", CellType(t), typeCounts[CellType(t)])
	}
	if m.Materials != nil && m.Materials.Len() > 0 {
		fmt.Fprintf(w, "  Materials: %v\n", m.Materials.Names())
	}
}
