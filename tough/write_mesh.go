package tough

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/keurfonluu/toughio-sub000/geometry"
	"github.com/keurfonluu/toughio-sub000/mesh"
)

// WriteMesh writes the ELEME, optional COORD and CONNE blocks of m
func WriteMesh(w io.Writer, m *mesh.Mesh, opts WriteOptions) error {
	g, err := geometry.Compute(m)
	if err != nil {
		return err
	}
	return WriteMeshGeometry(w, g, opts)
}

// WriteMeshGeometry writes the MESH blocks from an already computed
// geometry. Nothing is written when an error occurs.
func WriteMeshGeometry(w io.Writer, g *geometry.Geometry, opts WriteOptions) error {
	t, err := newCellTable(g.Mesh, opts)
	if err != nil {
		return err
	}
	lines, err := meshLines(g, t, opts)
	if err != nil {
		return err
	}
	return writeLines(w, lines)
}

// WriteMeshFile writes the MESH file and, with opts.Incon, the INCON file
// next to it
func WriteMeshFile(filename string, m *mesh.Mesh, opts WriteOptions) error {
	g, err := geometry.Compute(m)
	if err != nil {
		return err
	}
	t, err := newCellTable(m, opts)
	if err != nil {
		return err
	}
	meshOut, err := meshLines(g, t, opts)
	if err != nil {
		return err
	}
	var inconOut []string
	if opts.Incon {
		if inconOut, err = inconLines(m, t, opts); err != nil {
			return err
		}
	}
	if err = writeLinesFile(filename, meshOut); err != nil {
		return err
	}
	if opts.Incon {
		return writeLinesFile(filepath.Join(filepath.Dir(filename), "INCON"), inconOut)
	}
	return nil
}

func meshLines(g *geometry.Geometry, t *cellTable, opts WriteOptions) ([]string, error) {
	var (
		m     = g.Mesh
		lt, _ = getLayout(t.length)
		bc    = m.BoundaryConditions()
		lines = make([]string, 0, 2*g.NumCells()+len(g.Connections)+6)
	)
	dists, err := g.NodalDistances(opts.NodalDistance, bc)
	if err != nil {
		return nil, err
	}
	cosines, err := g.GravityCosines(opts.gravity())
	if err != nil {
		return nil, err
	}
	isots := g.PermeabilityDirections()

	// Volumes scaled for output only
	volumes := make([]float64, len(g.Volumes))
	copy(volumes, g.Volumes)
	for i, isBC := range bc {
		if isBC {
			volumes[i] *= VolumeFactor
		}
	}
	ahtx := optionalScalar(m, mesh.HeatExchangeAreaKey)
	pmx := optionalScalar(m, mesh.PermeabilityModifierKey)

	lines = append(lines, header("ELEME"))
	for _, i := range t.order {
		var material interface{}
		if t.materials[i] != "" {
			material = t.materials[i]
		}
		c := g.Centers[i]
		line, err := lt.eleme.Encode(t.labels[i], nil, nil, material,
			volumes[i], ahtx(i), pmx(i), c.X, c.Y, c.Z)
		if err != nil {
			return nil, fmt.Errorf("ELEME %s: %w", t.labels[i], err)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")

	if opts.Coord {
		lines = append(lines, header("COORD"))
		for _, i := range t.order {
			c := g.Centers[i]
			line, err := lt.coord.Encode(c.X, c.Y, c.Z)
			if err != nil {
				return nil, fmt.Errorf("COORD %s: %w", t.labels[i], err)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	lines = append(lines, header("CONNE"))
	for k, c := range g.Connections {
		i, j := c.Cells[0], c.Cells[1]
		line, err := lt.conne.Encode(t.labels[i]+t.labels[j], nil, int(isots[k]),
			dists[k][0], dists[k][1], g.Area(c), cosines[k], nil)
		if err != nil {
			return nil, fmt.Errorf("CONNE %s%s: %w", t.labels[i], t.labels[j], err)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")

	for _, i := range geometry.IsolatedCells(g.Adjacency()) {
		logger.Printf("cell %s has no connection and will be inactive in the simulation", t.labels[i])
	}
	if !opts.Incon {
		for _, key := range []string{mesh.PorosityKey, mesh.PermeabilityKey} {
			if _, ok := m.CellData[key]; ok {
				logger.Printf("cell data %q is only written to INCON, which was not requested", key)
			}
		}
	}
	return lines, nil
}

// optionalScalar returns an accessor on a scalar cell data array, NaN when
// the array is missing
func optionalScalar(m *mesh.Mesh, name string) func(i int) float64 {
	a, ok := m.CellData[name]
	if !ok {
		return func(int) float64 { return math.NaN() }
	}
	return a.Scalar
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeLinesFile(filename string, lines []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = writeLines(file, lines); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
