package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/keurfonluu/toughio-sub000/mesh"
)

// gmshCellType22 maps the linear Gmsh v2.2 element types to cell types.
// Gmsh and the cell catalogue share the same vertex ordering for these.
var gmshCellType22 = map[int]mesh.CellType{
	2: mesh.Triangle,
	3: mesh.Quad,
	4: mesh.Tetra,
	5: mesh.Hexahedron,
	6: mesh.Wedge,
	7: mesh.Pyramid,
}

// ReadGmsh22 reads a Gmsh MSH file format version 2.2
func ReadGmsh22(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := ParseGmsh22(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ParseGmsh22 reads an ASCII Gmsh 2.2 mesh. Physical tags become material
// codes, named after the $PhysicalNames section when present.
func ParseGmsh22(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	b := newMeshBuilder()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var err error
		switch line {
		case "$MeshFormat":
			err = readMeshFormat22(scanner)
		case "$PhysicalNames":
			err = readPhysicalNames(scanner, b)
		case "$Nodes":
			err = readNodes22(scanner, b)
		case "$Elements":
			err = readElements22(scanner, b)
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				// Skip data, periodic and comment sections
				endMarker := "$End" + line[1:]
				for scanner.Scan() {
					if strings.TrimSpace(scanner.Text()) == endMarker {
						break
					}
				}
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return b.build()
}

// skipTo advances past the end marker of a section
func skipTo(scanner *bufio.Scanner, marker string) {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == marker {
			return
		}
	}
}

func readMeshFormat22(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	skipTo(scanner, "$EndMeshFormat")
	return nil
}

func readPhysicalNames(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in PhysicalNames")
	}
	numNames, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid PhysicalNames count: %w", err)
	}

	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading physical names")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid physical name line: %s", scanner.Text())
		}
		tag, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid physical tag %q", parts[1])
		}
		// Names may contain spaces
		b.names[tag] = strings.Trim(strings.Join(parts[2:], " "), "\"")
	}
	skipTo(scanner, "$EndPhysicalNames")
	return nil
}

func readNodes22(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %w", err)
	}
	b.points = make([][]float64, 0, numNodes)

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node id %q", parts[0])
		}
		coords := make([]float64, 3)
		for j := range coords {
			if coords[j], err = strconv.ParseFloat(parts[1+j], 64); err != nil {
				return fmt.Errorf("node %d: %w", nodeID, err)
			}
		}
		if err = b.addNode(nodeID, coords); err != nil {
			return err
		}
	}
	skipTo(scanner, "$EndNodes")
	return nil
}

func readElements22(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}
	numElements, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid element count: %w", err)
	}

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line: %s", scanner.Text())
		}
		ints := make([]int, len(parts))
		for j, p := range parts {
			if ints[j], err = strconv.Atoi(p); err != nil {
				return fmt.Errorf("invalid element line: %s", scanner.Text())
			}
		}
		elemID, elemType, numTags := ints[0], ints[1], ints[2]

		// Points, lines and high order elements are skipped
		ct, ok := gmshCellType22[elemType]
		if !ok {
			continue
		}
		nodeStart := 3 + numTags
		if len(ints) != nodeStart+ct.NumNodes() {
			return fmt.Errorf("element %d: expected %d nodes, got %d",
				elemID, ct.NumNodes(), len(ints)-nodeStart)
		}
		// First tag is the physical entity
		var physicalTag int
		if numTags > 0 {
			physicalTag = ints[3]
		}
		if err = b.addCell(ct, ints[nodeStart:], physicalTag); err != nil {
			return fmt.Errorf("element %d: %w", elemID, err)
		}
	}
	skipTo(scanner, "$EndElements")
	return nil
}
