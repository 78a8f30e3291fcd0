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

// gambitCellType maps Gambit element codes to cell types
var gambitCellType = map[int]mesh.CellType{
	2: mesh.Quad,
	3: mesh.Triangle,
	4: mesh.Hexahedron, // brick
	5: mesh.Wedge,
	6: mesh.Tetra,
	7: mesh.Pyramid,
}

// gambitOrder permutes Gambit vertex lists into the catalogue ordering. The
// Gambit brick and pyramid base walk their quads in a zigzag.
var gambitOrder = map[mesh.CellType][]int{
	mesh.Hexahedron: {0, 1, 3, 2, 4, 5, 7, 6},
	mesh.Pyramid:    {0, 1, 3, 2, 4},
}

// ReadGambitNeutral reads a Gambit neutral file (.neu)
func ReadGambitNeutral(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := ParseGambitNeutral(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ParseGambitNeutral reads a Gambit neutral mesh. Element groups become
// materials named after the group entity name.
func ParseGambitNeutral(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	b := newMeshBuilder()

	var (
		numnp, nelem, ngrps, ndfcd int
		types                      = make(map[int]mesh.CellType) // element id -> type
		nodes                      = make(map[int][]int)         // element id -> node ids
		order                      []int                         // element ids in file order
		groupOf                    = make(map[int]int)           // element id -> group
	)

	// Control info section
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM") {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF after control header")
			}
			values := strings.Fields(scanner.Text())
			if len(values) < 5 {
				return nil, fmt.Errorf("invalid control line: %s", scanner.Text())
			}
			numnp, _ = strconv.Atoi(values[0])
			nelem, _ = strconv.Atoi(values[1])
			ngrps, _ = strconv.Atoi(values[2])
			ndfcd, _ = strconv.Atoi(values[4])
			break
		}
	}
	if ndfcd != 2 && ndfcd != 3 {
		return nil, fmt.Errorf("could not read control info (NDFCD = %d)", ndfcd)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.Contains(line, "NODAL COORDINATES"):
			for i := 0; i < numnp; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 1+ndfcd {
					return nil, fmt.Errorf("invalid node line: %s", scanner.Text())
				}
				nodeID, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid node id %q", fields[0])
				}
				coords := make([]float64, ndfcd)
				for j := range coords {
					if coords[j], err = strconv.ParseFloat(fields[1+j], 64); err != nil {
						return nil, fmt.Errorf("node %d: %w", nodeID, err)
					}
				}
				if err = b.addNode(nodeID, coords); err != nil {
					return nil, err
				}
			}

		case strings.Contains(line, "ELEMENTS/CELLS"):
			for i := 0; i < nelem; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 3 {
					return nil, fmt.Errorf("invalid element line: %s", scanner.Text())
				}
				elemID, _ := strconv.Atoi(fields[0])
				gambitType, _ := strconv.Atoi(fields[1])
				numNodes, _ := strconv.Atoi(fields[2])
				nodeStrs := fields[3:]
				// Records with more than 7 nodes wrap onto the next line
				for len(nodeStrs) < numNodes {
					if !scanner.Scan() {
						return nil, fmt.Errorf("unexpected EOF reading element %d", elemID)
					}
					nodeStrs = append(nodeStrs, strings.Fields(scanner.Text())...)
				}
				ct, ok := gambitCellType[gambitType]
				if !ok {
					continue
				}
				if numNodes != ct.NumNodes() {
					return nil, fmt.Errorf("element %d: %s with %d nodes", elemID, ct, numNodes)
				}
				nodeIDs := make([]int, numNodes)
				for j := range nodeIDs {
					var err error
					if nodeIDs[j], err = strconv.Atoi(nodeStrs[j]); err != nil {
						return nil, fmt.Errorf("element %d: invalid node %q", elemID, nodeStrs[j])
					}
				}
				if perm, ok := gambitOrder[ct]; ok {
					permuted := make([]int, numNodes)
					for j, k := range perm {
						permuted[j] = nodeIDs[k]
					}
					nodeIDs = permuted
				}
				if _, ok := nodes[elemID]; ok {
					return nil, fmt.Errorf("duplicate element id %d", elemID)
				}
				types[elemID] = ct
				nodes[elemID] = nodeIDs
				order = append(order, elemID)
			}

		case strings.Contains(line, "ELEMENT GROUP"):
			if err := readGambitGroup(scanner, b, groupOf); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if len(b.names) > ngrps {
		return nil, fmt.Errorf("found %d element groups, header declares %d", len(b.names), ngrps)
	}

	for _, id := range order {
		if err := b.addCell(types[id], nodes[id], groupOf[id]); err != nil {
			return nil, fmt.Errorf("element %d: %w", id, err)
		}
	}
	return b.build()
}

// readGambitGroup reads one ELEMENT GROUP section
//
//	GROUP:  1 ELEMENTS:  2 MATERIAL:  2 NFLAGS:  1
//	                  fluid
//	     0
//	     1     2
func readGambitGroup(scanner *bufio.Scanner, b *meshBuilder, groupOf map[int]int) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in element group")
	}
	var (
		groupID, numElems, nflags int
		parts                     = strings.Fields(scanner.Text())
	)
	for i := 0; i+1 < len(parts); i++ {
		switch parts[i] {
		case "GROUP:":
			groupID, _ = strconv.Atoi(parts[i+1])
		case "ELEMENTS:":
			numElems, _ = strconv.Atoi(parts[i+1])
		case "NFLAGS:":
			nflags, _ = strconv.Atoi(parts[i+1])
		}
	}
	if groupID <= 0 {
		return fmt.Errorf("invalid group line: %s", scanner.Text())
	}
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading group %d name", groupID)
	}
	b.names[groupID] = strings.TrimSpace(scanner.Text())

	// Flags
	for read := 0; read < nflags; {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading group %d flags", groupID)
		}
		read += len(strings.Fields(scanner.Text()))
	}

	for read := 0; read < numElems; {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading group %d elements", groupID)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 1 && fields[0] == "ENDOFSECTION" {
			return fmt.Errorf("group %d lists %d of %d elements", groupID, read, numElems)
		}
		for _, f := range fields {
			elemID, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("group %d: invalid element id %q", groupID, f)
			}
			groupOf[elemID] = groupID
			read++
		}
	}
	return nil
}
