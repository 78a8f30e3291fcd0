package tough

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/keurfonluu/toughio-sub000/labels"
	"github.com/keurfonluu/toughio-sub000/types"
)

// Element is one ELEME record
type Element struct {
	Label                string
	Material             string
	Volume               float64
	HeatExchangeArea     float64 // NaN when blank
	PermeabilityModifier float64 // NaN when blank
	Center               [3]float64
}

// Connection is one CONNE record
type Connection struct {
	Labels           [2]string
	Isot             types.Isot
	NodalDistances   [2]float64
	InterfaceArea    float64
	GravityCosine    float64
	RadiantEmittance float64 // NaN when blank
}

// MeshRecords holds the blocks of a MESH file keyed by label
type MeshRecords struct {
	LabelLength int
	Order       []string // ELEME labels in file order
	Elements    map[string]Element
	Coordinates map[string][3]float64 // COORD records matched to ELEME order
	Connections []Connection
}

// InitialCondition is one INCON record pair
type InitialCondition struct {
	Label    string
	Porosity float64   // NaN when blank
	Userx    []float64 // permeability, trailing blanks dropped
	Phase    int       // TMVOC only
	Values   []float64 // primary variables, trailing blanks dropped
}

// InconRecords holds the INCON block keyed by label
type InconRecords struct {
	LabelLength int
	Order       []string
	Conditions  map[string]InitialCondition
}

func isHeader(line, keyword string) bool {
	return strings.HasPrefix(line, keyword) && (len(line) == len(keyword) || line[len(keyword)] == '-')
}

// isTerminator reports the end of a block
func isTerminator(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, "+++") || strings.HasPrefix(t, "<<<")
}

// detectLabelLength grows the label from 5 characters while the column
// after it is not blank
func detectLabelLength(line string) int {
	n := labels.MinLength
	for n < labels.MaxLength && len(line) > n && line[n] != ' ' {
		n++
	}
	return n
}

// ReadMeshFile reads the MESH file filename
func ReadMeshFile(filename string) (*MeshRecords, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	recs, err := ReadMesh(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return recs, nil
}

// ReadMesh parses the ELEME, COORD and CONNE blocks of a MESH file. The
// label length is detected from the first ELEME record, or from the first
// CONNE record when there is no ELEME block.
func ReadMesh(r io.Reader) (*MeshRecords, error) {
	var (
		scanner = bufio.NewScanner(r)
		recs    = &MeshRecords{
			Elements:    make(map[string]Element),
			Coordinates: make(map[string][3]float64),
		}
		block  string
		lt     layout
		ncoord int
		lineNo int
	)
	setLength := func(n int) error {
		if recs.LabelLength != 0 {
			return nil
		}
		var err error
		if lt, err = getLayout(n); err != nil {
			return err
		}
		recs.LabelLength = n
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNo++
		if block == "" {
			for _, kw := range []string{"ELEME", "COORD", "CONNE"} {
				if isHeader(line, kw) {
					block = kw
				}
			}
			continue
		}
		if isTerminator(line) {
			block = ""
			continue
		}

		var err error
		switch block {
		case "ELEME":
			if err = setLength(detectLabelLength(line)); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			err = readElement(lt, line, recs)
		case "COORD":
			if ncoord >= len(recs.Order) {
				return nil, fmt.Errorf("line %d: more COORD than ELEME records", lineNo)
			}
			var xyz [3]float64
			if xyz, err = parseTriple(lt.coord.Split(line)); err == nil {
				recs.Coordinates[recs.Order[ncoord]] = xyz
				ncoord++
			}
		case "CONNE":
			if recs.LabelLength == 0 {
				head := line
				if len(head) > 25 {
					head = head[:25]
				}
				n := strings.IndexByte(head, ' ')
				if n < 0 {
					n = len(head)
				}
				if err = setLength(n / 2); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
			err = readConnection(lt, line, recs)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if recs.LabelLength == 0 {
		return nil, fmt.Errorf("no ELEME or CONNE records found")
	}
	return recs, nil
}

func readElement(lt layout, line string, recs *MeshRecords) error {
	f := lt.eleme.Split(line)
	label := f[0]
	if _, ok := recs.Elements[label]; ok {
		return fmt.Errorf("duplicate element %q", label)
	}
	var (
		e   = Element{Label: label, Material: f[3]}
		err error
	)
	if e.Volume, err = ParseFloat(f[4]); err != nil {
		return err
	}
	if e.HeatExchangeArea, err = ParseFloat(f[5]); err != nil {
		return err
	}
	if e.PermeabilityModifier, err = ParseFloat(f[6]); err != nil {
		return err
	}
	if e.Center, err = parseTriple(f[7:10]); err != nil {
		return err
	}
	recs.Elements[label] = e
	recs.Order = append(recs.Order, label)
	return nil
}

func readConnection(lt layout, line string, recs *MeshRecords) error {
	var (
		n   = recs.LabelLength
		f   = lt.conne.Split(line)
		c   Connection
		err error
	)
	if len(f[0]) != 2*n {
		return fmt.Errorf("connection labels %q do not hold two labels of %d characters", f[0], n)
	}
	c.Labels = [2]string{f[0][:n], f[0][n:]}
	isot, err := ParseInt(f[2])
	if err != nil {
		return err
	}
	c.Isot = types.Isot(isot)
	values := make([]float64, 5)
	for k := range values {
		if values[k], err = ParseFloat(f[3+k]); err != nil {
			return err
		}
	}
	c.NodalDistances = [2]float64{values[0], values[1]}
	c.InterfaceArea, c.GravityCosine, c.RadiantEmittance = values[2], values[3], values[4]
	recs.Connections = append(recs.Connections, c)
	return nil
}

func parseTriple(f []string) (xyz [3]float64, err error) {
	for k := range xyz {
		if xyz[k], err = ParseFloat(f[k]); err != nil {
			return
		}
	}
	return
}

// ReadInconFile reads the INCON file filename
func ReadInconFile(filename string, eos types.EOS) (*InconRecords, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	recs, err := ReadIncon(file, eos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return recs, nil
}

// ReadIncon parses an INCON block. A record starts on a line beginning with
// a letter; the line after it holds the first primary variables and only
// TMVOC records may continue on further lines.
func ReadIncon(r io.Reader, eos types.EOS) (*InconRecords, error) {
	var (
		scanner = bufio.NewScanner(r)
		recs    = &InconRecords{Conditions: make(map[string]InitialCondition)}
		lt      layout
		inBlock bool
		current *InitialCondition
		needs2  bool // next line is the first line of record 2
		lineNo  int
	)
	flush := func() {
		if current != nil {
			current.Values = trimNaN(current.Values)
			recs.Conditions[current.Label] = *current
			recs.Order = append(recs.Order, current.Label)
			current = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNo++
		if !inBlock {
			inBlock = isHeader(line, "INCON")
			continue
		}
		if needs2 {
			values, err := parseValues(lt.incon2, line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Values = values
			needs2 = false
			continue
		}
		if isTerminator(line) {
			break
		}
		if isContinuation(line) {
			if current == nil {
				return nil, fmt.Errorf("line %d: primary variables without a record", lineNo)
			}
			if eos.MaxPrimaryVariables() >= 0 {
				return nil, fmt.Errorf("line %d: %s records hold at most %d primary variables",
					lineNo, eos, eos.MaxPrimaryVariables())
			}
		} else {
			flush()
			if recs.LabelLength == 0 {
				n := detectLabelLength(line)
				var err error
				if lt, err = getLayout(n); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				recs.LabelLength = n
			}
			ic, err := readRecord1(lt, line, eos)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if _, ok := recs.Conditions[ic.Label]; ok {
				return nil, fmt.Errorf("line %d: duplicate initial condition for %q", lineNo, ic.Label)
			}
			current, needs2 = &ic, true
			continue
		}
		values, err := parseValues(lt.incon2, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		current.Values = append(padNaN(current.Values, len(lt.incon2)), values...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if needs2 {
		return nil, fmt.Errorf("record of %q is missing its primary variables", current.Label)
	}
	flush()
	if !inBlock {
		return nil, fmt.Errorf("no INCON block found")
	}
	return recs, nil
}

// isContinuation reports whether line holds more primary variables of the
// previous record rather than a new record 1. Variables are right-justified
// in 20-wide fields, a record 1 starts with a label that never starts with a
// blank and is followed by blank-padded columns.
func isContinuation(line string) bool {
	if line[0] == ' ' {
		return true
	}
	if len(line) < 20 {
		return false
	}
	f := line[:20]
	if strings.Contains(f, " ") {
		return false
	}
	_, err := ParseFloat(f)
	return err == nil
}

func readRecord1(lt layout, line string, eos types.EOS) (ic InitialCondition, err error) {
	if eos == types.EOSTMVOC {
		f := lt.incon1Phase.Split(line)
		ic.Label = f[0]
		if ic.Porosity, err = ParseFloat(f[3]); err != nil {
			return
		}
		ic.Phase, err = ParseInt(f[4])
		return
	}
	f := lt.incon1.Split(line)
	ic.Label = f[0]
	if ic.Porosity, err = ParseFloat(f[3]); err != nil {
		return
	}
	ic.Userx = make([]float64, 3)
	for k := range ic.Userx {
		if ic.Userx[k], err = ParseFloat(f[4+k]); err != nil {
			return
		}
	}
	ic.Userx = trimNaN(ic.Userx)
	return
}

func parseValues(f Format, line string) ([]float64, error) {
	fields := f.Split(line)
	values := make([]float64, len(fields))
	for k, s := range fields {
		var err error
		if values[k], err = ParseFloat(s); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func trimNaN(values []float64) []float64 {
	n := len(values)
	for n > 0 && math.IsNaN(values[n-1]) {
		n--
	}
	return values[:n]
}

func padNaN(values []float64, n int) []float64 {
	for len(values)%n != 0 || len(values) == 0 {
		values = append(values, math.NaN())
	}
	return values
}
