package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keurfonluu/toughio-sub000/tough"
	"github.com/keurfonluu/toughio-sub000/types"
)

// GridParameters describes a generated grid
type GridParameters struct {
	Type   string      `json:"Type"` // structured, cylindric or delaunay
	DX     []float64   `json:"DX"`
	DY     []float64   `json:"DY"`
	DZ     []float64   `json:"DZ"` // Layer thicknesses, also used to extrude delaunay grids
	DR     []float64   `json:"DR"`
	Layer  bool        `json:"Layer"` // Cylindric layers listed from the top
	Origin []float64   `json:"Origin"`
	Points [][]float64 `json:"Points"` // Delaunay input points
}

// MaterialBox assigns a material to the cells whose center lies in the box
type MaterialBox struct {
	Name string    `json:"Name"`
	Min  []float64 `json:"Min"`
	Max  []float64 `json:"Max"`
}

// MeshParameters obtained from the YAML input file
type MeshParameters struct {
	Title             string               `json:"Title"`
	Grid              *GridParameters      `json:"Grid"`
	MeshFile          string               `json:"MeshFile"`
	Extrude           []float64            `json:"Extrude"` // Layer thicknesses applied to 2D mesh files
	DefaultMaterial   string               `json:"DefaultMaterial"`
	Materials         []MaterialBox        `json:"Materials"`
	MaterialName      map[string]string    `json:"MaterialName"`
	MaterialEnd       []string             `json:"MaterialEnd"`
	Boundary          []string             `json:"Boundary"` // Materials of fixed-state cells
	Porosity          map[string]float64   `json:"Porosity"`
	Permeability      map[string][]float64 `json:"Permeability"`
	InitialConditions map[string][]float64 `json:"InitialConditions"`
	NodalDistance     string               `json:"NodalDistance"`
	Incon             bool                 `json:"Incon"`
	Coord             bool                 `json:"Coord"`
	EOS               string               `json:"EOS"`
	Gravity           []float64            `json:"Gravity"`
	LabelLength       int                  `json:"LabelLength"`
}

func (ip *MeshParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// WriteOptions converts the parameters into MESH/INCON writer options
func (ip *MeshParameters) WriteOptions() (opts tough.WriteOptions, err error) {
	opts = tough.DefaultWriteOptions()
	if opts.NodalDistance, err = types.NewNodalDistance(ip.NodalDistance); err != nil {
		return
	}
	if opts.EOS, err = types.NewEOS(ip.EOS); err != nil {
		return
	}
	switch len(ip.Gravity) {
	case 0:
	case 3:
		opts.Gravity = r3.Vec{X: ip.Gravity[0], Y: ip.Gravity[1], Z: ip.Gravity[2]}
		if r3.Norm(opts.Gravity) == 0 {
			err = fmt.Errorf("gravity vector is zero")
			return
		}
	default:
		err = fmt.Errorf("gravity needs 3 components, got %d", len(ip.Gravity))
		return
	}
	opts.MaterialName = ip.MaterialName
	opts.MaterialEnd = ip.MaterialEnd
	opts.Incon = ip.Incon
	opts.Coord = ip.Coord
	opts.LabelLength = ip.LabelLength
	return
}

func (ip *MeshParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	if ip.Grid != nil {
		fmt.Printf("[%s]\t\t= Grid Type\n", ip.Grid.Type)
	}
	if ip.MeshFile != "" {
		fmt.Printf("[%s]\t\t= Mesh File\n", ip.MeshFile)
	}
	fmt.Printf("[%s]\t\t= Nodal Distance\n", ip.NodalDistance)
	fmt.Printf("[%v]\t\t= Incon\n", ip.Incon)
	for _, box := range ip.Materials {
		fmt.Printf("Materials[%s] = %v - %v\n", box.Name, box.Min, box.Max)
	}
	keys := make([]string, 0, len(ip.MaterialName))
	for k := range ip.MaterialName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("MaterialName[%s] = %s\n", key, ip.MaterialName[key])
	}
	if len(ip.Boundary) > 0 {
		fmt.Printf("%v\t\t= Boundary\n", ip.Boundary)
	}
}
