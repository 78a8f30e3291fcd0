/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keurfonluu/toughio-sub000/InputParameters"
	"github.com/keurfonluu/toughio-sub000/geometry"
	"github.com/keurfonluu/toughio-sub000/mesh"
	"github.com/keurfonluu/toughio-sub000/mesh/readers"
	"github.com/keurfonluu/toughio-sub000/meshmaker"
	"github.com/keurfonluu/toughio-sub000/tough"
)

const exampleFile = `
########################################
Title: "Test Case"
Grid:
  Type: structured # Can be cylindric or delaunay
  DX: [1, 1, 1]
  DY: [1, 1]
  DZ: [1, 1]
DefaultMaterial: ROCK
Materials:
  - Name: BOUND
    Min: [2, 0, 1]
    Max: [3, 2, 2]
Boundary: [BOUND]
MaterialEnd: [BOUND]
Porosity:
  ROCK: 0.2
Incon: true
########################################
`

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Write the MESH file, and optionally INCON, of a grid or mesh file",
	Long: `Write the MESH file, and optionally INCON, of a grid described in a YAML
input file or of a Gmsh (.msh) or Gambit (.neu) mesh file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("inputFile")
		meshFile, _ := cmd.Flags().GetString("meshFile")
		return RunMesh(cmd.OutOrStdout(), inputFile, meshFile,
			viper.GetString("mesh.output"), viper.GetBool("mesh.incon"), viper.GetBool("mesh.verbose"))
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("inputFile", "i", "", "YAML file for input parameters like:\n\t- Grid\n\t- Materials\n\t- Boundary")
	MeshCmd.Flags().StringP("meshFile", "m", "", "Mesh file to read in Gmsh (.msh) or Gambit (.neu) format")
	MeshCmd.Flags().StringP("output", "o", "MESH", "MESH file to write, INCON is written next to it")
	MeshCmd.Flags().Bool("incon", false, "also write the INCON file")
	MeshCmd.Flags().BoolP("verbose", "v", false, "print mesh statistics before writing")
	_ = viper.BindPFlag("mesh.output", MeshCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("mesh.incon", MeshCmd.Flags().Lookup("incon"))
	_ = viper.BindPFlag("mesh.verbose", MeshCmd.Flags().Lookup("verbose"))
}

// RunMesh builds the mesh described by inputFile and writes output. With
// verbose, mesh statistics are printed first.
func RunMesh(w io.Writer, inputFile, meshFile, output string, incon, verbose bool) error {
	if len(inputFile) == 0 {
		fmt.Fprintf(w, "Example File:%s\n", exampleFile)
		return fmt.Errorf("must supply an input parameters file (-i, --inputFile)")
	}
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return err
	}
	ip := &InputParameters.MeshParameters{}
	if err = ip.Parse(data); err != nil {
		return fmt.Errorf("%s: %w", inputFile, err)
	}
	ip.Incon = ip.Incon || incon

	m, err := BuildMesh(ip, meshFile)
	if err != nil {
		return err
	}
	if verbose {
		m.PrintStatistics(w)
	}
	opts, err := ip.WriteOptions()
	if err != nil {
		return err
	}
	if err = tough.WriteMeshFile(output, m, opts); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d cells written to %s\n", m.NumCells(), output)
	return nil
}

// BuildMesh generates the grid of ip, or reads meshFile (ip.MeshFile when
// empty), then assigns materials, boundary cells and cell data
func BuildMesh(ip *InputParameters.MeshParameters, meshFile string) (m *mesh.Mesh, err error) {
	if meshFile == "" {
		meshFile = ip.MeshFile
	}
	switch {
	case meshFile != "":
		if m, err = readers.ReadMeshFile(meshFile); err != nil {
			return nil, err
		}
		if is2D(m) {
			if len(ip.Extrude) == 0 {
				return nil, fmt.Errorf("%s holds a surface mesh, Extrude layers are required", meshFile)
			}
			if m, err = meshmaker.Extrude(m, ip.Extrude); err != nil {
				return nil, err
			}
		}
	case ip.Grid != nil:
		if m, err = buildGrid(ip.Grid); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("must supply a Grid or a mesh file")
	}

	if err = assignMaterials(m, ip); err != nil {
		return nil, err
	}
	names, err := m.MaterialNames()
	if err != nil {
		return nil, err
	}
	var boundary []int
	for i, name := range names {
		for _, b := range ip.Boundary {
			if name == b {
				boundary = append(boundary, i)
			}
		}
	}
	if len(boundary) > 0 {
		if err = m.SetBoundaryCondition(boundary); err != nil {
			return nil, err
		}
	}
	for key, values := range map[string]map[string][]float64{
		mesh.PermeabilityKey:     ip.Permeability,
		mesh.InitialConditionKey: ip.InitialConditions,
		mesh.PorosityKey:         scalars(ip.Porosity),
	} {
		if err = addMaterialData(m, names, key, values); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func buildGrid(g *InputParameters.GridParameters) (*mesh.Mesh, error) {
	switch strings.ToLower(g.Type) {
	case "", "structured":
		return meshmaker.StructuredGrid(g.DX, g.DY, g.DZ, g.Origin)
	case "cylindric":
		return meshmaker.CylindricGrid(g.DR, g.DZ, g.Layer, g.Origin)
	case "delaunay":
		tri, err := meshmaker.Triangulate(g.Points)
		if err != nil {
			return nil, err
		}
		return meshmaker.Extrude(tri, g.DZ)
	}
	return nil, fmt.Errorf("unknown grid type %q, use one of structured, cylindric, delaunay", g.Type)
}

func is2D(m *mesh.Mesh) bool {
	for _, b := range m.Cells {
		if b.Type.Dimension() != 2 {
			return false
		}
	}
	return len(m.Cells) > 0
}

// assignMaterials gives DefaultMaterial to cells without one, then applies
// the material boxes in order
func assignMaterials(m *mesh.Mesh, ip *InputParameters.MeshParameters) error {
	if ip.DefaultMaterial != "" {
		names, err := m.MaterialNames()
		if err != nil {
			return err
		}
		var cells []int
		for i, name := range names {
			if name == "" {
				cells = append(cells, i)
			}
		}
		if err = m.SetMaterial(ip.DefaultMaterial, cells); err != nil {
			return err
		}
	}
	if len(ip.Materials) == 0 {
		return nil
	}
	centers := geometry.Centers(m)
	for _, box := range ip.Materials {
		if len(box.Min) != 3 || len(box.Max) != 3 {
			return fmt.Errorf("material box %s needs 3 components in Min and Max", box.Name)
		}
		var cells []int
		for i, c := range centers {
			if inside(box.Min, box.Max, []float64{c.X, c.Y, c.Z}) {
				cells = append(cells, i)
			}
		}
		if err := m.SetMaterial(box.Name, cells); err != nil {
			return err
		}
	}
	return nil
}

func inside(lo, hi, p []float64) bool {
	for k := range p {
		if p[k] < lo[k] || p[k] > hi[k] {
			return false
		}
	}
	return true
}

func scalars(values map[string]float64) map[string][]float64 {
	out := make(map[string][]float64, len(values))
	for k, v := range values {
		out[k] = []float64{v}
	}
	return out
}

// addMaterialData fills cell data key from per-material values, cells of
// other materials are left unset
func addMaterialData(m *mesh.Mesh, names []string, key string, values map[string][]float64) error {
	if len(values) == 0 {
		return nil
	}
	ncomp := 0
	for _, v := range values {
		if len(v) > ncomp {
			ncomp = len(v)
		}
	}
	a := mesh.NewUnsetArray(m.NumCells(), ncomp)
	for i, name := range names {
		if v, ok := values[name]; ok {
			a.Set(i, v...)
		}
	}
	return m.AddCellData(key, a)
}
