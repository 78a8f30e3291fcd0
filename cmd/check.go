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
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/floats"

	"github.com/keurfonluu/toughio-sub000/geometry"
	"github.com/keurfonluu/toughio-sub000/tough"
	"github.com/keurfonluu/toughio-sub000/types"
)

// Volumes above this were scaled by tough.VolumeFactor
const boundaryVolume = 1e40

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check MESH",
	Short: "Read back a MESH file, and optionally INCON, and print statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eos, err := types.NewEOS(viper.GetString("check.eos"))
		if err != nil {
			return err
		}
		inconFile, _ := cmd.Flags().GetString("incon")
		return CheckMesh(cmd.OutOrStdout(), args[0], inconFile, eos)
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	CheckCmd.Flags().String("incon", "", "INCON file to check against the MESH file")
	CheckCmd.Flags().String("eos", "", "equation of state of the INCON file, tmvoc changes its layout")
	_ = viper.BindPFlag("check.eos", CheckCmd.Flags().Lookup("eos"))
}

// CheckMesh reads meshFile, and inconFile when given, verifies that every
// record refers to a known element and prints statistics to w
func CheckMesh(w io.Writer, meshFile, inconFile string, eos types.EOS) error {
	recs, err := tough.ReadMeshFile(meshFile)
	if err != nil {
		return err
	}
	index := make(map[string]int, len(recs.Order))
	for i, label := range recs.Order {
		index[label] = i
	}

	conns := make([]geometry.Connection, len(recs.Connections))
	areas := make([]float64, len(recs.Connections))
	for k, c := range recs.Connections {
		for s, label := range c.Labels {
			i, ok := index[label]
			if !ok {
				return fmt.Errorf("connection %s%s refers to unknown element %s", c.Labels[0], c.Labels[1], label)
			}
			conns[k].Cells[s] = i
		}
		areas[k] = c.InterfaceArea
	}

	var (
		volumes   []float64
		nBoundary int
		materials = make(map[string]int)
	)
	for _, label := range recs.Order {
		e := recs.Elements[label]
		materials[e.Material]++
		if e.Volume >= boundaryVolume {
			nBoundary++
			continue
		}
		volumes = append(volumes, e.Volume)
	}

	fmt.Fprintf(w, "elements: %d (%d boundary)\n", len(recs.Order), nBoundary)
	fmt.Fprintf(w, "connections: %d\n", len(recs.Connections))
	if len(volumes) > 0 {
		fmt.Fprintf(w, "volume: total %g, min %g, max %g\n",
			floats.Sum(volumes), floats.Min(volumes), floats.Max(volumes))
	}
	if len(areas) > 0 {
		fmt.Fprintf(w, "interface area: min %g, max %g\n", floats.Min(areas), floats.Max(areas))
	}
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "material %q: %d\n", name, materials[name])
	}

	isolated := geometry.IsolatedCells(geometry.Adjacency(conns, len(recs.Order)))
	fmt.Fprintf(w, "isolated: %d\n", len(isolated))
	for _, i := range isolated {
		fmt.Fprintf(w, "  %s\n", recs.Order[i])
	}

	if inconFile == "" {
		return nil
	}
	incon, err := tough.ReadInconFile(inconFile, eos)
	if err != nil {
		return err
	}
	for _, label := range incon.Order {
		if _, ok := index[label]; !ok {
			return fmt.Errorf("initial condition for unknown element %s", label)
		}
	}
	fmt.Fprintf(w, "initial conditions: %d\n", len(incon.Order))
	return nil
}
