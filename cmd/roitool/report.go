package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/funkelab/funlib.geometry/internal/models"
	"gopkg.in/yaml.v3"
)

// writeReport prints the report in the given format
func writeReport(w io.Writer, format string, report *models.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		return writeText(w, report)
	default:
		return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", format)
	}
}

func writeText(w io.Writer, report *models.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Array:      %v (voxel size %v)\n", report.Array, report.VoxelSize)
	fmt.Fprintf(&b, "Requested:  %v\n", report.Requested)
	fmt.Fprintf(&b, "Snapped:    %v\n", report.Snapped)
	if report.Snapped.Empty() {
		b.WriteString("The region does not cover any voxel of the array.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	fmt.Fprintf(&b, "Pixel:      %v\n", report.Pixel)
	fmt.Fprintf(&b, "Slices:     [%s]\n", strings.Join(report.Slices, ", "))
	if report.Nearest != nil {
		fmt.Fprintf(&b, "Nearest:    block %v %v\n", report.Nearest.Index, report.Nearest.World)
	}

	fmt.Fprintf(&b, "\nOverlapping blocks (%d):\n", len(report.Blocks))
	fmt.Fprintf(&b, "========================\n")
	for _, s := range report.Blocks {
		fmt.Fprintf(&b, "%-12v %-40v voxels: %d", s.Block.Index, s.Block.World, s.Count)
		if report.Stats {
			fmt.Fprintf(&b, "  mean: %.4f  std: %.4f  min: %.4f  max: %.4f", s.Mean, s.StdDev, s.Min, s.Max)
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
