package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"

	"github.com/funkelab/funlib.geometry/internal/models"
	"github.com/funkelab/funlib.geometry/pkg/config"
	"github.com/funkelab/funlib.geometry/pkg/geometry"
	"github.com/funkelab/funlib.geometry/pkg/index"
	"github.com/funkelab/funlib.geometry/pkg/visualization"
	"github.com/funkelab/funlib.geometry/pkg/volume"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "roitool.yaml", "YAML configuration describing the array")
	offsetArg := flag.String("offset", "", "World offset of the region of interest, e.g. \"0, 10.5, _\"")
	shapeArg := flag.String("shape", "", "World shape of the region of interest, e.g. \"20, 20, _\"")
	snapArg := flag.String("snap", "", "Snap mode: grow, shrink or closest (overrides config)")
	formatArg := flag.String("format", "", "Report format: text, json or yaml (overrides config)")
	cores := flag.Int("cores", 0, "Number of workers for block statistics (overrides config)")
	dataPath := flag.String("data", "", "Raw little-endian float64 voxel data in row-major order")
	sectionDir := flag.String("sections", "", "Directory to save z sections of the region (overrides config)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	writeConfig := flag.String("write-config", "", "Write a default configuration file to this path and exit")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *writeConfig)
		return
	}

	if *offsetArg == "" || *shapeArg == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *snapArg != "" {
		cfg.Processing.SnapMode = geometry.SnapMode(*snapArg)
	}
	if *formatArg != "" {
		cfg.Output.Format = *formatArg
	}
	if *cores > 0 {
		cfg.Processing.NumCores = *cores
	}
	if *sectionDir != "" {
		cfg.Output.SectionDir = *sectionDir
	}
	if *verbose {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Output.Verbose {
		geometry.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	offset, err := geometry.ParseFloatCoordinate(*offsetArg)
	if err != nil {
		log.Fatalf("Invalid offset: %v", err)
	}
	shape, err := geometry.ParseFloatCoordinate(*shapeArg)
	if err != nil {
		log.Fatalf("Invalid shape: %v", err)
	}
	if offset.Dims() != shape.Dims() {
		log.Fatalf("Offset %v and shape %v must have the same dimensions", offset, shape)
	}

	arr, err := cfg.BuildArray()
	if err != nil {
		log.Fatalf("Failed to build array: %v", err)
	}
	if offset.Dims() != arr.Dims() {
		log.Fatalf("Region has %d dimensions, array has %d", offset.Dims(), arr.Dims())
	}

	var vol *volume.Volume
	if *dataPath != "" {
		vol, err = loadVolume(arr, *dataPath)
		if err != nil {
			log.Fatalf("Failed to load data: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := resolve(ctx, cfg, arr, vol, geometry.NewRegion(offset, shape))
	if err != nil {
		log.Fatalf("Failed to resolve region: %v", err)
	}

	if vol != nil && cfg.Output.SectionDir != "" && !report.Snapped.Empty() {
		if err := saveSections(vol, report.Snapped, cfg.Output.SectionDir); err != nil {
			log.Printf("Warning: Failed to save sections: %v", err)
		}
	}

	if err := writeReport(os.Stdout, cfg.Output.Format, report); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

// resolve snaps the requested region to the array, converts it to pixel
// space and finds the blocks it overlaps
func resolve(ctx context.Context, cfg *config.Config, arr geometry.FloatArray, vol *volume.Volume, requested geometry.FloatRoi) (*models.Report, error) {
	report := &models.Report{
		Array:     arr.Roi(),
		VoxelSize: arr.VoxelSize(),
		Requested: requested,
	}

	snapped, err := arr.Snap(requested, cfg.Processing.SnapMode)
	if err != nil {
		return nil, err
	}
	report.Snapped = snapped
	if snapped.Empty() {
		return report, nil
	}

	pixel, err := arr.RegionToPixelSpace(snapped)
	if err != nil {
		return nil, err
	}
	report.Pixel = pixel

	slices, err := arr.ToSlices(snapped)
	if err != nil {
		return nil, err
	}
	for _, s := range slices {
		report.Slices = append(report.Slices, s.String())
	}

	blocks, err := volume.Tile(arr, cfg.Processing.BlockShape)
	if err != nil {
		return nil, err
	}
	idx, err := index.NewBlockIndex(blocks)
	if err != nil {
		return nil, err
	}

	center := snapped.Begin().Add(snapped.End()).DivScalar(2)
	if block, _, ok := idx.Nearest(center); ok {
		report.Nearest = &block
	}

	overlapping := idx.Overlapping(snapped)
	if vol == nil {
		for _, b := range overlapping {
			count, _ := b.Pixel.Size().Get()
			report.Blocks = append(report.Blocks, models.BlockStats{Block: b, Count: count})
		}
		return report, nil
	}

	report.Blocks, err = vol.ProcessBlocks(ctx, overlapping, cfg.Processing.NumCores)
	if err != nil {
		return nil, err
	}
	report.Stats = true
	return report, nil
}

// loadVolume reads one little-endian float64 per voxel of arr
func loadVolume(arr geometry.FloatArray, path string) (*volume.Volume, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("%s: size %d is not a multiple of 8 bytes", path, len(raw))
	}
	data := make([]float64, len(raw)/8)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return volume.NewVolume(arr, data)
}

// saveSections writes the z sections of the snapped region as JPEG images
func saveSections(vol *volume.Volume, snapped geometry.FloatRoi, dir string) error {
	sub, err := vol.Region(snapped)
	if err != nil {
		return err
	}
	viewer, err := visualization.NewViewer(sub)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saving z sections to: %s\n", dir)
	return viewer.SaveSectionSequence("z", dir)
}
