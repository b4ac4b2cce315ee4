package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"github.com/funkelab/funlib.geometry/pkg/volume"
)

// Viewer renders axis-aligned sections of a 3D volume as grayscale images.
// Voxel values are expected in [0, 1] and are clamped to that range.
type Viewer struct {
	// vol holds the voxel data, with axes (z, y, x)
	vol *volume.Volume
}

// NewViewer creates a viewer for a 3D volume
func NewViewer(vol *volume.Volume) (*Viewer, error) {
	if n := len(vol.Shape()); n != 3 {
		return nil, fmt.Errorf("viewer requires a 3D volume, got %d dimensions", n)
	}
	return &Viewer{vol: vol}, nil
}

// axisIndex maps an axis name to the volume axis
func axisIndex(axis string) (int, error) {
	switch axis {
	case "z", "Z":
		return 0, nil
	case "y", "Y":
		return 1, nil
	case "x", "X":
		return 2, nil
	default:
		return 0, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}
}

// ExtractSection extracts the section orthogonal to axis through the world
// position pos. A z section is width x height, a y section width x depth and
// an x section height x depth.
func (v *Viewer) ExtractSection(axis string, pos float64) (*image.Gray16, error) {
	a, err := axisIndex(axis)
	if err != nil {
		return nil, err
	}
	section, err := v.vol.Section(a, pos)
	if err != nil {
		return nil, err
	}

	rows, cols := section.Dims()
	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			value := uint16(math.Max(0, math.Min(65535, section.At(y, x)*65535)))
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}
	return img, nil
}

// SaveSection saves an extracted section as a JPEG image
func (v *Viewer) SaveSection(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveSectionSequence extracts and saves one section per voxel along the
// specified axis, named section_<axis>_<index>.jpg
func (v *Viewer) SaveSectionSequence(axis string, outputDir string) error {
	a, err := axisIndex(axis)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	arr := v.vol.Array()
	begin, _ := arr.Roi().Begin().At(a).Get()
	step, _ := arr.VoxelSize().At(a).Get()
	for i := 0; i < v.vol.Shape()[a]; i++ {
		// sample the middle of each voxel
		img, err := v.ExtractSection(axis, begin+(float64(i)+0.5)*step)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("section_%s_%03d.jpg", axis, i))
		if err := v.SaveSection(img, filename); err != nil {
			return err
		}
	}

	return nil
}
