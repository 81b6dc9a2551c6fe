// Package imaging rewrites near-black pixels in JPEG files to pure blue,
// leaving every other pixel untouched.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
)

// DefaultThreshold is the channel value at or below which a pixel counts
// as black.
const DefaultThreshold = 30

// blue is the replacement color for black pixels.
var blue = color.RGBA{R: 0, G: 0, B: 255, A: 255}

// OutputPrefix is prepended to the input file name to form the output name.
const OutputPrefix = "modified_"

// Recolor returns a copy of img where every pixel whose R, G and B
// channels are all at or below threshold becomes (0, 0, 255). All other
// pixels are copied unchanged.
func Recolor(img image.Image, threshold uint8) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := out.PixOffset(x, y)
			r, g, b := out.Pix[i], out.Pix[i+1], out.Pix[i+2]
			if r <= threshold && g <= threshold && b <= threshold {
				out.Pix[i] = blue.R
				out.Pix[i+1] = blue.G
				out.Pix[i+2] = blue.B
			}
		}
	}
	return out
}

// ProcessFile recolors a single JPEG and writes the result beside it as
// OutputPrefix + name. The input file is never modified. Returns the
// output path.
func ProcessFile(path string, threshold uint8) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, err := jpeg.Decode(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}

	out := Recolor(img, threshold)

	outPath := filepath.Join(filepath.Dir(path), OutputPrefix+filepath.Base(path))
	outFile, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	if err := jpeg.Encode(outFile, out, nil); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", outPath, err)
	}
	return outPath, nil
}

// IsJPEG reports whether name has a .jpg or .jpeg extension, case-insensitive.
func IsJPEG(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".jpg" || ext == ".jpeg"
}

// ScanDir lists the JPEG files directly inside dir, sorted by name.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsJPEG(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
