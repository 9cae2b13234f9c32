package render

import (
	"context"
	"strconv"

	"github.com/handiism/scale-sheets/internal/model"
)

// Raster converter defaults.
const (
	DefaultPdftoppm = "pdftoppm"
	DefaultDPI      = 300
)

// Rasterizer converts the first page of a PDF into a PNG image using
// poppler's pdftoppm.
//
// Example:
//
//	r := NewRasterizer("", 300, nil)
//	png, err := r.Rasterize(ctx, "out/practice_c.pdf", "out/practice_c")
//	// png = "out/practice_c.png"
type Rasterizer struct {
	path   string
	dpi    int
	runner Runner
}

// NewRasterizer creates a Rasterizer. Zero values select DefaultPdftoppm,
// DefaultDPI and ExecRunner.
func NewRasterizer(path string, dpi int, runner Runner) *Rasterizer {
	if path == "" {
		path = DefaultPdftoppm
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Rasterizer{path: path, dpi: dpi, runner: runner}
}

// DPI returns the raster density.
func (r *Rasterizer) DPI() int {
	return r.dpi
}

// Rasterize renders page 1 of pdfPath to outBase.png.
func (r *Rasterizer) Rasterize(ctx context.Context, pdfPath, outBase string) (string, error) {
	op := "rasterize " + pdfPath
	args := []string{
		"-png",
		"-r", strconv.Itoa(r.dpi),
		"-f", "1",
		"-l", "1",
		"-singlefile",
		pdfPath,
		outBase,
	}

	out, err := r.runner.Run(ctx, r.path, args...)
	if err != nil {
		return "", toolError(op, r.path, err, out)
	}

	imagePath := outBase + model.ExtImage
	if err := requireFile(op, imagePath); err != nil {
		return "", err
	}
	return imagePath, nil
}
