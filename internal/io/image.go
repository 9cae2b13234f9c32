package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/handiism/scale-sheets/internal/model"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Compositor defaults.
const (
	DefaultGutter       = 100
	DefaultThreshold    = 200
	DefaultCaptionScale = 4
	DefaultCaption      = "Practice Scales"
)

// CompositorConfig controls how two sheets are combined.
type CompositorConfig struct {
	// Gutter is the horizontal gap between the images, in pixels.
	Gutter int

	// Threshold is the brightness (0-255) below which a pixel counts as ink.
	Threshold uint8

	// Caption is printed centred below the images. Empty disables it.
	Caption string

	// CaptionScale enlarges the 7x13 bitmap font by an integer factor.
	CaptionScale int
}

// DefaultCompositorConfig returns the settings used for 300 DPI sheets.
func DefaultCompositorConfig() CompositorConfig {
	return CompositorConfig{
		Gutter:       DefaultGutter,
		Threshold:    DefaultThreshold,
		Caption:      DefaultCaption,
		CaptionScale: DefaultCaptionScale,
	}
}

// Compositor places two rasterized sheets side by side.
//
// The images are aligned on their baselines: the lowest row that contains
// ink. The result is drawn on white with a fixed gutter and an optional
// caption underneath.
//
// Example usage:
//
//	c := NewCompositor(DefaultCompositorConfig())
//	err := c.ComposeFiles(ctx, "out/practice_c.png", "out/practice_g.png", "out/practice_c_g.png")
type Compositor struct {
	cfg CompositorConfig
}

// NewCompositor creates a Compositor. A negative gutter, a zero threshold
// and a non-positive caption scale fall back to the defaults.
func NewCompositor(cfg CompositorConfig) *Compositor {
	if cfg.Gutter < 0 {
		cfg.Gutter = DefaultGutter
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.CaptionScale <= 0 {
		cfg.CaptionScale = DefaultCaptionScale
	}
	return &Compositor{cfg: cfg}
}

// FindBaseline returns the y coordinate of the lowest row containing a
// pixel darker than the threshold, scanning upwards from the bottom. An
// image without ink returns its last row.
func (c *Compositor) FindBaseline(img image.Image) int {
	b := img.Bounds()
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.isInk(img.At(x, y)) {
				return y
			}
		}
	}
	return b.Max.Y - 1
}

func (c *Compositor) isInk(col color.Color) bool {
	r, g, b, a := col.RGBA()
	if a == 0 {
		return false
	}
	// ITU-R 601 luma on 16-bit channels, reduced to 8 bits.
	luma := (299*r + 587*g + 114*b) / 1000 >> 8
	return luma < uint32(c.cfg.Threshold)
}

// Compose aligns left and right on their baselines and draws them side by
// side, followed by the caption.
func (c *Compositor) Compose(left, right image.Image) *image.RGBA {
	lb, rb := left.Bounds(), right.Bounds()

	// Baselines relative to each image's top edge.
	lBase := c.FindBaseline(left) - lb.Min.Y
	rBase := c.FindBaseline(right) - rb.Min.Y
	base := max(lBase, rBase)
	lTop, rTop := base-lBase, base-rBase

	width := lb.Dx() + c.cfg.Gutter + rb.Dx()
	contentHeight := max(lTop+lb.Dy(), rTop+rb.Dy())

	caption := c.renderCaption()
	height := contentHeight
	if caption != nil {
		height += caption.Bounds().Dy()
		width = max(width, caption.Bounds().Dx())
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	draw.Draw(dst, image.Rect(0, lTop, lb.Dx(), lTop+lb.Dy()), left, lb.Min, draw.Over)
	rx := lb.Dx() + c.cfg.Gutter
	draw.Draw(dst, image.Rect(rx, rTop, rx+rb.Dx(), rTop+rb.Dy()), right, rb.Min, draw.Over)

	if caption != nil {
		cb := caption.Bounds()
		x := (width - cb.Dx()) / 2
		draw.Draw(dst, image.Rect(x, contentHeight, x+cb.Dx(), contentHeight+cb.Dy()), caption, cb.Min, draw.Over)
	}

	return dst
}

// renderCaption draws the caption with the bitmap font and scales it up.
// Nearest-neighbour scaling keeps the glyph edges sharp.
func (c *Compositor) renderCaption() *image.RGBA {
	if c.cfg.Caption == "" {
		return nil
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()
	pad := 4
	textWidth := font.MeasureString(face, c.cfg.Caption).Ceil()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()

	small := image.NewRGBA(image.Rect(0, 0, textWidth+2*pad, lineHeight+2*pad))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(pad, pad+metrics.Ascent.Ceil()),
	}
	d.DrawString(c.cfg.Caption)

	scale := c.cfg.CaptionScale
	sb := small.Bounds()
	large := image.NewRGBA(image.Rect(0, 0, sb.Dx()*scale, sb.Dy()*scale))
	draw.NearestNeighbor.Scale(large, large.Bounds(), small, sb, draw.Src, nil)
	return large
}

// ComposeFiles reads two PNG files, composes them and writes the result as
// PNG to outPath.
func (c *Compositor) ComposeFiles(ctx context.Context, leftPath, rightPath, outPath string) error {
	left, err := readImage(leftPath)
	if err != nil {
		return err
	}
	right, err := readImage(rightPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, c.Compose(left, right)); err != nil {
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return WriteFile(ctx, outPath, buf.Bytes())
}

func readImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewError(model.KindFileSystem, "read "+path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ImageService produces reduced previews of rendered sheets.
//
// Example usage:
//
//	svc := NewImageService()
//	thumb, _ := svc.ResizeImage(ctx, pngData, 800, 800)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. Images already inside the bounds keep
// their size but are re-encoded. The result is JPEG-encoded.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
