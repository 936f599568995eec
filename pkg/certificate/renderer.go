package certificate

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // template decoder
	_ "image/png"  // template decoder
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Defaults used for every rendering in a batch.
const (
	FontSize    = 60
	NameOffsetY = 600
)

// Renderer draws names onto one template with one font.
type Renderer struct {
	templatePath string
	fontPath     string
	size         float64
	offsetY      int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFontSize overrides the font size in pixels.
func WithFontSize(size float64) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.size = size
		}
	}
}

// WithOffsetY overrides the vertical position of the text's top edge.
func WithOffsetY(y int) Option {
	return func(r *Renderer) {
		r.offsetY = y
	}
}

// NewRenderer creates a renderer for the given template image and TrueType font.
// Nothing is loaded until Render is called.
func NewRenderer(templatePath, fontPath string, opts ...Option) *Renderer {
	r := &Renderer{
		templatePath: templatePath,
		fontPath:     fontPath,
		size:         FontSize,
		offsetY:      NameOffsetY,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render loads the template and font fresh and draws name onto the template.
func (r *Renderer) Render(name string) (*image.RGBA, error) {
	img, err := loadTemplate(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrRender, ErrTemplate, err)
	}

	face, err := loadFace(r.fontPath, r.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrRender, ErrFont, err)
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, name)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	x := floorDiv(img.Bounds().Dx()-textWidth, 2)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, r.offsetY+face.Metrics().Ascent.Round()),
	}
	d.DrawString(name)

	return img, nil
}

// loadTemplate decodes the image and converts it to opaque RGB, dropping any alpha channel.
func loadTemplate(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst, nil
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
