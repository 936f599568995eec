package certificate

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

// Content types of the encoded forms.
const (
	ContentTypePDF = "application/pdf"
	ContentTypePNG = "image/png"
)

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: png: %v", ErrEncode, err)
	}
	return nil
}

// EncodePDF writes img as a single-page PDF sized to the image (1px = 1pt).
func EncodePDF(w io.Writer, img image.Image) error {
	var raster bytes.Buffer
	if err := jpeg.Encode(&raster, img, &jpeg.Options{Quality: 95}); err != nil {
		return fmt.Errorf("%w: pdf image: %v", ErrEncode, err)
	}

	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	doc.RegisterImageOptionsReader("certificate", opts, &raster)
	doc.ImageOptions("certificate", 0, 0, width, height, false, opts, 0, "")

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("%w: pdf: %v", ErrEncode, err)
	}
	return nil
}
