// Package certificate renders a recipient's name onto a certificate template.
//
// The name is drawn in black, horizontally centered, with the top of the font's
// ascender at a fixed vertical offset (600px by default) at a fixed size (60px
// by default). Every call to Render reloads the template from disk, so no image
// state is shared between recipients.
//
//	r := certificate.NewRenderer("templates/award.png", "fonts/arial.ttf")
//	img, err := r.Render("JANE DOE")
//	if err != nil {
//		// errors.Is(err, certificate.ErrRender) is true for template and font failures
//	}
//
//	var pdf bytes.Buffer
//	err = certificate.EncodePDF(&pdf, img)
//
// EncodePDF wraps the image in a single-page PDF whose page size matches the
// image size in points. EncodePNG writes the raster preview form.
package certificate
