// Package render draws the elements of an annotate step onto an image, as a
// preview of what the capture engine will produce.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mj1618/macro-cli/internal/model"
)

// Canvas returns a white image of the given size.
func Canvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// LoadImage decodes a PNG or JPEG file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Encode writes img as PNG, or JPEG when format is "jpg" or "jpeg".
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

// FormatFromPath guesses the output format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	}
	return "png"
}

// ImageToRGBA converts any image to RGBA.
func ImageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// Annotations draws elements onto a copy of img in order, so later elements
// paint over earlier ones.
func Annotations(img image.Image, elements []model.Element) *image.RGBA {
	rgba := ImageToRGBA(img)
	for _, el := range elements {
		drawElement(rgba, el)
	}
	return rgba
}

func drawElement(img *image.RGBA, el model.Element) {
	st := el.Style.Effective()
	line := colorOrFallback(st.LineColor)
	origin := img.Bounds().Min

	switch s := el.Shape.(type) {
	case *model.Rectangle:
		r := toRect(s.Bounds).Add(origin)
		fill, fillOK := ParseColor(st.FillColor)
		if st.Shadow {
			drawRectangle(img, r.Add(image.Pt(shadowOffset, shadowOffset)), st.LineThickness, shadowColor)
		}
		if fillOK && fill.A > 0 {
			fillRect(img, r, fill)
		}
		drawRectangle(img, r, st.LineThickness, line)

	case *model.Arrow:
		from := image.Pt(s.From.X, s.From.Y).Add(origin)
		to := image.Pt(s.To.X, s.To.Y).Add(origin)
		if st.Shadow {
			off := image.Pt(shadowOffset, shadowOffset)
			drawLine(img, from.Add(off), to.Add(off), st.LineThickness, shadowColor)
			drawArrowhead(img, from.Add(off), to.Add(off), st.LineThickness, shadowColor)
		}
		drawLine(img, from, to, st.LineThickness, line)
		drawArrowhead(img, from, to, st.LineThickness, line)

	case *model.Text:
		p := image.Pt(s.Position.X, s.Position.Y).Add(origin)
		if st.Shadow {
			drawText(img, s.Content, p.Add(image.Pt(1, 1)), st.FontSize, shadowColor)
		}
		drawText(img, s.Content, p, st.FontSize, line)

	case *model.Obfuscate:
		r := toRect(s.Bounds).Add(origin)
		// blur_radius wins when both are set; the default is blur.
		if st.HasPixelSize && !st.HasBlur {
			pixelate(img, r, st.PixelSize)
		} else {
			blur(img, r, st.BlurRadius)
		}
	}
}

func toRect(r model.Rect) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Canon()
}
