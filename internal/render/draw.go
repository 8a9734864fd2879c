package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// shadowColor and shadowOffset describe the drop shadow drawn when a style
// enables it.
var (
	shadowColor  = color.NRGBA{A: 110}
	shadowOffset = 3
)

// fillRect blends c over the rectangle r.
func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// drawRectangle draws an outline of the given thickness inside r.
func drawRectangle(img *image.RGBA, r image.Rectangle, thickness int, c color.Color) {
	if thickness <= 0 || r.Empty() {
		return
	}
	t := thickness
	if t*2 > r.Dx() || t*2 > r.Dy() {
		fillRect(img, r, c)
		return
	}
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y+t, r.Min.X+t, r.Max.Y-t), c)
	fillRect(img, image.Rect(r.Max.X-t, r.Min.Y+t, r.Max.X, r.Max.Y-t), c)
}

// drawLine draws a line of the given thickness by stamping squares along it.
// Only the part of the line that can touch the image is walked.
func drawLine(img *image.RGBA, from, to image.Point, thickness int, c color.Color) {
	if thickness <= 0 {
		return
	}
	bounds := img.Bounds()
	if limit := 2 * max(bounds.Dx(), bounds.Dy()); thickness > limit {
		thickness = limit
	}
	half := thickness / 2
	x0, y0, x1, y1, ok := clipSegment(from, to, bounds.Inset(-thickness))
	if !ok {
		return
	}
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	mask := image.NewAlpha(bounds)
	for i := 0; i <= steps; i++ {
		f := 0.0
		if steps > 0 {
			f = float64(i) / float64(steps)
		}
		x := int(math.Round(x0 + dx*f))
		y := int(math.Round(y0 + dy*f))
		sq := image.Rect(x-half, y-half, x-half+thickness, y-half+thickness)
		draw.Draw(mask, sq.Intersect(bounds), image.Opaque, image.Point{}, draw.Src)
	}
	draw.DrawMask(img, bounds, image.NewUniform(c), image.Point{}, mask, bounds.Min, draw.Over)
}

// clipSegment clips the segment from-to to r (Liang-Barsky). ok is false
// when no part of the segment lies inside r.
func clipSegment(from, to image.Point, r image.Rectangle) (x0, y0, x1, y1 float64, ok bool) {
	x0, y0 = float64(from.X), float64(from.Y)
	dx := float64(to.X) - x0
	dy := float64(to.Y) - y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - float64(r.Min.X)},
		{dx, float64(r.Max.X-1) - x0},
		{-dy, y0 - float64(r.Min.Y)},
		{dy, float64(r.Max.Y-1) - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// drawArrowhead draws two barbs at to, pointing away from from.
func drawArrowhead(img *image.RGBA, from, to image.Point, thickness int, c color.Color) {
	angle := math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X))
	length := float64(10 + 3*thickness)
	for _, a := range []float64{angle + math.Pi*5/6, angle - math.Pi*5/6} {
		tip := image.Pt(
			to.X+int(math.Round(length*math.Cos(a))),
			to.Y+int(math.Round(length*math.Sin(a))),
		)
		drawLine(img, to, tip, thickness, c)
	}
}

// drawText draws text with its top-left corner at p. basicfont only comes in
// 7x13, so other sizes are scaled from it.
func drawText(img *image.RGBA, text string, p image.Point, size float64, c color.Color) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()
	if w == 0 {
		return
	}
	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: face.Metrics().Ascent},
	}
	d.DrawString(text)

	scale := size / float64(h)
	if scale <= 0 {
		scale = 1
	}
	dst := image.Rect(p.X, p.Y, p.X+int(math.Round(float64(w)*scale)), p.Y+int(math.Round(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(img, dst, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

// pixelate replaces r with blocks of size cell.
func pixelate(img *image.RGBA, r image.Rectangle, cell int) {
	r = r.Intersect(img.Bounds())
	if r.Empty() || cell <= 1 {
		return
	}
	small := image.NewRGBA(image.Rect(0, 0, ceilDiv(r.Dx(), cell), ceilDiv(r.Dy(), cell)))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, r, xdraw.Src, nil)
	xdraw.NearestNeighbor.Scale(img, r, small, small.Bounds(), xdraw.Src, nil)
}

// blur softens r by scaling it down by radius and back up with a smooth
// kernel.
func blur(img *image.RGBA, r image.Rectangle, radius int) {
	r = r.Intersect(img.Bounds())
	if r.Empty() || radius <= 0 {
		return
	}
	factor := radius + 1
	small := image.NewRGBA(image.Rect(0, 0, ceilDiv(r.Dx(), factor), ceilDiv(r.Dy(), factor)))
	xdraw.CatmullRom.Scale(small, small.Bounds(), img, r, xdraw.Src, nil)
	xdraw.BiLinear.Scale(img, r, small, small.Bounds(), xdraw.Src, nil)
}

func ceilDiv(a, b int) int {
	n := (a + b - 1) / b
	if n < 1 {
		return 1
	}
	return n
}
