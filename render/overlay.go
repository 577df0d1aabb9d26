package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// DrawRecords renders skeleton edges and joints for each annotation record
// onto a plain RGBA image using an anti-aliased rasterizer.  It produces
// the same overlay as Records without requiring OpenCV, for headless
// dataset generation runs
func DrawRecords(img *image.RGBA, tpl *skelannot.KeypointTemplate,
	records []result.Record, lineWidth float64) {

	if lineWidth <= 0 {
		lineWidth = 2
	}

	for _, rec := range records {

		for j, edge := range tpl.Skeleton {

			a := rec.Keypoints[edge.A]
			b := rec.Keypoints[edge.B]

			if a.State == result.Absent || b.State == result.Absent {
				continue
			}

			strokeLine(img, a.X, a.Y, b.X, b.Y, lineWidth,
				paletteColor(edge.Color, j))
		}

		for j, kp := range rec.Keypoints {

			if kp.State == result.Absent {
				continue
			}

			fillCircle(img, kp.X, kp.Y, lineWidth+1,
				paletteColor(tpl.Points[j].Color, j))
		}
	}
}

// strokeLine rasterizes the line segment as a filled quad of the given
// width
func strokeLine(img *image.RGBA, x1, y1, x2, y2, width float64, clr color.RGBA) {

	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)

	if length == 0 {
		return
	}

	// unit normal scaled to half the stroke width
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	r.MoveTo(float32(x1+nx), float32(y1+ny))
	r.LineTo(float32(x2+nx), float32(y2+ny))
	r.LineTo(float32(x2-nx), float32(y2-ny))
	r.LineTo(float32(x1-nx), float32(y1-ny))
	r.ClosePath()

	r.Draw(img, img.Bounds(), image.NewUniform(clr), image.Point{})
}

// fillCircle rasterizes a filled circle approximated by quadratic segments
func fillCircle(img *image.RGBA, cx, cy, radius float64, clr color.RGBA) {

	const segments = 8

	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	r.MoveTo(float32(cx+radius), float32(cy))

	for i := 1; i <= segments; i++ {
		a1 := 2 * math.Pi * (float64(i) - 0.5) / segments
		a2 := 2 * math.Pi * float64(i) / segments

		// control point sits on the tangent intersection
		k := radius / math.Cos(math.Pi/segments)

		r.QuadTo(
			float32(cx+k*math.Cos(a1)), float32(cy+k*math.Sin(a1)),
			float32(cx+radius*math.Cos(a2)), float32(cy+radius*math.Sin(a2)))
	}

	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(clr), image.Point{})
}
