// Package render draws debug overlays from annotation records, either onto
// a gocv.Mat or onto a plain image.RGBA for headless environments.  The
// overlays have no influence on annotation correctness
package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// Records renders the skeleton edges, joints, and an instance/pose label
// for each annotation record onto img.  Keypoints resolved as Absent are
// skipped, edges are drawn only when both endpoints are present
func Records(img *gocv.Mat, tpl *skelannot.KeypointTemplate,
	records []result.Record, font Font, lineThickness int) {

	for _, rec := range records {

		// draw skeleton lines
		for j, edge := range tpl.Skeleton {

			a := rec.Keypoints[edge.A]
			b := rec.Keypoints[edge.B]

			if a.State == result.Absent || b.State == result.Absent {
				continue
			}

			gocv.Line(img,
				image.Pt(int(a.X), int(a.Y)),
				image.Pt(int(b.X), int(b.Y)),
				paletteColor(edge.Color, j), lineThickness)
		}

		// draw circles at skeleton joints
		for j, kp := range rec.Keypoints {

			if kp.State == result.Absent {
				continue
			}

			gocv.Circle(img, image.Pt(int(kp.X), int(kp.Y)),
				3, paletteColor(tpl.Points[j].Color, j), -1)
		}

		drawLabel(img, rec, font)
	}
}

// drawLabel writes the instance id and pose label next to the first
// resolved keypoint
func drawLabel(img *gocv.Mat, rec result.Record, font Font) {

	for _, kp := range rec.Keypoints {

		if kp.State == result.Absent {
			continue
		}

		text := fmt.Sprintf("#%d %s", rec.InstanceID, rec.Pose)

		gocv.PutTextWithParams(img, text,
			image.Pt(int(kp.X)+font.XPad, int(kp.Y)-font.YPad),
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)

		return
	}
}
