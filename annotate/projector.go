package annotate

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// Projector re-evaluates live transforms through an entity's resolved
// mapping each frame, writing updated 2D coordinates and presence states
// into the entity's record
type Projector struct {
	template *skelannot.KeypointTemplate
	camera   skelannot.Camera
}

// NewProjector creates a projector for the given template and camera
func NewProjector(template *skelannot.KeypointTemplate,
	camera skelannot.Camera) *Projector {

	return &Projector{
		template: template,
		camera:   camera,
	}
}

// Project updates the cache's record keypoints in place.  Rig associated
// points are derived first in template order, then override bindings are
// applied in declaration order so an override always wins for a shared
// index.  Sources that cannot currently be resolved leave the keypoint
// untouched, a point never resolved stays Absent
func (p *Projector) Project(cache *EntityCache) {

	if !cache.eligible {
		return
	}

	keypoints := cache.record.Keypoints

	if cache.rig != nil {
		for i, pt := range p.template.Points {

			if !pt.RigAssociated {
				continue
			}

			pos, ok := cache.rig.BoneWorldPosition(pt.RigLabel)

			if !ok {
				continue
			}

			x, y := p.project(pos)
			keypoints[i].X = x
			keypoints[i].Y = y
			keypoints[i].State = result.RigDerived
		}
	}

	for _, binding := range cache.overrides {
		x, y := p.project(binding.override.WorldPosition())
		keypoints[binding.index].X = x
		keypoints[binding.index].Y = y
		keypoints[binding.index].State = result.Overridden
	}
}

// project applies the camera's world to screen transform and flips the
// vertical axis into image coordinates
func (p *Projector) project(pos r3.Vec) (float64, float64) {
	x, y := p.camera.WorldToScreen(pos)
	return x, float64(p.camera.FrameHeight()) - y
}
