package skelannot

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Registry supplies the complete set of currently labeled entities each
// frame.  It is implemented by the external entity/labeling subsystem
type Registry interface {
	// LabeledEntities returns all labeled entities present for the given
	// frame along with their stable instance identifiers
	LabeledEntities(frame int64) []LabeledEntity
}

// LabeledEntity pairs an entity with its stable numeric instance identifier
type LabeledEntity struct {
	InstanceID uint32
	Entity     Entity
}

// Entity is a single scene entity as exposed by the scene subsystem
type Entity interface {
	// Rig returns the entity's rig binding if it has one
	Rig() (Rig, bool)
	// JointOverrides returns all joint override declarations attached to
	// the entity and its descendants, in declaration order
	JointOverrides() []JointOverride
}

// Rig exposes named bone world transforms and the current animation state
// of an entity's animated skeleton
type Rig interface {
	// BoneWorldPosition returns the current world space position of the
	// named bone.  The second return is false when the rig has no such
	// bone or it cannot currently be resolved
	BoneWorldPosition(label string) (r3.Vec, bool)
	// CurrentClip returns the name of the animation clip currently
	// playing, if any
	CurrentClip() (string, bool)
	// NormalizedTime returns the playback position of the current clip
	// normalized to [0,1)
	NormalizedTime() float64
}

// JointOverride is a manually placed scene point declaring itself as the
// ground truth location of a specific template keypoint.  Overrides take
// precedence over rig derived values
type JointOverride interface {
	// Targets reports whether the override applies to the given template
	Targets(templateID string) bool
	// Label is the template point label the override represents
	Label() string
	// WorldPosition is the override's current world space position
	WorldPosition() r3.Vec
}

// Camera supplies the world to screen space projection used when writing
// keypoint coordinates.  It is implemented by the external camera/rendering
// subsystem
type Camera interface {
	// WorldToScreen projects a world space point into screen space
	WorldToScreen(p r3.Vec) (x, y float64)
	// FrameHeight is the rendered frame height in pixels, used to flip
	// the vertical axis into image coordinates
	FrameHeight() int
}
