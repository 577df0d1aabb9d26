// Package result defines the annotation record types produced each frame
// and the one time registration payload describing the template schema.
// Field names and index semantics form the wire contract consumed by
// downstream dataset tooling
package result

// PoseUnset is the default pose label emitted when no pose table entry
// matches the entity's current animation state
const PoseUnset = "unset"

// PointState indicates the source a keypoint value was resolved from
type PointState int

const (
	// Absent means the keypoint was never resolved
	Absent PointState = 0
	// Overridden means the value came from a manually placed joint
	// override, the most specific ground truth source
	Overridden PointState = 1
	// RigDerived means the value was derived from a rig bone transform
	RigDerived PointState = 2
)

// String returns the state name
func (s PointState) String() string {

	switch s {
	case Overridden:
		return "overridden"
	case RigDerived:
		return "rigDerived"
	default:
		return "absent"
	}
}

// KeypointValue is the resolved 2D value of a single template keypoint.
// Index always equals the keypoint's position in the record's Keypoints
// sequence
type KeypointValue struct {
	Index int        `json:"index"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	State PointState `json:"state"`
}

// Record is the per entity, per frame annotation output.  Keypoints has one
// entry per template point, in template index order
type Record struct {
	LabelID    int             `json:"labelId"`
	InstanceID uint32          `json:"instanceId"`
	TemplateID string          `json:"templateId"`
	Pose       string          `json:"pose"`
	Keypoints  []KeypointValue `json:"keypoints"`
}

// NewRecord allocates a record sized to the given template point count with
// all keypoints initialized to Absent and the pose unset
func NewRecord(labelID int, instanceID uint32, templateID string, pointCount int) *Record {

	kps := make([]KeypointValue, pointCount)

	for i := range kps {
		kps[i].Index = i
	}

	return &Record{
		LabelID:    labelID,
		InstanceID: instanceID,
		TemplateID: templateID,
		Pose:       PoseUnset,
		Keypoints:  kps,
	}
}

// Clone returns a deep copy of the record.  The per entity record buffer is
// reused every frame, consumers holding records across frames need their
// own copy
func (r Record) Clone() Record {

	cpy := r
	cpy.Keypoints = make([]KeypointValue, len(r.Keypoints))
	copy(cpy.Keypoints, r.Keypoints)

	return cpy
}
