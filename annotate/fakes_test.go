package annotate

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// fakeRig exposes a fixed set of named bone positions and animation state
type fakeRig struct {
	bones map[string]r3.Vec
	clip  string
	time  float64
}

func (r *fakeRig) BoneWorldPosition(label string) (r3.Vec, bool) {
	pos, ok := r.bones[label]
	return pos, ok
}

func (r *fakeRig) CurrentClip() (string, bool) {
	if r.clip == "" {
		return "", false
	}
	return r.clip, true
}

func (r *fakeRig) NormalizedTime() float64 {
	return r.time
}

// fakeOverride declares a world point as a template label's location
type fakeOverride struct {
	template string
	label    string
	pos      r3.Vec
}

func (o *fakeOverride) Targets(templateID string) bool {
	return o.template == templateID
}

func (o *fakeOverride) Label() string {
	return o.label
}

func (o *fakeOverride) WorldPosition() r3.Vec {
	return o.pos
}

// fakeEntity is a scene entity with an optional rig and overrides.  It
// counts override enumerations so tests can assert mapping is computed
// exactly once
type fakeEntity struct {
	rig           *fakeRig
	overrides     []skelannot.JointOverride
	overrideCalls int
}

func (e *fakeEntity) Rig() (skelannot.Rig, bool) {
	if e.rig == nil {
		return nil, false
	}
	return e.rig, true
}

func (e *fakeEntity) JointOverrides() []skelannot.JointOverride {
	e.overrideCalls++
	return e.overrides
}

// fakeCamera projects through a configurable function
type fakeCamera struct {
	height  int
	project func(p r3.Vec) (float64, float64)
}

func (c *fakeCamera) WorldToScreen(p r3.Vec) (float64, float64) {
	if c.project != nil {
		return c.project(p)
	}
	// simple linear mapping for tests
	return p.X * 100, p.Y * 25
}

func (c *fakeCamera) FrameHeight() int {
	return c.height
}

// fakeRegistry returns a fixed entity set every frame
type fakeRegistry struct {
	entities []skelannot.LabeledEntity
}

func (r *fakeRegistry) LabeledEntities(frame int64) []skelannot.LabeledEntity {
	return r.entities
}

// fakeReporter records all reporter calls
type fakeReporter struct {
	regs   []result.Registration
	frames []int64
	bodies [][]result.Record
}

func (r *fakeReporter) Register(reg result.Registration) {
	r.regs = append(r.regs, reg)
}

func (r *fakeReporter) Publish(frame int64, records []result.Record) {
	r.frames = append(r.frames, frame)
	r.bodies = append(r.bodies, records)
}

// testTemplate returns the validated three point template used throughout
// the tests: head, leftHand, rightHand with a single head to leftHand edge
func testTemplate() *skelannot.KeypointTemplate {

	tpl := &skelannot.KeypointTemplate{
		ID:   "person-v1",
		Name: "Person",
		Points: []skelannot.TemplatePoint{
			{Label: "head", RigLabel: "head", RigAssociated: true},
			{Label: "leftHand", RigLabel: "leftHand", RigAssociated: true},
			{Label: "rightHand", RigLabel: "rightHand", RigAssociated: true},
		},
		Skeleton: []skelannot.SkeletonEdge{
			{A: 0, B: 1},
		},
	}

	if err := tpl.Validate(); err != nil {
		panic(err)
	}

	return tpl
}

// testLabels returns a label config with instance 7 labeled as class 3
func testLabels() *skelannot.LabelConfig {
	return skelannot.NewLabelConfig(map[uint32]skelannot.LabelEntry{
		7: {ID: 3, Name: "person"},
	})
}
