package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate"
	"github.com/visiondatakit/go-skelannot/render"
	"github.com/visiondatakit/go-skelannot/report"
)

// demoRig animates three bones swinging around a center position
type demoRig struct {
	center r3.Vec
	frame  int64
}

func (r *demoRig) BoneWorldPosition(label string) (r3.Vec, bool) {

	t := float64(r.frame) / 30.0

	switch label {
	case "head":
		return r3.Vec{X: r.center.X, Y: r.center.Y + 1.7, Z: r.center.Z}, true
	case "leftHand":
		return r3.Vec{X: r.center.X - 0.5, Y: r.center.Y + 1.0 + 0.3*math.Sin(t*2*math.Pi),
			Z: r.center.Z}, true
	case "rightHand":
		return r3.Vec{X: r.center.X + 0.5, Y: r.center.Y + 1.0 - 0.3*math.Sin(t*2*math.Pi),
			Z: r.center.Z}, true
	}

	return r3.Vec{}, false
}

func (r *demoRig) CurrentClip() (string, bool) {
	return "wave", true
}

func (r *demoRig) NormalizedTime() float64 {
	return math.Mod(float64(r.frame)/30.0, 1.0)
}

// demoEntity is a rigged scene entity without joint overrides
type demoEntity struct {
	rig *demoRig
}

func (e *demoEntity) Rig() (skelannot.Rig, bool) {
	return e.rig, true
}

func (e *demoEntity) JointOverrides() []skelannot.JointOverride {
	return nil
}

// demoRegistry exposes a fixed population of rigged entities
type demoRegistry struct {
	entities []skelannot.LabeledEntity
}

func (r *demoRegistry) LabeledEntities(frame int64) []skelannot.LabeledEntity {

	// advance the animation
	for _, le := range r.entities {
		le.Entity.(*demoEntity).rig.frame = frame
	}

	return r.entities
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	outFile := flag.String("o", "annotations.jsonl", "Annotation output file to write")
	overlayFile := flag.String("d", "overlay.png", "Debug overlay PNG for the final frame")
	frames := flag.Int("n", 90, "Number of frames to generate")

	flag.Parse()

	template := &skelannot.KeypointTemplate{
		ID:   "person-v1",
		Name: "Person",
		Points: []skelannot.TemplatePoint{
			{Label: "head", RigLabel: "head", RigAssociated: true},
			{Label: "leftHand", RigLabel: "leftHand", RigAssociated: true},
			{Label: "rightHand", RigLabel: "rightHand", RigAssociated: true},
		},
		Skeleton: []skelannot.SkeletonEdge{
			{A: 0, B: 1},
			{A: 0, B: 2},
		},
	}

	labels := skelannot.NewLabelConfig(map[uint32]skelannot.LabelEntry{
		1: {ID: 0, Name: "person"},
		2: {ID: 0, Name: "person"},
	})

	poses := skelannot.PoseTable{
		{Clip: "wave", At: skelannot.PoseWindows("waving",
			skelannot.PoseWindow{From: 0.0, To: 0.1, Label: "rest"})},
	}

	// orthographic style camera, 100 pixels per world unit
	proj := mat.NewDense(3, 4, []float64{
		100, 0, 0, 320,
		0, 100, 0, 40,
		0, 0, 0, 1,
	})

	camera, err := skelannot.NewPinholeCamera(proj, 480)

	if err != nil {
		log.Fatal("Error creating camera: ", err)
	}

	registry := &demoRegistry{
		entities: []skelannot.LabeledEntity{
			{InstanceID: 1, Entity: &demoEntity{rig: &demoRig{center: r3.Vec{X: -2}}}},
			{InstanceID: 2, Entity: &demoEntity{rig: &demoRig{center: r3.Vec{X: 1}}}},
		},
	}

	out, err := os.Create(*outFile)

	if err != nil {
		log.Fatal("Error creating output file: ", err)
	}

	defer out.Close()

	assembler, err := annotate.New(annotate.Config{
		Template: template,
		Labels:   labels,
		Registry: registry,
		Camera:   camera,
		Poses:    poses,
		Reporter: report.NewJSONWriter(out),
	})

	if err != nil {
		log.Fatal("Error setting up annotation: ", err)
	}

	overlay := image.NewRGBA(image.Rect(0, 0, 640, 480))

	for frame := int64(1); frame <= int64(*frames); frame++ {

		records := assembler.OnBeginRendering(frame)

		if frame == int64(*frames) {
			render.DrawRecords(overlay, template, records, 2)
		}
	}

	f, err := os.Create(*overlayFile)

	if err != nil {
		log.Fatal("Error creating overlay file: ", err)
	}

	defer f.Close()

	if err := png.Encode(f, overlay); err != nil {
		log.Fatal("Error encoding overlay: ", err)
	}

	log.Printf("wrote %d frames to %s, session %s", *frames, *outFile,
		assembler.SessionID())
}
