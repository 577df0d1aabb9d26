package skelannot

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
)

// TemplatePoint describes a single named keypoint in a template.  The index
// of a point in the template's Points sequence is its canonical keypoint
// index and is stable for the template's lifetime.
type TemplatePoint struct {
	// Label is the unique name of the keypoint, eg: "leftWrist"
	Label string `json:"label"`
	// Color to render the joint with in debug overlays
	Color color.RGBA `json:"color"`
	// RigLabel is the name of the rig bone this keypoint derives from
	RigLabel string `json:"rigLabel,omitempty"`
	// RigAssociated indicates the keypoint can be derived from a rig bone
	RigAssociated bool `json:"rigAssociated"`
}

// SkeletonEdge defines a connection between two keypoints given by their
// template indices.  Edges are unordered pairs
type SkeletonEdge struct {
	A int `json:"joint1"`
	B int `json:"joint2"`
	// Color to render the edge with in debug overlays
	Color color.RGBA `json:"color"`
}

// KeypointTemplate is the immutable description of a keypoint set and its
// skeletal topology
type KeypointTemplate struct {
	// ID is the stable template identifier
	ID string `json:"templateId"`
	// Name is the human readable template name
	Name string `json:"templateName"`
	// Points is the ordered keypoint sequence
	Points []TemplatePoint `json:"points"`
	// Skeleton is the edge list connecting keypoints
	Skeleton []SkeletonEdge `json:"skeleton"`

	// index maps point label to template index, built once by Validate
	index map[string]int
}

// Validate checks the template topology and builds the label lookup table.
// Every skeleton edge must reference point indices that exist in the point
// sequence and point labels must be unique
func (t *KeypointTemplate) Validate() error {

	if t.ID == "" {
		return fmt.Errorf("template has no identifier")
	}

	if len(t.Points) == 0 {
		return fmt.Errorf("template %s has no points", t.ID)
	}

	t.index = make(map[string]int, len(t.Points))

	for i, pt := range t.Points {
		if pt.Label == "" {
			return fmt.Errorf("template %s: point %d has no label", t.ID, i)
		}

		if _, exists := t.index[pt.Label]; exists {
			return fmt.Errorf("template %s: duplicate point label %q", t.ID, pt.Label)
		}

		t.index[pt.Label] = i
	}

	for i, edge := range t.Skeleton {
		if edge.A < 0 || edge.A >= len(t.Points) ||
			edge.B < 0 || edge.B >= len(t.Points) {
			return fmt.Errorf("template %s: skeleton edge %d references point (%d,%d) outside range [0,%d)",
				t.ID, i, edge.A, edge.B, len(t.Points))
		}
	}

	return nil
}

// IndexOf returns the template index of the keypoint with the given label
func (t *KeypointTemplate) IndexOf(label string) (int, bool) {
	idx, ok := t.index[label]
	return idx, ok
}

// LoadTemplate reads a keypoint template from the given JSON file and
// validates it
func LoadTemplate(file string) (*KeypointTemplate, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	var tpl KeypointTemplate

	if err := json.NewDecoder(f).Decode(&tpl); err != nil {
		return nil, fmt.Errorf("error decoding template: %w", err)
	}

	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	return &tpl, nil
}
