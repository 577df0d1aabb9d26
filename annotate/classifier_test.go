package annotate

import (
	"testing"

	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate/result"
)

func testPoses() skelannot.PoseTable {
	return skelannot.PoseTable{
		{Clip: "walk", At: skelannot.PoseWindows("walking",
			skelannot.PoseWindow{From: 0.4, To: 0.6, Label: "midstride"})},
		{Clip: "sit", At: func(t float64) string { return "sitting" }},
		// duplicate clip registration, first entry must win
		{Clip: "walk", At: func(t float64) string { return "wrong" }},
	}
}

func TestClassify(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())
	c := NewClassifier(testPoses())

	tests := []struct {
		name     string
		rig      *fakeRig
		expected string
	}{
		{"no rig", nil, result.PoseUnset},
		{"no active clip", &fakeRig{}, result.PoseUnset},
		{"unknown clip", &fakeRig{clip: "jump", time: 0.5}, result.PoseUnset},
		{"window match", &fakeRig{clip: "walk", time: 0.5}, "midstride"},
		{"window fallback", &fakeRig{clip: "walk", time: 0.9}, "walking"},
		{"duplicate clip first wins", &fakeRig{clip: "walk", time: 0.5}, "midstride"},
		{"constant pose", &fakeRig{clip: "sit", time: 0.1}, "sitting"},
	}

	for _, tc := range tests {

		entity := &fakeEntity{rig: tc.rig}

		if tc.rig == nil {
			// keep the entity eligible without a rig
			entity.overrides = []skelannot.JointOverride{
				&fakeOverride{template: "person-v1", label: "head"},
			}
		}

		cache := r.build(7, entity)

		if got := c.Classify(cache); got != tc.expected {
			t.Errorf("%s: expected pose %q, got %q", tc.name, tc.expected, got)
		}
	}
}

func TestClassifyIsPure(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())
	c := NewClassifier(testPoses())

	cache := r.Resolve(7, &fakeEntity{rig: &fakeRig{clip: "walk", time: 0.45}})

	first := c.Classify(cache)

	for i := 0; i < 10; i++ {
		if got := c.Classify(cache); got != first {
			t.Fatalf("classification not stable: %q then %q", first, got)
		}
	}
}
