package annotate

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visiondatakit/go-skelannot"
)

func TestResolveUnlabeledEntity(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())

	entity := &fakeEntity{rig: &fakeRig{}}

	cache := r.Resolve(99, entity)

	if cache.Eligible() {
		t.Errorf("entity without a label entry must be ineligible")
	}

	if r.Len() != 1 {
		t.Errorf("negative result must still be cached, got %d entries", r.Len())
	}

	if r.Resolve(99, entity) != cache {
		t.Errorf("repeated resolve must return the cached entry")
	}
}

func TestResolveRigOnly(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())

	cache := r.Resolve(7, &fakeEntity{rig: &fakeRig{}})

	if !cache.Eligible() {
		t.Errorf("entity with a rig binding must be eligible")
	}

	if cache.rig == nil {
		t.Errorf("rig handle not stored")
	}

	rec := cache.Record()

	if rec == nil {
		t.Fatalf("eligible entity has no record")
	}

	if rec.LabelID != 3 || rec.InstanceID != 7 || rec.TemplateID != "person-v1" {
		t.Errorf("record identity wrong: %+v", rec)
	}

	if len(rec.Keypoints) != 3 {
		t.Fatalf("record must be sized to template point count, got %d", len(rec.Keypoints))
	}

	for i, kp := range rec.Keypoints {
		if kp.Index != i {
			t.Errorf("keypoint %d has index %d", i, kp.Index)
		}
	}
}

func TestResolveOverrideOnly(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())

	cache := r.Resolve(7, &fakeEntity{
		overrides: []skelannot.JointOverride{
			&fakeOverride{template: "person-v1", label: "rightHand"},
		},
	})

	if !cache.Eligible() {
		t.Errorf("entity with a resolvable override must be eligible")
	}

	if len(cache.overrides) != 1 || cache.overrides[0].index != 2 {
		t.Errorf("override binding wrong: %+v", cache.overrides)
	}
}

func TestResolveNeitherSource(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())

	cache := r.Resolve(7, &fakeEntity{})

	if cache.Eligible() {
		t.Errorf("entity with neither rig nor overrides must be ineligible")
	}
}

func TestResolveSkipsForeignAndUnknownOverrides(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())

	cache := r.Resolve(7, &fakeEntity{
		overrides: []skelannot.JointOverride{
			// targets a different template
			&fakeOverride{template: "dog-v1", label: "head"},
			// label the template does not define
			&fakeOverride{template: "person-v1", label: "tail"},
		},
	})

	if cache.Eligible() {
		t.Errorf("unresolvable overrides must not make the entity eligible")
	}

	if len(cache.overrides) != 0 {
		t.Errorf("expected no override bindings, got %d", len(cache.overrides))
	}
}

func TestResolveDuplicateOverrideFirstWins(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())

	first := &fakeOverride{template: "person-v1", label: "head", pos: r3.Vec{X: 1}}
	second := &fakeOverride{template: "person-v1", label: "head", pos: r3.Vec{X: 2}}

	cache := r.Resolve(7, &fakeEntity{
		overrides: []skelannot.JointOverride{first, second},
	})

	if len(cache.overrides) != 1 {
		t.Fatalf("duplicate override must be dropped, got %d bindings", len(cache.overrides))
	}

	if cache.overrides[0].override != first {
		t.Errorf("first registered override must win")
	}
}

func TestResolveIdempotent(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())

	entity := &fakeEntity{
		rig: &fakeRig{},
		overrides: []skelannot.JointOverride{
			&fakeOverride{template: "person-v1", label: "rightHand"},
		},
	}

	a := r.Resolve(7, entity)
	b := r.Resolve(7, entity)

	if a != b {
		t.Errorf("resolve must return the same cache entry")
	}

	if entity.overrideCalls != 1 {
		t.Errorf("mapping must be computed exactly once, overrides enumerated %d times",
			entity.overrideCalls)
	}
}

func TestEvictUnseen(t *testing.T) {

	r := NewResolver(testTemplate(), testLabels())

	entity := &fakeEntity{rig: &fakeRig{}}

	r.NextGeneration()
	r.Resolve(7, entity)

	// entity goes unobserved for three generations
	for i := 0; i < 3; i++ {
		r.NextGeneration()
	}

	if n := r.EvictUnseen(5); n != 0 {
		t.Errorf("entity within max age evicted")
	}

	if n := r.EvictUnseen(2); n != 1 {
		t.Errorf("expected 1 eviction, got %d", n)
	}

	if r.Len() != 0 {
		t.Errorf("cache entry not removed")
	}
}
