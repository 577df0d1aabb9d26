package annotate

import (
	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// Classifier matches an entity's current animation clip and normalized
// playback time against a configured table of labeled pose windows
type Classifier struct {
	table skelannot.PoseTable
}

// NewClassifier creates a classifier for the given pose table
func NewClassifier(table skelannot.PoseTable) *Classifier {
	return &Classifier{table: table}
}

// Classify returns the pose label for the entity's current animation
// state.  Classification is a pure function of the clip identity and
// normalized time evaluated against the table.  Entities without a rig,
// without an active clip, or whose clip has no table entry classify as
// unset
func (c *Classifier) Classify(cache *EntityCache) string {

	if cache.rig == nil {
		return result.PoseUnset
	}

	clip, ok := cache.rig.CurrentClip()

	if !ok {
		return result.PoseUnset
	}

	entry, ok := c.table.Lookup(clip)

	if !ok {
		return result.PoseUnset
	}

	return entry.At(cache.rig.NormalizedTime())
}
