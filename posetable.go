package skelannot

// PoseFunc maps a normalized playback time in [0,1) to a pose label
type PoseFunc func(t float64) string

// PoseClip associates an animation clip with a function evaluating the pose
// label at a normalized playback time
type PoseClip struct {
	// Clip is the animation clip name the entry applies to
	Clip string
	// At evaluates the pose label for a normalized playback time
	At PoseFunc
}

// PoseTable is an ordered table of labeled pose clips.  Table order matters,
// the first entry registered for a clip wins when duplicates occur
type PoseTable []PoseClip

// Lookup returns the first table entry configured for the given clip
func (pt PoseTable) Lookup(clip string) (PoseClip, bool) {

	for _, entry := range pt {
		if entry.Clip == clip {
			return entry, true
		}
	}

	return PoseClip{}, false
}

// PoseWindow labels a half open interval [From,To) of normalized playback
// time within a clip
type PoseWindow struct {
	From  float64
	To    float64
	Label string
}

// PoseWindows builds a PoseFunc from ordered time windows.  Times outside
// every window evaluate to the fallback label
func PoseWindows(fallback string, windows ...PoseWindow) PoseFunc {

	return func(t float64) string {
		for _, w := range windows {
			if t >= w.From && t < w.To {
				return w.Label
			}
		}

		return fallback
	}
}
