package annotate

import (
	"log"
	"sync"

	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// overrideBinding is one resolved manual joint mapping
type overrideBinding struct {
	override skelannot.JointOverride
	// index is the template keypoint index the override resolved to
	index int
}

// EntityCache holds the per entity resolution result.  The eligibility,
// rig handle, and override bindings are computed once when the entity is
// first observed and never change for the life of the entry, only the per
// frame fields of the record are mutated afterwards
type EntityCache struct {
	instanceID uint32
	eligible   bool
	rig        skelannot.Rig
	overrides  []overrideBinding
	record     *result.Record
	// lastSeen is the resolver generation the entity was last observed
	// in, used for optional eviction
	lastSeen int64
}

// InstanceID returns the entity instance identifier the entry belongs to
func (c *EntityCache) InstanceID() uint32 {
	return c.instanceID
}

// Eligible reports whether the entity has at least one resolvable keypoint
// source for the active template
func (c *EntityCache) Eligible() bool {
	return c.eligible
}

// Record returns the entity's reusable annotation record.  It is nil for
// ineligible entities
func (c *EntityCache) Record() *result.Record {
	return c.record
}

// Resolver reconciles the active keypoint template against each entity's
// rig and joint overrides, caching the result per entity instance
type Resolver struct {
	template *skelannot.KeypointTemplate
	labels   *skelannot.LabelConfig
	entries  map[uint32]*EntityCache
	// gen is the current frame generation, advanced once per frame
	gen int64
	sync.Mutex
}

// NewResolver creates a resolver for the given active template and label
// configuration
func NewResolver(template *skelannot.KeypointTemplate,
	labels *skelannot.LabelConfig) *Resolver {

	return &Resolver{
		template: template,
		labels:   labels,
		entries:  make(map[uint32]*EntityCache),
	}
}

// Resolve returns the cache entry for the given entity instance, building
// it on first observation.  Resolution is idempotent, repeated calls for
// the same instance return the same entry without recomputing the mapping.
// Entities with no label entry or no resolvable keypoint source are cached
// as ineligible so the lookups are not repeated every frame
func (r *Resolver) Resolve(instanceID uint32, entity skelannot.Entity) *EntityCache {

	r.Lock()
	defer r.Unlock()

	if cache, exists := r.entries[instanceID]; exists {
		cache.lastSeen = r.gen
		return cache
	}

	cache := r.build(instanceID, entity)
	cache.lastSeen = r.gen
	r.entries[instanceID] = cache

	return cache
}

// build performs the one time eligibility and mapping computation
func (r *Resolver) build(instanceID uint32, entity skelannot.Entity) *EntityCache {

	cache := &EntityCache{instanceID: instanceID}

	entry, ok := r.labels.TryGetLabelEntry(instanceID)

	if !ok {
		// unlabeled entities are cached as a negative result
		return cache
	}

	cache.record = result.NewRecord(entry.ID, instanceID, r.template.ID,
		len(r.template.Points))

	if rig, ok := entity.Rig(); ok {
		cache.rig = rig
		cache.eligible = true
	}

	// bound tracks which template indices already have an override so the
	// first registered override wins on duplicates
	var bound map[int]bool

	for _, override := range entity.JointOverrides() {

		if !override.Targets(r.template.ID) {
			continue
		}

		// overrides referencing a label the template does not define are
		// skipped, partial rigs are permitted
		idx, ok := r.template.IndexOf(override.Label())

		if !ok {
			continue
		}

		if bound == nil {
			bound = make(map[int]bool)
		}

		if bound[idx] {
			log.Printf("entity %d: duplicate joint override for %q, keeping first",
				instanceID, override.Label())
			continue
		}

		bound[idx] = true

		cache.overrides = append(cache.overrides, overrideBinding{
			override: override,
			index:    idx,
		})

		cache.eligible = true
	}

	return cache
}

// NextGeneration advances the frame generation counter.  Called once at
// the start of each frame pass
func (r *Resolver) NextGeneration() {
	r.Lock()
	defer r.Unlock()

	r.gen++
}

// EvictUnseen removes cache entries for entities not observed within the
// last maxAge frame generations and returns the number evicted.  The cache
// otherwise grows with the number of distinct labeled entities and is never
// reclaimed, which suits a bounded scene population.  Streaming simulations
// that continually spawn entities should evict
func (r *Resolver) EvictUnseen(maxAge int64) int {

	r.Lock()
	defer r.Unlock()

	evicted := 0

	for id, cache := range r.entries {
		if r.gen-cache.lastSeen > maxAge {
			delete(r.entries, id)
			evicted++
		}
	}

	return evicted
}

// Len returns the number of cached entity entries
func (r *Resolver) Len() int {
	r.Lock()
	defer r.Unlock()

	return len(r.entries)
}
