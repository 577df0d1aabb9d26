package skelannot

import (
	"encoding/json"
	"fmt"
	"os"
)

// LabelEntry is the dataset label assigned to an entity
type LabelEntry struct {
	// ID is the numeric label/class identifier used in exported annotations
	ID int `json:"id"`
	// Name is the human readable label name
	Name string `json:"name"`
}

// LabelConfig maps entity instance identifiers to their dataset labels
type LabelConfig struct {
	entries map[uint32]LabelEntry
}

// NewLabelConfig creates a label configuration from the given entries
func NewLabelConfig(entries map[uint32]LabelEntry) *LabelConfig {

	cpy := make(map[uint32]LabelEntry, len(entries))

	for id, entry := range entries {
		cpy[id] = entry
	}

	return &LabelConfig{entries: cpy}
}

// TryGetLabelEntry returns the label entry for the given entity instance
// identifier, if one has been configured
func (c *LabelConfig) TryGetLabelEntry(instanceID uint32) (LabelEntry, bool) {
	entry, ok := c.entries[instanceID]
	return entry, ok
}

// Len returns the number of configured label entries
func (c *LabelConfig) Len() int {
	return len(c.entries)
}

// labelConfigEntry is the JSON file representation of a single labeled entity
type labelConfigEntry struct {
	InstanceID uint32 `json:"instanceId"`
	ID         int    `json:"id"`
	Name       string `json:"name"`
}

// LoadLabelConfig reads the entity label configuration from the given JSON
// file.  It should contain a list of objects each carrying instanceId, id,
// and name fields
func LoadLabelConfig(file string) (*LabelConfig, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	var raw []labelConfigEntry

	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding label config: %w", err)
	}

	entries := make(map[uint32]LabelEntry, len(raw))

	for _, e := range raw {
		entries[e.InstanceID] = LabelEntry{ID: e.ID, Name: e.Name}
	}

	return &LabelConfig{entries: entries}, nil
}
