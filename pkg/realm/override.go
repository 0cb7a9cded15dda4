package realm

import (
	"encoding/json"
	"strings"
)

// ParentMode distinguishes the three states of a parent override: the
// parentId key absent, the key present with an explicit null, and the key
// present with an explicit id. Conflating the first two breaks orphan
// detachment, so this is a tri-state rather than a plain nullable field.
type ParentMode int

const (
	// ParentUnspecified means no parent override: the natural parent applies.
	ParentUnspecified ParentMode = iota
	// ParentNone detaches the region into a synthesized orphan parent.
	ParentNone
	// ParentTo reparents the region under ParentID.
	ParentTo
)

// RegionMeta is the caller-supplied override payload for one region. All
// fields are optional; an all-empty RegionMeta is equivalent to no override.
type RegionMeta struct {
	Name  string
	Color string

	ParentMode ParentMode
	ParentID   string // meaningful only when ParentMode == ParentTo
}

// IsZero reports whether the override carries nothing: name and color are
// empty after trimming and the parent key was not specified. Note that an
// explicit null parent is NOT zero; key presence matters.
func (m RegionMeta) IsZero() bool {
	return strings.TrimSpace(m.Name) == "" &&
		strings.TrimSpace(m.Color) == "" &&
		m.ParentMode == ParentUnspecified
}

// regionMetaJSON is the wire shape. ParentID uses a RawMessage pointer so
// that an absent key, an explicit null and an explicit string stay
// distinguishable through a round trip.
type regionMetaJSON struct {
	Name     string           `json:"name,omitempty"`
	Color    string           `json:"color,omitempty"`
	ParentID *json.RawMessage `json:"parentId,omitempty"`
}

// MarshalJSON encodes the tri-state parent: the key is omitted when
// unspecified, null when the region is detached, a string otherwise.
func (m RegionMeta) MarshalJSON() ([]byte, error) {
	out := regionMetaJSON{Name: m.Name, Color: m.Color}
	switch m.ParentMode {
	case ParentNone:
		raw := json.RawMessage("null")
		out.ParentID = &raw
	case ParentTo:
		enc, err := json.Marshal(m.ParentID)
		if err != nil {
			return nil, err
		}
		raw := json.RawMessage(enc)
		out.ParentID = &raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the tri-state parent. A malformed parentId value
// (neither null nor a string) is treated as unspecified rather than as an
// error.
func (m *RegionMeta) UnmarshalJSON(data []byte) error {
	var in regionMetaJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	m.Name = in.Name
	m.Color = in.Color
	m.ParentMode = ParentUnspecified
	m.ParentID = ""
	if in.ParentID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(string(*in.ParentID))
	if trimmed == "null" {
		m.ParentMode = ParentNone
		return nil
	}
	var id string
	if err := json.Unmarshal(*in.ParentID, &id); err == nil {
		m.ParentMode = ParentTo
		m.ParentID = id
	}
	return nil
}

// RegionOverrides holds user-supplied metadata keyed by level and region id.
// The empire, being a singleton, has at most one override. The model treats
// overrides as read-only input; editing happens on the caller's side
// followed by a rebuild.
type RegionOverrides struct {
	Counties map[string]RegionMeta `json:"counties,omitempty"`
	Duchies  map[string]RegionMeta `json:"duchies,omitempty"`
	Kingdoms map[string]RegionMeta `json:"kingdoms,omitempty"`
	Empire   *RegionMeta           `json:"empire,omitempty"`
}

// levelMap returns the override table for a level. Empire is handled
// separately by callers since it is not keyed by id.
func (o *RegionOverrides) levelMap(level Level) map[string]RegionMeta {
	switch level {
	case LevelCounty:
		return o.Counties
	case LevelDuchy:
		return o.Duchies
	case LevelKingdom:
		return o.Kingdoms
	}
	return nil
}

// Lookup returns the effective override for a region, if one exists. An
// override whose fields are all empty counts as absent. Safe on a nil
// receiver.
func (o *RegionOverrides) Lookup(level Level, id string) (RegionMeta, bool) {
	if o == nil {
		return RegionMeta{}, false
	}
	if level == LevelEmpire {
		if o.Empire == nil || o.Empire.IsZero() {
			return RegionMeta{}, false
		}
		return *o.Empire, true
	}
	m := o.levelMap(level)
	if m == nil {
		return RegionMeta{}, false
	}
	meta, ok := m[id]
	if !ok || meta.IsZero() {
		return RegionMeta{}, false
	}
	return meta, true
}

// Set stores an override, pruning on write: a zero meta removes any existing
// entry so that empty form submissions never accumulate as no-op records.
func (o *RegionOverrides) Set(level Level, id string, meta RegionMeta) {
	if level == LevelEmpire {
		if meta.IsZero() {
			o.Empire = nil
			return
		}
		cp := meta
		o.Empire = &cp
		return
	}
	if meta.IsZero() {
		delete(o.levelMap(level), id)
		return
	}
	switch level {
	case LevelCounty:
		if o.Counties == nil {
			o.Counties = make(map[string]RegionMeta)
		}
		o.Counties[id] = meta
	case LevelDuchy:
		if o.Duchies == nil {
			o.Duchies = make(map[string]RegionMeta)
		}
		o.Duchies[id] = meta
	case LevelKingdom:
		if o.Kingdoms == nil {
			o.Kingdoms = make(map[string]RegionMeta)
		}
		o.Kingdoms[id] = meta
	}
}

// Clone returns a deep copy. Callers that received a shared default payload
// must clone before editing their working state.
func (o *RegionOverrides) Clone() *RegionOverrides {
	if o == nil {
		return &RegionOverrides{}
	}
	cp := &RegionOverrides{}
	cp.Counties = cloneMetaMap(o.Counties)
	cp.Duchies = cloneMetaMap(o.Duchies)
	cp.Kingdoms = cloneMetaMap(o.Kingdoms)
	if o.Empire != nil {
		e := *o.Empire
		cp.Empire = &e
	}
	return cp
}

func cloneMetaMap(m map[string]RegionMeta) map[string]RegionMeta {
	if m == nil {
		return nil
	}
	cp := make(map[string]RegionMeta, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Snapshot returns a pruned deep copy suitable for serialization: entries
// that carry no effective override are dropped and empty tables are nilled
// out so they vanish from the JSON form.
func (o *RegionOverrides) Snapshot() *RegionOverrides {
	snap := &RegionOverrides{}
	if o == nil {
		return snap
	}
	snap.Counties = pruneMetaMap(o.Counties)
	snap.Duchies = pruneMetaMap(o.Duchies)
	snap.Kingdoms = pruneMetaMap(o.Kingdoms)
	if o.Empire != nil && !o.Empire.IsZero() {
		e := *o.Empire
		snap.Empire = &e
	}
	return snap
}

func pruneMetaMap(m map[string]RegionMeta) map[string]RegionMeta {
	var out map[string]RegionMeta
	for k, v := range m {
		if v.IsZero() {
			continue
		}
		if out == nil {
			out = make(map[string]RegionMeta, len(m))
		}
		out[k] = v
	}
	return out
}
