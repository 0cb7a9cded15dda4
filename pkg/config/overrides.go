package config

import (
	"encoding/json"
	"os"

	"realmview/pkg/realm"
)

// defaultOverridesJSON is the payload shipped with the binary: a few named
// regions so a first launch shows the override machinery at work. The
// parentId key uses presence semantics (absent / null / id), so the payload
// is kept as JSON rather than Go literals.
var defaultOverridesJSON = []byte(`{
  "duchies": {
    "d-0-0": {"name": "Westmark", "color": "oklch(60% 0.1 200)"},
    "d-1-1": {"name": "Sunfell", "color": "#b08030"}
  },
  "counties": {
    "c-7-7": {"name": "Far Hold", "parentId": null}
  },
  "kingdoms": {
    "k-0-0": {"name": "Northreach"}
  },
  "empire": {"name": "The Realm"}
}`)

// DefaultOverrides returns a fresh copy of the built-in payload. Each call
// decodes anew so callers can mutate the result freely.
func DefaultOverrides() *realm.RegionOverrides {
	ov := &realm.RegionOverrides{}
	// The payload is a compile-time constant; a decode failure here is a
	// programming error.
	if err := json.Unmarshal(defaultOverridesJSON, ov); err != nil {
		panic(err)
	}
	return ov
}

// LoadOverrides reads a region overrides file. An empty path yields the
// built-in defaults; a missing or malformed file is an error so the caller
// can report it and fall back.
func LoadOverrides(path string) (*realm.RegionOverrides, error) {
	if path == "" {
		return DefaultOverrides(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ov := &realm.RegionOverrides{}
	if err := json.Unmarshal(data, ov); err != nil {
		return nil, err
	}
	return ov, nil
}
