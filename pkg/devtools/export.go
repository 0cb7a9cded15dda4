package devtools

import (
	"encoding/json"
	"os"

	"realmview/pkg/realm"
)

// ExportOverrides writes the pruned overrides snapshot as indented JSON,
// suitable for re-loading as an overrides file. No-op entries are dropped.
func ExportOverrides(overrides *realm.RegionOverrides, path string) error {
	snap := overrides.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
