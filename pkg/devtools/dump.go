// Package devtools provides developer tools for inspecting the realm
// partition outside the graphical viewer.
package devtools

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/term"

	"realmview/pkg/realm"
)

// legendRunes cycle across region ids; large grids reuse symbols.
const legendRunes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// terminal styles cycled alongside the legend for PrintPartition.
var legendStyles = []color.Style{
	{color.FgGreen},
	{color.FgYellow},
	{color.FgBlue},
	{color.FgMagenta},
	{color.FgCyan},
	{color.FgRed},
	{color.FgGreen, color.OpBold},
	{color.FgYellow, color.OpBold},
	{color.FgBlue, color.OpBold},
	{color.FgMagenta, color.OpBold},
}

// regionLegend assigns each distinct region id of a level a stable index,
// sorted by id so repeated dumps agree.
func regionLegend(w *realm.WorldMap, level realm.Level) (ids []string, index map[string]int) {
	seen := mapset.New[string]()
	for i := range w.Tiles {
		seen.Put(w.Tiles[i].RegionIDAt(level))
	}
	seen.Each(func(id string) {
		ids = append(ids, id)
	})
	sort.Strings(ids)

	index = make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return ids, index
}

// DumpPartition writes a full debug dump to path: metadata, then one
// legend and symbol grid per level. Format is human- and LLM-readable
// (sections, key: value, consistent structure).
func DumpPartition(w *realm.WorldMap, overrides *realm.RegionOverrides, path string) error {
	if w == nil {
		return fmt.Errorf("no world map")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "=== REALM PARTITION DUMP ===")
	fmt.Fprintln(f, "")
	fmt.Fprintln(f, "--- Metadata ---")
	fmt.Fprintf(f, "grid_width: %d\n", w.Width)
	fmt.Fprintf(f, "grid_height: %d\n", w.Height)
	fmt.Fprintf(f, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	fmt.Fprintf(f, "counties: %d\n", len(w.Counties))
	fmt.Fprintf(f, "duchies: %d\n", len(w.Duchies))
	fmt.Fprintf(f, "kingdoms: %d\n", len(w.Kingdoms))
	fmt.Fprintln(f, "")

	for _, level := range realm.AllLevels() {
		ids, index := regionLegend(w, level)

		fmt.Fprintf(f, "--- Level: %s (%d regions) ---\n", level, len(ids))
		for i, id := range ids {
			line := fmt.Sprintf("%c = %s", legendRunes[i%len(legendRunes)], id)
			if info, ok := realm.Info(w, level, id, overrides); ok {
				if info.Name != id {
					line += fmt.Sprintf(" %q", info.Name)
				}
				line += fmt.Sprintf(" tiles: %d", info.TileCount)
				if info.Parent != "" {
					line += fmt.Sprintf(" parent: %s", info.Parent)
				}
			}
			fmt.Fprintln(f, line)
		}
		fmt.Fprintln(f, "")

		for y := 0; y < w.Height; y++ {
			for x := 0; x < w.Width; x++ {
				tile := w.TileAt(x, y)
				fmt.Fprintf(f, "%c", legendRunes[index[tile.RegionIDAt(level)]%len(legendRunes)])
			}
			fmt.Fprintln(f)
		}
		fmt.Fprintln(f, "")
	}

	fmt.Fprintln(f, "=== END PARTITION DUMP ===")
	return f.Sync()
}

// PrintPartition prints one level's region map to stdout with a colored
// symbol per region, clipped to the terminal width.
func PrintPartition(w *realm.WorldMap, level realm.Level) {
	if w == nil || !level.IsValid() {
		return
	}
	_, index := regionLegend(w, level)

	width := w.Width
	if termWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && termWidth > 0 && termWidth < width {
		width = termWidth
	}

	for y := 0; y < w.Height; y++ {
		for x := 0; x < width; x++ {
			i := index[w.TileAt(x, y).RegionIDAt(level)]
			style := legendStyles[i%len(legendStyles)]
			style.Print(string(legendRunes[i%len(legendRunes)]))
		}
		fmt.Println()
	}
}
