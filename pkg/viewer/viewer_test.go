package viewer

import (
	"testing"

	"realmview/pkg/config"
	"realmview/pkg/realm"
)

func newTestApp(t *testing.T, overrides *realm.RegionOverrides) *App {
	t.Helper()
	a, err := New(config.Load(""), overrides)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Pretend Layout ran for an 800x600 window.
	a.Layout(800, 600)
	return a
}

func TestApp_SelectAtPublishesEvent(t *testing.T) {
	a := newTestApp(t, nil)
	a.vp = NewViewport() // identity transform for predictable hits

	a.selectAt(5, 5)
	if a.selectedID != "c-0-0" {
		t.Fatalf("selectedID = %q, want c-0-0", a.selectedID)
	}

	select {
	case ev := <-a.Events():
		if ev.Level != realm.LevelCounty || ev.ID != "c-0-0" || ev.Info.TileCount != 1 {
			t.Errorf("event = %+v, want county c-0-0 with 1 tile", ev)
		}
	default:
		t.Error("no selection event published")
	}
}

func TestApp_SelectOutsideGridClears(t *testing.T) {
	a := newTestApp(t, nil)
	a.vp = NewViewport()

	a.selectAt(5, 5)
	a.selectAt(-50, -50)
	if a.selectedID != "" {
		t.Errorf("selectedID = %q, want cleared", a.selectedID)
	}
}

func TestApp_SetLevelClearsSelection(t *testing.T) {
	a := newTestApp(t, nil)
	a.vp = NewViewport()

	a.selectAt(5, 5)
	a.setLevel(realm.LevelDuchy)
	if a.level != realm.LevelDuchy {
		t.Errorf("level = %v, want duchy", a.level)
	}
	if a.selectedID != "" {
		t.Error("selection survived a level switch")
	}
}

func TestApp_SetOverridesIsolatesCaller(t *testing.T) {
	a := newTestApp(t, nil)

	ov := &realm.RegionOverrides{
		Counties: map[string]realm.RegionMeta{
			"c-0-0": {Name: "Origin"},
		},
	}
	a.SetOverrides(ov)

	// Mutating the caller's payload must not leak into the app.
	ov.Counties["c-0-0"] = realm.RegionMeta{Name: "Tampered"}
	info, ok := realm.Info(a.world, realm.LevelCounty, "c-0-0", a.overrides)
	if !ok || info.Name != "Origin" {
		t.Errorf("app info = (%+v, %v), want isolated name Origin", info, ok)
	}
}

func TestApp_SetOverridesDropsVanishedSelection(t *testing.T) {
	a := newTestApp(t, &realm.RegionOverrides{
		Counties: map[string]realm.RegionMeta{
			"c-0-0": {ParentMode: realm.ParentNone},
		},
	})
	a.level = realm.LevelDuchy
	a.selectedID = "d-orphan-c-0-0"

	a.SetOverrides(nil)
	if a.selectedID != "" {
		t.Errorf("selectedID = %q, want cleared after the orphan vanished", a.selectedID)
	}
}

func TestRenderer_ColorCache(t *testing.T) {
	w := realm.Build(8, 8, nil)
	r := NewRenderer()

	a := r.fillColor(realm.LevelCounty, "c-0-0", nil, w)
	b := r.fillColor(realm.LevelCounty, "c-0-0", nil, w)
	if a != b {
		t.Error("cached color differs between calls")
	}
	if len(r.colors) != 1 {
		t.Errorf("cache size = %d, want 1", len(r.colors))
	}

	r.InvalidateColors()
	if len(r.colors) != 0 {
		t.Error("InvalidateColors left entries behind")
	}
}
