package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"realmview/pkg/config"
	"realmview/pkg/devtools"
	"realmview/pkg/logs"
	"realmview/pkg/realm"
	"realmview/pkg/viewer"
)

func initGotext() {
	gotext.Configure("locales", "en_GB", "realmview")
}

func parseLevel(s string) (realm.Level, bool) {
	for _, level := range realm.AllLevels() {
		if level.String() == s {
			return level, true
		}
	}
	return 0, false
}

// loadOverrides resolves the overrides payload: the -overrides flag wins
// over the preference, and a broken file degrades to the built-in defaults.
func loadOverrides(cfg *config.Config, flagPath string) *realm.RegionOverrides {
	path := flagPath
	if path == "" {
		path = cfg.OverridesPath()
	}
	overrides, err := config.LoadOverrides(path)
	if err != nil {
		logs.Warn("could not load overrides, using built-in defaults",
			zap.String("path", path), zap.Error(err))
		return config.DefaultOverrides()
	}
	return overrides
}

func main() {
	prefsPath := flag.String("prefs", "", "preferences file (default: per-user config dir)")
	overridesPath := flag.String("overrides", "", "region overrides JSON file")
	dumpPath := flag.String("dump", "", "write a partition dump to this file and exit")
	printLevel := flag.String("print", "", "print one level's region map to the terminal and exit (county/duchy/kingdom/empire)")
	exportPath := flag.String("export-overrides", "", "write the pruned overrides snapshot to this file and exit")
	flag.Parse()

	var cfg *config.Config
	if *prefsPath != "" {
		cfg = config.Load(*prefsPath)
	} else {
		cfg = config.Current()
	}

	logs.Init("realmview", logs.Options{Level: cfg.LogLevel(), File: cfg.LogFile()})
	defer logs.Sync()

	initGotext()

	overrides := loadOverrides(cfg, *overridesPath)

	if *dumpPath != "" || *printLevel != "" || *exportPath != "" {
		runHeadless(cfg, overrides, *dumpPath, *printLevel, *exportPath)
		return
	}

	app, err := viewer.New(cfg, overrides)
	if err != nil {
		logs.Fatal("could not start viewer", zap.Error(err))
	}

	// Drain selection events; external consumers would hook in here.
	go func() {
		for ev := range app.Events() {
			logs.Info("selection event",
				zap.String("level", ev.Level.String()),
				zap.String("id", ev.ID),
				zap.String("name", ev.Info.Name),
				zap.Int("tiles", ev.Info.TileCount))
		}
	}()

	w, h := cfg.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Realmview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		logs.Fatal("viewer exited", zap.Error(err))
	}
}

// runHeadless serves the non-graphical modes: partition dump, terminal
// print and overrides export.
func runHeadless(cfg *config.Config, overrides *realm.RegionOverrides, dumpPath, printLevel, exportPath string) {
	gw, gh := cfg.GridSize()
	w := realm.Build(gw, gh, overrides)

	if dumpPath != "" {
		if err := devtools.DumpPartition(w, overrides, dumpPath); err != nil {
			logs.Error("partition dump failed", zap.Error(err))
			os.Exit(1)
		}
		fmt.Println("partition dump written to", dumpPath)
	}
	if printLevel != "" {
		level, ok := parseLevel(printLevel)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown level %q\n", printLevel)
			os.Exit(2)
		}
		devtools.PrintPartition(w, level)
	}
	if exportPath != "" {
		if err := devtools.ExportOverrides(overrides, exportPath); err != nil {
			logs.Error("overrides export failed", zap.Error(err))
			os.Exit(1)
		}
		fmt.Println("overrides written to", exportPath)
	}
}
