package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Defaults for a fresh install. Window size fits an 8x8 demo grid with
// room for the HUD panel.
const (
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 768
	DefaultTileScale    = 1.0
	DefaultGridWidth    = 32
	DefaultGridHeight   = 24
)

// Config carries the user preferences that survive restarts. The region
// overrides payload is loaded separately, see overrides.go.
type Config struct {
	mu sync.Mutex
	v  *viper.Viper

	// path is empty when preferences are in-memory only.
	path string
}

var (
	current     *Config
	currentOnce sync.Once
)

// Current returns the process-wide preferences, initialising them from the
// default preference file on first use. A missing or unreadable file is not
// an error; defaults apply.
func Current() *Config {
	currentOnce.Do(func() {
		current = Load(defaultPrefsPath())
	})
	return current
}

// Load reads preferences from path. Any read failure falls back to
// built-in defaults; the path is still remembered so later saves create
// the file.
func Load(path string) *Config {
	v := viper.New()
	v.SetDefault("window.width", DefaultWindowWidth)
	v.SetDefault("window.height", DefaultWindowHeight)
	v.SetDefault("view.scale", DefaultTileScale)
	v.SetDefault("grid.width", DefaultGridWidth)
	v.SetDefault("grid.height", DefaultGridHeight)
	v.SetDefault("overrides.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	cfg := &Config{v: v, path: path}
	if path == "" {
		return cfg
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		// First run or corrupt file: keep defaults.
		return cfg
	}
	return cfg
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "realmview", "preferences.yaml")
}

func (c *Config) WindowSize() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.v.GetInt("window.width")
	h := c.v.GetInt("window.height")
	if w <= 0 || h <= 0 {
		return DefaultWindowWidth, DefaultWindowHeight
	}
	return w, h
}

// ViewScale is the saved zoom factor applied at startup.
func (c *Config) ViewScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.v.GetFloat64("view.scale")
	if s <= 0 {
		return DefaultTileScale
	}
	return s
}

// GridSize is the tile grid the viewer builds at startup.
func (c *Config) GridSize() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.v.GetInt("grid.width")
	h := c.v.GetInt("grid.height")
	if w <= 0 || h <= 0 {
		return DefaultGridWidth, DefaultGridHeight
	}
	return w, h
}

// OverridesPath points at the region overrides JSON file; empty means the
// built-in payload.
func (c *Config) OverridesPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetString("overrides.path")
}

func (c *Config) LogLevel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetString("log.level")
}

func (c *Config) LogFile() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetString("log.file")
}

// SetViewScale saves the zoom preference.
func (c *Config) SetViewScale(scale float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.Set("view.scale", scale)
	return c.save()
}

// SetWindowSize saves the window size preference.
func (c *Config) SetWindowSize(w, h int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.Set("window.width", w)
	c.v.Set("window.height", h)
	return c.save()
}

// save writes the file under c.mu; in-memory configs are a no-op.
func (c *Config) save() error {
	if c.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return c.v.WriteConfigAs(c.path)
}
