// Package config loads palettegen's optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jmylchreest/palettegen/internal/colour"
)

// EnvConfigPath names the environment variable that may point at the config file.
const EnvConfigPath = "PALETTEGEN_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// FormatJSON is the machine-readable output format, accepted alongside the
// colour display modes.
const FormatJSON = "json"

// Config holds the palettegen configuration.
type Config struct {
	Colours     int    `toml:"colours"`      // Palette size, 1-20
	HighVariety bool   `toml:"high_variety"` // Coarser 64-wide buckets
	Muller      bool   `toml:"muller"`       // Harmonise hues
	HueOffset   int    `toml:"hue_offset"`   // Hue slider, 0-100
	Format      string `toml:"format"`       // hex, rgb, hsl or json
	CacheDir    string `toml:"cache_dir"`    // Remote image cache; empty disables caching

	Watch  WatchConfig  `toml:"watch"`
	Server ServerConfig `toml:"server"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce string `toml:"debounce"` // e.g. "250ms"
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MaxUploadMB int64  `toml:"max_upload_mb"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Colours: colour.DefaultColours,
		Format:  string(colour.DisplayHex),
		Watch: WatchConfig{
			Debounce: "250ms",
		},
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			MaxUploadMB: 20,
		},
	}
}

// Dir returns the palettegen configuration directory under
// $XDG_CONFIG_HOME, falling back to the platform config directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "palettegen"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "palettegen"), nil
}

// Path returns the config file location: $PALETTEGEN_CONFIG if set,
// otherwise config.toml in Dir.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at path on top of the defaults. An empty path
// resolves through Path, and a missing file there yields the defaults; an
// explicitly named file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
		explicit = os.Getenv(EnvConfigPath) != ""
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return Config{}, fmt.Errorf("%w: %s: %s", ErrInvalid, path, perr.Message)
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Colours < colour.MinColours || c.Colours > colour.MaxColours {
		return fmt.Errorf("%w: colours must be between %d and %d, got %d", ErrInvalid, colour.MinColours, colour.MaxColours, c.Colours)
	}
	if c.HueOffset < 0 || c.HueOffset > colour.HueSliderMax {
		return fmt.Errorf("%w: hue_offset must be between 0 and %d, got %d", ErrInvalid, colour.HueSliderMax, c.HueOffset)
	}
	if c.Format != FormatJSON {
		if _, err := colour.ParseDisplayMode(c.Format); err != nil {
			return fmt.Errorf("%w: format: %v", ErrInvalid, err)
		}
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("%w: watch.debounce: %v", ErrInvalid, err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port out of range: %d", ErrInvalid, c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: server.max_upload_mb must be positive", ErrInvalid)
	}
	return nil
}

// Settings converts the palette keys into generator settings.
func (c Config) Settings() colour.Settings {
	return colour.Settings{
		Count:       colour.ClampCount(c.Colours),
		HighVariety: c.HighVariety,
		Muller:      c.Muller,
		HueOffset:   colour.HueOffsetFromSlider(c.HueOffset),
	}
}

// DebounceDuration returns the parsed watch debounce (default: 250ms).
func (c Config) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(c.Watch.Debounce); err == nil && d > 0 {
		return d
	}
	return 250 * time.Millisecond
}

// Addr returns the server listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// MaxUploadBytes returns the upload limit in bytes.
func (c ServerConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
