package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"blink/engine"
	"blink/log"
	"blink/overlay"
)

// Config is the immutable startup configuration. Changing the file
// takes effect on the next launch; there is no live reload.
type Config struct {
	Host     string
	Password string
	Engine   engine.Options
	Layout   overlay.Layout
}

// defaultValues mirrors the stock behavior: a small red dot in the
// top-right corner at half opacity, fades on, flash off, Saved.wav at
// unity gain.
var defaultValues = map[string]any{
	"obs_host":     "localhost:4455",
	"obs_password": "",

	"corner_rec":      "top-right",
	"corner_buf":      "top-right",
	"size":            10,
	"margin":          10,
	"opacity":         50, // percent
	"bg_opacity":      50,
	"bg_size_percent": 300,

	"color_rec":        "#FF5555",
	"color_rec_paused": "#FFAA00",
	"color_buf":        "#55FF55",
	"color_buf_saved":  "#5555FF",

	"fade_effect":        true,
	"fade_duration":      "300ms",
	"crossfade_duration": "200ms",
	"saved_duration":     "1.5s",

	"flash_on_save":  false,
	"flash_color":    "#FFFFFF",
	"flash_opacity":  100,
	"flash_duration": "200ms",

	"border_rec":              false,
	"border_rec_paused":       true,
	"border_buf":              false,
	"border_buf_saved":        true,
	"border_color_rec":        "#FF5555",
	"border_color_rec_paused": "#FFAA00",
	"border_color_buf":        "#55FF55",
	"border_color_buf_saved":  "#5555FF",
	"border_width":            5,

	"save_sound_path":   "Saved.wav",
	"save_sound_volume": 100,
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "blink", "blink.toml"), nil
}

// Load reads the TOML config at path, falling back to the built-in
// defaults for anything missing or invalid. A missing file is normal
// first-run behavior and only logs a warning; an unreadable or
// malformed file is an error.
func Load(path string) (Config, error) {
	v := viper.New()
	for key, val := range defaultValues {
		v.SetDefault(key, val)
	}

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			log.Warnf("no config dir: %v, using defaults", err)
			return build(v, ""), nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			log.Warnf("config file %s not found, using defaults", path)
			return build(v, ""), nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return build(v, filepath.Dir(path)), nil
}

func build(v *viper.Viper, baseDir string) Config {
	opts := engine.Options{
		Opacity:        pct(v.GetFloat64("opacity"), 1),
		RecColor:       colorKey(v, "color_rec"),
		RecPausedColor: colorKey(v, "color_rec_paused"),
		BufColor:       colorKey(v, "color_buf"),
		BufSavedColor:  colorKey(v, "color_buf_saved"),

		FadeEnabled:       v.GetBool("fade_effect"),
		FadeDuration:      v.GetDuration("fade_duration"),
		CrossFadeDuration: v.GetDuration("crossfade_duration"),
		SavedDuration:     v.GetDuration("saved_duration"),

		FlashEnabled:  v.GetBool("flash_on_save"),
		FlashColor:    colorKey(v, "flash_color"),
		FlashOpacity:  pct(v.GetFloat64("flash_opacity"), 1),
		FlashDuration: v.GetDuration("flash_duration"),

		RecBorderEnabled:      v.GetBool("border_rec"),
		RecPauseBorderEnabled: v.GetBool("border_rec_paused"),
		RecBorderColor:        colorKey(v, "border_color_rec"),
		RecPauseBorderColor:   colorKey(v, "border_color_rec_paused"),

		BufBorderEnabled:     v.GetBool("border_buf"),
		BufSaveBorderEnabled: v.GetBool("border_buf_saved"),
		BufBorderColor:       colorKey(v, "border_color_buf"),
		BufSaveBorderColor:   colorKey(v, "border_color_buf_saved"),

		SaveSoundPath:   soundPath(v.GetString("save_sound_path"), baseDir),
		SaveSoundVolume: pct(v.GetFloat64("save_sound_volume"), 2),
	}

	layout := overlay.Layout{
		RecCorner:     cornerKey(v, "corner_rec"),
		BufCorner:     cornerKey(v, "corner_buf"),
		Size:          v.GetInt("size"),
		PadX:          v.GetInt("margin"),
		PadY:          v.GetInt("margin"),
		BorderWidth:   v.GetInt("border_width"),
		BgOpacity:     pct(v.GetFloat64("bg_opacity"), 1),
		BgSizePercent: v.GetFloat64("bg_size_percent") / 100,
		MaxOpacity:    opts.Opacity,
	}

	return Config{
		Host:     v.GetString("obs_host"),
		Password: v.GetString("obs_password"),
		Engine:   opts,
		Layout:   layout,
	}
}

// ParseColor parses "#RRGGBB", "#RRGGBBAA", or the same with an "0x"
// prefix or no prefix at all. Six digits imply full alpha.
func ParseColor(s string) (engine.RGBA, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(hex, "0x")
	hex = strings.TrimPrefix(hex, "0X")

	if len(hex) != 6 && len(hex) != 8 {
		return engine.RGBA{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	n, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return engine.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xFF
	}
	return engine.RGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

func colorKey(v *viper.Viper, key string) engine.RGBA {
	raw := v.GetString(key)
	c, err := ParseColor(raw)
	if err != nil {
		log.Warnf("config %s: %v, using default", key, err)
		c, _ = ParseColor(defaultValues[key].(string))
	}
	return c
}

func cornerKey(v *viper.Viper, key string) overlay.Corner {
	raw := v.GetString(key)
	c, err := overlay.ParseCorner(raw)
	if err != nil {
		log.Warnf("config %s: %v, using default", key, err)
		c, _ = overlay.ParseCorner(defaultValues[key].(string))
	}
	return c
}

// pct converts a percentage to a fraction, clamped to [0, max].
func pct(v, max float64) float64 {
	f := v / 100
	if f < 0 {
		return 0
	}
	if f > max {
		return max
	}
	return f
}

// soundPath resolves a relative sound file against the config file's
// directory, so "Saved.wav" sits next to blink.toml.
func soundPath(p, baseDir string) string {
	if p == "" || filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
