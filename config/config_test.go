package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"blink/engine"
	"blink/overlay"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blink.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Host != "localhost:4455" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Engine.Opacity != 0.5 {
		t.Errorf("Opacity = %v, want 0.5", cfg.Engine.Opacity)
	}
	if cfg.Engine.RecColor != (engine.RGBA{0xFF, 0x55, 0x55, 0xFF}) {
		t.Errorf("RecColor = %v", cfg.Engine.RecColor)
	}
	if cfg.Engine.SavedDuration != 1500*time.Millisecond {
		t.Errorf("SavedDuration = %v", cfg.Engine.SavedDuration)
	}
	if cfg.Layout.RecCorner != overlay.TopRight || cfg.Layout.BufCorner != overlay.TopRight {
		t.Errorf("corners = %v/%v", cfg.Layout.RecCorner, cfg.Layout.BufCorner)
	}
	if cfg.Layout.Size != 10 || cfg.Layout.PadX != 10 || cfg.Layout.BorderWidth != 5 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Layout.BgSizePercent != 3 {
		t.Errorf("BgSizePercent = %v, want 3", cfg.Layout.BgSizePercent)
	}
	if cfg.Engine.SaveSoundVolume != 1 {
		t.Errorf("SaveSoundVolume = %v, want 1", cfg.Engine.SaveSoundVolume)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
obs_host = "gamingrig:4455"
corner_rec = "bottom-left"
corner_buf = "off"
size = 64
margin = 20
opacity = 80
color_rec = "#112233"
fade_effect = false
flash_on_save = true
flash_duration = "150ms"
border_rec = true
save_sound_volume = 150
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Host != "gamingrig:4455" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Layout.RecCorner != overlay.BottomLeft {
		t.Errorf("RecCorner = %v", cfg.Layout.RecCorner)
	}
	if cfg.Layout.BufCorner != overlay.CornerOff {
		t.Errorf("BufCorner = %v", cfg.Layout.BufCorner)
	}
	if cfg.Layout.Size != 64 || cfg.Layout.PadX != 20 || cfg.Layout.PadY != 20 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Engine.Opacity != 0.8 {
		t.Errorf("Opacity = %v", cfg.Engine.Opacity)
	}
	if cfg.Layout.MaxOpacity != 0.8 {
		t.Errorf("MaxOpacity = %v, want the opacity ceiling", cfg.Layout.MaxOpacity)
	}
	if cfg.Engine.RecColor != (engine.RGBA{0x11, 0x22, 0x33, 0xFF}) {
		t.Errorf("RecColor = %v", cfg.Engine.RecColor)
	}
	if cfg.Engine.FadeEnabled {
		t.Error("FadeEnabled not overridden")
	}
	if !cfg.Engine.FlashEnabled || cfg.Engine.FlashDuration != 150*time.Millisecond {
		t.Errorf("flash = %v/%v", cfg.Engine.FlashEnabled, cfg.Engine.FlashDuration)
	}
	if !cfg.Engine.RecBorderEnabled {
		t.Error("RecBorderEnabled not overridden")
	}
	if cfg.Engine.SaveSoundVolume != 1.5 {
		t.Errorf("SaveSoundVolume = %v, want 1.5", cfg.Engine.SaveSoundVolume)
	}
}

func TestLoadInvalidColorFallsBack(t *testing.T) {
	path := writeConfig(t, `
color_rec = "not-a-color"
color_buf = "#GG0000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.RecColor != (engine.RGBA{0xFF, 0x55, 0x55, 0xFF}) {
		t.Errorf("RecColor = %v, want the default", cfg.Engine.RecColor)
	}
	if cfg.Engine.BufColor != (engine.RGBA{0x55, 0xFF, 0x55, 0xFF}) {
		t.Errorf("BufColor = %v, want the default", cfg.Engine.BufColor)
	}
}

func TestLoadInvalidCornerFallsBack(t *testing.T) {
	path := writeConfig(t, `corner_rec = "middle"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.RecCorner != overlay.TopRight {
		t.Errorf("RecCorner = %v, want the default", cfg.Layout.RecCorner)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeConfig(t, `this is not toml = = =`)
	if _, err := Load(path); err == nil {
		t.Error("Load did not fail on a malformed file")
	}
}

func TestLoadResolvesRelativeSoundPath(t *testing.T) {
	path := writeConfig(t, `save_sound_path = "sounds/ding.wav"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(filepath.Dir(path), "sounds", "ding.wav")
	if cfg.Engine.SaveSoundPath != want {
		t.Errorf("SaveSoundPath = %q, want %q", cfg.Engine.SaveSoundPath, want)
	}
}

func TestLoadKeepsAbsoluteSoundPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "ding.wav")
	path := writeConfig(t, "save_sound_path = "+quote(abs))
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.SaveSoundPath != abs {
		t.Errorf("SaveSoundPath = %q, want %q", cfg.Engine.SaveSoundPath, abs)
	}
}

// quote produces a TOML literal string, safe for Windows path separators.
func quote(s string) string {
	return "'" + s + "'"
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want engine.RGBA
		ok   bool
	}{
		{"#FF5555", engine.RGBA{0xFF, 0x55, 0x55, 0xFF}, true},
		{"FF5555", engine.RGBA{0xFF, 0x55, 0x55, 0xFF}, true},
		{"0xFFAA00", engine.RGBA{0xFF, 0xAA, 0x00, 0xFF}, true},
		{"#11223344", engine.RGBA{0x11, 0x22, 0x33, 0x44}, true},
		{"#fff", engine.RGBA{}, false},
		{"#GGGGGG", engine.RGBA{}, false},
		{"", engine.RGBA{}, false},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if c.ok && err != nil {
			t.Errorf("ParseColor(%q): %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("ParseColor(%q) did not fail", c.in)
			}
			continue
		}
		if got != c.want {
			t.Errorf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPctClamps(t *testing.T) {
	if got := pct(50, 1); got != 0.5 {
		t.Errorf("pct(50, 1) = %v", got)
	}
	if got := pct(250, 1); got != 1 {
		t.Errorf("pct(250, 1) = %v, want clamped to 1", got)
	}
	if got := pct(-10, 1); got != 0 {
		t.Errorf("pct(-10, 1) = %v, want clamped to 0", got)
	}
	if got := pct(150, 2); got != 1.5 {
		t.Errorf("pct(150, 2) = %v", got)
	}
}
