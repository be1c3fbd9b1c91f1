package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Field.Ambient.Count != 80 {
		t.Errorf("ambient count = %d, want 80", cfg.Field.Ambient.Count)
	}
	if cfg.Field.Burst.Count != 12 {
		t.Errorf("burst count = %d, want 12", cfg.Field.Burst.Count)
	}
	if cfg.Field.Ripple.PerClick != 2 {
		t.Errorf("ripple per click = %d, want 2", cfg.Field.Ripple.PerClick)
	}
	if cfg.Field.Ripple.Decay != 0.93 {
		t.Errorf("ripple decay = %v, want 0.93", cfg.Field.Ripple.Decay)
	}

	want := color.NRGBA{R: 0xe8, G: 0xc5, B: 0x47, A: 255}
	if cfg.Field.Palette.AccentRGB != want {
		t.Errorf("accent = %v, want %v", cfg.Field.Palette.AccentRGB, want)
	}
	if cfg.Derived.DT32 <= 0 {
		t.Errorf("expected positive dt, got %v", cfg.Derived.DT32)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "field:\n  burst:\n    count: 18\n  palette:\n    accent: \"#ff0000\"\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Field.Burst.Count != 18 {
		t.Errorf("burst count = %d, want 18", cfg.Field.Burst.Count)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Field.Burst.DecayRate != 0.025 {
		t.Errorf("decay rate = %v, want default 0.025", cfg.Field.Burst.DecayRate)
	}
	if cfg.Field.Palette.AccentRGB.R != 255 || cfg.Field.Palette.AccentRGB.G != 0 {
		t.Errorf("accent not overridden: %v", cfg.Field.Palette.AccentRGB)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("field:\n  palette:\n    accent: \"gold\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "palette.accent") {
		t.Errorf("expected palette.accent error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"negative ambient", func(c *Config) { c.Field.Ambient.Count = -1 }, "ambient.count"},
		{"ripple decay one", func(c *Config) { c.Field.Ripple.Decay = 1 }, "ripple.decay"},
		{"zero burst epsilon", func(c *Config) { c.Field.Burst.Epsilon = 0 }, "burst.epsilon"},
		{"inverted max radius", func(c *Config) { c.Field.Ripple.MaxRadiusMin = 300 }, "ripple max radius"},
		{"zero screen", func(c *Config) { c.Screen.Width = 0 }, "screen size"},
		{"zero ambient alpha", func(c *Config) { c.Field.Ambient.AlphaMin = 0 }, "ambient alpha band"},
		{"ambient alpha above one", func(c *Config) { c.Field.Ambient.AlphaMax = 1.5 }, "ambient alpha band"},
		{"negative burst alpha", func(c *Config) { c.Field.Burst.Alpha = -0.1 }, "burst.alpha"},
		{"burst alpha above one", func(c *Config) { c.Field.Burst.Alpha = 1.2 }, "burst.alpha"},
		{"zero ripple alpha", func(c *Config) { c.Field.Ripple.InitialAlpha = 0 }, "ripple.initial_alpha"},
		{"ring alpha above one", func(c *Config) { c.Field.Cursor.RingAlpha = 2 }, "cursor.ring_alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestApplyVariant(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	if err := cfg.ApplyVariant("neon"); err != nil {
		t.Fatalf("ApplyVariant(neon): %v", err)
	}
	if cfg.Field.Ambient.Count != 120 {
		t.Errorf("ambient count = %d, want 120", cfg.Field.Ambient.Count)
	}
	if cfg.Field.Burst.Count != 20 {
		t.Errorf("burst count = %d, want 20", cfg.Field.Burst.Count)
	}
	// Untouched keys survive the overlay
	if cfg.Field.Burst.DecayRate != 0.025 {
		t.Errorf("decay rate = %v, want 0.025", cfg.Field.Burst.DecayRate)
	}
	if cfg.Field.Palette.AccentRGB.B != 0xff {
		t.Errorf("accent not re-resolved: %v", cfg.Field.Palette.AccentRGB)
	}
	if cfg.Derived.Variant != "neon" {
		t.Errorf("variant = %q, want neon", cfg.Derived.Variant)
	}
}

func TestVariantsValidate(t *testing.T) {
	for _, name := range []string{"gold", "neon", "ember"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Default()
			if err != nil {
				t.Fatal(err)
			}
			if err := cfg.ApplyVariant(name); err != nil {
				t.Fatalf("ApplyVariant(%s): %v", name, err)
			}
			if cfg.Field.Ripple.CapRadius {
				t.Error("ripple radius cap should be off unless configured")
			}
		})
	}
}

func TestApplyVariantUnknown(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyVariant("plaid"); err == nil {
		t.Error("expected error for unknown variant")
	}
	if err := cfg.ApplyVariant(""); err != nil {
		t.Errorf("empty variant should be a no-op, got %v", err)
	}
}

func TestVariantNamesSorted(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	names := cfg.VariantNames()
	want := []string{"ember", "gold", "neon"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.Burst.Count = 15

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if loaded.Field.Burst.Count != 15 {
		t.Errorf("burst count = %d, want 15", loaded.Field.Burst.Count)
	}
}

func TestWithAlphaClamps(t *testing.T) {
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	if got := WithAlpha(c, -0.5).A; got != 0 {
		t.Errorf("alpha below zero = %d, want 0", got)
	}
	if got := WithAlpha(c, 2).A; got != 255 {
		t.Errorf("alpha above one = %d, want 255", got)
	}
	if got := WithAlpha(c, 0.5).A; got != 128 {
		t.Errorf("alpha half = %d, want 128", got)
	}
}

func TestBlendEndpoints(t *testing.T) {
	from := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	to := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if got := Blend(from, to, 0); got != from {
		t.Errorf("Blend t=0 = %v, want %v", got, from)
	}
	if got := Blend(from, to, 1); got != to {
		t.Errorf("Blend t=1 = %v, want %v", got, to)
	}
}
