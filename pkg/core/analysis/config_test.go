package analysis

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.MaxRaisePercent != 12 || cfg.GradeMidRatio != 1.1 {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	body := "max_raise_percent: 15\ngrowth_markets:\n  - india\n  - romania\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxRaisePercent != 15 {
		t.Errorf("maxRaisePercent = %v, want overridden 15", cfg.MaxRaisePercent)
	}
	if cfg.GradeMinRatio != 0.8 {
		t.Errorf("gradeMinRatio = %v, want default 0.8 preserved", cfg.GradeMinRatio)
	}
	if !cfg.IsGrowthMarket("Romania") || cfg.IsGrowthMarket("Brazil") {
		t.Error("growth market list not replaced by the file value")
	}
}

func TestMaxRaiseFor(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.MaxRaiseFor("India"); got != 8 {
		t.Errorf("growth market cap = %v, want 8", got)
	}
	if got := cfg.MaxRaiseFor("Germany"); got != 12 {
		t.Errorf("default cap = %v, want 12", got)
	}
	if got := cfg.MaxRaiseFor(""); got != 12 {
		t.Errorf("blank country cap = %v, want 12", got)
	}
}
