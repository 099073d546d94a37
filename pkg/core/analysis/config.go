package analysis

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config carries the tunable scoring constants. The fallback grade
// bounds and market caps are policy knobs, not magic numbers, so they
// can be tuned and tested independently of the scoring math.
type Config struct {
	// Fallback salary grade bounds as ratios of USD base salary, used
	// when the sheet carries no grade data.
	GradeMinRatio float64 `yaml:"grade_min_ratio" json:"gradeMinRatio"`
	GradeMidRatio float64 `yaml:"grade_mid_ratio" json:"gradeMidRatio"`
	GradeMaxRatio float64 `yaml:"grade_max_ratio" json:"gradeMaxRatio"`

	// Raise caps as percent of current salary. Growth markets get the
	// lower cap.
	MaxRaisePercent             float64 `yaml:"max_raise_percent" json:"maxRaisePercent"`
	GrowthMarketMaxRaisePercent float64 `yaml:"growth_market_max_raise_percent" json:"growthMarketMaxRaisePercent"`

	// Countries treated as high-growth markets, matched
	// case-insensitively against the employee's country field.
	GrowthMarkets []string `yaml:"growth_markets" json:"growthMarkets"`
}

// DefaultConfig returns the built-in scoring constants.
func DefaultConfig() Config {
	return Config{
		GradeMinRatio:               0.8,
		GradeMidRatio:               1.1,
		GradeMaxRatio:               1.4,
		MaxRaisePercent:             12,
		GrowthMarketMaxRaisePercent: 8,
		GrowthMarkets:               []string{"india", "brazil", "china", "vietnam", "philippines", "mexico", "poland"},
	}
}

// LoadConfig reads scoring constants from a YAML file, falling back to
// defaults for any value the file leaves unset. A missing file is not an
// error; the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not read scoring config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("could not parse scoring config: %w", err)
	}
	if file.GradeMinRatio > 0 {
		cfg.GradeMinRatio = file.GradeMinRatio
	}
	if file.GradeMidRatio > 0 {
		cfg.GradeMidRatio = file.GradeMidRatio
	}
	if file.GradeMaxRatio > 0 {
		cfg.GradeMaxRatio = file.GradeMaxRatio
	}
	if file.MaxRaisePercent > 0 {
		cfg.MaxRaisePercent = file.MaxRaisePercent
	}
	if file.GrowthMarketMaxRaisePercent > 0 {
		cfg.GrowthMarketMaxRaisePercent = file.GrowthMarketMaxRaisePercent
	}
	if len(file.GrowthMarkets) > 0 {
		cfg.GrowthMarkets = file.GrowthMarkets
	}
	return cfg, nil
}

// IsGrowthMarket reports whether a country falls under the lower raise cap.
func (c Config) IsGrowthMarket(country string) bool {
	needle := strings.ToLower(strings.TrimSpace(country))
	if needle == "" {
		return false
	}
	for _, m := range c.GrowthMarkets {
		if strings.ToLower(m) == needle {
			return true
		}
	}
	return false
}

// MaxRaiseFor returns the location-dependent raise cap in percent.
func (c Config) MaxRaiseFor(country string) float64 {
	if c.IsGrowthMarket(country) {
		return c.GrowthMarketMaxRaisePercent
	}
	return c.MaxRaisePercent
}
