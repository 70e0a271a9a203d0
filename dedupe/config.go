package dedupe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MatchConfig carries the weights and thresholds of the pairwise matcher.
// Zero-valued fields fall back to the defaults, so a YAML file only needs to
// name what it wants to change.
type MatchConfig struct {
	// Signal weights, each a contribution to the 0-100 confidence score.
	NameExactWeight   float64 `yaml:"name_exact_weight"`
	NameSimilarWeight float64 `yaml:"name_similar_weight"`
	AddrExactWeight   float64 `yaml:"addr_exact_weight"`
	AddrSimilarWeight float64 `yaml:"addr_similar_weight"`
	ZipWeight         float64 `yaml:"zip_weight"`
	CityStateWeight   float64 `yaml:"city_state_weight"`

	// Similarity cutoffs for the fuzzy name/address signals.
	NameSimilarity float64 `yaml:"name_similarity"`
	AddrSimilarity float64 `yaml:"addr_similarity"`

	// Tier thresholds: below MinConfidence two records are not a match at
	// all; at or above LikelyConfidence a fuzzy match is "likely" rather
	// than "possible".
	MinConfidence    float64 `yaml:"min_confidence"`
	LikelyConfidence float64 `yaml:"likely_confidence"`
}

// DefaultMatchConfig returns the calibrated weights and thresholds.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		NameExactWeight:   50,
		NameSimilarWeight: 30,
		AddrExactWeight:   35,
		AddrSimilarWeight: 20,
		ZipWeight:         20,
		CityStateWeight:   10,
		NameSimilarity:    0.85,
		AddrSimilarity:    0.80,
		MinConfidence:     35,
		LikelyConfidence:  60,
	}
}

// MatchConfigFromYAML parses a config overlay and fills unset fields from the
// defaults.
func MatchConfigFromYAML(raw []byte) (MatchConfig, error) {
	cfg := MatchConfig{}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid match config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadMatchConfig reads a YAML config file.
func LoadMatchConfig(path string) (MatchConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return MatchConfig{}, err
	}
	return MatchConfigFromYAML(raw)
}

func (c *MatchConfig) applyDefaults() {
	def := DefaultMatchConfig()
	if c.NameExactWeight == 0 {
		c.NameExactWeight = def.NameExactWeight
	}
	if c.NameSimilarWeight == 0 {
		c.NameSimilarWeight = def.NameSimilarWeight
	}
	if c.AddrExactWeight == 0 {
		c.AddrExactWeight = def.AddrExactWeight
	}
	if c.AddrSimilarWeight == 0 {
		c.AddrSimilarWeight = def.AddrSimilarWeight
	}
	if c.ZipWeight == 0 {
		c.ZipWeight = def.ZipWeight
	}
	if c.CityStateWeight == 0 {
		c.CityStateWeight = def.CityStateWeight
	}
	if c.NameSimilarity == 0 {
		c.NameSimilarity = def.NameSimilarity
	}
	if c.AddrSimilarity == 0 {
		c.AddrSimilarity = def.AddrSimilarity
	}
	if c.MinConfidence == 0 {
		c.MinConfidence = def.MinConfidence
	}
	if c.LikelyConfidence == 0 {
		c.LikelyConfidence = def.LikelyConfidence
	}
}
