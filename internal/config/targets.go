package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/wellspring-backend/internal/logger"
	"github.com/yungbote/wellspring-backend/internal/scoring"
	"github.com/yungbote/wellspring-backend/internal/types"
)

// ScoringTargets maps each pillar to the policy its logged values are
// scored against. Pillars without a policy stay unscored.
type ScoringTargets map[types.Pillar]*scoring.MetricScoring

type targetsFile struct {
	Pillars map[string]*scoring.MetricScoring `yaml:"pillars"`
}

// LoadScoringTargets reads the per-pillar target ranges from a yaml file.
// A missing file is not fatal: deployments without targets simply produce
// unscored insights until one is provided.
func LoadScoringTargets(path string, log *logger.Logger) (ScoringTargets, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if log != nil {
				log.Warn("Scoring targets file not found, all pillars unscored", "path", path)
			}
			return ScoringTargets{}, nil
		}
		return nil, fmt.Errorf("read scoring targets: %w", err)
	}

	var parsed targetsFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse scoring targets: %w", err)
	}

	out := ScoringTargets{}
	for name, policy := range parsed.Pillars {
		pillar, perr := types.ParsePillar(name)
		if perr != nil {
			if log != nil {
				log.Warn("Skipping unknown pillar in scoring targets", "pillar", name)
			}
			continue
		}
		out[pillar] = policy
	}
	return out, nil
}
