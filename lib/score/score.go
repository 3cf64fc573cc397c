/*
 * Copyright 2024 RadiXplore
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package score

import (
	"fmt"
	"math"
	"sort"

	"github.com/radixplore/geolocation/lib/mention"
	"github.com/radixplore/geolocation/lib/resolver"
)

// Weights is the closed set of scoring weights. Each weight is non-negative
// and they must sum to 1 so the fused score stays a calibrated confidence.
type Weights struct {
	SourceConfidence float64 `mapstructure:"source_confidence"`
	MatchKind        float64 `mapstructure:"match_kind"`
	Occurrence       float64 `mapstructure:"occurrence"`
	NerConfidence    float64 `mapstructure:"ner_confidence"`
}

// DefaultWeights keep source confidence dominant while giving match kind
// enough weight that an exact name match outranks a marginally more
// confident fuzzy one.
var DefaultWeights = Weights{
	SourceConfidence: 0.4,
	MatchKind:        0.3,
	Occurrence:       0.2,
	NerConfidence:    0.1,
}

const weightSumTolerance = 1e-9

func (w Weights) Validate() error {
	for _, v := range []float64{w.SourceConfidence, w.MatchKind, w.Occurrence, w.NerConfidence} {
		if v < 0 {
			return fmt.Errorf("scoring weights must be non-negative, got %+v", w)
		}
	}
	sum := w.SourceConfidence + w.MatchKind + w.Occurrence + w.NerConfidence
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("scoring weights must sum to 1, got %v", sum)
	}
	return nil
}

// matchKindWeight maps provenance to evidence strength. An exact name match
// is the strongest signal, contextual corroboration next, a fuzzy match the
// weakest.
func matchKindWeight(kind resolver.MatchKind) float64 {
	switch kind {
	case resolver.Exact:
		return 1.0
	case resolver.Contextual:
		return 0.7
	case resolver.Fuzzy:
		return 0.4
	default:
		return 0
	}
}

const (
	// occurrenceCeiling is the mention count treated as full corroboration;
	// the log keeps a single heavily-repetitive document from dominating.
	occurrenceCeiling = 50

	// tieEpsilon is the score difference below which two candidates are
	// considered tied and fall through to the deterministic tie-break.
	tieEpsilon = 1e-3

	// nullIslandEpsilon catches the (0,0) sentinel some geocoders return
	// for unresolvable names.
	nullIslandEpsilon = 1e-6
)

// ScoredCandidate is the winning candidate with its fused confidence.
type ScoredCandidate struct {
	resolver.GeoCandidate
	FinalScore float64
	Rank       int
}

func NewEngine(weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights}, nil
}

type Engine struct {
	weights Weights
}

/**
	Score fuses each candidate's evidence into one confidence and picks the
	single best candidate for the project:

		final = w1*sourceConfidence + w2*kindWeight + w3*occurrenceNorm + w4*meanNerConfidence

	clamped to [0,1]. Implausible coordinates (the (0,0) null-island sentinel,
	anything out of bounds) are removed before scoring, not down-weighted.

	Ranking is descending by score; candidates within tieEpsilon are broken by
	match-kind specificity, then by lexicographically smallest place name, so
	identical inputs always produce an identical winner. A single candidate
	still goes through full scoring; its confidence can be low.

	Returns the winner and the number of candidates considered, or nil if
	nothing plausible was left to score.
**/
func (e *Engine) Score(project *mention.ProjectRecord, candidates []resolver.GeoCandidate) (*ScoredCandidate, int) {
	plausible := make([]resolver.GeoCandidate, 0, len(candidates))
	for _, c := range candidates {
		if implausible(c) {
			continue
		}
		plausible = append(plausible, c)
	}
	if len(plausible) == 0 {
		return nil, 0
	}

	occurrenceNorm := math.Log1p(float64(project.OccurrenceCount)) / math.Log1p(occurrenceCeiling)
	if occurrenceNorm > 1 {
		occurrenceNorm = 1
	}

	scored := make([]ScoredCandidate, len(plausible))
	for i, c := range plausible {
		final := e.weights.SourceConfidence*c.SourceConfidence +
			e.weights.MatchKind*matchKindWeight(c.MatchKind) +
			e.weights.Occurrence*occurrenceNorm +
			e.weights.NerConfidence*project.MeanNerConfidence

		if final < 0 {
			final = 0
		} else if final > 1 {
			final = 1
		}

		scored[i] = ScoredCandidate{GeoCandidate: c, FinalScore: final}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if math.Abs(scored[i].FinalScore-scored[j].FinalScore) > tieEpsilon {
			return scored[i].FinalScore > scored[j].FinalScore
		}
		if scored[i].MatchKind.Specificity() != scored[j].MatchKind.Specificity() {
			return scored[i].MatchKind.Specificity() > scored[j].MatchKind.Specificity()
		}
		return scored[i].PlaceName < scored[j].PlaceName
	})

	winner := scored[0]
	winner.Rank = 1
	return &winner, len(plausible)
}

func implausible(c resolver.GeoCandidate) bool {
	if math.Abs(c.Latitude) < nullIslandEpsilon && math.Abs(c.Longitude) < nullIslandEpsilon {
		return true
	}
	return c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180
}
