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

package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/radixplore/geolocation/lib/geocode"
	"github.com/radixplore/geolocation/lib/mention"
	"github.com/radixplore/geolocation/lib/text"
)

// MatchKind records how a candidate was retrieved.
type MatchKind string

const (
	Exact      MatchKind = "EXACT"
	Contextual MatchKind = "CONTEXTUAL"
	Fuzzy      MatchKind = "FUZZY"
)

// Specificity orders match kinds for dedupe and tie-breaking:
// EXACT > CONTEXTUAL > FUZZY.
func (k MatchKind) Specificity() int {
	switch k {
	case Exact:
		return 3
	case Contextual:
		return 2
	case Fuzzy:
		return 1
	default:
		return 0
	}
}

// GeoCandidate is one proposed coordinate for a project. Candidates belong to
// the project they were resolved for and are never shared.
type GeoCandidate struct {
	Latitude         float64
	Longitude        float64
	PlaceName        string
	SourceConfidence float64
	MatchKind        MatchKind
}

type Config struct {
	Workers       int           `mapstructure:"workers"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxQualifiers int           `mapstructure:"max_qualifiers"`
}

func New(oracle geocode.Client, conf Config) *Resolver {
	if conf.Workers <= 0 {
		conf.Workers = 4
	}
	if conf.Timeout <= 0 {
		conf.Timeout = 10 * time.Second
	}
	if conf.MaxQualifiers <= 0 {
		conf.MaxQualifiers = 3
	}
	return &Resolver{
		oracle:    oracle,
		extractor: text.QualifierExtractor{},
		conf:      conf,
	}
}

type Resolver struct {
	oracle    geocode.Client
	extractor text.QualifierExtractor
	conf      Config
}

/**
	Resolve collects geo-candidates for one project.

	The normalized name is always looked up once, its results tagged EXACT or
	FUZZY depending on how the oracle matched. Each geographic qualifier found
	in the mention contexts ("Western Australia", capped at max_qualifiers)
	triggers one more lookup, tagged CONTEXTUAL. Candidates resolving to the
	same coordinate at 4 decimal places merge, keeping the highest source
	confidence and the most specific match kind.

	A timed-out or errored lookup degrades to zero results for that lookup and
	is logged; zero candidates for a project is a valid outcome, not an error.
**/
func (r *Resolver) Resolve(ctx context.Context, project *mention.ProjectRecord) []GeoCandidate {
	var candidates []GeoCandidate

	for _, result := range r.lookup(ctx, project.NormalizedName) {
		kind := Fuzzy
		if result.Exact {
			kind = Exact
		}
		candidates = append(candidates, candidate(result, kind))
	}

	for _, qualifier := range r.qualifiers(project) {
		query := project.NormalizedName + ", " + qualifier
		for _, result := range r.lookup(ctx, query) {
			candidates = append(candidates, candidate(result, Contextual))
		}
	}

	return dedupe(candidates)
}

// ResolveAll resolves every project over a bounded worker pool. Results come
// back indexed by project position, and ResolveAll only returns once every
// project has either resolved or degraded to empty, so scoring always sees
// the complete candidate set.
func (r *Resolver) ResolveAll(ctx context.Context, projects []*mention.ProjectRecord) [][]GeoCandidate {
	results := make([][]GeoCandidate, len(projects))

	indexes := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < r.conf.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				results[idx] = r.Resolve(ctx, projects[idx])
			}
		}()
	}

	for idx := range projects {
		indexes <- idx
	}
	close(indexes)
	wg.Wait()

	return results
}

func (r *Resolver) lookup(ctx context.Context, query string) []geocode.Result {
	lookupCtx, cancel := context.WithTimeout(ctx, r.conf.Timeout)
	defer cancel()

	results, err := r.oracle.Lookup(lookupCtx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("geocode lookup degraded to zero candidates")
		return nil
	}
	return results
}

func (r *Resolver) qualifiers(project *mention.ProjectRecord) []string {
	var qualifiers []string
	seen := make(map[string]struct{})
	for _, m := range project.Mentions {
		for _, q := range r.extractor.Extract(m.Context) {
			if _, ok := seen[q]; ok {
				continue
			}
			seen[q] = struct{}{}
			qualifiers = append(qualifiers, q)
			if len(qualifiers) == r.conf.MaxQualifiers {
				return qualifiers
			}
		}
	}
	return qualifiers
}

func candidate(result geocode.Result, kind MatchKind) GeoCandidate {
	return GeoCandidate{
		Latitude:         result.Latitude,
		Longitude:        result.Longitude,
		PlaceName:        result.PlaceName,
		SourceConfidence: result.Confidence,
		MatchKind:        kind,
	}
}

// dedupe merges candidates at the same coordinate (4 decimal places, ~11m)
// and drops coordinates outside valid bounds. Order of first appearance is
// preserved.
func dedupe(candidates []GeoCandidate) []GeoCandidate {
	merged := make(map[string]int, len(candidates))
	var deduped []GeoCandidate

	for _, c := range candidates {
		if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
			continue
		}

		key := fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
		idx, ok := merged[key]
		if !ok {
			merged[key] = len(deduped)
			deduped = append(deduped, c)
			continue
		}

		existing := &deduped[idx]
		if c.SourceConfidence > existing.SourceConfidence {
			existing.SourceConfidence = c.SourceConfidence
		}
		if c.MatchKind.Specificity() > existing.MatchKind.Specificity() {
			existing.MatchKind = c.MatchKind
		}
	}

	return deduped
}
