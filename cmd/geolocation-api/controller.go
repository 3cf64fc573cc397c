package main

import (
	"context"

	"github.com/radixplore/geolocation/lib/geocode"
	"github.com/radixplore/geolocation/lib/mention"
	"github.com/radixplore/geolocation/lib/output"
	"github.com/radixplore/geolocation/lib/resolver"
	"github.com/radixplore/geolocation/lib/score"
	"github.com/radixplore/geolocation/lib/text"
)

type controller struct {
	normalizer *text.Normalizer
	resolver   *resolver.Resolver
	engine     *score.Engine
	oracle     geocode.Client
}

// Geolocate runs the full aggregate-resolve-score pass over one batch of
// mentions and returns a record per distinct project in first-seen order.
// Invalid mentions are skipped, not rejected wholesale.
func (c controller) Geolocate(ctx context.Context, mentions []mention.Mention) []output.FinalOutputRecord {
	valid := make([]mention.Mention, 0, len(mentions))
	for _, m := range mentions {
		if err := m.Validate(); err != nil {
			continue
		}
		valid = append(valid, m)
	}

	projects := mention.Aggregate(valid, c.normalizer.Normalize)
	candidates := c.resolver.ResolveAll(ctx, projects)

	records := make([]output.FinalOutputRecord, len(projects))
	for i, project := range projects {
		scored, considered := c.engine.Score(project, candidates[i])
		records[i] = output.Assemble(project, scored, considered)
	}

	return records
}

func (c controller) Ready() bool {
	return c.oracle.Ready()
}
