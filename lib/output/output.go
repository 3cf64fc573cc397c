package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/radixplore/geolocation/lib/mention"
	"github.com/radixplore/geolocation/lib/score"
)

type Evidence struct {
	OccurrenceCount         int     `json:"occurrence_count"`
	MatchKind               *string `json:"match_kind"`
	NumCandidatesConsidered int     `json:"num_candidates_considered"`
}

// FinalOutputRecord is one line of the pipeline's JSONL output. Unresolved
// projects keep their line with null coordinates so nothing disappears from
// the audit trail.
type FinalOutputRecord struct {
	ProjectName           string   `json:"project_name"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
	GeolocationConfidence float64  `json:"geolocation_confidence"`
	NerConfidence         float64  `json:"ner_confidence"`
	OverallConfidence     float64  `json:"overall_confidence"`
	Evidence              Evidence `json:"evidence"`
	Justification         string   `json:"justification"`
}

/**
	Assemble maps a project and its winning candidate (or nil) onto the output
	record. No scoring happens here.

	ner_confidence is the project's best single detection: one clean mention
	is enough evidence the project exists even if other mentions were noisy.
	overall_confidence is geolocation confidence times that factor.
**/
func Assemble(project *mention.ProjectRecord, scored *score.ScoredCandidate, considered int) FinalOutputRecord {
	record := FinalOutputRecord{
		ProjectName:   project.DisplayName(),
		NerConfidence: project.MaxNerConfidence,
		Evidence: Evidence{
			OccurrenceCount:         project.OccurrenceCount,
			NumCandidatesConsidered: considered,
		},
	}

	if scored == nil {
		record.Justification = "No plausible location candidate resolved."
		return record
	}

	lat, lon := scored.Latitude, scored.Longitude
	record.Latitude = &lat
	record.Longitude = &lon
	record.GeolocationConfidence = scored.FinalScore
	record.OverallConfidence = scored.FinalScore * project.MaxNerConfidence

	kind := string(scored.MatchKind)
	record.Evidence.MatchKind = &kind

	record.Justification = fmt.Sprintf(
		"Selected %q via %s match from %d candidate(s), corroborated by %d mention(s).",
		scored.PlaceName, strings.ToLower(kind), considered, project.OccurrenceCount,
	)

	return record
}

// Write emits records as JSONL, one record per line in the order given. The
// caller controls the destination; a full file is written per run.
func Write(w io.Writer, records []FinalOutputRecord) error {
	encoder := json.NewEncoder(w)
	for i, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	return nil
}
