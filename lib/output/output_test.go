package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/radixplore/geolocation/lib/mention"
	"github.com/radixplore/geolocation/lib/resolver"
	"github.com/radixplore/geolocation/lib/score"
	"github.com/radixplore/geolocation/lib/testhelpers"
)

func testProject() *mention.ProjectRecord {
	return &mention.ProjectRecord{
		NormalizedName: "boddington",
		Mentions: []mention.Mention{
			testhelpers.Mention("Boddington Gold Mine", "a.pdf", 0.97, "in WA"),
			testhelpers.Mention("boddington gold mine.", "b.pdf", 0.61, ""),
		},
		OccurrenceCount:   2,
		MaxNerConfidence:  0.97,
		MeanNerConfidence: 0.79,
	}
}

func TestAssembleResolvedProject(t *testing.T) {
	scored := &score.ScoredCandidate{
		GeoCandidate: testhelpers.Candidate(resolver.Exact, 0.5, -32.8058, 116.3906, "Boddington, Western Australia"),
		FinalScore:   0.82,
		Rank:         1,
	}

	record := Assemble(testProject(), scored, 4)

	assert.Equal(t, "Boddington Gold Mine", record.ProjectName)
	assert.InDelta(t, -32.8058, *record.Latitude, 1e-9)
	assert.InDelta(t, 116.3906, *record.Longitude, 1e-9)
	assert.InDelta(t, 0.82, record.GeolocationConfidence, 1e-9)
	assert.InDelta(t, 0.97, record.NerConfidence, 1e-9)
	assert.InDelta(t, 0.82*0.97, record.OverallConfidence, 1e-9)
	assert.Equal(t, 2, record.Evidence.OccurrenceCount)
	assert.Equal(t, "EXACT", *record.Evidence.MatchKind)
	assert.Equal(t, 4, record.Evidence.NumCandidatesConsidered)
	assert.Contains(t, record.Justification, "Boddington, Western Australia")
}

func TestAssembleUnresolvedProjectKeepsItsLine(t *testing.T) {
	record := Assemble(testProject(), nil, 0)

	assert.Equal(t, "Boddington Gold Mine", record.ProjectName)
	assert.Nil(t, record.Latitude)
	assert.Nil(t, record.Longitude)
	assert.Equal(t, 0.0, record.GeolocationConfidence)
	assert.Equal(t, 0.0, record.OverallConfidence)
	assert.InDelta(t, 0.97, record.NerConfidence, 1e-9)
	assert.Nil(t, record.Evidence.MatchKind)
	assert.Equal(t, 0, record.Evidence.NumCandidatesConsidered)
}

func TestWriteEmitsJsonl(t *testing.T) {
	scored := &score.ScoredCandidate{
		GeoCandidate: testhelpers.Candidate(resolver.Exact, 0.5, -32.8058, 116.3906, "Boddington, Western Australia"),
		FinalScore:   0.82,
		Rank:         1,
	}
	records := []FinalOutputRecord{
		Assemble(testProject(), scored, 4),
		Assemble(testProject(), nil, 0),
	}

	var buf bytes.Buffer
	assert.Nil(t, Write(&buf, records))

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	assert.Len(t, lines, 2)

	var resolved map[string]interface{}
	assert.Nil(t, json.Unmarshal(lines[0], &resolved))
	assert.Equal(t, "Boddington Gold Mine", resolved["project_name"])
	assert.InDelta(t, -32.8058, resolved["latitude"].(float64), 1e-9)

	var unresolved map[string]interface{}
	assert.Nil(t, json.Unmarshal(lines[1], &unresolved))
	assert.Nil(t, unresolved["latitude"])
	assert.Nil(t, unresolved["longitude"])
	assert.Equal(t, 0.0, unresolved["geolocation_confidence"])
	assert.Nil(t, unresolved["evidence"].(map[string]interface{})["match_kind"])
}

func TestWriteIsDeterministic(t *testing.T) {
	records := []FinalOutputRecord{
		Assemble(testProject(), nil, 0),
	}

	var first, second bytes.Buffer
	assert.Nil(t, Write(&first, records))
	assert.Nil(t, Write(&second, records))

	assert.Equal(t, first.Bytes(), second.Bytes())
}
