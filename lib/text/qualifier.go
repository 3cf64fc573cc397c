package text

import (
	"regexp"
	"strings"

	"github.com/blevesearch/segment"
)

// capitalisedRun matches title-case runs such as "Western Australia" or
// "Mount Isa District".
var capitalisedRun = regexp.MustCompile(`\b([A-Z][A-Za-z'-]+(?: [A-Z][A-Za-z'-]+)*)\b`)

// AuStateCodes expands the state and territory abbreviations that mining
// reports use in place of full region names.
var AuStateCodes = map[string]string{
	"WA":  "Western Australia",
	"NSW": "New South Wales",
	"QLD": "Queensland",
	"SA":  "South Australia",
	"NT":  "Northern Territory",
	"VIC": "Victoria",
	"TAS": "Tasmania",
	"ACT": "Australian Capital Territory",
}

// regionMarkers are the final tokens that mark a capitalised run as a
// geographic qualifier rather than a company or project name.
var regionMarkers = map[string]struct{}{
	"australia":  {},
	"queensland": {},
	"victoria":   {},
	"tasmania":   {},
	"territory":  {},
	"wales":      {},
	"region":     {},
	"province":   {},
	"district":   {},
	"shire":      {},
	"basin":      {},
	"goldfields": {},
}

type QualifierExtractor struct{}

/**
	Extract pulls geographic qualifiers out of a mention's context window.

	Two sources feed it: title-case runs whose final token is a recognised
	region marker ("Western Australia", "Pilbara Region"), and bare state or
	territory codes ("WA") which expand to their full names. Qualifiers are
	returned deduplicated, in order of first appearance, so downstream lookups
	are deterministic.
**/
func (QualifierExtractor) Extract(context string) []string {
	var qualifiers []string
	seen := make(map[string]struct{})

	add := func(q string) {
		key := strings.ToLower(q)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		qualifiers = append(qualifiers, q)
	}

	for _, run := range capitalisedRun.FindAllString(context, -1) {
		tokens := strings.Fields(run)
		last := strings.ToLower(tokens[len(tokens)-1])
		if _, ok := regionMarkers[last]; ok {
			add(run)
		}
	}

	segmenter := segment.NewWordSegmenterDirect([]byte(context))
	for segmenter.Segment() {
		if segmenter.Type() != segment.Letter {
			continue
		}
		if expanded, ok := AuStateCodes[segmenter.Text()]; ok {
			add(expanded)
		}
	}

	return qualifiers
}
