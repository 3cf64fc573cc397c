package testhelpers

import (
	"github.com/radixplore/geolocation/lib/geocode"
	"github.com/radixplore/geolocation/lib/mention"
	"github.com/radixplore/geolocation/lib/resolver"
)

func Mentions(raws ...string) []mention.Mention {
	mentions := make([]mention.Mention, len(raws))
	for i, raw := range raws {
		mentions[i] = Mention(raw, "report.pdf", 0.9, "")
	}
	return mentions
}

func Mention(raw, doc string, confidence float64, context string) mention.Mention {
	return mention.Mention{
		RawText:       raw,
		DocumentID:    doc,
		NerConfidence: confidence,
		Context:       context,
	}
}

func Candidate(kind resolver.MatchKind, confidence, lat, lon float64, place string) resolver.GeoCandidate {
	return resolver.GeoCandidate{
		Latitude:         lat,
		Longitude:        lon,
		PlaceName:        place,
		SourceConfidence: confidence,
		MatchKind:        kind,
	}
}

func Result(place string, lat, lon, confidence float64, exact bool) geocode.Result {
	return geocode.Result{
		PlaceName:  place,
		Latitude:   lat,
		Longitude:  lon,
		Confidence: confidence,
		Exact:      exact,
	}
}
