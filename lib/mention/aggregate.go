package mention

// ProjectRecord is the unit of work downstream of aggregation: every mention
// of one project, merged under its normalized name. Records are read-only
// once Aggregate returns.
type ProjectRecord struct {
	NormalizedName    string
	Mentions          []Mention
	OccurrenceCount   int
	MaxNerConfidence  float64
	MeanNerConfidence float64
}

// DisplayName is the raw text of the project's first mention, which is what
// output records carry.
func (p *ProjectRecord) DisplayName() string {
	return p.Mentions[0].RawText
}

/**
	Aggregate groups mentions into one ProjectRecord per distinct normalized
	name.

	Records come back in first-seen order of their normalized names, tracked
	explicitly rather than relying on map iteration, so two runs over the same
	input produce identically ordered output. No mention is dropped or
	duplicated: occurrence counts across all records always sum to
	len(mentions).
**/
func Aggregate(mentions []Mention, normalize func(string) string) []*ProjectRecord {
	byName := make(map[string]*ProjectRecord, len(mentions))
	var ordered []*ProjectRecord

	for _, m := range mentions {
		key := normalize(m.RawText)
		record, ok := byName[key]
		if !ok {
			record = &ProjectRecord{NormalizedName: key}
			byName[key] = record
			ordered = append(ordered, record)
		}
		record.Mentions = append(record.Mentions, m)
	}

	for _, record := range ordered {
		record.OccurrenceCount = len(record.Mentions)
		var sum float64
		for _, m := range record.Mentions {
			sum += m.NerConfidence
			if m.NerConfidence > record.MaxNerConfidence {
				record.MaxNerConfidence = m.NerConfidence
			}
		}
		record.MeanNerConfidence = sum / float64(record.OccurrenceCount)
	}

	return ordered
}
