package mention

import "errors"

var ErrMalformed = errors.New("malformed mention")

// Mention is one NER detection of a project name, as delivered by the
// recognition collaborator's JSONL output. Field names match that wire
// format.
type Mention struct {
	RawText       string  `json:"project_name"`
	DocumentID    string  `json:"pdf_file"`
	PageNumber    int     `json:"page_number"`
	CharSpan      *[2]int `json:"char_span,omitempty"`
	NerConfidence float64 `json:"ner_confidence"`
	Context       string  `json:"context_sentence"`
}

// Validate reports whether the mention is usable. A mention with no raw text,
// an inverted span, or a confidence outside [0,1] is malformed and is skipped
// rather than aborting a run.
func (m Mention) Validate() error {
	if m.RawText == "" {
		return ErrMalformed
	}
	if m.CharSpan != nil && m.CharSpan[1] <= m.CharSpan[0] {
		return ErrMalformed
	}
	if m.NerConfidence < 0 || m.NerConfidence > 1 {
		return ErrMalformed
	}
	return nil
}
