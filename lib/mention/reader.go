package mention

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/rs/zerolog/log"
)

// ReadWithCallback parses one mention per JSONL line and hands each valid
// mention to onMention in input order. Malformed lines and mentions are
// skipped with a warning so one bad detection cannot abort a run; an
// unreadable stream, or an error from onMention, stops the scan and is
// returned.
func ReadWithCallback(r io.Reader, onMention func(Mention) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var m Mention
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			log.Warn().Err(err).Int("line", line).Msg("skipping unparseable mention")
			continue
		}
		if err := m.Validate(); err != nil {
			log.Warn().Err(err).Int("line", line).Str("raw_text", m.RawText).Msg("skipping mention")
			continue
		}
		if err := onMention(m); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Read collects every valid mention in the stream into a slice.
func Read(r io.Reader) ([]Mention, error) {
	var mentions []Mention
	err := ReadWithCallback(r, func(m Mention) error {
		mentions = append(mentions, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mentions, nil
}
