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

package blocklist

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/radixplore/geolocation/lib/mention"
	"gopkg.in/yaml.v2"
)

// Blocklist holds generic terms the NER model tends to emit as project names
// ("the project", "the company"). Blocklisted mentions never reach
// aggregation.
type Blocklist struct {
	CaseSensitive   map[string]bool
	CaseInsensitive map[string]bool
}

// Allowed returns true if name is not blocklisted.
func (blocklist Blocklist) Allowed(name string) bool {
	if _, ok := blocklist.CaseSensitive[name]; ok {
		return false
	}

	if _, ok := blocklist.CaseInsensitive[strings.ToLower(name)]; ok {
		return false
	}

	return true
}

// FilterMentions filters []mention.Mention based on blocklist.
func (blocklist Blocklist) FilterMentions(mentions []mention.Mention) []mention.Mention {
	res := make([]mention.Mention, 0, len(mentions))
	for _, m := range mentions {
		if blocklist.Allowed(m.RawText) {
			res = append(res, m)
		}
	}
	if dropped := len(mentions) - len(res); dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("blocklisted mentions removed")
	}
	return res
}

// Load returns an unmarshalled blocklist from a YAML file at the given path.
func Load(path string) (*Blocklist, error) {

	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("could not find blocklist at %v", path))
		return nil, err
	}

	type yamlBlocklist struct {
		CaseSensitive   []string `yaml:"case_sensitive"`
		CaseInsensitive []string `yaml:"case_insensitive"`
	}

	yamlBl := yamlBlocklist{}
	if err := yaml.Unmarshal(bytes, &yamlBl); err != nil {
		log.Error().Msg(fmt.Sprintf("could not load blocklist from %v", path))
		return nil, err
	}

	res := Blocklist{
		CaseSensitive:   map[string]bool{},
		CaseInsensitive: map[string]bool{},
	}

	for _, v := range yamlBl.CaseSensitive {
		res.CaseSensitive[v] = true
	}
	for _, v := range yamlBl.CaseInsensitive {
		res.CaseInsensitive[v] = true
	}

	log.Info().Msg(fmt.Sprintf("blocklist set from %v", path))

	return &res, nil
}
