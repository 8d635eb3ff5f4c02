package extract

import (
	"io/ioutil"
	"regexp"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
	"gopkg.in/yaml.v2"
)

// Regex labels every match of a pattern with the pattern's name.
type Regex struct {
	regexps map[string]*regexp.Regexp
	labels  []string
}

func NewRegex(regexps map[string]*regexp.Regexp) *Regex {
	labels := lo.Keys(regexps)
	sort.Strings(labels)
	return &Regex{regexps: regexps, labels: labels}
}

// LoadRegex reads a YAML map of label to regular expression and compiles it.
func LoadRegex(path string) (*Regex, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("could not read regex file")
		return nil, err
	}
	var regexpStringMap map[string]string
	if err := yaml.Unmarshal(b, &regexpStringMap); err != nil {
		return nil, err
	}

	regexps := make(map[string]*regexp.Regexp, len(regexpStringMap))
	for name, uncompiledRegexp := range regexpStringMap {
		regexps[name], err = regexp.Compile(uncompiledRegexp)
		if err != nil {
			return nil, err
		}
	}
	log.Info().Str("path", path).Int("patterns", len(regexps)).Msg("regexes loaded")
	return NewRegex(regexps), nil
}

// Extract returns one entity per match, ordered by label and then by position.
// Empty matches are ignored.
func (r *Regex) Extract(text string) ([]lib.Entity, error) {
	var entities []lib.Entity
	var offsets []int
	for _, label := range r.labels {
		for _, loc := range r.regexps[label].FindAllStringIndex(text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			if offsets == nil {
				offsets = runeOffsets(text)
			}
			entities = append(entities, lib.Entity{
				Text:       text[loc[0]:loc[1]],
				Label:      label,
				StartIndex: offsets[loc[0]],
				EndIndex:   offsets[loc[1]],
			})
		}
	}
	return entities, nil
}
