package extract

import (
	"io/ioutil"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/text"
	"gopkg.in/yaml.v2"
)

const DefaultCompoundTokenLength = 5

// Dictionary finds known terms in text. Terms and text are tokenized and
// normalized the same way, so "ACME  Corp." matches the term "acme corp".
type Dictionary struct {
	terms               map[string]string
	compoundTokenLength int
}

// NewDictionary builds a dictionary from label -> terms. Phrases longer than
// compoundTokenLength tokens can never match. When a term is listed under more
// than one label the first label in sorted order wins.
func NewDictionary(labelled map[string][]string, compoundTokenLength int) (*Dictionary, error) {
	if compoundTokenLength <= 0 {
		compoundTokenLength = DefaultCompoundTokenLength
	}
	d := &Dictionary{
		terms:               make(map[string]string),
		compoundTokenLength: compoundTokenLength,
	}

	labels := lo.Keys(labelled)
	sort.Strings(labels)
	for _, label := range labels {
		for _, term := range lo.Uniq(labelled[label]) {
			tokens, err := text.Tokens(term)
			if err != nil {
				return nil, err
			}
			key := text.Key(tokens)
			if key == "" {
				continue
			}
			if _, ok := d.terms[key]; !ok {
				d.terms[key] = label
			}
		}
	}
	return d, nil
}

// LoadDictionary reads a YAML map of label to a list of terms.
func LoadDictionary(path string, compoundTokenLength int) (*Dictionary, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("could not read dictionary")
		return nil, err
	}
	var labelled map[string][]string
	if err := yaml.Unmarshal(b, &labelled); err != nil {
		return nil, err
	}
	d, err := NewDictionary(labelled, compoundTokenLength)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("terms", len(d.terms)).Msg("dictionary loaded")
	return d, nil
}

// Extract scans the tokens of doc left to right, preferring the longest phrase
// that starts at each token. Matches never overlap.
func (d *Dictionary) Extract(doc string) ([]lib.Entity, error) {
	tokens, err := text.Tokens(doc)
	if err != nil {
		return nil, err
	}

	var entities []lib.Entity
	var runes []rune
	for i := 0; i < len(tokens); {
		n, label := d.longestMatch(tokens[i:])
		if n == 0 {
			i++
			continue
		}
		if runes == nil {
			runes = []rune(doc)
		}
		start, end := tokens[i].Offset, tokens[i+n-1].End()
		entities = append(entities, lib.Entity{
			Text:       string(runes[start:end]),
			Label:      label,
			StartIndex: start,
			EndIndex:   end,
		})
		i += n
	}
	return entities, nil
}

func (d *Dictionary) longestMatch(tokens []text.Token) (int, string) {
	if !isWord(tokens[0]) {
		return 0, ""
	}
	max := d.compoundTokenLength
	if len(tokens) < max {
		max = len(tokens)
	}
	for n := max; n > 0; n-- {
		if !isWord(tokens[n-1]) {
			continue
		}
		if label, ok := d.terms[text.Key(tokens[:n])]; ok {
			return n, label
		}
	}
	return 0, ""
}

// isWord reports whether a token survives normalization, i.e. it is not a lone
// delimiter such as a comma or full stop.
func isWord(token text.Token) bool {
	normalized, _ := text.NormalizeToken(token)
	return normalized.Text != ""
}
