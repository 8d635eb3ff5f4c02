// Package anonymize rewrites a document by substituting every located entity with
// an anonymized value, and keeps an audit trail of each substitution.
package anonymize

import (
	"sort"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
)

// ValueGenerator produces the replacement for entity. text is the document as it
// stands when the entity is processed; the entity's offsets are valid within it.
type ValueGenerator func(text string, entity lib.Entity) (string, error)

// Engine applies a ValueGenerator to the entities of a document. It keeps no state
// between calls, so one Engine may serve concurrent calls as long as its generator
// is safe for concurrent use.
type Engine struct {
	generate ValueGenerator
}

func New(generate ValueGenerator) *Engine {
	return &Engine{generate: generate}
}

// Anonymize replaces every entity in text and returns the rewritten text together
// with one Replacement per entity, in ascending order of StartIndex.
//
// Entities are spliced right to left (descending StartIndex, ties in input order)
// so the offsets of entities still to be processed stay valid. Entities sharing the
// same Text share one anonymized value: the first one processed calls the
// generator, the rest reuse its result. Overlapping entities are not detected.
//
// Any invalid entity or generator failure aborts the whole call; no partially
// anonymized text is ever returned.
func (e *Engine) Anonymize(text string, entities []lib.Entity) (string, []lib.Replacement, error) {
	if len(entities) == 0 {
		return text, []lib.Replacement{}, nil
	}
	if e.generate == nil {
		return "", nil, ErrNoGenerator
	}

	ordered := make([]lib.Entity, len(entities))
	copy(ordered, entities)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartIndex > ordered[j].StartIndex
	})

	runes := []rune(text)
	chosen := make(map[string]string, len(ordered))
	processed := make([]lib.Replacement, 0, len(ordered))

	for _, entity := range ordered {
		if entity.StartIndex < 0 || entity.StartIndex >= entity.EndIndex || entity.EndIndex > len(runes) {
			return "", nil, &InvalidEntityError{Entity: entity, Length: len(runes)}
		}

		anonymized, ok := chosen[entity.Text]
		if !ok {
			var err error
			anonymized, err = e.generate(string(runes), entity)
			if err != nil {
				return "", nil, &GeneratorError{Entity: entity, Err: err}
			}
			chosen[entity.Text] = anonymized
		}

		runes = splice(runes, entity.StartIndex, entity.EndIndex, []rune(anonymized))
		processed = append(processed, lib.Replacement{
			OriginalText:   entity.Text,
			Label:          entity.Label,
			StartIndex:     entity.StartIndex,
			EndIndex:       entity.EndIndex,
			AnonymizedText: anonymized,
		})
	}

	log.Debug().
		Int("entities", len(processed)).
		Int("distinct", len(chosen)).
		Msg("document anonymized")

	return string(runes), reversed(processed), nil
}

// splice returns runes[:start] + value + runes[end:] as a new slice.
func splice(runes []rune, start, end int, value []rune) []rune {
	out := make([]rune, 0, len(runes)-(end-start)+len(value))
	out = append(out, runes[:start]...)
	out = append(out, value...)
	return append(out, runes[end:]...)
}

func reversed(replacements []lib.Replacement) []lib.Replacement {
	out := make([]lib.Replacement, len(replacements))
	for i, r := range replacements {
		out[len(replacements)-1-i] = r
	}
	return out
}
