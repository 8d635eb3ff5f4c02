// Package generator provides value generators for the anonymize engine: the
// functions that decide what an entity is replaced with.
package generator

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/anonymize"
	"gopkg.in/yaml.v2"
)

const (
	DefaultRedaction = "[REDACTED]"
	DefaultMask      = '*'
)

var ErrNoMapping = errors.New("no mapping for entity")

// Redact replaces every entity with substitute, or DefaultRedaction if it is empty.
func Redact(substitute string) anonymize.ValueGenerator {
	if substitute == "" {
		substitute = DefaultRedaction
	}
	return func(string, lib.Entity) (string, error) {
		return substitute, nil
	}
}

// Label replaces every entity with its upper-cased label in square brackets,
// e.g. [EMAIL].
func Label() anonymize.ValueGenerator {
	return func(_ string, entity lib.Entity) (string, error) {
		return "[" + strings.ToUpper(entity.Label) + "]", nil
	}
}

// Mask replaces every non-whitespace rune of the entity with mask, keeping the
// length and word shape of the original.
func Mask(mask rune) anonymize.ValueGenerator {
	if mask == 0 {
		mask = DefaultMask
	}
	return func(_ string, entity lib.Entity) (string, error) {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return r
			}
			return mask
		}, entity.Text), nil
	}
}

// Mapping looks the entity's text up in values. A missing entry is a failure:
// the entity is never left in place.
func Mapping(values map[string]string) anonymize.ValueGenerator {
	return func(_ string, entity lib.Entity) (string, error) {
		v, ok := values[entity.Text]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrNoMapping, entity.Text)
		}
		return v, nil
	}
}

// LoadMapping reads a YAML map of original text to replacement.
func LoadMapping(path string) (map[string]string, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("could not read mapping")
		return nil, err
	}
	values := make(map[string]string)
	if err := yaml.Unmarshal(b, &values); err != nil {
		log.Error().Err(err).Str("path", path).Msg("could not parse mapping")
		return nil, err
	}
	log.Info().Str("path", path).Int("entries", len(values)).Msg("mapping loaded")
	return values, nil
}

// Random replaces every entity with random lowercase letters of the same rune
// length.
func Random() anonymize.ValueGenerator {
	return func(_ string, entity lib.Entity) (string, error) {
		return lib.RandomLowercaseString(utf8.RuneCountInString(entity.Text)), nil
	}
}

// Pseudonymizer numbers the values it hands out per label: PERSON_1, PERSON_2,
// EMAIL_1 and so on. It is safe for concurrent use; the counters live as long as
// the Pseudonymizer.
type Pseudonymizer struct {
	mut      sync.Mutex
	counters map[string]int
}

func NewPseudonymizer() *Pseudonymizer {
	return &Pseudonymizer{counters: make(map[string]int)}
}

func (p *Pseudonymizer) Generate(_ string, entity lib.Entity) (string, error) {
	label := strings.ToUpper(entity.Label)
	if label == "" {
		label = "ENTITY"
	}

	p.mut.Lock()
	defer p.mut.Unlock()
	p.counters[label]++
	return fmt.Sprintf("%s_%d", label, p.counters[label]), nil
}
