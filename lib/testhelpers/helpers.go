package testhelpers

import (
	"strings"
	"unicode/utf8"

	"github.com/stretchr/testify/mock"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
)

// Ent builds an entity whose EndIndex is derived from the rune length of text.
func Ent(text, label string, start int) lib.Entity {
	return lib.Entity{
		Text:       text,
		Label:      label,
		StartIndex: start,
		EndIndex:   start + utf8.RuneCountInString(text),
	}
}

// Find builds an entity for the nth (0-based) occurrence of text in doc, using rune
// offsets. It panics if there is no such occurrence.
func Find(doc, text, label string, nth int) lib.Entity {
	from := 0
	for i := 0; ; i++ {
		idx := strings.Index(doc[from:], text)
		if idx < 0 {
			panic("testhelpers: " + text + " not found")
		}
		if i == nth {
			return Ent(text, label, utf8.RuneCountInString(doc[:from+idx]))
		}
		from += idx + len(text)
	}
}

// MockGenerator is a testify mock with the signature of a value generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(text string, entity lib.Entity) (string, error) {
	args := m.Called(text, entity)
	return args.String(0), args.Error(1)
}

// MockExtractor is a testify mock satisfying the extractor interface.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(text string) ([]lib.Entity, error) {
	args := m.Called(text)
	entities, _ := args.Get(0).([]lib.Entity)
	return entities, args.Error(1)
}

// MapGenerator returns a generator that looks values up by entity text and falls
// back to "[" + label + "]".
func MapGenerator(values map[string]string) func(string, lib.Entity) (string, error) {
	return func(_ string, entity lib.Entity) (string, error) {
		if v, ok := values[entity.Text]; ok {
			return v, nil
		}
		return "[" + entity.Label + "]", nil
	}
}
