package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/testhelpers"
)

func Test_isSubmatch(t *testing.T) {
	type args struct {
		candidate lib.Entity
		entity    lib.Entity
	}
	tests := []struct {
		name     string
		args     args
		expected bool
	}{
		{
			name: "is a submatch",
			args: args{
				candidate: testhelpers.Ent("Jane", "PERSON", 0),
				entity:    testhelpers.Ent("Jane Doe", "PERSON", 0),
			},
			expected: true,
		},
		{
			name: "is not a submatch, longer entity",
			args: args{
				candidate: testhelpers.Ent("Jane Doe", "PERSON", 0),
				entity:    testhelpers.Ent("Jane", "PERSON", 0),
			},
			expected: false,
		},
		{
			name: "is not a submatch, partial overlap",
			args: args{
				candidate: testhelpers.Ent("Doe Street", "ADDRESS", 5),
				entity:    testhelpers.Ent("Jane Doe", "PERSON", 0),
			},
			expected: false,
		},
		{
			name: "is not a submatch, same span",
			args: args{
				candidate: testhelpers.Ent("Jane", "PERSON", 0),
				entity:    testhelpers.Ent("Jane", "NAME", 0),
			},
			expected: false,
		},
	}
	for _, tt := range tests {
		actual := IsSubmatch(tt.args.candidate, tt.args.entity)
		assert.Equal(t, tt.expected, actual, tt.name)
	}
}

func Test_filterSubmatches(t *testing.T) {
	entities := []lib.Entity{
		testhelpers.Ent("Jane Doe", "PERSON", 0),
		// inside Jane Doe (should be removed)
		testhelpers.Ent("Doe", "PERSON", 5),
		// partial overlap with Jane Doe
		testhelpers.Ent("Doe Street", "ADDRESS", 5),
		// elsewhere
		testhelpers.Ent("Leeds", "LOC", 20),
	}
	expected := []lib.Entity{
		testhelpers.Ent("Jane Doe", "PERSON", 0),
		testhelpers.Ent("Doe Street", "ADDRESS", 5),
		testhelpers.Ent("Leeds", "LOC", 20),
	}
	assert.ElementsMatch(t, expected, FilterSubmatches(entities))
}

func TestMulti_Extract(t *testing.T) {
	doc := "Jane Doe, Leeds"
	first := &testhelpers.MockExtractor{}
	first.On("Extract", doc).Return([]lib.Entity{
		testhelpers.Ent("Leeds", "LOC", 10),
		testhelpers.Ent("Jane", "PERSON", 0),
	}, nil).Once()
	second := &testhelpers.MockExtractor{}
	second.On("Extract", doc).Return([]lib.Entity{
		testhelpers.Ent("Jane", "PERSON", 0),
		testhelpers.Ent("Doe", "PERSON", 5),
	}, nil).Once()

	got, err := Multi{first, second}.Extract(doc)
	assert.NoError(t, err)
	assert.Equal(t, []lib.Entity{
		testhelpers.Ent("Jane", "PERSON", 0),
		testhelpers.Ent("Doe", "PERSON", 5),
		testhelpers.Ent("Leeds", "LOC", 10),
	}, got)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestMulti_Extract_same_span(t *testing.T) {
	doc := "Contact jane@x.com now"
	email := &testhelpers.MockExtractor{}
	email.On("Extract", doc).Return([]lib.Entity{testhelpers.Find(doc, "jane@x.com", "EMAIL", 0)}, nil)
	contact := &testhelpers.MockExtractor{}
	contact.On("Extract", doc).Return([]lib.Entity{
		testhelpers.Find(doc, "jane@x.com", "CONTACT", 0),
		testhelpers.Find(doc, "Contact", "CONTACT", 0),
	}, nil)

	got, err := Multi{email, contact}.Extract(doc)
	assert.NoError(t, err)
	assert.Equal(t, []lib.Entity{
		testhelpers.Ent("Contact", "CONTACT", 0),
		testhelpers.Ent("jane@x.com", "EMAIL", 8),
	}, got)
}

func TestUniqueSpans(t *testing.T) {
	entities := []lib.Entity{
		testhelpers.Ent("jane", "PERSON", 0),
		testhelpers.Ent("jane", "NAME", 0),
		testhelpers.Ent("jane@x.com", "EMAIL", 0),
		testhelpers.Ent("jane", "PERSON", 0),
	}
	assert.Equal(t, []lib.Entity{
		testhelpers.Ent("jane", "PERSON", 0),
		testhelpers.Ent("jane@x.com", "EMAIL", 0),
	}, UniqueSpans(entities))
}

func TestMulti_Extract_error(t *testing.T) {
	boom := errors.New("boom")
	failing := &testhelpers.MockExtractor{}
	failing.On("Extract", "x").Return(nil, boom).Once()

	_, err := Multi{failing}.Extract("x")
	assert.Equal(t, boom, err)
}
