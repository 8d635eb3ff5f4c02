package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
)

func TestDictionary_Extract(t *testing.T) {
	d, err := NewDictionary(map[string][]string{
		"PERSON": {"Jane Doe", "Jane", "Jane"},
		"ORG":    {"Acme Corp.", "."},
	}, 0)
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []lib.Entity
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "longest phrase wins and spacing is kept",
			text: "Jane Doe joined ACME  corp, not Jane.",
			want: []lib.Entity{
				{Text: "Jane Doe", Label: "PERSON", StartIndex: 0, EndIndex: 8},
				{Text: "ACME  corp", Label: "ORG", StartIndex: 16, EndIndex: 26},
				{Text: "Jane", Label: "PERSON", StartIndex: 32, EndIndex: 36},
			},
		},
		{
			name: "rune offsets",
			text: "Żółw i Jane",
			want: []lib.Entity{
				{Text: "Jane", Label: "PERSON", StartIndex: 7, EndIndex: 11},
			},
		},
	}
	for _, tt := range tests {
		got, err := d.Extract(tt.text)
		assert.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestDictionary_compoundTokenLength(t *testing.T) {
	d, err := NewDictionary(map[string][]string{"ORG": {"Medicines Discovery Catapult"}}, 2)
	require.NoError(t, err)

	got, err := d.Extract("Medicines Discovery Catapult")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.yml")
	require.NoError(t, os.WriteFile(path, []byte("LOC:\n  - Leeds\n  - New York\n"), 0600))

	d, err := LoadDictionary(path, 3)
	require.NoError(t, err)
	got, err := d.Extract("From Leeds to NEW YORK")
	require.NoError(t, err)
	assert.Equal(t, []lib.Entity{
		{Text: "Leeds", Label: "LOC", StartIndex: 5, EndIndex: 10},
		{Text: "NEW YORK", Label: "LOC", StartIndex: 14, EndIndex: 22},
	}, got)
}
