package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/audit"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/generator"
)

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	regexFile := filepath.Join(dir, "regexps.yml")
	dictionaryFile := filepath.Join(dir, "dictionary.yml")
	blocklistFile := filepath.Join(dir, "blocklist.yml")
	require.NoError(t, os.WriteFile(regexFile, []byte("EMAIL: '[a-z]+@[a-z]+\\.[a-z]+'\n"), 0600))
	require.NoError(t, os.WriteFile(dictionaryFile, []byte("PERSON:\n  - Jane Doe\n  - MDC\n"), 0600))
	require.NoError(t, os.WriteFile(blocklistFile, []byte("case_sensitive:\n  - MDC\n"), 0600))

	p, err := FromConfig(Config{
		Generator: generator.Config{Type: generator.TypeLabel},
		Extractors: ExtractorsConfig{
			RegexFile:      regexFile,
			DictionaryFile: dictionaryFile,
		},
		BlocklistFile: blocklistFile,
		Audit:         audit.Config{Backend: audit.Local},
	})
	require.NoError(t, err)

	result, err := p.AnonymizeText("letter", "Dear Jane Doe (jane@x.com), regards MDC")
	require.NoError(t, err)
	assert.Equal(t, "Dear [PERSON] ([EMAIL]), regards MDC", result.Text)
	assert.NotEmpty(t, result.ID)
}

func TestFromConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		conf Config
	}{
		{name: "unknown generator", conf: Config{Generator: generator.Config{Type: "nope"}}},
		{name: "missing regex file", conf: Config{Extractors: ExtractorsConfig{RegexFile: "missing.yml"}}},
		{name: "missing dictionary", conf: Config{Extractors: ExtractorsConfig{DictionaryFile: "missing.yml"}}},
		{name: "missing blocklist", conf: Config{BlocklistFile: "missing.yml"}},
		{name: "unknown audit backend", conf: Config{Audit: audit.Config{Backend: "tape"}}},
	}
	for _, tt := range tests {
		_, err := FromConfig(tt.conf)
		assert.Error(t, err, tt.name)
	}
}

func TestFromConfigWithoutExtractors(t *testing.T) {
	p, err := FromConfig(Config{})
	require.NoError(t, err)
	_, err = p.AnonymizeText("", "x")
	assert.Equal(t, ErrNoExtractor, err)
	_, err = p.Anonymize(t.TempDir(), t.TempDir(), false)
	assert.Equal(t, ErrNoExtractor, err)
	assert.Nil(t, p.Store())
}
