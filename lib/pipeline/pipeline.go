// Package pipeline ties extraction, anonymization and auditing together, for
// single texts and for whole directory trees.
package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/anonymize"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/audit"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/blocklist"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/extract"
)

var (
	ErrNoExtractor = errors.New("pipeline has no extractor")
	ErrEmptyFile   = errors.New("file is empty")
	ErrNotText     = errors.New("file is not valid utf-8 text")
)

type Option func(*Pipeline)

func WithBlocklist(b *blocklist.Blocklist) Option {
	return func(p *Pipeline) {
		p.blocklist = b
	}
}

func WithAuditStore(s audit.Store) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

type Pipeline struct {
	extractor extract.Extractor
	engine    *anonymize.Engine
	blocklist *blocklist.Blocklist
	store     audit.Store

	mut                  sync.Mutex
	anonymizedFilesCount int
}

// Result is the outcome of anonymizing one text. ID is the audit record id and is
// empty when the pipeline has no audit store.
type Result struct {
	ID           string            `json:"id,omitempty"`
	Text         string            `json:"text"`
	Replacements []lib.Replacement `json:"replacements"`
}

// New builds a pipeline. extractor may be nil if entities are always supplied by
// the caller through AnonymizeEntities.
func New(extractor extract.Extractor, engine *anonymize.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: extractor,
		engine:    engine,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Store() audit.Store {
	return p.store
}

// Entities extracts the entities of text, keeps one entity per span, drops entities
// nested in longer ones and removes blocklisted entities.
func (p *Pipeline) Entities(text string) ([]lib.Entity, error) {
	if p.extractor == nil {
		return nil, ErrNoExtractor
	}
	entities, err := p.extractor.Extract(text)
	if err != nil {
		return nil, err
	}
	entities = extract.FilterSubmatches(extract.UniqueSpans(entities))
	if p.blocklist != nil {
		entities = p.blocklist.FilterEntities(entities)
	}
	return entities, nil
}

// AnonymizeText extracts the entities of text and anonymizes them. document names
// the text in the audit trail.
func (p *Pipeline) AnonymizeText(document, text string) (*Result, error) {
	entities, err := p.Entities(text)
	if err != nil {
		return nil, err
	}
	return p.AnonymizeEntities(document, text, entities)
}

// AnonymizeEntities anonymizes text with entities supplied by the caller and, if
// the pipeline has an audit store, stores the replacements.
func (p *Pipeline) AnonymizeEntities(document, text string, entities []lib.Entity) (*Result, error) {
	anonymized, replacements, err := p.engine.Anonymize(text, entities)
	if err != nil {
		return nil, err
	}

	result := &Result{Text: anonymized, Replacements: replacements}
	if p.store != nil {
		record := audit.NewRecord(document, replacements)
		if err := p.store.Put(record); err != nil {
			return nil, fmt.Errorf("storing audit record: %w", err)
		}
		result.ID = record.ID
	}

	log.Debug().
		Str("document", document).
		Str("audit_id", result.ID).
		Int("replacements", len(replacements)).
		Msg("text anonymized")
	return result, nil
}

/**
	Anonymize anonymizes every file under inputDir and writes the results to outputDir.

	Each anonymized file is named file<N>_anony<ext>, where N counts the files this
	pipeline has written so far (across calls). Html files are converted to text and
	written with a .txt extension. With flatten, every file is written directly into
	outputDir; otherwise the directory structure of inputDir is mirrored.

	Files which cannot be read or anonymized are logged and skipped, as are files
	whose anonymized text is blank. A pipeline without an extractor fails with
	ErrNoExtractor before anything is read or written.

	The returned JSON maps "<inputDir name>/<relative path>" to
	"<outputDir name>/<relative output path>", with sorted keys.
**/
func (p *Pipeline) Anonymize(inputDir, outputDir string, flatten bool) (string, error) {
	if p.extractor == nil {
		return "", ErrNoExtractor
	}
	if _, err := os.Stat(inputDir); err != nil {
		return "", fmt.Errorf("input directory '%s' does not exist", inputDir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return "", err
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if absInput == absOutput {
		return "", errors.New("input and output directories cannot be the same")
	}

	inputName, outputName := filepath.Base(absInput), filepath.Base(absOutput)
	fileNameMapping := make(map[string]string)

	err = filepath.WalkDir(absInput, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// an output directory nested in the input must not be read back
			if path == absOutput {
				return filepath.SkipDir
			}
			return nil
		}

		anonymizedText, err := p.anonymizeFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("error processing file")
			return nil
		}
		if strings.TrimSpace(anonymizedText) == "" {
			log.Warn().Str("file", path).Msg("skipping file: anonymized text is empty")
			return nil
		}

		relativePath, err := filepath.Rel(absInput, path)
		if err != nil {
			return err
		}

		outputFileName := fmt.Sprintf("file%d_anony%s", p.nextFileNumber(), outputExt(path))
		var outputFilePath string
		if flatten {
			outputFilePath = filepath.Join(absOutput, outputFileName)
		} else {
			outputFilePath = filepath.Join(absOutput, filepath.Dir(relativePath), outputFileName)
			if err := os.MkdirAll(filepath.Dir(outputFilePath), 0755); err != nil {
				return err
			}
		}

		if err := ioutil.WriteFile(outputFilePath, []byte(anonymizedText), 0644); err != nil {
			return err
		}

		relativeOutput, err := filepath.Rel(absOutput, outputFilePath)
		if err != nil {
			return err
		}
		fileNameMapping[filepath.Join(inputName, relativePath)] = filepath.Join(outputName, relativeOutput)
		log.Info().Str("file", path).Str("output", outputFilePath).Msg("file anonymized")
		return nil
	})
	if err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(fileNameMapping, "", "    ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *Pipeline) nextFileNumber() int {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.anonymizedFilesCount++
	return p.anonymizedFilesCount
}

func (p *Pipeline) anonymizeFile(path string) (string, error) {
	text, err := readText(path)
	if err != nil {
		return "", err
	}
	result, err := p.AnonymizeText(path, text)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func outputExt(path string) string {
	if isHTML(path) {
		return ".txt"
	}
	return filepath.Ext(path)
}

func readText(path string) (string, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", ErrEmptyFile
	}
	if isHTML(path) {
		return lib.HtmlToText(bytes.NewReader(b))
	}
	if !utf8.Valid(b) {
		return "", ErrNotText
	}
	return string(b), nil
}
