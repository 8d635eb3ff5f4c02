package pipeline

import (
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/anonymize"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/audit"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/blocklist"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/extract"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/generator"
)

type ExtractorsConfig struct {
	RegexFile           string `mapstructure:"regex_file"`
	DictionaryFile      string `mapstructure:"dictionary_file"`
	CompoundTokenLength int    `mapstructure:"compound_token_length"`
}

// Config is the part of a binary's config that describes its pipeline.
type Config struct {
	Generator     generator.Config
	Extractors    ExtractorsConfig
	BlocklistFile string `mapstructure:"blocklist_file"`
	Audit         audit.Config
}

// DefaultConfig is suitable as the defaultConfig argument of lib.InitializeConfig.
func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"generator": map[string]interface{}{
			"type":         generator.TypeLabel,
			"substitute":   generator.DefaultRedaction,
			"mask":         string(generator.DefaultMask),
			"mapping_file": "",
		},
		"extractors": map[string]interface{}{
			"regex_file":            "",
			"dictionary_file":       "",
			"compound_token_length": extract.DefaultCompoundTokenLength,
		},
		"blocklist_file": "",
		"audit": map[string]interface{}{
			"backend": audit.None,
			"redis": map[string]interface{}{
				"host": "localhost",
				"port": 6379,
				"ttl":  "0s",
			},
			"elasticsearch": map[string]interface{}{
				"host":  "localhost",
				"port":  9200,
				"index": "anonymization-audit",
			},
		},
	}
}

// FromConfig builds a pipeline from conf. With no extractor configured the
// pipeline can only anonymize caller supplied entities.
func FromConfig(conf Config) (*Pipeline, error) {
	generate, err := generator.FromConfig(conf.Generator)
	if err != nil {
		return nil, err
	}

	var extractors extract.Multi
	if conf.Extractors.RegexFile != "" {
		r, err := extract.LoadRegex(conf.Extractors.RegexFile)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, r)
	}
	if conf.Extractors.DictionaryFile != "" {
		d, err := extract.LoadDictionary(conf.Extractors.DictionaryFile, conf.Extractors.CompoundTokenLength)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, d)
	}

	var opts []Option
	if conf.BlocklistFile != "" {
		bl, err := blocklist.Load(conf.BlocklistFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithBlocklist(bl))
	}

	store, err := audit.NewStore(conf.Audit)
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts = append(opts, WithAuditStore(store))
	}

	var extractor extract.Extractor
	if len(extractors) > 0 {
		extractor = extractors
	} else {
		log.Warn().Msg("no extractors configured, entities must be supplied by the caller")
	}

	log.Info().
		Str("generator", string(conf.Generator.Type)).
		Int("extractors", len(extractors)).
		Str("audit_backend", string(conf.Audit.Backend)).
		Msg("pipeline configured")
	return New(extractor, anonymize.New(generate), opts...), nil
}
