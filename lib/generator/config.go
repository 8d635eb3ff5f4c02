package generator

import (
	"fmt"
	"unicode/utf8"

	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/anonymize"
)

type Type string

const (
	TypeRedact    Type = "redact"
	TypeLabel     Type = "label"
	TypeMask      Type = "mask"
	TypeMapping   Type = "mapping"
	TypePseudonym Type = "pseudonym"
	TypeRandom    Type = "random"
)

type Config struct {
	Type        Type
	Substitute  string
	Mask        string
	MappingFile string `mapstructure:"mapping_file"`
}

// FromConfig builds the value generator named by conf.Type.
func FromConfig(conf Config) (anonymize.ValueGenerator, error) {
	switch conf.Type {
	case TypeRedact:
		return Redact(conf.Substitute), nil
	case TypeLabel, "":
		return Label(), nil
	case TypeMask:
		if utf8.RuneCountInString(conf.Mask) > 1 {
			return nil, fmt.Errorf("mask must be a single character, got %q", conf.Mask)
		}
		r, _ := utf8.DecodeRuneInString(conf.Mask)
		if r == utf8.RuneError {
			r = DefaultMask
		}
		return Mask(r), nil
	case TypeMapping:
		values, err := LoadMapping(conf.MappingFile)
		if err != nil {
			return nil, err
		}
		return Mapping(values), nil
	case TypePseudonym:
		return NewPseudonymizer().Generate, nil
	case TypeRandom:
		return Random(), nil
	default:
		return nil, fmt.Errorf("unknown generator type %q", conf.Type)
	}
}
