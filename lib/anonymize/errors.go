package anonymize

import (
	"errors"
	"fmt"

	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
)

var (
	ErrInvalidEntity    = errors.New("invalid entity")
	ErrGeneratorFailure = errors.New("value generator failed")
	ErrNoGenerator      = errors.New("engine has no value generator")
)

// InvalidEntityError is returned when an entity's offsets do not fit the text
// it is about to be spliced into.
type InvalidEntityError struct {
	Entity lib.Entity
	// Length of the text, in runes, at the time the entity was processed.
	Length int
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("%s: %q [%d:%d] does not fit text of length %d",
		ErrInvalidEntity, e.Entity.Text, e.Entity.StartIndex, e.Entity.EndIndex, e.Length)
}

func (e *InvalidEntityError) Is(target error) bool {
	return target == ErrInvalidEntity
}

// GeneratorError wraps an error returned by a ValueGenerator.
type GeneratorError struct {
	Entity lib.Entity
	Err    error
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("%s for %s entity %q: %v", ErrGeneratorFailure, e.Entity.Label, e.Entity.Text, e.Err)
}

func (e *GeneratorError) Is(target error) bool {
	return target == ErrGeneratorFailure
}

func (e *GeneratorError) Unwrap() error {
	return e.Err
}
