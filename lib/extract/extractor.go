// Package extract locates sensitive entities in text. Extractors sit in front of
// the anonymize engine: they decide what is sensitive, the engine decides what it
// becomes.
package extract

import (
	"sort"

	"github.com/samber/lo"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
)

type Extractor interface {
	// Extract returns the entities found in text, with rune offsets.
	Extract(text string) ([]lib.Entity, error)
}

// Multi runs every extractor over the same text and merges their results.
type Multi []Extractor

// Extract concatenates the results of each extractor, keeps one entity per span
// and returns them sorted by StartIndex. When several extractors label the same
// span, the earliest extractor wins.
func (m Multi) Extract(text string) ([]lib.Entity, error) {
	var entities []lib.Entity
	for _, extractor := range m {
		found, err := extractor.Extract(text)
		if err != nil {
			return nil, err
		}
		entities = append(entities, found...)
	}

	entities = UniqueSpans(entities)
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].StartIndex < entities[j].StartIndex
	})
	return entities, nil
}

// UniqueSpans keeps the first entity for each (StartIndex, EndIndex) span. Two
// entities on one span would be spliced twice, the second against stale offsets.
func UniqueSpans(entities []lib.Entity) []lib.Entity {
	return lo.UniqBy(entities, func(e lib.Entity) [2]int {
		return [2]int{e.StartIndex, e.EndIndex}
	})
}

// FilterSubmatches removes entities whose span lies inside the span of another,
// longer entity. Entities that only partly overlap are kept.
func FilterSubmatches(entities []lib.Entity) []lib.Entity {
	filteredEntities := make([]lib.Entity, 0, len(entities))

OuterLoopLabel:
	for _, candidate := range entities {
		for _, entity := range entities {
			if IsSubmatch(candidate, entity) {
				continue OuterLoopLabel
			}
		}
		filteredEntities = append(filteredEntities, candidate)
	}
	return filteredEntities
}

func IsSubmatch(candidate, entity lib.Entity) bool {
	return candidate.EndIndex-candidate.StartIndex < entity.EndIndex-entity.StartIndex &&
		candidate.StartIndex >= entity.StartIndex &&
		candidate.EndIndex <= entity.EndIndex
}

// runeOffsets maps the byte offset of every rune start in s to its rune offset.
// The returned slice has len(s)+1 entries so the end of s can be looked up too.
func runeOffsets(s string) []int {
	offsets := make([]int, len(s)+1)
	n := 0
	for i := range s {
		offsets[i] = n
		n++
	}
	offsets[len(s)] = n
	return offsets
}
