package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/segment"
)

// Token is a word or punctuation run and its offset, in runes, within the text it
// was read from.
type Token struct {
	Text   string
	Offset int
}

// End returns the half-open end offset of the token, in runes.
func (t Token) End() int {
	return t.Offset + utf8.RuneCountInString(t.Text)
}

/**
	Tokenize splits text into tokens on unicode word boundaries and calls onToken for
	each one. Whitespace is never part of a token and never emitted; every other
	segment (words, numbers, punctuation) is its own token.

	Offsets are rune offsets, so they can be used directly as entity offsets.
**/
func Tokenize(text string, onToken func(Token) error) error {
	segmenter := segment.NewWordSegmenterDirect([]byte(text))

	position := 0
	for segmenter.Segment() {
		segmentBytes := segmenter.Bytes()
		width := utf8.RuneCount(segmentBytes)

		if segmenter.Type() != segment.None || !isWhitespace(segmentBytes) {
			if err := onToken(Token{Text: string(segmentBytes), Offset: position}); err != nil {
				return err
			}
		}
		position += width
	}
	return segmenter.Err()
}

// Tokens is a convenience wrapper around Tokenize that collects every token.
func Tokens(text string) ([]Token, error) {
	var tokens []Token
	err := Tokenize(text, func(token Token) error {
		tokens = append(tokens, token)
		return nil
	})
	return tokens, err
}

func isWhitespace(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if !unicode.IsSpace(r) {
			return false
		}
		b = b[size:]
	}
	return true
}
