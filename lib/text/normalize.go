package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var TokenDelimiters = map[byte]struct{}{
	'(':  {},
	')':  {},
	'{':  {},
	'}':  {},
	'[':  {},
	']':  {},
	'"':  {},
	'\'': {},
	':':  {},
	';':  {},
	',':  {},
	'.':  {},
	'?':  {},
	'!':  {},
}

func IsTokenDelimiter(b byte) bool {
	_, ok := TokenDelimiters[b]
	return ok
}

// Normalize returns s in NFKC form and lower case, so that visually equivalent
// strings compare equal.
func Normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// NormalizeToken strips one enclosing delimiter from each end of the token, moving
// the offset past a stripped leading delimiter, and normalizes what remains. The
// boolean reports whether a trailing delimiter was removed. A token made of a
// single delimiter normalizes to the empty string.
func NormalizeToken(token Token) (Token, bool) {
	var sentenceEnd bool
	s := token.Text

	// Check length so we dont index an empty string
	if len(s) == 0 {
		return token, false
	} else if len(s) == 1 && IsTokenDelimiter(s[0]) {
		return Token{Offset: token.Offset}, true
	}

	if IsTokenDelimiter(s[0]) {
		token.Offset++
		s = s[1:]
	}
	if len(s) > 0 && IsTokenDelimiter(s[len(s)-1]) {
		s = s[:len(s)-1]
		sentenceEnd = true
	}

	token.Text = Normalize(s)
	return token, sentenceEnd
}

// Key builds the lookup key for a run of tokens: each token normalized, punctuation
// dropped, joined with single spaces.
func Key(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		normalized, _ := NormalizeToken(token)
		if normalized.Text == "" {
			continue
		}
		parts = append(parts, normalized.Text)
	}
	return strings.Join(parts, " ")
}
