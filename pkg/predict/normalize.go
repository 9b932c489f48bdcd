// Package predict is the core prediction engine: it normalizes raw input
// into a bounded token context, then walks the n-gram orders from longest
// to shortest until a prefix match yields scorable candidates.
package predict

import (
	"errors"
	"strings"
)

// ErrInvalidInput marks input the normalizer rejected. Callers should
// render it differently from an empty prediction.
var ErrInvalidInput = errors.New("invalid input")

// MaxContextTokens bounds the anchor context; older tokens beyond this are
// dropped (short-memory Markov assumption).
const MaxContextTokens = 5

// Normalize validates and canonicalizes raw text into the anchor context:
// an ordered sequence of 1..MaxContextTokens lowercase tokens.
//
// Input is rejected with ErrInvalidInput when it is empty, contains any
// character outside the accepted set (letters, digits, apostrophe, space,
// and the punctuation ;:!?,.), cleans down to nothing, or contains a token
// made purely of digits. Punctuation is stripped, whitespace collapsed, and
// the result lowercased. When more than MaxContextTokens tokens remain,
// only the last MaxContextTokens are kept; this truncation is deterministic.
func Normalize(raw string) ([]string, error) {
	if raw == "" {
		return nil, ErrInvalidInput
	}

	var cleaned strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '\'':
			cleaned.WriteRune(r)
		case r == ' ':
			cleaned.WriteRune(' ')
		case r == ';' || r == ':' || r == '!' || r == '?' || r == ',' || r == '.':
			// allowed on input, stripped from the context
		default:
			return nil, ErrInvalidInput
		}
	}

	tokens := strings.Fields(strings.ToLower(cleaned.String()))
	if len(tokens) == 0 {
		return nil, ErrInvalidInput
	}
	for _, tok := range tokens {
		if isOnlyDigits(tok) {
			return nil, ErrInvalidInput
		}
	}

	if len(tokens) > MaxContextTokens {
		tokens = tokens[len(tokens)-MaxContextTokens:]
	}
	return tokens, nil
}

func isOnlyDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
