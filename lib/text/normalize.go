package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultGenericSuffixes are the trailing tokens that carry no identity on
// their own in mining reports: site words and the commodity names that
// usually precede them. Stripping stacks, so "Boddington Gold Mine",
// "Boddington Gold" and "Boddington" all reduce to the same key.
var DefaultGenericSuffixes = []string{
	"project",
	"mine",
	"mines",
	"deposit",
	"prospect",
	"property",
	"operation",
	"tenement",
	"gold",
	"copper",
	"silver",
	"nickel",
	"zinc",
	"lead",
	"iron",
	"ore",
	"lithium",
	"uranium",
	"coal",
}

type Normalizer struct {
	genericSuffixes map[string]struct{}
}

// NewNormalizer returns a Normalizer which strips the given generic suffix
// tokens. A nil slice gets DefaultGenericSuffixes.
func NewNormalizer(genericSuffixes []string) *Normalizer {
	if genericSuffixes == nil {
		genericSuffixes = DefaultGenericSuffixes
	}
	suffixes := make(map[string]struct{}, len(genericSuffixes))
	for _, s := range genericSuffixes {
		suffixes[strings.ToLower(s)] = struct{}{}
	}
	return &Normalizer{genericSuffixes: suffixes}
}

/**
	Normalize canonicalizes a raw project name mention into the key used to
	merge mentions across documents.

	The raw text is NFKC normalised, lowercased, and every rune that is not a
	letter, digit or space becomes a space. Whitespace runs collapse to a
	single space. Trailing generic suffix tokens ("mine", "project", ...) are
	stripped while at least one other token remains, so a mention that consists
	only of a generic word is kept rather than reduced to nothing.

	Normalize is total and idempotent: it never fails, and
	Normalize(Normalize(x)) == Normalize(x) for any input.
**/
func (n *Normalizer) Normalize(raw string) string {
	s := norm.NFKC.String(raw)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for len(tokens) > 1 {
		if _, ok := n.genericSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, " ")
}
