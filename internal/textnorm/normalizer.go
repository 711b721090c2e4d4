package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Reducer maps a lowercase token to its base form.
type Reducer func(token string) string

// Normalizer lowercases text, splits it on word boundaries, drops English
// stopwords and reduces each remaining token to its base form.
type Normalizer struct {
	tokenPattern *regexp.Regexp
	isStopword   func(string) bool
	reduce       Reducer
	foldAccents  bool
}

// Option customises a Normalizer.
type Option func(*Normalizer)

// WithReducer replaces the snowball reducer.
func WithReducer(r Reducer) Option {
	return func(n *Normalizer) { n.reduce = r }
}

// WithAccentFolding strips combining marks before tokenizing (café -> cafe).
func WithAccentFolding(enabled bool) Option {
	return func(n *Normalizer) { n.foldAccents = enabled }
}

// New creates a Normalizer backed by the snowball English stemmer and stopword list.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_]+`),
		isStopword:   english.IsStopWord,
		reduce:       SnowballReducer,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SnowballReducer stems with the snowball English algorithm. Tokens the
// stemmer rejects pass through unchanged.
func SnowballReducer(token string) string {
	stem, err := snowball.Stem(token, "english", false)
	if err != nil || stem == "" {
		return token
	}
	return stem
}

// Normalize returns the canonical token sequence of text. The result never
// contains a stopword, including stopwords produced by reduction.
func (n *Normalizer) Normalize(text string) []string {
	raw := n.tokenize(text)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if n.isStopword(tok) {
			continue
		}
		base := n.reduce(tok)
		if base == "" || n.isStopword(base) {
			continue
		}
		out = append(out, base)
	}
	return out
}

// IsStopword reports whether tok belongs to the stopword set.
func (n *Normalizer) IsStopword(tok string) bool { return n.isStopword(tok) }

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func (n *Normalizer) tokenize(text string) []string {
	lower := strings.ToLower(text)
	if n.foldAccents {
		if folded, _, err := transform.String(stripAccents, lower); err == nil {
			lower = folded
		}
	}
	return n.tokenPattern.FindAllString(lower, -1)
}
