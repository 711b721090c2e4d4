// Package dataset loads career categories from tabular sources and validates
// them once at the load boundary.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"counsellor/internal/domain"
)

var (
	// ErrInvalidRow is returned for rows without an interest or without careers.
	ErrInvalidRow = errors.New("invalid dataset row")
	// ErrDuplicateInterest is returned when two rows share the same interest.
	ErrDuplicateInterest = errors.New("duplicate interest")
	// ErrEmptyDataset is returned when a source yields no rows.
	ErrEmptyDataset = errors.New("empty dataset")
)

// Row is one raw record: comma-separated keywords, careers and traits.
type Row struct {
	Interest          string
	Keywords          string
	Careers           string
	PersonalityTraits string
}

// Source yields raw rows in their original order.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Load reads every row of src and builds categories from them.
func Load(ctx context.Context, src Source, n domain.Normalizer) ([]domain.CareerCategory, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return Build(rows, n)
}

// Build validates rows and converts them into categories, keeping row order.
// Keywords and traits go through n so they compare equal to normalized input;
// a multi-word keyword contributes each of its tokens.
func Build(rows []Row, n domain.Normalizer) ([]domain.CareerCategory, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	seen := make(map[string]struct{}, len(rows))
	out := make([]domain.CareerCategory, 0, len(rows))
	for i, r := range rows {
		interest := strings.TrimSpace(r.Interest)
		if interest == "" {
			return nil, fmt.Errorf("row %d: %w: missing interest", i+1, ErrInvalidRow)
		}
		if _, dup := seen[interest]; dup {
			return nil, fmt.Errorf("row %d: %w: %q", i+1, ErrDuplicateInterest, interest)
		}
		seen[interest] = struct{}{}

		careers := splitList(r.Careers)
		if len(careers) == 0 {
			return nil, fmt.Errorf("row %d (%s): %w: no careers", i+1, interest, ErrInvalidRow)
		}

		keywords := make(map[string]struct{})
		for _, k := range splitList(r.Keywords) {
			for _, tok := range n.Normalize(k) {
				keywords[tok] = struct{}{}
			}
		}

		out = append(out, domain.CareerCategory{
			Interest:          interest,
			Keywords:          keywords,
			Careers:           careers,
			PersonalityTraits: normalizeTraits(r.PersonalityTraits, n),
		})
	}
	return out, nil
}

// Traits returns the set of every trait used by categories.
func Traits(categories []domain.CareerCategory) map[string]struct{} {
	set := make(map[string]struct{})
	for _, c := range categories {
		for _, t := range c.PersonalityTraits {
			set[t] = struct{}{}
		}
	}
	return set
}

func normalizeTraits(raw string, n domain.Normalizer) []string {
	var traits []string
	seen := make(map[string]struct{})
	for _, t := range splitList(raw) {
		for _, tok := range n.Normalize(t) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			traits = append(traits, tok)
		}
	}
	return traits
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
