// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"sort"
)

// TermSet is a set of distinct matched terms.
type TermSet map[string]struct{}

// NewTermSet builds a set from the given terms, dropping duplicates.
func NewTermSet(terms ...string) TermSet {
	s := make(TermSet, len(terms))
	for _, t := range terms {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts a term into the set.
func (s TermSet) Add(term string) {
	s[term] = struct{}{}
}

// Has reports whether term is in the set.
func (s TermSet) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// Len returns the number of distinct terms.
func (s TermSet) Len() int {
	return len(s)
}

// Intersect returns the terms present in both sets.
func (s TermSet) Intersect(other TermSet) TermSet {
	out := make(TermSet)
	for t := range s {
		if other.Has(t) {
			out.Add(t)
		}
	}
	return out
}

// Sorted returns the terms in lexical order.
func (s TermSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted JSON array so output is stable.
func (s TermSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes a JSON array of strings into the set.
func (s *TermSet) UnmarshalJSON(data []byte) error {
	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		return err
	}
	*s = NewTermSet(terms...)
	return nil
}

// SkillExtractionResult maps a skill category name to the distinct terms matched for it.
// Categories with no matches may be absent or hold an empty set.
type SkillExtractionResult map[string]TermSet

// NonEmpty reports whether the category has at least one matched term.
func (r SkillExtractionResult) NonEmpty(category string) bool {
	return r[category].Len() > 0
}
