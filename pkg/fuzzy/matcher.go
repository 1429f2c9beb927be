// Package fuzzy ranks candidate strings by similarity to a target.
//
// Similarity is the Ratcliff/Obershelp ratio: twice the number of characters
// in matching blocks divided by the total length of both strings. It is
// forgiving of single-character typos and transpositions, which is what a
// mistyped subcommand usually looks like.
package fuzzy

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sahilm/fuzzy"
)

const (
	// DefaultMaxResults is the number of matches returned when unset.
	DefaultMaxResults = 3
	// DefaultMinRatio is the similarity below which candidates are dropped.
	DefaultMinRatio = 0.6
)

// Match is one ranked candidate.
type Match struct {
	Text  string  // Candidate text
	Ratio float64 // Similarity in [0,1]
	Index int     // Position in the original candidate list
}

type options struct {
	maxResults int
	minRatio   float64
}

// Option tunes ClosestMatches.
type Option func(*options)

// WithMaxResults caps the number of returned matches. n <= 0 means no cap.
func WithMaxResults(n int) Option {
	return func(o *options) {
		o.maxResults = n
	}
}

// WithMinRatio sets the similarity cutoff.
func WithMinRatio(r float64) Option {
	return func(o *options) {
		o.minRatio = r
	}
}

// Ratio returns the similarity of a and b in [0,1].
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// Rank scores every candidate against target and returns those at or above
// the cutoff, best first. Equal scores keep their original order.
func Rank(target string, candidates []string, opts ...Option) []Match {
	o := options{maxResults: DefaultMaxResults, minRatio: DefaultMinRatio}
	for _, opt := range opts {
		opt(&o)
	}

	// seq2 is fixed so difflib caches its index once for all candidates.
	m := difflib.NewMatcher(nil, chars(target))
	var matches []Match
	for i, candidate := range candidates {
		m.SetSeq1(chars(candidate))
		// Cheap upper bounds first; both are >= Ratio.
		if m.RealQuickRatio() < o.minRatio || m.QuickRatio() < o.minRatio {
			continue
		}
		r := m.Ratio()
		if r < o.minRatio {
			continue
		}
		matches = append(matches, Match{Text: candidate, Ratio: r, Index: i})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Ratio > matches[j].Ratio
	})

	if o.maxResults > 0 && len(matches) > o.maxResults {
		matches = matches[:o.maxResults]
	}
	return matches
}

// ClosestMatches returns the candidates most similar to target, best first.
func ClosestMatches(target string, candidates []string, opts ...Option) []string {
	ranked := Rank(target, candidates, opts...)
	out := make([]string, len(ranked))
	for i, m := range ranked {
		out[i] = m.Text
	}
	return out
}

// Closest returns the single best candidate at the default cutoff.
func Closest(target string, candidates []string) (string, bool) {
	best := ClosestMatches(target, candidates, WithMaxResults(1))
	if len(best) == 0 {
		return "", false
	}
	return best[0], true
}

// Filter returns the names that contain pattern as a subsequence, best
// match first. An empty pattern returns names unchanged.
func Filter(pattern string, names []string) []string {
	if pattern == "" {
		return names
	}
	found := fuzzy.Find(pattern, names)
	out := make([]string, len(found))
	for i, m := range found {
		out[i] = m.Str
	}
	return out
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
