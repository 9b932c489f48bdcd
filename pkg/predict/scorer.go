package predict

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/hbarrien/nextwordpredictor/pkg/corpus"
)

// DefaultMatchSample bounds how many matched grams are scored per call.
// Larger match sets are uniformly subsampled first.
const DefaultMatchSample = 150

// Candidate is one scored next-word candidate. Duplicate words are not
// merged; each matched gram contributes its own candidate.
type Candidate struct {
	Word  string
	Score float64
}

// Scorer converts matched grams into ranked candidates. Exactly one
// implementation is active per engine; both variants are swappable.
type Scorer interface {
	// Score ranks the candidates extracted from matches, descending by
	// probability. The anchor context is the full normalized input, not
	// the possibly-shortened search context.
	Score(matches []string, anchor []string, freqs *corpus.FrequencyTable) []Candidate

	// Name returns the variant name for logs and config.
	Name() string
}

// NewScorer returns the scorer variant named in config: "single" or
// "paired". Unknown names fall back to single-term.
func NewScorer(name string, denominator float64, matchSample int, rng *rand.Rand) Scorer {
	base := scorerBase{denom: denominator, matchSample: matchSample, rng: rng}
	if base.denom <= 0 {
		base.denom = corpus.DefaultSampleSize
	}
	if base.matchSample <= 0 {
		base.matchSample = DefaultMatchSample
	}
	if name == "paired" {
		return &PairedTermScorer{scorerBase: base}
	}
	return &SingleTermScorer{scorerBase: base}
}

type scorerBase struct {
	denom       float64
	matchSample int
	rng         *rand.Rand
}

// sample uniformly subsamples matches down to matchSample entries. Order
// within the kept entries follows the permutation, which is another
// accepted source of run-to-run nondeterminism.
func (b *scorerBase) sample(matches []string) []string {
	if len(matches) <= b.matchSample {
		return matches
	}
	sampled := make([]string, 0, b.matchSample)
	for _, idx := range b.rng.Perm(len(matches))[:b.matchSample] {
		sampled = append(sampled, matches[idx])
	}
	return sampled
}

// score walks the anchor+candidate sequence right to left, multiplying the
// per-step smoothed frequency estimate into a chain probability. step
// yields the numerator for position i.
func (b *scorerBase) score(matches []string, anchor []string, step func(seq []string, i int) float64) []Candidate {
	if len(matches) == 0 {
		return nil
	}
	matches = b.sample(matches)

	candidates := make([]Candidate, 0, len(matches))
	seq := make([]string, 0, len(anchor)+1)
	for _, gram := range matches {
		tokens := strings.Fields(gram)
		if len(tokens) < 2 {
			continue
		}
		word := tokens[len(tokens)-1]

		seq = append(seq[:0], anchor...)
		seq = append(seq, word)

		p := 1.0
		for i := len(seq) - 1; i >= 0; i-- {
			p *= step(seq, i) / b.denom
		}
		candidates = append(candidates, Candidate{Word: word, Score: p})
	}

	// Stable: equal scores keep discovery order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// SingleTermScorer estimates each chain step from the step token's own
// smoothed frequency.
type SingleTermScorer struct {
	scorerBase
}

func (s *SingleTermScorer) Score(matches []string, anchor []string, freqs *corpus.FrequencyTable) []Candidate {
	return s.score(matches, anchor, func(seq []string, i int) float64 {
		return float64(freqs.Freq(seq[i]))
	})
}

func (s *SingleTermScorer) Name() string { return "single" }

// PairedTermScorer sums the step token's frequency with its immediate left
// neighbor's before the division, approximating a bigram-smoothed chain
// rule. The leftmost token has no neighbor and scores like the single-term
// variant.
type PairedTermScorer struct {
	scorerBase
}

func (s *PairedTermScorer) Score(matches []string, anchor []string, freqs *corpus.FrequencyTable) []Candidate {
	return s.score(matches, anchor, func(seq []string, i int) float64 {
		if i == 0 {
			return float64(freqs.Freq(seq[i]))
		}
		return float64(freqs.Freq(seq[i]) + freqs.Freq(seq[i-1]))
	})
}

func (s *PairedTermScorer) Name() string { return "paired" }
