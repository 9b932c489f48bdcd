package predict

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hbarrien/nextwordpredictor/pkg/corpus"
)

// DefaultMaxCandidates is how many ranked words a prediction returns at most.
const DefaultMaxCandidates = 5

// Options configures an Engine. Zero values fall back to the documented
// defaults.
type Options struct {
	// DataDir holds the corpus files (bigrams.txt..sextagrams.txt plus the
	// two frequency-table files).
	DataDir string
	// Mode selects resident or ephemeral corpus residency.
	Mode corpus.Mode
	// SampleSize is the per-load gram sample size and the denominator of
	// the probability model. Defaults to corpus.DefaultSampleSize.
	SampleSize int
	// MatchSample bounds how many matched grams are scored per call.
	MatchSample int
	// MaxCandidates caps the ranked result length. Defaults to 5.
	MaxCandidates int
	// Scorer names the scoring variant, "single" or "paired".
	Scorer string
	// Seed pins both sampling RNGs for reproducible runs; 0 derives a seed
	// from the clock.
	Seed int64
	// BackoffTimeout bounds total wall-clock time across backoff rounds,
	// since each round may re-read a corpus file from disk. 0 disables it.
	BackoffTimeout time.Duration
}

// Prediction is the successful outcome of a Predict call. An empty
// Candidates slice means the input was valid but no gram matched at any
// order down to bigram.
type Prediction struct {
	// Candidates holds up to MaxCandidates words, descending by score,
	// ties in discovery order.
	Candidates []Candidate
	// Order is the n-gram order that produced the match; zero when no
	// prediction was found.
	Order corpus.Order
}

// Words returns just the candidate words in rank order, the shape the
// caller renders.
func (p *Prediction) Words() []string {
	words := make([]string, len(p.Candidates))
	for i, c := range p.Candidates {
		words[i] = c.Word
	}
	return words
}

// Engine owns the corpus store, the frequency table, and the scoring
// strategy, and runs the order-backoff loop. It serializes predictions
// behind a single lock: the store mutates shared cache state on load and
// release, so at most one prediction runs at a time.
type Engine struct {
	mu             sync.Mutex
	store          *corpus.Store
	freqs          *corpus.FrequencyTable
	scorer         Scorer
	dataDir        string
	maxCandidates  int
	backoffTimeout time.Duration
}

// NewEngine creates an engine over the corpus in opts.DataDir. No corpus
// data is touched until the first Predict call.
func NewEngine(opts Options) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxCandidates := opts.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	denom := opts.SampleSize
	if denom <= 0 {
		denom = corpus.DefaultSampleSize
	}

	return &Engine{
		store:          corpus.NewStore(opts.DataDir, opts.Mode, opts.SampleSize, seed),
		scorer:         NewScorer(opts.Scorer, float64(denom), opts.MatchSample, rand.New(rand.NewSource(seed+1))),
		dataDir:        opts.DataDir,
		maxCandidates:  maxCandidates,
		backoffTimeout: opts.BackoffTimeout,
	}
}

// ScorerName returns the active scoring variant.
func (e *Engine) ScorerName() string { return e.scorer.Name() }

// Predict returns the most probable next words for raw input.
//
// The error distinguishes the failure taxonomy: ErrInvalidInput for
// rejected input (detected before any data load), any other error for a
// corpus or frequency-table failure. A nil error with zero candidates is
// the normal "no prediction" outcome after backoff exhausted the bigram
// order.
func (e *Engine) Predict(raw string) (*Prediction, error) {
	anchor, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.freqs == nil {
		freqs, err := corpus.LoadFrequencyTable(e.dataDir)
		if err != nil {
			return nil, err
		}
		e.freqs = freqs
	}

	start := time.Now()
	order := corpus.OrderForContext(len(anchor))
	search := anchor[len(anchor)-order.ContextLen():]
	var prev corpus.Order

	for {
		if e.backoffTimeout > 0 && time.Since(start) > e.backoffTimeout {
			e.store.ReleaseAll()
			return nil, fmt.Errorf("backoff exceeded %v at %s order", e.backoffTimeout, order)
		}
		if prev != 0 {
			e.store.Release(prev)
		}

		set, err := e.store.Load(order)
		if err != nil {
			e.store.ReleaseAll()
			return nil, err
		}

		matches := Match(search, set)
		log.Debugf("Matched %d grams at %s order", len(matches), order)

		if len(matches) == 0 {
			if order == corpus.Bigram {
				e.store.Release(order)
				return &Prediction{}, nil
			}
			// Back off: the search prefix drops its leftmost token, the
			// anchor used for scoring does not.
			prev = order
			order--
			search = search[1:]
			continue
		}

		candidates := e.scorer.Score(matches, anchor, e.freqs)
		if len(candidates) > e.maxCandidates {
			candidates = candidates[:e.maxCandidates]
		}
		e.store.Release(order)
		return &Prediction{Candidates: candidates, Order: order}, nil
	}
}
