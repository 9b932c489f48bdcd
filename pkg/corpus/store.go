package corpus

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Mode selects how the store holds corpus data between Load calls.
type Mode int

const (
	// Resident keeps each order's full gram file cached in memory for the
	// life of the process and draws a fresh sample from the cache on every
	// Load call.
	Resident Mode = iota
	// Ephemeral re-reads the gram file from disk on every Load call and
	// lets Release drop everything, bounding steady-state memory.
	Ephemeral
)

// DefaultSampleSize is how many gram records a Load call draws from the
// full corpus. It doubles as the denominator of the probability model.
const DefaultSampleSize = 800000

// GramSet is one order's sampled gram records, indexed for prefix search.
// Duplicate corpus lines survive sampling as a count on the trie item, so
// they still produce multiple candidates downstream.
type GramSet struct {
	order Order
	size  int
	trie  *patricia.Trie
}

// Order returns the n-gram order this set was loaded for.
func (g *GramSet) Order() Order { return g.order }

// Len returns the number of sampled records, counting duplicates.
func (g *GramSet) Len() int { return g.size }

// WithPrefix returns every sampled record that begins with the given byte
// prefix, duplicates expanded. Records come back in the trie's traversal
// order, which is deterministic for a given sample.
func (g *GramSet) WithPrefix(prefix string) []string {
	var records []string
	err := g.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		gram := string(p)
		for i := 0; i < item.(int); i++ {
			records = append(records, gram)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Visiting gram trie subtree: %v", err)
	}
	return records
}

// Store loads, samples, and releases per-order gram sets. It is not safe
// for concurrent use; the prediction engine serializes access behind its
// own lock.
type Store struct {
	dir        string
	mode       Mode
	sampleSize int
	rng        *rand.Rand
	full       map[Order][]string
	active     map[Order]*GramSet
}

// NewStore creates a store over the corpus files in dir. sampleSize <= 0
// falls back to DefaultSampleSize. The seed pins the sampling RNG so tests
// can reproduce rankings; pass a clock-derived seed for production use.
func NewStore(dir string, mode Mode, sampleSize int, seed int64) *Store {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &Store{
		dir:        dir,
		mode:       mode,
		sampleSize: sampleSize,
		rng:        rand.New(rand.NewSource(seed)),
		full:       make(map[Order][]string),
		active:     make(map[Order]*GramSet),
	}
}

// Load reads the corpus file for order (or reuses the resident cache) and
// draws a fresh random sample of up to sampleSize records. A missing or
// empty corpus file is a hard failure. Sampling is without replacement,
// capped at the population size, so repeated calls over a large corpus
// legitimately return different sets.
func (s *Store) Load(order Order) (*GramSet, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("load: unsupported order %d", int(order))
	}

	full, ok := s.full[order]
	if !ok {
		var err error
		full, err = readLines(filepath.Join(s.dir, order.FileName()))
		if err != nil {
			return nil, fmt.Errorf("load %s corpus: %w", order, err)
		}
		if s.mode == Resident {
			s.full[order] = full
		}
	}

	set := s.sample(order, full)
	s.active[order] = set
	log.Debugf("Loaded %s corpus: %d of %d records sampled", order, set.Len(), len(full))
	return set, nil
}

// Release drops the active sample for order. In ephemeral mode it also
// drops any cached full set. The engine calls this whenever backoff moves
// to a different order, to bound memory.
func (s *Store) Release(order Order) {
	delete(s.active, order)
	if s.mode == Ephemeral {
		delete(s.full, order)
	}
}

// ReleaseAll drops every active sample and, in ephemeral mode, all cached
// corpus data.
func (s *Store) ReleaseAll() {
	for order := range s.active {
		delete(s.active, order)
	}
	if s.mode == Ephemeral {
		for order := range s.full {
			delete(s.full, order)
		}
	}
}

// Seed re-seeds the sampling RNG. Exposed for tests that need to replay a
// run bit-for-bit.
func (s *Store) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// sample draws up to sampleSize records without replacement and indexes
// them in a patricia trie, folding duplicate lines into a count.
func (s *Store) sample(order Order, full []string) *GramSet {
	k := s.sampleSize
	if k > len(full) {
		k = len(full)
	}

	counts := make(map[string]int, k)
	if k == len(full) {
		for _, gram := range full {
			counts[gram]++
		}
	} else {
		for _, idx := range s.rng.Perm(len(full))[:k] {
			counts[full[idx]]++
		}
	}

	trie := patricia.NewTrie()
	for gram, n := range counts {
		trie.Insert(patricia.Prefix(gram), n)
	}
	return &GramSet{order: order, size: k, trie: trie}
}
