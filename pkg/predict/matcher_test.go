package predict

import (
	"reflect"
	"testing"

	"github.com/hbarrien/nextwordpredictor/pkg/corpus"
)

func TestMatchAnchoredPrefix(t *testing.T) {
	dir := writeCorpus(t, map[corpus.Order][]string{
		corpus.Trigram: {
			"for the great",
			"for the last",
			"ask for the",   // ends at the context, no candidate token
			"before the ask", // contains "the" but not anchored
			"for them all",   // "the" is a token prefix, not a token
		},
	}, nil)
	set := loadSet(t, dir, corpus.Trigram)

	got := Match([]string{"for", "the"}, set)
	want := []string{"for the great", "for the last"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match(for the) = %v, want %v", got, want)
	}
}

func TestMatchNoEvidenceIsEmptyNotError(t *testing.T) {
	dir := writeCorpus(t, map[corpus.Order][]string{
		corpus.Bigram: {"hello world"},
	}, nil)
	set := loadSet(t, dir, corpus.Bigram)

	if got := Match([]string{"goodbye"}, set); len(got) != 0 {
		t.Errorf("Match(goodbye) = %v, want empty", got)
	}
}

func TestMatchEmptyContext(t *testing.T) {
	dir := writeCorpus(t, nil, nil)
	set := loadSet(t, dir, corpus.Bigram)

	if got := Match(nil, set); got != nil {
		t.Errorf("Match(nil context) = %v, want nil", got)
	}
	if got := Match([]string{"a"}, nil); got != nil {
		t.Errorf("Match(nil set) = %v, want nil", got)
	}
}
