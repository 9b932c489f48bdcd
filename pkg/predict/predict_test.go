package predict

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hbarrien/nextwordpredictor/pkg/corpus"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// writeCorpus lays out a complete corpus dir: one gram file per order
// (filler grams for orders the test doesn't care about, so backoff can
// traverse them without a load failure) and the positional frequency
// table files.
func writeCorpus(t *testing.T, grams map[corpus.Order][]string, freqs map[string]int) string {
	t.Helper()
	dir := t.TempDir()

	filler := map[corpus.Order]string{
		corpus.Bigram:    "zq zr",
		corpus.Trigram:   "zq zr zs",
		corpus.Quadgram:  "zq zr zs zt",
		corpus.Pentagram: "zq zr zs zt zu",
		corpus.Sextagram: "zq zr zs zt zu zv",
	}
	for order, fill := range filler {
		lines := grams[order]
		if len(lines) == 0 {
			lines = []string{fill}
		}
		writeFile(t, filepath.Join(dir, order.FileName()), strings.Join(lines, "\n")+"\n")
	}

	names, counts := []string{"zq"}, []string{"1"}
	for name, n := range freqs {
		names = append(names, name)
		counts = append(counts, strconv.Itoa(n))
	}
	writeFile(t, filepath.Join(dir, "term_names.txt"), strings.Join(names, "\n")+"\n")
	writeFile(t, filepath.Join(dir, "term_counts.txt"), strings.Join(counts, "\n")+"\n")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

// loadSet loads one order's gram set through a store, for matcher tests.
func loadSet(t *testing.T, dir string, order corpus.Order) *corpus.GramSet {
	t.Helper()
	store := corpus.NewStore(dir, corpus.Resident, 0, 1)
	set, err := store.Load(order)
	if err != nil {
		t.Fatalf("loading %s fixture: %v", order, err)
	}
	return set
}
