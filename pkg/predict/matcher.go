package predict

import (
	"strings"

	"github.com/hbarrien/nextwordpredictor/pkg/corpus"
)

// Match returns every gram in the set whose token sequence begins with
// exactly the search context, followed by at least one more token. The
// match is anchored at the start of the gram: the context tokens joined by
// single spaces plus a trailing space form the required byte prefix, so a
// gram merely containing the context elsewhere never matches, and neither
// does a gram that ends right at the context.
//
// An empty result means no evidence at this order; it is not a failure.
func Match(context []string, grams *corpus.GramSet) []string {
	if len(context) == 0 || grams == nil {
		return nil
	}
	prefix := strings.Join(context, " ") + " "
	return grams.WithPrefix(prefix)
}
