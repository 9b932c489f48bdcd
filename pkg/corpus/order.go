// Package corpus loads the precomputed n-gram files and the term frequency
// table the prediction engine runs against. Corpus data is produced offline
// and treated as read-only here.
package corpus

import "fmt"

// Order identifies which n-gram corpus is active. Valid orders run from
// Bigram (2) to Sextagram (6); the search context for an order holds
// order-1 tokens.
type Order int

const (
	Bigram    Order = 2
	Trigram   Order = 3
	Quadgram  Order = 4
	Pentagram Order = 5
	Sextagram Order = 6
)

// orderFiles maps each order to its corpus file name inside the data dir.
var orderFiles = map[Order]string{
	Bigram:    "bigrams.txt",
	Trigram:   "trigrams.txt",
	Quadgram:  "quadgrams.txt",
	Pentagram: "pentagrams.txt",
	Sextagram: "sextagrams.txt",
}

// OrderForContext returns the order whose search context holds the given
// number of tokens (1 token -> Bigram, 5 tokens -> Sextagram).
func OrderForContext(tokens int) Order {
	if tokens > 5 {
		tokens = 5
	}
	return Order(tokens + 1)
}

// Valid reports whether o is a supported n-gram order.
func (o Order) Valid() bool {
	_, ok := orderFiles[o]
	return ok
}

// FileName returns the corpus file name for the order.
func (o Order) FileName() string {
	return orderFiles[o]
}

// ContextLen returns how many tokens the search context holds at this order.
func (o Order) ContextLen() int {
	return int(o) - 1
}

func (o Order) String() string {
	switch o {
	case Bigram:
		return "bigram"
	case Trigram:
		return "trigram"
	case Quadgram:
		return "quadgram"
	case Pentagram:
		return "pentagram"
	case Sextagram:
		return "sextagram"
	}
	return fmt.Sprintf("order(%d)", int(o))
}
