package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	termNamesFile  = "term_names.txt"
	termCountsFile = "term_counts.txt"
)

// SmoothedFreq is the count substituted for terms missing from the
// frequency table, so chained products never hit zero.
const SmoothedFreq = 1

// FrequencyTable maps a lowercase term to its occurrence count in the
// training sample. It is built once from two positionally joined flat files
// and never mutated afterwards.
type FrequencyTable struct {
	counts map[string]int
}

// LoadFrequencyTable reads the term-name and term-count vectors from dir and
// joins them by line position. The two files must exist, be non-empty, and
// hold the same number of lines.
func LoadFrequencyTable(dir string) (*FrequencyTable, error) {
	names, err := readLines(filepath.Join(dir, termNamesFile))
	if err != nil {
		return nil, fmt.Errorf("frequency table: %w", err)
	}
	counts, err := readLines(filepath.Join(dir, termCountsFile))
	if err != nil {
		return nil, fmt.Errorf("frequency table: %w", err)
	}
	if len(names) != len(counts) {
		return nil, fmt.Errorf("frequency table: %d terms but %d counts", len(names), len(counts))
	}

	table := &FrequencyTable{counts: make(map[string]int, len(names))}
	for i, name := range names {
		n, err := strconv.Atoi(strings.TrimSpace(counts[i]))
		if err != nil {
			return nil, fmt.Errorf("frequency table: bad count at line %d: %w", i+1, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("frequency table: negative count at line %d", i+1)
		}
		table.counts[strings.TrimSpace(name)] = n
	}

	log.Debugf("Loaded frequency table: %d terms", len(table.counts))
	return table, nil
}

// Lookup returns the stored count for term and whether it was present.
func (t *FrequencyTable) Lookup(term string) (int, bool) {
	n, ok := t.counts[term]
	return n, ok
}

// Freq returns the count for term, smoothing unseen terms to SmoothedFreq.
func (t *FrequencyTable) Freq(term string) int {
	if n, ok := t.counts[term]; ok {
		return n
	}
	return SmoothedFreq
}

// Len returns the number of distinct terms in the table.
func (t *FrequencyTable) Len() int {
	return len(t.counts)
}

// readLines reads all non-blank lines from a flat corpus file. An absent or
// empty file is an error, not an empty result.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s is empty", filepath.Base(path))
	}
	return lines, nil
}
