package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	_ "embed"
)

// defaultList is a small embedded vocabulary so that the module can be
// used with no external word files configured.
//
//go:embed words.txt
var defaultList string

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Dictionary is an immutable, sorted vocabulary of Words. The same
// vocabulary serves as both the set of legal guesses and the set of
// candidate secret words. Words are kept in sorted order so that the
// word at a given index is stable across runs, which lets agents treat
// indices into the Dictionary as actions.
type Dictionary struct {
	words []Word
	index map[Word]int
}

// New reads a word list from r, one word per line, and returns the
// resulting Dictionary. Words are normalized to lowercase and
// deduplicated. Blank lines are ignored. New returns a LoadError if
// any non-blank line is not a legal word or if the final list is
// empty.
func New(r io.Reader) (*Dictionary, error) {
	set := make(map[Word]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		word, err := NewWord(line)
		if err != nil {
			return nil, &LoadError{Op: "new", Err: errMalformedWord}
		}
		set[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Op: "new", Err: err}
	}

	if len(set) == 0 {
		return nil, &LoadError{Op: "new", Err: errEmptyList}
	}

	list := make([]Word, 0, len(set))
	for word := range set {
		list = append(list, word)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })

	index := make(map[Word]int, len(list))
	for i, word := range list {
		index[word] = i
	}

	return &Dictionary{words: list, index: index}, nil
}

// Load reads a word list from the file at path. A missing or unreadable
// file results in a LoadError.
func Load(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Op: "load", Err: err}
	}
	defer file.Close()

	return New(file)
}

// Default returns the Dictionary built from the embedded word list
func Default() *Dictionary {
	defaultOnce.Do(func() {
		dict, err := New(strings.NewReader(defaultList))
		if err != nil {
			// The embedded list is fixed at compile time, so a load
			// failure is a build defect, not a runtime condition.
			panic(fmt.Sprintf("default: could not load embedded word "+
				"list: %v", err))
		}
		defaultDict = dict
	})
	return defaultDict
}

// Len returns the number of words in the Dictionary
func (d *Dictionary) Len() int {
	return len(d.words)
}

// At returns the word at index i in the sorted vocabulary
func (d *Dictionary) At(i int) (Word, error) {
	if i < 0 || i >= len(d.words) {
		return "", fmt.Errorf("at: index out of range \n\twant[0, %d) "+
			"\n\thave(%d)", len(d.words), i)
	}
	return d.words[i], nil
}

// Index returns the index of word in the sorted vocabulary and whether
// the word is in the vocabulary at all
func (d *Dictionary) Index(word Word) (int, bool) {
	i, ok := d.index[word]
	return i, ok
}

// Contains returns whether word is in the vocabulary
func (d *Dictionary) Contains(word Word) bool {
	_, ok := d.index[word]
	return ok
}

// Words returns a copy of the sorted vocabulary
func (d *Dictionary) Words() []Word {
	out := make([]Word, len(d.words))
	copy(out, d.words)
	return out
}
