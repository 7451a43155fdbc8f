// Package dictionary implements the correctness oracle on plain word lists.
// It knows nothing about affixes or morphology: a word is correct when the
// list contains it.
package dictionary

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
)

// Options tune a single dictionary.
type Options struct {
	Name           string
	Source         string
	MaxSuggestions int
	MaxDistance    int
}

// Dictionary is an immutable word set for one language. Safe for
// concurrent use.
type Dictionary struct {
	lang   domain.Language
	tag    language.Tag
	name   string
	source string

	maxSuggestions int
	maxDistance    int

	// exact maps a normalized word form to its frequency.
	exact map[string]int
	// byLen groups candidate forms by rune length of their folded key.
	byLen map[int][]candidate
}

type candidate struct {
	word   string
	folded []rune
	freq   int
}

// New builds a dictionary from entries. Duplicate words keep the highest
// frequency.
func New(lang domain.Language, entries []Entry, opts Options) *Dictionary {
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = DefaultMaxSuggestions
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = DefaultMaxDistance
	}
	if opts.Name == "" {
		opts.Name = string(lang)
	}

	d := &Dictionary{
		lang:           lang,
		tag:            language.Make(string(lang)),
		name:           opts.Name,
		source:         opts.Source,
		maxSuggestions: opts.MaxSuggestions,
		maxDistance:    opts.MaxDistance,
		exact:          make(map[string]int, len(entries)),
		byLen:          make(map[int][]candidate),
	}

	for _, e := range entries {
		w := normalize(e.Word)
		if w == "" {
			continue
		}
		if prev, ok := d.exact[w]; !ok || e.Freq > prev {
			d.exact[w] = e.Freq
		}
	}

	words := make([]string, 0, len(d.exact))
	for w := range d.exact {
		words = append(words, w)
	}
	sort.Strings(words)

	for _, w := range words {
		f := []rune(fold(w))
		d.byLen[len(f)] = append(d.byLen[len(f)], candidate{word: w, folded: f, freq: d.exact[w]})
	}

	return d
}

func (d *Dictionary) Language() domain.Language { return d.lang }
func (d *Dictionary) Name() string              { return d.name }
func (d *Dictionary) Source() string            { return d.source }
func (d *Dictionary) Size() int                 { return len(d.exact) }

// IsCorrect accepts the exact form, the lower-cased form of a capitalised
// or all-caps word, and the title-cased form of an all-caps word
// ("LONDON" matches "London").
func (d *Dictionary) IsCorrect(word string) bool {
	w := normalize(word)
	if w == "" {
		return false
	}
	if _, ok := d.exact[w]; ok {
		return true
	}

	switch caseShape(w) {
	case shapeCapitalised:
		_, ok := d.exact[d.lower(w)]
		return ok
	case shapeUpper:
		lower := d.lower(w)
		if _, ok := d.exact[lower]; ok {
			return true
		}
		_, ok := d.exact[d.title(lower)]
		return ok
	}
	return false
}

func (d *Dictionary) lower(s string) string { return cases.Lower(d.tag).String(s) }
func (d *Dictionary) upper(s string) string { return cases.Upper(d.tag).String(s) }

// title upper-cases the first rune only; cases.Title would also lower the
// rest, which breaks words like "McDonald".
func (d *Dictionary) title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return d.upper(string(r)) + s[size:]
}

type shape uint8

const (
	shapeOther shape = iota
	shapeLower
	shapeCapitalised
	shapeUpper
)

func caseShape(s string) shape {
	upper, lower, letters := 0, 0, 0
	firstUpper := false
	for i, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.IsUpper(r):
			upper++
			if i == 0 {
				firstUpper = true
			}
		case unicode.IsLower(r):
			lower++
		}
	}
	switch {
	case letters == 0:
		return shapeOther
	case upper == 0:
		return shapeLower
	case upper == letters && letters > 1:
		return shapeUpper
	case firstUpper && upper == 1:
		return shapeCapitalised
	default:
		return shapeOther
	}
}

var normalizePool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFC, runes.Map(unifyApostrophe))
	},
}

var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFC, runes.Map(unifyApostrophe), cases.Fold())
	},
}

// normalize returns the NFC form of s with apostrophe variants unified.
func normalize(s string) string {
	return applyPooled(&normalizePool, strings.TrimSpace(s))
}

// fold is normalize plus Unicode case folding. It keys suggestion lookups.
func fold(s string) string {
	return applyPooled(&foldPool, strings.TrimSpace(s))
}

func applyPooled(pool *sync.Pool, s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := pool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	pool.Put(tr)

	if err != nil {
		return s
	}
	return out
}

func unifyApostrophe(r rune) rune {
	switch r {
	case 'ʼ', '’', '‘', '`':
		return '\''
	}
	return r
}
