package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PunctuationSet lists the punctuation runes recognized by the tokenizer.
const PunctuationSet = `.,!?;:"-()…—`

type runeClass uint8

const (
	classOther runeClass = iota
	classWord
	classPunct
)

// Tokenize splits s into an ordered sequence of segments.
//
// Every whitespace rune becomes its own whitespace segment. Each
// non-whitespace chunk is split into maximal runs of word runes and of
// recognized punctuation. Runes that belong to neither class are never
// dropped:
//   - a chunk without any recognized run is kept whole as a word segment;
//   - an unrecognized run next to recognized runs is kept as punctuation.
//
// Tokenize accepts any string, including invalid UTF-8.
func Tokenize(s string) []Segment {
	if s == "" {
		return nil
	}

	segments := make([]Segment, 0, strings.Count(s, " ")*2+1)
	chunkStart := -1

	for i, r := range s {
		if !unicode.IsSpace(r) {
			if chunkStart < 0 {
				chunkStart = i
			}
			continue
		}
		if chunkStart >= 0 {
			segments = appendChunk(segments, s[chunkStart:i])
			chunkStart = -1
		}
		segments = append(segments, Segment{Kind: KindWhitespace, Text: s[i : i+utf8.RuneLen(r)]})
	}
	if chunkStart >= 0 {
		segments = appendChunk(segments, s[chunkStart:])
	}

	return segments
}

// appendChunk tokenizes a non-empty chunk containing no whitespace.
func appendChunk(dst []Segment, chunk string) []Segment {
	type run struct {
		class runeClass
		text  string
	}

	var (
		runs       []run
		start      int
		current    runeClass
		recognized bool
	)
	for i, r := range chunk {
		c := classify(r)
		if c != classOther {
			recognized = true
		}
		if i == 0 {
			current = c
			continue
		}
		if c != current {
			runs = append(runs, run{class: current, text: chunk[start:i]})
			start, current = i, c
		}
	}
	runs = append(runs, run{class: current, text: chunk[start:]})

	if !recognized {
		return append(dst, Segment{Kind: KindWord, Text: chunk})
	}

	for _, rn := range runs {
		kind := KindPunctuation
		if rn.class == classWord && !isLoneApostrophe(rn.text) {
			kind = KindWord
		}
		dst = append(dst, Segment{Kind: kind, Text: rn.text})
	}
	return dst
}

func classify(r rune) runeClass {
	switch {
	case isWordRune(r):
		return classWord
	case strings.ContainsRune(PunctuationSet, r):
		return classPunct
	default:
		return classOther
	}
}

// isWordRune reports whether r belongs to a word: Latin or Cyrillic
// letters, digits, underscore, combining marks and apostrophe-like marks.
func isWordRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	if r == '_' || isApostrophe(r) || unicode.IsDigit(r) {
		return true
	}
	if unicode.Is(unicode.Mn, r) {
		return true
	}
	return unicode.IsLetter(r) && unicode.In(r, unicode.Latin, unicode.Cyrillic)
}

func isApostrophe(r rune) bool {
	switch r {
	case '\'', 'ʼ', '`', '’', '‘':
		return true
	}
	return false
}

// isLoneApostrophe reports whether s is exactly one apostrophe-like mark.
func isLoneApostrophe(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && isApostrophe(r)
}

func trimApostrophes(s string) string {
	return strings.TrimFunc(s, isApostrophe)
}
