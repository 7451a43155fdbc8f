package dictionary

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Entry is one word of a word list with its relative frequency.
type Entry struct {
	Word string
	Freq int
}

// ParseWordList reads one word per line.
//
// Supported line forms:
//
//	# comment
//	word
//	word<TAB>frequency
//	word/FLAGS          (Hunspell .dic; flags are dropped, affixes not expanded)
//
// A first line made only of digits is the Hunspell entry count and is skipped.
func ParseWordList(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	first := true

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			line = strings.TrimPrefix(line, "\ufeff")
			if isCount(line) {
				continue
			}
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, freq := line, 0
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			word = strings.TrimSpace(line[:i])
			if f, err := strconv.Atoi(strings.TrimSpace(line[i+1:])); err == nil && f > 0 {
				freq = f
			}
		}
		if i := strings.IndexByte(word, '/'); i > 0 {
			word = word[:i]
		}
		if word == "" {
			continue
		}

		entries = append(entries, Entry{Word: word, Freq: freq})
	}

	return entries, scanner.Err()
}

func isCount(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
