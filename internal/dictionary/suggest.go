package dictionary

import (
	"math"
	"sort"
)

const (
	// Scoring weights
	ScoreBase            = 100.0
	ScoreDistancePenalty = 30.0

	// Shared leading runes bonus, capped at ScorePrefixRunes runes
	ScorePrefixBonus = 10.0
	ScorePrefixRunes = 3

	// Same first rune bonus (typos rarely hit the first letter)
	ScoreFirstRuneBonus = 5.0

	// Frequency weight (word frequency contributes to final score)
	ScoreFrequencyWeight = 0.1
)

// Suggestion is a ranked correction candidate.
type Suggestion struct {
	Word         string
	Distance     int
	LexicalScore float64 // Score from edit distance and prefix
	FreqScore    float64 // Score from word frequency
	TotalScore   float64 // Combined score
}

// Suggest returns up to the configured number of corrections for word,
// best first. The input's capitalisation is carried onto the suggestions.
func (d *Dictionary) Suggest(word string) []string {
	ranked := d.Rank(word)
	if len(ranked) == 0 {
		return nil
	}

	w := normalize(word)
	shp := caseShape(w)

	out := make([]string, 0, d.maxSuggestions)
	seen := make(map[string]struct{}, d.maxSuggestions)
	for _, s := range ranked {
		text := d.applyShape(s.Word, shp)
		if text == w {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
		if len(out) == d.maxSuggestions {
			break
		}
	}
	return out
}

// Rank scores every dictionary word within the maximum edit distance of
// word. Ties put shorter words first, then alphabetical order.
func (d *Dictionary) Rank(word string) []Suggestion {
	target := []rune(fold(word))
	if len(target) == 0 {
		return nil
	}

	var ranked []Suggestion
	for n := len(target) - d.maxDistance; n <= len(target)+d.maxDistance; n++ {
		for _, c := range d.byLen[n] {
			dist := editDistance(target, c.folded, d.maxDistance)
			if dist > d.maxDistance {
				continue
			}

			lexical := lexicalScore(target, c.folded, dist)
			freqScore := 0.0
			if c.freq > 0 {
				freqScore = math.Log10(float64(c.freq)+1) * ScoreFrequencyWeight * 100
			}

			ranked = append(ranked, Suggestion{
				Word:         c.word,
				Distance:     dist,
				LexicalScore: lexical,
				FreqScore:    freqScore,
				TotalScore:   lexical + freqScore,
			})
		}
	}

	sortSuggestions(ranked)
	return ranked
}

func lexicalScore(target, cand []rune, dist int) float64 {
	score := ScoreBase - float64(dist)*ScoreDistancePenalty

	prefix := 0
	for prefix < len(target) && prefix < len(cand) && prefix < ScorePrefixRunes && target[prefix] == cand[prefix] {
		prefix++
	}
	score += ScorePrefixBonus * float64(prefix) / ScorePrefixRunes

	if len(target) > 0 && len(cand) > 0 && target[0] == cand[0] {
		score += ScoreFirstRuneBonus
	}
	return score
}

// sortSuggestions sorts by total score (descending), keeping the order of
// equal scores.
func sortSuggestions(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].TotalScore > s[j].TotalScore
	})
}

func (d *Dictionary) applyShape(word string, shp shape) string {
	if caseShape(word) != shapeLower {
		return word
	}
	switch shp {
	case shapeCapitalised:
		return d.title(word)
	case shapeUpper:
		return d.upper(word)
	default:
		return word
	}
}

// editDistance is the optimal string alignment variant of the
// Damerau-Levenshtein distance: insertions, deletions, substitutions and
// transpositions of adjacent runes each cost one. It stops early and
// returns limit+1 once every path exceeds limit.
func editDistance(a, b []rune, limit int) int {
	if diff := len(a) - len(b); diff > limit || -diff > limit {
		return limit + 1
	}

	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			v := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				v = min(v, prev2[j-2]+1)
			}
			curr[j] = v
			rowMin = min(rowMin, v)
		}
		if rowMin > limit {
			return limit + 1
		}
		prev2, prev, curr = prev, curr, prev2
	}

	return prev[len(b)]
}
