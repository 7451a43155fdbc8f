package domain

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracle struct {
	mu          sync.Mutex
	known       map[string]bool
	suggestions map[string][]string
	failOn      string
	calls       []string
}

func newFakeOracle(known ...string) *fakeOracle {
	f := &fakeOracle{known: map[string]bool{}, suggestions: map[string][]string{}}
	for _, w := range known {
		f.known[w] = true
	}
	return f
}

func (f *fakeOracle) IsCorrect(word string, _ Language) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "check:"+word)
	if word == f.failOn {
		return false, errors.New("backend down")
	}
	return f.known[word], nil
}

func (f *fakeOracle) Suggest(word string, _ Language) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "suggest:"+word)
	return f.suggestions[word], nil
}

func TestAnnotate(t *testing.T) {
	oracle := newFakeOracle("Hello", "world", "don't")
	oracle.suggestions["Helo"] = []string{"Hello", "Help"}

	segments, withoutErrors, err := Annotate(Tokenize("Helo, world! 'don't'"), oracle, LanguageEnglish)
	require.NoError(t, err)
	assert.False(t, withoutErrors)
	require.Len(t, segments, 7)

	assert.Equal(t, AnnotatedSegment{Original: "Helo", Kind: KindWord, Status: StatusMisspelled, Suggestions: []string{"Hello", "Help"}}, segments[0])
	assert.Equal(t, StatusUnchecked, segments[1].Status)
	assert.Equal(t, StatusUnchecked, segments[2].Status)
	assert.Equal(t, StatusCorrect, segments[3].Status)
	assert.Equal(t, StatusUnchecked, segments[4].Status)
	assert.Equal(t, StatusUnchecked, segments[5].Status)
	assert.Equal(t, StatusCorrect, segments[6].Status, "apostrophes are stripped before the check")
	assert.Equal(t, "'don't'", segments[6].Original)
	assert.Equal(t, 1, MisspelledCount(segments))

	// Suggest is only asked for words that failed the check.
	assert.Equal(t, []string{"check:Helo", "suggest:Helo", "check:world", "check:don't"}, oracle.calls)
}

func TestAnnotateAllCorrect(t *testing.T) {
	oracle := newFakeOracle("Hello", "world")

	segments, withoutErrors, err := Annotate(Tokenize("Hello world"), oracle, LanguageEnglish)
	require.NoError(t, err)
	assert.True(t, withoutErrors)
	assert.Zero(t, MisspelledCount(segments))
	for _, s := range segments {
		assert.NotEqual(t, StatusMisspelled, s.Status)
	}
}

func TestAnnotateEmptyInput(t *testing.T) {
	segments, withoutErrors, err := Annotate(Tokenize(""), newFakeOracle(), LanguageEnglish)
	require.NoError(t, err)
	assert.True(t, withoutErrors)
	assert.Empty(t, segments)
}

func TestAnnotateKeepsSuggestionsVerbatim(t *testing.T) {
	oracle := newFakeOracle()
	oracle.suggestions["teh"] = []string{"the", "the", "ten"}

	segments, _, err := Annotate(Tokenize("teh"), oracle, LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "the", "ten"}, segments[0].Suggestions)
}

func TestAnnotateFlagsApostropheRun(t *testing.T) {
	oracle := newFakeOracle()

	segments, withoutErrors, err := Annotate(Tokenize("'' '"), oracle, LanguageEnglish)
	require.NoError(t, err)
	assert.False(t, withoutErrors)
	assert.Equal(t, StatusMisspelled, segments[0].Status)
	assert.Equal(t, StatusUnchecked, segments[2].Status, "a single mark is not checked")
	assert.Equal(t, "[''→?] '", Reassemble(segments))
}

func TestAnnotateOracleFailure(t *testing.T) {
	oracle := newFakeOracle("fine")
	oracle.failOn = "broken"

	segments, withoutErrors, err := Annotate(Tokenize("fine broken words"), oracle, LanguageEnglish)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
	assert.Contains(t, err.Error(), "backend down")
	assert.Nil(t, segments)
	assert.False(t, withoutErrors)
}

func TestAnnotateNilOracle(t *testing.T) {
	_, _, err := Annotate(Tokenize("word"), nil, LanguageEnglish)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestAnnotateIsIdempotent(t *testing.T) {
	oracle := newFakeOracle("quick", "fox")
	oracle.suggestions["brwn"] = []string{"brown"}
	input := "The quick brwn fox…"

	a, okA, errA := Annotate(Tokenize(input), oracle, LanguageEnglish)
	b, okB, errB := Annotate(Tokenize(input), oracle, LanguageEnglish)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
	assert.Equal(t, Reassemble(a), Reassemble(b))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unchecked", StatusUnchecked.String())
	assert.Equal(t, "correct", StatusCorrect.String())
	assert.Equal(t, "misspelled", StatusMisspelled.String())
	assert.Equal(t, "unknown", Status(42).String())
}
