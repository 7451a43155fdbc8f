package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMarker(t *testing.T) {
	assert.Equal(t, "[Helo→Hello|Help]", FormatMarker("Helo", []string{"Hello", "Help"}))
	assert.Equal(t, "[wrold→world]", FormatMarker("wrold", []string{"world"}))
	assert.Equal(t, "[xyzzy→?]", FormatMarker("xyzzy", nil))
	assert.Equal(t, "[xyzzy→?]", FormatMarker("xyzzy", []string{}))
}

func TestReassembleScenarios(t *testing.T) {
	oracle := newFakeOracle("Hello", "world")
	oracle.suggestions["Helo"] = []string{"Hello", "Help"}
	oracle.suggestions["wrold"] = []string{"world"}

	tests := []struct {
		name          string
		input         string
		want          string
		withoutErrors bool
	}{
		{"two misspellings", "Helo wrold", "[Helo→Hello|Help] [wrold→world]", false},
		{"no errors", "Hello world", "Hello world", true},
		{"no suggestions", "Hello qqq", "Hello [qqq→?]", false},
		{"punctuation preserved", "Helo,  world!\n", "[Helo→Hello|Help],  world!\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, withoutErrors, err := Annotate(Tokenize(tt.input), oracle, LanguageEnglish)
			require.NoError(t, err)
			assert.Equal(t, tt.withoutErrors, withoutErrors)
			assert.Equal(t, tt.want, Reassemble(segments))
		})
	}
}

func TestReassembleWithoutErrorsIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"Hello world",
		"  Hello,\tworld…  ",
		"Hello — world (Hello)",
	}
	oracle := newFakeOracle("Hello", "world")
	for _, in := range inputs {
		segments, withoutErrors, err := Annotate(Tokenize(in), oracle, LanguageEnglish)
		require.NoError(t, err)
		require.True(t, withoutErrors, in)
		assert.Equal(t, in, Reassemble(segments))
	}
}

func TestParseMarker(t *testing.T) {
	tests := []struct {
		fragment string
		want     Marker
		ok       bool
	}{
		{"[Helo→Hello|Help]", Marker{Original: "Helo", Suggestions: []string{"Hello", "Help"}}, true},
		{"[qqq→?]", Marker{Original: "qqq", Suggestions: []string{}}, true},
		{"[a→b→c]", Marker{Original: "a→b", Suggestions: []string{"c"}}, true},
		{"plain", Marker{}, false},
		{" ", Marker{}, false},
		{"[]", Marker{}, false},
		{"[→x]", Marker{}, false},
		{"[no arrow]", Marker{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseMarker(tt.fragment)
		assert.Equal(t, tt.ok, ok, tt.fragment)
		assert.Equal(t, tt.want, got, tt.fragment)
	}
}

func TestMarkupRoundTrip(t *testing.T) {
	oracle := newFakeOracle("and", "the")
	oracle.suggestions["teh"] = []string{"the", "ten"}
	oracle.suggestions["adn"] = []string{"and"}

	segments, _, err := Annotate(Tokenize("teh cat adn zzz the dog"), oracle, LanguageEnglish)
	require.NoError(t, err)

	markers := Markers(MarkupFragments(segments))
	assert.Equal(t, []Marker{
		{Original: "teh", Suggestions: []string{"the", "ten"}},
		{Original: "cat", Suggestions: []string{}},
		{Original: "adn", Suggestions: []string{"and"}},
		{Original: "zzz", Suggestions: []string{}},
		{Original: "dog", Suggestions: []string{}},
	}, markers)
}
