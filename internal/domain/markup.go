package domain

import "strings"

// Markup convention for a flagged word:
//
//	[<original>→<suggestion1>|<suggestion2>|...]
//	[<original>→?]   when there are no suggestions
const (
	MarkerOpen         = "["
	MarkerClose        = "]"
	MarkerArrow        = "→"
	MarkerSeparator    = "|"
	MarkerNoSuggestion = "?"
)

// Marker is a parsed misspelling marker.
type Marker struct {
	Original    string   `json:"original"`
	Suggestions []string `json:"suggestions"`
}

// FormatMarker renders the marker for a misspelled token.
func FormatMarker(original string, suggestions []string) string {
	var b strings.Builder
	b.Grow(len(original) + len(MarkerOpen) + len(MarkerArrow) + len(MarkerClose) + 16)
	b.WriteString(MarkerOpen)
	b.WriteString(original)
	b.WriteString(MarkerArrow)
	if len(suggestions) == 0 {
		b.WriteString(MarkerNoSuggestion)
	} else {
		b.WriteString(strings.Join(suggestions, MarkerSeparator))
	}
	b.WriteString(MarkerClose)
	return b.String()
}

// MarkupFragments renders one fragment per annotated segment. Correct and
// unchecked segments are emitted verbatim.
func MarkupFragments(segments []AnnotatedSegment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		if s.Status == StatusMisspelled {
			out[i] = FormatMarker(s.Original, s.Suggestions)
			continue
		}
		out[i] = s.Original
	}
	return out
}

// Reassemble joins the annotated segments into a single markup string.
func Reassemble(segments []AnnotatedSegment) string {
	return strings.Join(MarkupFragments(segments), "")
}

// ParseMarker parses a single fragment produced by FormatMarker.
// ok is false when the fragment is plain text.
//
// A marker whose only suggestion is "?" cannot be told apart from a marker
// without suggestions; both parse to an empty list.
func ParseMarker(fragment string) (Marker, bool) {
	if !strings.HasPrefix(fragment, MarkerOpen) || !strings.HasSuffix(fragment, MarkerClose) {
		return Marker{}, false
	}
	body := fragment[len(MarkerOpen) : len(fragment)-len(MarkerClose)]

	// Suggestions come from a dictionary and never hold the arrow; the
	// original token may, when it is an unrecognized chunk.
	idx := strings.LastIndex(body, MarkerArrow)
	if idx <= 0 {
		return Marker{}, false
	}
	original, rest := body[:idx], body[idx+len(MarkerArrow):]

	m := Marker{Original: original, Suggestions: []string{}}
	if rest != MarkerNoSuggestion {
		m.Suggestions = strings.Split(rest, MarkerSeparator)
	}
	return m, true
}

// Markers extracts every marker from a list of markup fragments, in order.
func Markers(fragments []string) []Marker {
	var out []Marker
	for _, f := range fragments {
		if m, ok := ParseMarker(f); ok {
			out = append(out, m)
		}
	}
	return out
}
