package domain

import "fmt"

// Oracle answers spelling questions for one word at a time.
//
// Implementations must be safe for concurrent use. Errors are reported as
// returned; callers neither retry nor cache.
type Oracle interface {
	IsCorrect(word string, lang Language) (bool, error)
	Suggest(word string, lang Language) ([]string, error)
}

// Status is the correctness outcome of an annotated segment.
type Status uint8

const (
	StatusUnchecked Status = iota
	StatusCorrect
	StatusMisspelled
)

func (s Status) String() string {
	switch s {
	case StatusUnchecked:
		return "unchecked"
	case StatusCorrect:
		return "correct"
	case StatusMisspelled:
		return "misspelled"
	default:
		return "unknown"
	}
}

// AnnotatedSegment is a segment plus its correction outcome.
//
// Suggestions is only set for misspelled words and holds exactly what the
// oracle returned, nil and empty included.
type AnnotatedSegment struct {
	Original    string
	Kind        Kind
	Status      Status
	Suggestions []string
}

// Annotate checks every word segment against the oracle in a single pass.
//
// withoutErrors is true iff no segment is misspelled. Any oracle failure
// aborts the whole run: no segments are returned and the error wraps
// ErrOracleUnavailable.
func Annotate(segments []Segment, oracle Oracle, lang Language) ([]AnnotatedSegment, bool, error) {
	if oracle == nil {
		return nil, false, fmt.Errorf("%w: no oracle configured", ErrOracleUnavailable)
	}

	out := make([]AnnotatedSegment, len(segments))
	withoutErrors := true

	for i, seg := range segments {
		out[i] = AnnotatedSegment{Original: seg.Text, Kind: seg.Kind, Status: StatusUnchecked}
		if seg.Kind != KindWord {
			continue
		}

		word := seg.CheckForm()
		ok, err := oracle.IsCorrect(word, lang)
		if err != nil {
			return nil, false, oracleError("check", word, lang, err)
		}
		if ok {
			out[i].Status = StatusCorrect
			continue
		}

		suggestions, err := oracle.Suggest(word, lang)
		if err != nil {
			return nil, false, oracleError("suggest", word, lang, err)
		}
		out[i].Status = StatusMisspelled
		out[i].Suggestions = suggestions
		withoutErrors = false
	}

	return out, withoutErrors, nil
}

// MisspelledCount returns the number of misspelled segments.
func MisspelledCount(segments []AnnotatedSegment) int {
	n := 0
	for _, s := range segments {
		if s.Status == StatusMisspelled {
			n++
		}
	}
	return n
}

func oracleError(op, word string, lang Language, err error) error {
	return fmt.Errorf("%w: %s %q (%s): %w", ErrOracleUnavailable, op, word, lang, err)
}
