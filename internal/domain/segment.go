package domain

// Kind classifies a tokenized segment.
type Kind uint8

const (
	KindWhitespace Kind = iota
	KindWord
	KindPunctuation
)

func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "whitespace"
	case KindWord:
		return "word"
	case KindPunctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Segment is one unit of tokenized text.
//
// Concatenating Text of every segment returned by Tokenize, in order,
// reproduces the tokenizer input exactly.
type Segment struct {
	Kind Kind
	Text string
}

// CheckForm returns the form of a word segment that is sent to the oracle:
// the text with leading and trailing apostrophe-like marks removed.
// Text itself keeps them for reassembly.
func (s Segment) CheckForm() string {
	return trimApostrophes(s.Text)
}

// Join concatenates segment texts in order.
func Join(segments []Segment) string {
	n := 0
	for _, s := range segments {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range segments {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
