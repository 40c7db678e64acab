package spanzip

import "fmt"

// Kind tells a literal token from a run token.
type Kind uint8

const (
	// Literal refers to exactly one byte of the raw buffer.
	Literal Kind = iota
	// Run refers to an inclusive range of at least two raw buffer bytes.
	Run
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Run:
		return "Run"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Token describes a literal or a run in the raw buffer.
// For a literal Start == End.
type Token struct {
	Kind  Kind
	Start int
	End   int // inclusive
}

// NewLiteral returns a token for the single byte at index.
func NewLiteral(index int) Token {
	return Token{Kind: Literal, Start: index, End: index}
}

// NewRun returns a token for raw[start..=end]. A width-1 range collapses
// to a literal.
func NewRun(start, end int) Token {
	if start == end {
		return NewLiteral(start)
	}
	return Token{Kind: Run, Start: start, End: end}
}

// Len returns the number of bytes the token decodes to.
func (t Token) Len() int {
	if t.Kind == Literal {
		return 1
	}
	return t.End - t.Start + 1
}

func (t Token) String() string {
	if t.Kind == Literal {
		return fmt.Sprintf("Literal(%d)", t.Start)
	}
	return fmt.Sprintf("Run(%d,%d)", t.Start, t.End)
}
