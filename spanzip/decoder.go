package spanzip

import (
	"bytes"
	"fmt"
)

// Compressed holds the raw buffer and the tokens that reference it.
// It is built once by Encode and only read afterwards.
type Compressed struct {
	Raw    []byte
	Tokens []Token
}

// DecodeToken returns the bytes t refers to in raw. The returned slice
// aliases raw.
func DecodeToken(raw []byte, t Token) ([]byte, error) {
	switch t.Kind {
	case Literal:
		if t.Start < 0 || t.Start >= len(raw) {
			return nil, fmt.Errorf("%w: literal %d, raw buffer length %d", ErrIndexOutOfRange, t.Start, len(raw))
		}
		return raw[t.Start : t.Start+1], nil
	case Run:
		if t.Start < 0 || t.End >= len(raw) || t.Start > t.End {
			return nil, fmt.Errorf("%w: run %d..%d, raw buffer length %d", ErrIndexOutOfRange, t.Start, t.End, len(raw))
		}
		return raw[t.Start : t.End+1], nil
	}
	return nil, fmt.Errorf("%w: unknown token kind %d", ErrIndexOutOfRange, t.Kind)
}

// Len returns the number of tokens.
func (c *Compressed) Len() int {
	return len(c.Tokens)
}

// Token returns the token at index i, or false if there is none.
func (c *Compressed) Token(i int) (Token, bool) {
	if i < 0 || i >= len(c.Tokens) {
		return Token{}, false
	}
	return c.Tokens[i], true
}

// At decodes the token at index i. An index past the token list is not an
// error: ok is false and the error nil.
func (c *Compressed) At(i int) (b []byte, ok bool, err error) {
	t, ok := c.Token(i)
	if !ok {
		return nil, false, nil
	}
	b, err = DecodeToken(c.Raw, t)
	if err != nil {
		return nil, true, fmt.Errorf("token %d: %w", i, err)
	}
	return b, true, nil
}

// All decodes every token in order.
func (c *Compressed) All() ([]byte, error) {
	var out bytes.Buffer
	for i, t := range c.Tokens {
		b, err := DecodeToken(c.Raw, t)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		out.Write(b)
	}
	return out.Bytes(), nil
}

// DecodedLen returns the length of the output All would produce.
func (c *Compressed) DecodedLen() int {
	n := 0
	for _, t := range c.Tokens {
		n += t.Len()
	}
	return n
}

// Validate checks every token against the raw buffer. It also rejects
// width-1 runs, which Encode never produces.
func (c *Compressed) Validate() error {
	for i, t := range c.Tokens {
		if _, err := DecodeToken(c.Raw, t); err != nil {
			return fmt.Errorf("token %d: %w", i, err)
		}
		if t.Kind == Run && t.Start == t.End {
			return fmt.Errorf("token %d: %w: single byte run %d", i, ErrIndexOutOfRange, t.Start)
		}
	}
	return nil
}

// Decompress is an alias for c.All.
func Decompress(c *Compressed) ([]byte, error) {
	return c.All()
}
