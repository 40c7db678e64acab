// Package spanfile stores a compressed representation in a file.
//
// Layout, all integers big-endian or unsigned varints:
//
//	"SZ" version(1)
//	uvarint raw length, raw bytes
//	uvarint token count
//	per token: uvarint start<<1|isRun, plus uvarint end-start for runs
//	xxhash64 of the decoded content (8 bytes)
package spanfile

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"spanzip/spanzip/spanzip"
)

const (
	magic   uint16 = 'S'<<8 | 'Z'
	Version byte   = 0x1
)

var (
	// ErrFormat is returned for data that is not a valid container.
	ErrFormat = errors.New("invalid container format")
	// ErrTruncated is returned when the data ends early.
	ErrTruncated = errors.New("truncated container")
	// ErrChecksum is returned when the decoded content does not match the stored hash.
	ErrChecksum = errors.New("checksum mismatch")
)

// Marshal serialises c. Tokens are validated against the raw buffer first.
func Marshal(c *spanzip.Compressed) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	content, err := c.All()
	if err != nil {
		return nil, err
	}

	p := NewPackStream()
	p.AddWord(magic)
	p.AddByte(Version)

	p.AddUvarint(uint64(len(c.Raw)))
	p.AddBytes(c.Raw)

	p.AddUvarint(uint64(len(c.Tokens)))
	for _, t := range c.Tokens {
		if t.Kind == spanzip.Run {
			p.AddUvarint(uint64(t.Start)<<1 | 1)
			p.AddUvarint(uint64(t.End - t.Start))
		} else {
			p.AddUvarint(uint64(t.Start) << 1)
		}
	}

	p.AddQuad(xxhash.Sum64(content))
	return p.Bytes(), nil
}

// Unmarshal parses a container written by Marshal and checks its content
// against the stored hash.
func Unmarshal(data []byte) (*spanzip.Compressed, error) {
	u := &unpackStream{data: data}
	hi, err := u.readByte()
	if err != nil {
		return nil, err
	}
	lo, err := u.readByte()
	if err != nil {
		return nil, err
	}
	if uint16(hi)<<8|uint16(lo) != magic {
		return nil, fmt.Errorf("%w: bad magic %02x%02x", ErrFormat, hi, lo)
	}
	version, err := u.readByte()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, version)
	}

	rawLen, err := u.readUvarint()
	if err != nil {
		return nil, err
	}
	if rawLen > uint64(u.remaining()) {
		return nil, ErrTruncated
	}
	raw, err := u.readBytes(int(rawLen))
	if err != nil {
		return nil, err
	}

	count, err := u.readUvarint()
	if err != nil {
		return nil, err
	}
	// Every token takes at least one byte.
	if count > uint64(u.remaining()) {
		return nil, ErrTruncated
	}

	c := &spanzip.Compressed{
		Raw:    append([]byte(nil), raw...),
		Tokens: make([]spanzip.Token, 0, count),
	}
	size := uint64(len(raw))
	for i := uint64(0); i < count; i++ {
		v, err := u.readUvarint()
		if err != nil {
			return nil, err
		}
		start := v >> 1
		if start >= size {
			return nil, fmt.Errorf("token %d: %w: start %d, raw buffer length %d",
				i, spanzip.ErrIndexOutOfRange, start, size)
		}
		if v&1 == 0 {
			c.Tokens = append(c.Tokens, spanzip.NewLiteral(int(start)))
			continue
		}
		width, err := u.readUvarint()
		if err != nil {
			return nil, err
		}
		if width == 0 {
			return nil, fmt.Errorf("%w: token %d is a single byte run", ErrFormat, i)
		}
		if width >= size-start {
			return nil, fmt.Errorf("token %d: %w: run %d+%d, raw buffer length %d",
				i, spanzip.ErrIndexOutOfRange, start, width, size)
		}
		c.Tokens = append(c.Tokens, spanzip.NewRun(int(start), int(start+width)))
	}

	sum, err := u.readQuad()
	if err != nil {
		return nil, err
	}
	if u.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrFormat, u.remaining())
	}

	content, err := c.All()
	if err != nil {
		return nil, err
	}
	if xxhash.Sum64(content) != sum {
		return nil, ErrChecksum
	}
	return c, nil
}
