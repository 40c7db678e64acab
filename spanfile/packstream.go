package spanfile

import "encoding/binary"

// PackStream accumulates the bytes of a container.
type PackStream struct {
	byteData []byte
}

func NewPackStream() *PackStream {
	p := PackStream{
		byteData: make([]byte, 0),
	}
	return &p
}

func (p *PackStream) AddBytes(input []byte) {
	p.byteData = append(p.byteData, input...)
}

func (p *PackStream) AddByte(input byte) {
	p.byteData = append(p.byteData, input)
}

// Big-endian, as the rest of the header.
func (p *PackStream) AddWord(input uint16) {
	p.byteData = append(p.byteData, byte(input>>8))
	p.byteData = append(p.byteData, byte(input&255))
}

func (p *PackStream) AddLong(input uint32) {
	p.byteData = append(p.byteData, byte(input>>24))
	p.byteData = append(p.byteData, byte(input>>16))
	p.byteData = append(p.byteData, byte(input>>8))
	p.byteData = append(p.byteData, byte(input&255))
}

func (p *PackStream) AddQuad(input uint64) {
	p.AddLong(uint32(input >> 32))
	p.AddLong(uint32(input))
}

func (p *PackStream) AddUvarint(input uint64) {
	p.byteData = binary.AppendUvarint(p.byteData, input)
}

func (p *PackStream) Bytes() []byte {
	return p.byteData
}

func (p *PackStream) Len() int {
	return len(p.byteData)
}

// unpackStream reads back what a PackStream wrote.
type unpackStream struct {
	data []byte
	head int
}

func (u *unpackStream) remaining() int {
	return len(u.data) - u.head
}

func (u *unpackStream) readByte() (byte, error) {
	if u.remaining() < 1 {
		return 0, ErrTruncated
	}
	b := u.data[u.head]
	u.head++
	return b, nil
}

func (u *unpackStream) readBytes(n int) ([]byte, error) {
	if n < 0 || u.remaining() < n {
		return nil, ErrTruncated
	}
	b := u.data[u.head : u.head+n]
	u.head += n
	return b, nil
}

func (u *unpackStream) readQuad() (uint64, error) {
	b, err := u.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (u *unpackStream) readUvarint() (uint64, error) {
	v, n := binary.Uvarint(u.data[u.head:])
	if n == 0 {
		return 0, ErrTruncated
	}
	if n < 0 {
		return 0, ErrFormat
	}
	u.head += n
	return v, nil
}
