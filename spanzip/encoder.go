package spanzip

// Per-call state of a single encode pass.
type encoder struct {
	raw    []byte
	tokens []Token

	// Open match, if any.
	matching bool
	start    int
	end      int
}

// Commit the open match as a literal or a run.
func (e *encoder) commit() {
	e.tokens = append(e.tokens, NewRun(e.start, e.end))
	e.matching = false
}

// Add a byte that is not in the raw buffer yet.
func (e *encoder) addLiteral(b byte) {
	e.raw = append(e.raw, b)
	e.tokens = append(e.tokens, NewLiteral(len(e.raw)-1))
}

// Encode builds the compressed representation of input.
//
// Each byte is searched for in the raw buffer from index 0 upwards. The first
// hit opens a match, which is extended for as long as the following raw bytes
// keep matching the following input bytes. When the match breaks, or the raw
// buffer or the input runs out, the match is committed and the breaking byte
// is searched for again from index 0. A byte never seen before is appended to
// the raw buffer.
func Encode(input []byte) *Compressed {
	e := encoder{}
	head := 0
	for head < len(input) {
		target := input[head]
		scan := 0
		for scan < len(e.raw) {
			if e.raw[scan] == target {
				if !e.matching {
					e.matching = true
					e.start = scan
				}
				e.end = scan
				scan++
				head++
				if head == len(input) {
					break
				}
				target = input[head]
			} else if !e.matching {
				scan++
			} else {
				// Match broken: commit, then look for this byte from the start.
				e.commit()
				scan = 0
			}
		}

		if e.matching {
			// Ran off the end of the raw buffer or the input.
			e.commit()
			continue
		}
		e.addLiteral(target)
		head++
	}
	return &Compressed{Raw: e.raw, Tokens: e.tokens}
}

// Compress is an alias for Encode.
func Compress(input []byte) *Compressed {
	return Encode(input)
}
