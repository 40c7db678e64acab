// Package spanzip implements a small dictionary based byte compressor.
//
// Encoding turns an input into a raw buffer and a list of tokens. The raw
// buffer holds every byte value met so far, in the order it was first added.
// Each token is either a Literal, one byte of the raw buffer, or a Run, an
// inclusive range of raw buffer bytes that repeats earlier input.
//
// Matching is greedy and first-fit: a byte is looked up from the start of the
// raw buffer, and the first hit is extended for as long as the following
// bytes keep matching. The encoder never backtracks to look for a longer
// match, and there is no window limit.
//
// Basic usage:
//
//	c := spanzip.Encode(data)
//	for i := 0; i < c.Len(); i++ {
//	    b, _, err := c.At(i)
//	    ...
//	}
//	out, err := c.All() // == data
package spanzip
