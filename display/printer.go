// Package display streams decoded tokens to an output, one token at a time,
// framing multi-byte runs with a pair of markers.
package display

import (
	"errors"
	"fmt"
	"io"
	"time"

	"spanzip/spanzip/spanzip"
)

// ErrWrite is returned when the output cannot be written or flushed.
var ErrWrite = errors.New("write failed")

// Markers are written before and after every token that decodes to more
// than one byte. Empty markers write nothing.
type Markers struct {
	On  string
	Off string
}

// Flusher is implemented by buffered sinks such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Printer writes a compressed representation token by token.
type Printer struct {
	Markers Markers
	// Pause between tokens, for watching the output build up.
	Delay time.Duration

	sleep func(time.Duration)
}

// NewPrinter returns a Printer using the given markers and delay.
func NewPrinter(m Markers, delay time.Duration) *Printer {
	return &Printer{Markers: m, Delay: delay}
}

// Print decodes every token of c in order and writes it to w, flushing w
// after each token when it implements Flusher. Decode errors are returned
// unchanged, output errors wrap ErrWrite.
func (p *Printer) Print(w io.Writer, c *spanzip.Compressed) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for i := 0; ; i++ {
		b, ok, err := c.At(i)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if i > 0 && p.Delay > 0 {
			sleep(p.Delay)
		}
		if err := p.writeToken(w, b); err != nil {
			return fmt.Errorf("%w: token %d: %w", ErrWrite, i, err)
		}
	}
}

func (p *Printer) writeToken(w io.Writer, b []byte) error {
	run := len(b) > 1
	if run && p.Markers.On != "" {
		if _, err := io.WriteString(w, p.Markers.On); err != nil {
			return err
		}
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	if run && p.Markers.Off != "" {
		if _, err := io.WriteString(w, p.Markers.Off); err != nil {
			return err
		}
	}
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
