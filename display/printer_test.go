package display

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"spanzip/spanzip/spanzip"
)

// Records every write and counts flushes.
type recordingSink struct {
	bytes.Buffer
	flushes  int
	writes   int
	failAt   int // fail the n-th write (1-based), 0 never
	flushErr error
}

func (s *recordingSink) Write(p []byte) (int, error) {
	s.writes++
	if s.failAt != 0 && s.writes == s.failAt {
		return 0, errors.New("disk full")
	}
	return s.Buffer.Write(p)
}

func (s *recordingSink) Flush() error {
	s.flushes++
	return s.flushErr
}

func TestPrintMarksOnlyRuns(t *testing.T) {
	var cases = []struct {
		input string
		want  string
	}{
		{"", ""},
		{"asdf", "asdf"},
		{"abcdabcd", "abcd[abcd]"},
		{"abcabcxabc", "abc[abc]x[abc]"},
		{"aaaa", "aaaa"},
		{"abab", "ab[ab]"},
	}
	p := NewPrinter(Markers{On: "[", Off: "]"}, 0)
	for _, tt := range cases {
		t.Run(tt.input, func(t *testing.T) {
			var sink recordingSink
			c := spanzip.Encode([]byte(tt.input))
			if err := p.Print(&sink, c); err != nil {
				t.Fatalf("Print failed: %v", err)
			}
			if got := sink.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if sink.flushes != c.Len() {
				t.Errorf("flushes: got %d, want %d", sink.flushes, c.Len())
			}
		})
	}
}

func TestPrintWithoutMarkersEqualsAll(t *testing.T) {
	input := []byte("she sells sea shells by the sea shore, the shells she sells")
	c := spanzip.Encode(input)
	var out bytes.Buffer
	if err := NewPrinter(Markers{}, 0).Print(&out, c); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	all, err := c.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), all) || !bytes.Equal(all, input) {
		t.Errorf("got %q, want %q", out.Bytes(), input)
	}
}

func TestPrintDelay(t *testing.T) {
	c := spanzip.Encode([]byte("abcabc"))
	var slept []time.Duration
	p := NewPrinter(Markers{}, 50*time.Millisecond)
	p.sleep = func(d time.Duration) { slept = append(slept, d) }

	var out bytes.Buffer
	if err := p.Print(&out, c); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if len(slept) != c.Len()-1 {
		t.Errorf("sleeps: got %d, want %d", len(slept), c.Len()-1)
	}
	for _, d := range slept {
		if d != 50*time.Millisecond {
			t.Errorf("sleep: got %v, want 50ms", d)
		}
	}
	if out.String() != "abcabc" {
		t.Errorf("got %q, want %q", out.String(), "abcabc")
	}
}

func TestPrintWriteError(t *testing.T) {
	c := spanzip.Encode([]byte("abcabc"))
	sink := &recordingSink{failAt: 3}
	err := NewPrinter(Markers{}, 0).Print(sink, c)
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	if errors.Is(err, spanzip.ErrIndexOutOfRange) {
		t.Fatal("write error reported as a decode error")
	}
}

func TestPrintFlushError(t *testing.T) {
	c := spanzip.Encode([]byte("a"))
	sink := &recordingSink{flushErr: errors.New("broken pipe")}
	if err := NewPrinter(Markers{}, 0).Print(sink, c); !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

func TestPrintDecodeError(t *testing.T) {
	c := &spanzip.Compressed{Raw: []byte("a"), Tokens: []spanzip.Token{spanzip.NewLiteral(0), spanzip.NewRun(0, 4)}}
	var out bytes.Buffer
	err := NewPrinter(Markers{}, 0).Print(&out, c)
	if !errors.Is(err, spanzip.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if errors.Is(err, ErrWrite) {
		t.Fatal("decode error reported as a write error")
	}
	if out.String() != "a" {
		t.Errorf("got %q, want %q", out.String(), "a")
	}
}
