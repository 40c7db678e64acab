// Package report collects packing statistics for a compressed
// representation and prints or graphs them.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/zstd"

	"spanzip/spanzip/spanzip"
)

func Ratio(num int, denom int) float32 {
	if denom == 0 {
		return 0.0
	}
	return float32(num) / float32(denom)
}

func Percent(num int, denom int) float32 {
	return 100.0 * Ratio(num, denom)
}

// General packing statistics
type Stats struct {
	InputSize  int
	RawSize    int // distinct bytes in the raw buffer
	NumTokens  int
	NumLits    int
	NumRuns    int
	RunBytes   int // input bytes covered by runs
	LongestRun int
	RunLens    map[int]int // run length -> count

	// Filled in by the caller when known, 0 otherwise.
	PackedSize int
	ZstdSize   int
}

// Analyse counts literals and runs in c. input is the data c was encoded
// from.
func Analyse(input []byte, c *spanzip.Compressed) Stats {
	s := Stats{
		InputSize: len(input),
		RawSize:   len(c.Raw),
		NumTokens: len(c.Tokens),
		RunLens:   make(map[int]int),
	}
	for _, t := range c.Tokens {
		if t.Kind != spanzip.Run {
			s.NumLits++
			continue
		}
		n := t.Len()
		s.NumRuns++
		s.RunBytes += n
		s.RunLens[n]++
		if n > s.LongestRun {
			s.LongestRun = n
		}
	}
	return s
}

// Shared encoder, safe for concurrent use.
var zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))

// ZstdSize returns the size of input compressed with zstd, as a baseline.
func ZstdSize(input []byte) int {
	if len(input) == 0 {
		return 0
	}
	return len(zstdEncoder.EncodeAll(input, nil))
}

// Write prints s in the summary format of the pack command.
func Write(w io.Writer, s Stats) error {
	lines := []string{
		"===== Complete =====",
		fmt.Sprintf("Original size:    %6d", s.InputSize),
		fmt.Sprintf("Raw buffer:       %6d", s.RawSize),
		fmt.Sprintf("Tokens:           %6d (%d literals, %d runs)", s.NumTokens, s.NumLits, s.NumRuns),
		fmt.Sprintf("Run coverage:     %6d (%.1f%%)", s.RunBytes, Percent(s.RunBytes, s.InputSize)),
		fmt.Sprintf("Longest run:      %6d", s.LongestRun),
	}
	if s.PackedSize != 0 {
		lines = append(lines, fmt.Sprintf("Packed size:      %6d (%.1f%%)", s.PackedSize, Percent(s.PackedSize, s.InputSize)))
	}
	if s.ZstdSize != 0 {
		lines = append(lines, fmt.Sprintf("zstd baseline:    %6d (%.1f%%)", s.ZstdSize, Percent(s.ZstdSize, s.InputSize)))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// WriteRunLengths prints the run length histogram, shortest first.
func WriteRunLengths(w io.Writer, s Stats) error {
	keys := make([]int, 0, len(s.RunLens))
	for k := range s.RunLens {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "Run length %4d: %6d\n", k, s.RunLens[k]); err != nil {
			return err
		}
	}
	return nil
}
