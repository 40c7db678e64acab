package report

import (
	"errors"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	//exposes "chart"
)

// ErrNotEnoughData is returned when a graph would have a zero-size range.
var ErrNotEnoughData = errors.New("not enough data to graph")

// Scatter plot for X, Y ints, rendered as SVG or PNG.
func ScatterIntMap(w io.Writer, png bool, results map[int]int) error {
	// Create sorted list
	keys := make([]int, 0, len(results))
	for i := range results {
		keys = append(keys, i)
	}
	sort.Ints(keys)

	// Convert map to 2 arrays
	xvals := make([]float64, 0, len(keys))
	yvals := make([]float64, 0, len(keys))
	for _, k := range keys {
		xvals = append(xvals, float64(k))
		yvals = append(yvals, float64(results[k]))
	}
	if !spread(xvals) || !spread(yvals) {
		return ErrNotEnoughData
	}

	graph := chart.Chart{
		XAxis: chart.XAxis{Name: "run length"},
		YAxis: chart.YAxis{Name: "count"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
				},
				XValues: xvals,
				YValues: yvals,
			},
		},
	}

	format := chart.SVG
	if png {
		format = chart.PNG
	}
	return graph.Render(format, w)
}

// WriteRunLengthGraph plots the run length histogram of s.
func WriteRunLengthGraph(w io.Writer, png bool, s Stats) error {
	return ScatterIntMap(w, png, s.RunLens)
}

// Whether vals has at least two distinct values.
func spread(vals []float64) bool {
	for _, v := range vals {
		if v != vals[0] {
			return true
		}
	}
	return false
}
