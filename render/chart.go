// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/spinodal/diagnostics"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Quantity selects one diagnostics column.
type Quantity int

const (
	// AverageConcentration is the domain mean of c.
	AverageConcentration Quantity = iota
	// AverageChemicalPotential is the domain mean of mu.
	AverageChemicalPotential
	// FreeEnergy is the total free energy.
	FreeEnergy
)

// Quantities lists every chartable quantity in file column order.
var Quantities = []Quantity{AverageConcentration, AverageChemicalPotential, FreeEnergy}

// String returns a file-name friendly name.
func (q Quantity) String() string {
	switch q {
	case AverageConcentration:
		return "average_concentration"
	case AverageChemicalPotential:
		return "average_chemical_potential"
	case FreeEnergy:
		return "free_energy"
	default:
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
}

// Title is the chart title and y-axis name.
func (q Quantity) Title() string {
	switch q {
	case AverageConcentration:
		return "Average concentration"
	case AverageChemicalPotential:
		return "Average chemical potential"
	case FreeEnergy:
		return "Free energy"
	default:
		return q.String()
	}
}

func (q Quantity) value(s diagnostics.Snapshot) float64 {
	switch q {
	case AverageConcentration:
		return s.AverageConcentration
	case AverageChemicalPotential:
		return s.AverageChemicalPotential
	default:
		return s.FreeEnergy
	}
}

var quantityColors = map[Quantity]drawing.Color{
	AverageConcentration:     chart.ColorBlue,
	AverageChemicalPotential: chart.ColorGreen,
	FreeEnergy:               chart.ColorRed,
}

// Chart size in pixels.
const (
	ChartWidth  = 800
	ChartHeight = 480
)

// DiagnosticsChart renders q against time as a PNG line chart.
// A constant series is drawn inside an explicit padded y range.
func DiagnosticsChart(w io.Writer, series []diagnostics.Snapshot, q Quantity) error {
	if q < AverageConcentration || q > FreeEnergy {
		return fmt.Errorf("render.DiagnosticsChart: %d: %w", int(q), ErrQuantity)
	}
	if len(series) < 2 {
		return fmt.Errorf("render.DiagnosticsChart: %d points: %w", len(series), ErrTooFewPoints)
	}
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range series {
		xs[i] = s.T
		ys[i] = q.value(s)
		lo = math.Min(lo, ys[i])
		hi = math.Max(hi, ys[i])
	}
	if xs[len(xs)-1] == xs[0] {
		return fmt.Errorf("render.DiagnosticsChart: zero time span: %w", ErrTooFewPoints)
	}

	graph := chart.Chart{
		Title:  q.Title(),
		Width:  ChartWidth,
		Height: ChartHeight,
		XAxis:  chart.XAxis{Name: "t", Style: chart.Style{FontSize: 10.0}},
		YAxis:  chart.YAxis{Name: q.Title(), Style: chart.Style{FontSize: 10.0}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    q.Title(),
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: quantityColors[q], StrokeWidth: 2.0},
			},
		},
	}
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.01, 0.5)
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render.DiagnosticsChart: %w", err)
	}

	return nil
}

// SaveDiagnosticsChart writes DiagnosticsChart output to path.
func SaveDiagnosticsChart(path string, series []diagnostics.Snapshot, q Quantity) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	return DiagnosticsChart(f, series, q)
}
