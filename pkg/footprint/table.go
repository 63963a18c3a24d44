package footprint

import "math"

// Totals is the column-wise sum of a Table.
type Totals struct {
	Rows            int
	Count           int64
	SimulatedTokens int64 // sum of per-row truncated tokens, matches the exported table
	SimulatedChars  int64
	EnergyKWh       float64
	CarbonG         float64
}

// CarbonKg returns the aggregate carbon in kilograms.
func (t Totals) CarbonKg() float64 { return t.CarbonG / 1000 }

// Table accumulates results in insertion order and keeps running totals.
type Table struct {
	rows   []Result
	totals Totals
}

// NewTable creates an empty table.
func NewTable() *Table { return &Table{} }

// Add appends results and updates the totals.
func (t *Table) Add(results ...Result) {
	for _, r := range results {
		t.rows = append(t.rows, r)
		t.totals.Rows++
		t.totals.Count += r.Count
		t.totals.SimulatedTokens += int64(math.Trunc(r.SimulatedTokens))
		t.totals.SimulatedChars += int64(math.Trunc(r.SimulatedChars))
		t.totals.EnergyKWh += r.EnergyKWh
		t.totals.CarbonG += r.CarbonG
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Results returns a copy of the rows in insertion order.
func (t *Table) Results() []Result {
	out := make([]Result, len(t.rows))
	copy(out, t.rows)
	return out
}

// Totals returns the running totals. An empty table yields zero totals.
func (t *Table) Totals() Totals { return t.totals }
