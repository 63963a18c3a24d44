// Package report turns computed footprint results into durable artifacts.
//
// Every artifact is produced by a Sink from the same Report value. The
// engine never depends on this package.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
	"github.com/ja7ad/genai-footprint/pkg/util"
)

// Columns is the exported table header, in order.
var Columns = []string{
	"date", "profile_type", "count", "simulated_tokens", "simulated_chars", "energy_kwh", "carbon_gCO2",
}

const (
	energyPlaces = 6
	carbonPlaces = 2
)

// Sink consumes a report and produces an artifact.
type Sink interface {
	Write(ctx context.Context, rep *Report) error
}

// Report is one batch run.
type Report struct {
	RunID       uuid.UUID
	GeneratedAt time.Time
	Source      string
	Constants   footprint.Constants
	Params      footprint.Params
	Unknown     footprint.UnknownPolicy
	Results     []footprint.Result
	Totals      footprint.Totals
}

// New builds a report from a filled table.
func New(source string, eng *footprint.Engine, p footprint.Params, tb *footprint.Table) *Report {
	return &Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Constants:   eng.Constants(),
		Params:      p,
		Unknown:     eng.UnknownPolicy(),
		Results:     tb.Results(),
		Totals:      tb.Totals(),
	}
}

// Row is the presentation form of a result: counts truncated, energy
// rounded to 6 places and carbon to 2.
type Row struct {
	Date            string             `json:"date"`
	ProfileType     string             `json:"profile_type"`
	Category        footprint.Category `json:"category"`
	Count           int64              `json:"count"`
	SimulatedTokens int64              `json:"simulated_tokens"`
	SimulatedChars  int64              `json:"simulated_chars"`
	EnergyKWh       float64            `json:"energy_kwh"`
	CarbonG         float64            `json:"carbon_gCO2"`
}

// NewRows converts results to export rows, preserving order.
func NewRows(results []footprint.Result) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, Row{
			Date:            r.Date,
			ProfileType:     r.ProfileType,
			Category:        r.Category,
			Count:           r.Count,
			SimulatedTokens: util.Trunc(r.SimulatedTokens),
			SimulatedChars:  util.Trunc(r.SimulatedChars),
			EnergyKWh:       util.Round(r.EnergyKWh, energyPlaces),
			CarbonG:         util.Round(r.CarbonG, carbonPlaces),
		})
	}
	return rows
}

// Rows returns the export rows of the report.
func (r *Report) Rows() []Row { return NewRows(r.Results) }

// writeFileAtomic writes via a temp file in the target directory and
// renames it into place, so readers never see a partial file.
func writeFileAtomic(path string, write func(f *os.File) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = write(f); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
