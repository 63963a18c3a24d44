package report

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
)

// JSONSink writes the run, its cost model and the detailed table as JSON.
type JSONSink struct {
	Path string
}

type jsonTotals struct {
	Rows            int     `json:"rows"`
	Count           int64   `json:"count"`
	SimulatedTokens int64   `json:"simulated_tokens"`
	SimulatedChars  int64   `json:"simulated_chars"`
	EnergyKWh       float64 `json:"energy_kwh"`
	CarbonKg        float64 `json:"carbon_kgCO2"`
}

type jsonReport struct {
	RunID           string              `json:"run_id"`
	GeneratedAt     time.Time           `json:"generated_at"`
	Source          string              `json:"source,omitempty"`
	UnknownProfiles string              `json:"unknown_profiles"`
	Constants       footprint.Constants `json:"constants"`
	Params          footprint.Params    `json:"simulation"`
	Totals          jsonTotals          `json:"totals"`
	Rows            []Row               `json:"rows"`
}

func (s JSONSink) Write(_ context.Context, rep *Report) error {
	return writeFileAtomic(s.Path, func(f *os.File) error {
		return WriteJSON(f, rep)
	})
}

// WriteJSON encodes rep as an indented JSON document.
func WriteJSON(w io.Writer, rep *Report) error {
	doc := jsonReport{
		RunID:           rep.RunID.String(),
		GeneratedAt:     rep.GeneratedAt,
		Source:          rep.Source,
		UnknownProfiles: rep.Unknown.String(),
		Constants:       rep.Constants,
		Params:          rep.Params,
		Totals: jsonTotals{
			Rows:            rep.Totals.Rows,
			Count:           rep.Totals.Count,
			SimulatedTokens: rep.Totals.SimulatedTokens,
			SimulatedChars:  rep.Totals.SimulatedChars,
			EnergyKWh:       rep.Totals.EnergyKWh,
			CarbonKg:        rep.Totals.CarbonKg(),
		},
		Rows: rep.Rows(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
