package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
)

var rule = strings.Repeat("-", 60)

// Summary prints the aggregate totals of a batch run.
func Summary(w io.Writer, t footprint.Totals) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SIMULATION RESULTS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Rows analysed             : %d\n", t.Rows)
	fmt.Fprintf(w, "Total requests (count)    : %s\n", humanize.Comma(t.Count))
	fmt.Fprintf(w, "Simulated volume (tokens) : %s\n", humanize.Comma(t.SimulatedTokens))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "ENERGY USE                : %.4f kWh\n", t.EnergyKWh)
	fmt.Fprintf(w, "CARBON FOOTPRINT          : %.2f kgCO2e\n", t.CarbonKg())
	fmt.Fprintln(w, rule)
}
