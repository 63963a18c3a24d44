package report

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"os"

	"github.com/ja7ad/genai-footprint/pkg/types"
)

// HTMLSink renders a standalone HTML report.
type HTMLSink struct {
	Path string
}

func (s HTMLSink) Write(_ context.Context, rep *Report) error {
	return writeFileAtomic(s.Path, func(f *os.File) error {
		return WriteHTML(f, rep)
	})
}

// WriteHTML renders rep into w.
func WriteHTML(w io.Writer, rep *Report) error {
	type view struct {
		*Report
		Rows   []Row
		Energy string
		Carbon string
	}

	var buf bytes.Buffer
	data := view{
		Report: rep,
		Rows:   rep.Rows(),
		Energy: types.KWh(rep.Totals.EnergyKWh).Humanized(),
		Carbon: types.Grams(rep.Totals.CarbonG).Humanized(),
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>GenAI Footprint Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child,th:nth-child(2),td:nth-child(2){text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
.badge{display:inline-block;background:#eef;border:1px solid #ccd;padding:2px 6px;border-radius:6px;margin-right:6px;}
</style>

<h1>GenAI Footprint Report</h1>

<p class="small">
Run: <span class="badge">{{.RunID}}</span>
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}
{{if .Source}}&nbsp;|&nbsp; Source: {{.Source}}{{end}}
</p>

<h2>Summary</h2>
<ul>
<li>Rows: {{.Totals.Rows}}</li>
<li>Requests: {{.Totals.Count}}</li>
<li>Simulated tokens: {{.Totals.SimulatedTokens}}</li>
<li>Energy: {{.Energy}} ({{printf "%.4f" .Totals.EnergyKWh}} kWh)</li>
<li>Carbon: {{.Carbon}} ({{printf "%.2f" .Totals.CarbonKg}} kgCO2e)</li>
</ul>

<h2>Cost model</h2>
<ul>
<li>PUE: {{.Constants.PUE}}</li>
<li>Carbon intensity: {{.Constants.CarbonIntensity}} gCO2e/kWh</li>
<li>LLM energy: {{.Constants.LLMEnergyPer1kTokens}} kWh / 1k tokens</li>
<li>LLM static power: {{.Constants.LLMStaticPowerKW}} kW over {{.Constants.LLMAvgLatencyS}} s</li>
<li>Tokens per char: {{.Constants.TokensPerChar}}</li>
<li>NMT energy: {{.Constants.NMTEnergyPerChar}} kWh / char</li>
<li>Unknown profiles: {{.Unknown}}</li>
</ul>

<h2>Per-day</h2>
<table>
<thead>
<tr>
<th>date</th><th>profile_type</th><th>count</th><th>simulated_tokens</th>
<th>simulated_chars</th><th>energy_kwh</th><th>carbon_gCO2</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.Date}}</td>
<td>{{.ProfileType}}</td>
<td>{{.Count}}</td>
<td>{{.SimulatedTokens}}</td>
<td>{{.SimulatedChars}}</td>
<td>{{printf "%.6f" .EnergyKWh}}</td>
<td>{{printf "%.2f" .CarbonG}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
