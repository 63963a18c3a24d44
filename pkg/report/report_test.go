package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	eng := footprint.New(nil)
	p := footprint.DefaultParams()
	tb := footprint.NewTable()
	tb.Add(eng.EstimateAll(p, []footprint.UsageRecord{
		{ProfileType: "chatbots", Date: "2025-01-01", Count: 1},
		{ProfileType: "translations", Date: "2025-01-01", Count: 10},
		{ProfileType: "misc", Date: "2025-01-02", Count: 4},
	})...)
	return New("usage.yaml", eng, p, tb)
}

func TestNewRows_Rounding(t *testing.T) {
	rows := sampleReport(t).Rows()
	require.Len(t, rows, 3)

	chat := rows[0]
	assert.Equal(t, int64(2462), chat.SimulatedTokens)
	assert.Equal(t, int64(9850), chat.SimulatedChars)
	assert.Equal(t, 0.00194, chat.EnergyKWh)
	assert.Equal(t, 0.92, chat.CarbonG)

	nmt := rows[1]
	assert.Equal(t, 0.288, nmt.EnergyKWh)
	assert.Equal(t, 136.8, nmt.CarbonG)

	unknown := rows[2]
	assert.Equal(t, int64(4), unknown.Count)
	assert.Zero(t, unknown.CarbonG)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport(t).Rows()))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, []string{"date", "profile_type", "count", "simulated_tokens", "simulated_chars", "energy_kwh", "carbon_gCO2"}, recs[0])
	assert.Equal(t, []string{"2025-01-01", "chatbots", "1", "2462", "9850", "0.00194", "0.92"}, recs[1])
	assert.Equal(t, []string{"2025-01-01", "translations", "10", "15000", "60000", "0.288", "136.8"}, recs[2])
	assert.Equal(t, []string{"2025-01-02", "misc", "4", "0", "0", "0", "0"}, recs[3])
}

func TestWriteCSV_EmptyHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "date,profile_type,count,simulated_tokens,simulated_chars,energy_kwh,carbon_gCO2\n", buf.String())
}

func TestFileSinks(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport(t)
	ctx := context.Background()

	csvPath := filepath.Join(dir, "out", "report.csv")
	jsonPath := filepath.Join(dir, "out", "report.json")
	htmlPath := filepath.Join(dir, "out", "report.html")

	for _, s := range []Sink{CSVSink{Path: csvPath}, JSONSink{Path: jsonPath}, HTMLSink{Path: htmlPath}} {
		require.NoError(t, s.Write(ctx, rep))
	}

	b, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "date,profile_type,"))

	b, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, rep.RunID.String(), doc["run_id"])
	assert.Equal(t, "zero", doc["unknown_profiles"])
	rows := doc["rows"].([]any)
	require.Len(t, rows, 3)
	assert.Equal(t, "chatbot", rows[0].(map[string]any)["category"])
	assert.Equal(t, "translation", rows[1].(map[string]any)["category"])
	assert.Equal(t, "unknown", rows[2].(map[string]any)["category"])
	totals := doc["totals"].(map[string]any)
	assert.EqualValues(t, 15, totals["count"])

	b, err = os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), rep.RunID.String())
	assert.Contains(t, string(b), "<td>translations</td>")

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSQLiteSink(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	first := sampleReport(t)
	second := sampleReport(t)
	require.NotEqual(t, first.RunID, second.RunID)

	require.NoError(t, s.Write(ctx, first))
	require.NoError(t, s.Write(ctx, second))

	var (
		count  int64
		carbon float64
	)
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(count), 0), COALESCE(SUM(carbon_g), 0) FROM results WHERE run_id = ?`,
		first.RunID.String(),
	).Scan(&count, &carbon))
	assert.Equal(t, int64(15), count)
	assert.InDelta(t, first.Totals.CarbonG, carbon, 1e-9)

	require.Error(t, s.Write(ctx, first), "duplicate run id is rejected")

	_, err = OpenSQLite("")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	tot := footprint.Totals{Rows: 3, Count: 1234567, SimulatedTokens: 9876543, EnergyKWh: 0.43219, CarbonG: 205.3}
	Summary(&buf, tot)

	out := buf.String()
	assert.Contains(t, out, "Rows analysed             : 3")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "9,876,543")
	assert.Contains(t, out, "0.4322 kWh")
	assert.Contains(t, out, "0.21 kgCO2e")
}
