package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
	"github.com/ja7ad/genai-footprint/pkg/report"
)

func TestTextfileSink_RerunDoesNotDoubleCount(t *testing.T) {
	eng := footprint.New(nil)
	p := footprint.DefaultParams()

	tb := footprint.NewTable()
	tb.Add(eng.EstimateAll(p, []footprint.UsageRecord{
		{ProfileType: "translation_api", Date: "2025-01-01", Count: 10},
		{ProfileType: "translation_api", Date: "2025-01-02", Count: 5},
	})...)
	rep := report.New("usage.yaml", eng, p, tb)
	rep.GeneratedAt = time.Unix(1_700_000_000, 0)

	rec := NewRecorder()
	path := filepath.Join(t.TempDir(), "nested", "footprint.prom")
	sink := TextfileSink{Recorder: rec, Path: path}

	require.NoError(t, sink.Write(context.Background(), rep))
	require.NoError(t, sink.Write(context.Background(), rep))

	assert.Equal(t, 15.0, testutil.ToFloat64(rec.requests.WithLabelValues("translation_api", "translation")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.records.WithLabelValues("translation_api", "translation")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.runs))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `genai_footprint_run_requests{category="translation",profile="translation_api"} 15`)
}

func TestTextfileSink_NilRecorder(t *testing.T) {
	err := TextfileSink{Path: filepath.Join(t.TempDir(), "x.prom")}.Write(context.Background(), &report.Report{})
	assert.Error(t, err)
}
