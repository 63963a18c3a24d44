package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ja7ad/genai-footprint/pkg/report"
)

// TextfileSink replaces the Recorder's per-profile series with the totals
// of each report and rewrites the textfile at Path.
type TextfileSink struct {
	Recorder *Recorder
	Path     string
}

func (s TextfileSink) Write(_ context.Context, rep *report.Report) error {
	if s.Recorder == nil {
		return fmt.Errorf("metrics sink: nil recorder")
	}
	s.Recorder.Reset()
	for _, r := range rep.Results {
		s.Recorder.Observe(r)
	}
	s.Recorder.MarkRun(rep.GeneratedAt)

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	return s.Recorder.WriteTextfile(s.Path)
}
