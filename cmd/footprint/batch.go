package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ja7ad/genai-footprint/pkg/config"
	"github.com/ja7ad/genai-footprint/pkg/footprint"
	"github.com/ja7ad/genai-footprint/pkg/metrics"
	"github.com/ja7ad/genai-footprint/pkg/report"
	"github.com/ja7ad/genai-footprint/pkg/usage"
	"github.com/ja7ad/genai-footprint/pkg/watch"
)

type batchOpts struct {
	input    string
	output   string
	section  string
	jsonPath string
	htmlPath string
	dbPath   string
	promPath string

	watch    bool
	debounce time.Duration
	schedule string
}

func newBatchCmd(a *app) *cobra.Command {
	var o batchOpts

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Estimate the footprint of a usage dataset",
		Long: `Read daily request counts per usage profile from a YAML dataset, estimate
the energy and carbon of every entry, print a summary and export the table.

The dataset groups profiles under one top-level key (default "genai"):

  genai:
    chatbots:
      - {date: 2025-01-01, count: 1200}
    translations:
      - {date: 2025-01-01, count: 300}

Profiles are classified by name: "chatbot", then "completion", then
"translation" or "nmt". With --watch or --schedule the estimate is
recomputed until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.applyConfig(cmd, a.cfg)
			return runBatch(cmd.Context(), a, o, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "", "usage dataset (default from config: data/daily-analytics.yaml)")
	f.StringVarP(&o.output, "output", "o", "", "CSV report path (default from config: output/footprint_report.csv)")
	f.StringVar(&o.section, "section", "", "top-level grouping key in the dataset (default from config: genai)")
	f.StringVar(&o.jsonPath, "json", "", "also write the report as JSON")
	f.StringVar(&o.htmlPath, "html", "", "also write the report as HTML")
	f.StringVar(&o.dbPath, "sqlite", "", "append the run to a SQLite database")
	f.StringVar(&o.promPath, "metrics-textfile", "", "write Prometheus metrics for the node-exporter textfile collector")
	f.BoolVarP(&o.watch, "watch", "w", false, "recompute when the dataset changes")
	f.DurationVar(&o.debounce, "debounce", watch.DefaultDebounce, "quiet period before a change triggers --watch")
	f.StringVar(&o.schedule, "schedule", "", `recompute on a cron schedule (e.g. "0 * * * *")`)

	return cmd
}

// applyConfig fills unset paths from the config file.
func (o *batchOpts) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("input") {
		o.input = cfg.Batch.Input
	}
	if !flags.Changed("output") {
		o.output = cfg.Batch.Output
	}
	if !flags.Changed("section") {
		o.section = cfg.Batch.Section
	}
}

func runBatch(ctx context.Context, a *app, o batchOpts, out io.Writer) error {
	if o.input == "" {
		return fmt.Errorf("input path cannot be empty")
	}
	if o.output == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if o.schedule != "" {
		if _, err := cron.ParseStandard(o.schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", o.schedule, err)
		}
	}

	b := &batcher{
		opts:   o,
		eng:    a.eng,
		params: a.cfg.Simulation,
		out:    out,
		log:    a.log.With().Str("mode", "batch").Logger(),
	}
	b.sinks = append(b.sinks,
		namedSink{"csv", o.output, report.CSVSink{Path: o.output}})
	if o.jsonPath != "" {
		b.sinks = append(b.sinks, namedSink{"json", o.jsonPath, report.JSONSink{Path: o.jsonPath}})
	}
	if o.htmlPath != "" {
		b.sinks = append(b.sinks, namedSink{"html", o.htmlPath, report.HTMLSink{Path: o.htmlPath}})
	}
	if o.dbPath != "" {
		db, err := report.OpenSQLite(o.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		b.sinks = append(b.sinks, namedSink{"sqlite", o.dbPath, db})
	}
	if o.promPath != "" {
		b.sinks = append(b.sinks, namedSink{"metrics", o.promPath,
			metrics.TextfileSink{Recorder: metrics.NewRecorder(), Path: o.promPath}})
	}

	// the first run is fatal; later runs only log
	if err := b.run(ctx); err != nil {
		return err
	}
	if !o.watch && o.schedule == "" {
		return nil
	}

	rerun := func() error { return b.run(ctx) }

	if o.schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(o.schedule, func() {
			if err := rerun(); err != nil {
				b.log.Error().Err(err).Msg("scheduled run failed")
			}
		}); err != nil {
			return fmt.Errorf("failed to schedule batch: %w", err)
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
		b.log.Info().Str("schedule", o.schedule).Msg("batch scheduled")
	}

	if o.watch {
		return watch.New(o.input, o.debounce, b.log).Run(ctx, rerun)
	}

	<-ctx.Done()
	b.log.Info().Msg("interrupted")
	return nil
}

type namedSink struct {
	name string
	path string
	sink report.Sink
}

// batcher runs one estimation pass. Watch and cron callbacks may overlap,
// so passes are serialized.
type batcher struct {
	mu     sync.Mutex
	opts   batchOpts
	eng    *footprint.Engine
	params footprint.Params
	sinks  []namedSink
	out    io.Writer
	log    zerolog.Logger
}

func (b *batcher) run(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ds, err := usage.Load(b.opts.input, b.opts.section)
	if err != nil {
		return fmt.Errorf("failed to load usage data: %w", err)
	}

	if !ds.Found {
		b.log.Warn().Str("section", ds.Section).Str("input", b.opts.input).Msg("grouping key not found, no usage records")
		fmt.Fprintf(b.out, "Notice: key %q not found in %s, no usage records processed.\n", ds.Section, b.opts.input)
	}
	for _, k := range ds.Skipped {
		b.log.Debug().Str("key", k).Msg("skipping non-list entry")
	}

	tb := footprint.NewTable()
	for _, g := range ds.Groups {
		b.log.Info().Str("profile", g.Name).Int("days", len(g.Records)).
			Str("category", footprint.Classify(g.Name).String()).Msg("processing profile")
		tb.Add(b.eng.EstimateAll(b.params, g.Records)...)
	}

	if tb.Len() == 0 {
		fmt.Fprintln(b.out, "No results produced. Check that the dataset contains the expected grouping keys.")
	} else {
		report.Summary(b.out, tb.Totals())
	}

	rep := report.New(b.opts.input, b.eng, b.params, tb)
	for _, s := range b.sinks {
		if err := s.sink.Write(ctx, rep); err != nil {
			return fmt.Errorf("failed to write %s report: %w", s.name, err)
		}
		b.log.Info().Str("sink", s.name).Str("path", s.path).Msg("report written")
	}

	b.log.Info().Str("run_id", rep.RunID.String()).Int("rows", tb.Len()).Msg("batch complete")
	return nil
}
