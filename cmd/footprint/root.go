package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ja7ad/genai-footprint/pkg/config"
	"github.com/ja7ad/genai-footprint/pkg/footprint"
	"github.com/ja7ad/genai-footprint/pkg/logging"
)

// app carries state shared by all subcommands. It is filled by the root
// command's PersistentPreRunE.
type app struct {
	cfgPath   string
	logLevel  string
	logFormat string
	unknown   string
	consts    footprint.Constants

	cfg *config.Config
	eng *footprint.Engine
	log zerolog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{consts: footprint.DefaultConstants()}

	root := &cobra.Command{
		Use:   "footprint",
		Short: "GenAI energy and carbon footprint estimator",
		Long: `The footprint tool estimates the electricity use and carbon emissions of
chatbot, completion and machine translation workloads.

It simulates the text volume each request processes, converts it to tokens
and applies a datacenter energy model (dynamic per-token energy, static
server power over latency, PUE) and a grid carbon intensity.

* GitHub: https://github.com/ja7ad/genai-footprint

Examples:
  footprint interactive
  footprint batch --input data/daily-analytics.yaml --output out.csv --html out.html
  footprint batch --pue 1.1 --carbon-intensity 56 --schedule "0 * * * *"`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "", "YAML config file (optional)")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	pf.StringVar(&a.logFormat, "log-format", "console", "log format (console|json)")
	pf.StringVar(&a.unknown, "unknown-profiles", footprint.UnknownZero.String(),
		"treatment of unclassified profiles (zero|generative)")

	pf.Float64Var(&a.consts.PUE, "pue", a.consts.PUE, "datacenter power usage effectiveness (>= 1)")
	pf.Float64Var(&a.consts.CarbonIntensity, "carbon-intensity", a.consts.CarbonIntensity, "grid carbon intensity (gCO2e/kWh)")
	pf.Float64Var(&a.consts.LLMEnergyPer1kTokens, "llm-energy-per-1k-tokens", a.consts.LLMEnergyPer1kTokens, "dynamic LLM energy (kWh per 1000 tokens)")
	pf.Float64Var(&a.consts.LLMStaticPowerKW, "llm-static-power-kw", a.consts.LLMStaticPowerKW, "static server power attributed to a request (kW)")
	pf.Float64Var(&a.consts.LLMAvgLatencyS, "llm-avg-latency-s", a.consts.LLMAvgLatencyS, "average request latency (s)")
	pf.Float64Var(&a.consts.TokensPerChar, "tokens-per-char", a.consts.TokensPerChar, "tokens per character")
	pf.Float64Var(&a.consts.NMTEnergyPerChar, "nmt-energy-per-char", a.consts.NMTEnergyPerChar, "translation energy (kWh per character)")

	root.AddCommand(newInteractiveCmd(a), newBatchCmd(a), newVersionCmd())
	return root
}

// setup builds the logger, loads the config, applies flag overrides and
// creates the engine.
func (a *app) setup(cmd *cobra.Command) error {
	log, err := logging.New(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.log = log

	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("pue", &cfg.Constants.PUE, a.consts.PUE)
	override("carbon-intensity", &cfg.Constants.CarbonIntensity, a.consts.CarbonIntensity)
	override("llm-energy-per-1k-tokens", &cfg.Constants.LLMEnergyPer1kTokens, a.consts.LLMEnergyPer1kTokens)
	override("llm-static-power-kw", &cfg.Constants.LLMStaticPowerKW, a.consts.LLMStaticPowerKW)
	override("llm-avg-latency-s", &cfg.Constants.LLMAvgLatencyS, a.consts.LLMAvgLatencyS)
	override("tokens-per-char", &cfg.Constants.TokensPerChar, a.consts.TokensPerChar)
	override("nmt-energy-per-char", &cfg.Constants.NMTEnergyPerChar, a.consts.NMTEnergyPerChar)
	if flags.Changed("unknown-profiles") {
		cfg.UnknownProfiles = a.unknown
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	policy, err := cfg.UnknownPolicy()
	if err != nil {
		return fmt.Errorf("unknown-profiles: %w", err)
	}

	a.cfg = cfg
	a.eng = footprint.New(&cfg.Constants, footprint.WithUnknownPolicy(policy))

	a.log.Debug().
		Float64("pue", cfg.Constants.PUE).
		Float64("carbon_intensity", cfg.Constants.CarbonIntensity).
		Str("unknown_profiles", policy.String()).
		Msg("engine ready")
	return nil
}
