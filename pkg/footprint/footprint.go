package footprint

import (
	"fmt"
	"strings"
)

const secondsPerHour = 3600.0

// UnknownPolicy selects how records of the Unknown category are costed.
type UnknownPolicy int

const (
	// UnknownZero yields an all-zero result: no content, no energy.
	UnknownZero UnknownPolicy = iota
	// UnknownGenerative runs the generative model on zero volume, which
	// leaves the latency-bound static term (count * latency * static power).
	UnknownGenerative
)

func (p UnknownPolicy) String() string {
	if p == UnknownGenerative {
		return "generative"
	}
	return "zero"
}

// ParseUnknownPolicy parses "zero" or "generative". Empty means zero.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero":
		return UnknownZero, nil
	case "generative":
		return UnknownGenerative, nil
	default:
		return UnknownZero, fmt.Errorf("unknown profile policy %q (want zero|generative)", s)
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithUnknownPolicy sets how Unknown records are costed.
func WithUnknownPolicy(p UnknownPolicy) Option {
	return func(e *Engine) { e.unknown = p }
}

// Engine turns usage records into energy and carbon figures.
// It holds no mutable state; all methods are safe for concurrent use.
type Engine struct {
	c       Constants
	unknown UnknownPolicy
}

// New creates an engine with the given constants. A nil or zero-valued c
// selects DefaultConstants; otherwise c is used as given, including zero
// fields. Callers are expected to Validate c first.
func New(c *Constants, opts ...Option) *Engine {
	eff := DefaultConstants()
	if c != nil && *c != (Constants{}) {
		eff = *c
	}

	e := &Engine{c: eff}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Constants returns the effective cost model.
func (e *Engine) Constants() Constants { return e.c }

// UnknownPolicy returns the policy applied to Unknown records.
func (e *Engine) UnknownPolicy() UnknownPolicy { return e.unknown }

// Estimate computes the footprint of one usage record.
//
//  1. Volume: chars = (input + output) * count, tokens = chars * tokens_per_char
//  2. Energy:
//     translation: chars * nmt_energy_per_char
//     generative:  tokens/1000 * llm_energy_per_1k_tokens
//     + count*latency/3600 * static_power_kw
//  3. Facility overhead: energy *= pue
//  4. Carbon: energy * carbon_intensity
//
// Counts and sizes are expected to be non-negative; negative inputs are not
// rejected and produce sign-mirrored figures.
func (e *Engine) Estimate(p Params, rec UsageRecord) Result {
	cat := Classify(rec.ProfileType)
	res := Result{
		Date:        rec.Date,
		ProfileType: rec.ProfileType,
		Category:    cat,
		Count:       rec.Count,
	}
	if cat == Unknown && e.unknown == UnknownZero {
		return res
	}

	n := float64(rec.Count)
	in, out := EstimateVolume(cat, p)
	res.InputChars = in * n
	res.OutputChars = out * n
	res.SimulatedChars = (in + out) * n
	res.SimulatedTokens = res.SimulatedChars * e.c.TokensPerChar

	if cat.Generative() {
		res.EnergyDynamic = (res.SimulatedTokens / 1000) * e.c.LLMEnergyPer1kTokens
		hours := (n * e.c.LLMAvgLatencyS) / secondsPerHour
		res.EnergyStatic = hours * e.c.LLMStaticPowerKW
	} else {
		res.EnergyDynamic = res.SimulatedChars * e.c.NMTEnergyPerChar
	}

	res.EnergyKWh = (res.EnergyDynamic + res.EnergyStatic) * e.c.PUE
	res.CarbonG = res.EnergyKWh * e.c.CarbonIntensity
	return res
}

// EstimateAll computes results for recs, preserving their order.
func (e *Engine) EstimateAll(p Params, recs []UsageRecord) []Result {
	out := make([]Result, 0, len(recs))
	for _, r := range recs {
		out = append(out, e.Estimate(p, r))
	}
	return out
}

// EstimateInteractive costs a single chatbot request described by p.
// Interactive estimation always uses the generative model.
func (e *Engine) EstimateInteractive(p Params) Result {
	return e.Estimate(p, UsageRecord{ProfileType: Chatbot.String(), Count: 1})
}

// Validate reports whether c describes a usable cost model.
func (c Constants) Validate() error {
	switch {
	case c.PUE < 1:
		return fmt.Errorf("%w: pue must be >= 1, got %g", ErrInvalidConstants, c.PUE)
	case c.CarbonIntensity < 0:
		return fmt.Errorf("%w: carbon_intensity must be >= 0", ErrInvalidConstants)
	case c.LLMEnergyPer1kTokens < 0:
		return fmt.Errorf("%w: llm_energy_per_1k_tokens must be >= 0", ErrInvalidConstants)
	case c.LLMStaticPowerKW < 0:
		return fmt.Errorf("%w: llm_static_power_kw must be >= 0", ErrInvalidConstants)
	case c.LLMAvgLatencyS < 0:
		return fmt.Errorf("%w: llm_avg_latency_s must be >= 0", ErrInvalidConstants)
	case c.TokensPerChar < 0:
		return fmt.Errorf("%w: tokens_per_char must be >= 0", ErrInvalidConstants)
	case c.NMTEnergyPerChar < 0:
		return fmt.Errorf("%w: nmt_energy_per_char must be >= 0", ErrInvalidConstants)
	}
	return nil
}
