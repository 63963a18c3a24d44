package footprint

// Constants holds the fixed cost model for a run.
// Units:
//   - PUE: dimensionless facility overhead multiplier (>= 1)
//   - CarbonIntensity: gCO2e per kWh
//   - LLMEnergyPer1kTokens: kWh per 1000 generated/consumed tokens
//   - LLMStaticPowerKW: kW drawn by the accelerator for the request duration
//   - LLMAvgLatencyS: seconds of wall-clock time per generative request
//   - TokensPerChar: tokens per character of text
//   - NMTEnergyPerChar: kWh per translated character
type Constants struct {
	PUE                  float64 `yaml:"pue" json:"pue"`
	CarbonIntensity      float64 `yaml:"carbon_intensity" json:"carbon_intensity"`
	LLMEnergyPer1kTokens float64 `yaml:"llm_energy_per_1k_tokens" json:"llm_energy_per_1k_tokens"`
	LLMStaticPowerKW     float64 `yaml:"llm_static_power_kw" json:"llm_static_power_kw"`
	LLMAvgLatencyS       float64 `yaml:"llm_avg_latency_s" json:"llm_avg_latency_s"`
	TokensPerChar        float64 `yaml:"tokens_per_char" json:"tokens_per_char"`
	NMTEnergyPerChar     float64 `yaml:"nmt_energy_per_char" json:"nmt_energy_per_char"`
}

// DefaultConstants returns the reference cost model.
func DefaultConstants() Constants {
	return Constants{
		PUE:                  1.2,      // typical cloud facility
		CarbonIntensity:      475,      // gCO2e/kWh, global cloud mix
		LLMEnergyPer1kTokens: 0.0006,   // kWh, blended prompt/decode
		LLMStaticPowerKW:     0.250,    // kW, active accelerator
		LLMAvgLatencyS:       2.0,      // s per request
		TokensPerChar:        0.25,     // ~4 chars per token
		NMTEnergyPerChar:     0.000004, // kWh/char, NMT proxy
	}
}

// Params are the simulated text sizes used to turn request counts into volumes.
type Params struct {
	TopicSizeChars    int `yaml:"topic_size_chars" json:"topic_size_chars"`
	PromptSizeChars   int `yaml:"prompt_size_chars" json:"prompt_size_chars"`
	OutputSizeChars   int `yaml:"output_size_chars" json:"output_size_chars"`
	ContextTopicCount int `yaml:"context_topic_count" json:"context_topic_count"`
}

// DefaultParams returns the batch simulation defaults.
func DefaultParams() Params {
	return Params{
		TopicSizeChars:    3000,
		PromptSizeChars:   500,
		OutputSizeChars:   350,
		ContextTopicCount: 3,
	}
}

// UsageRecord is one {date, count} entry of a usage profile.
type UsageRecord struct {
	ProfileType string
	Date        string
	Count       int64
}

// Result is the computed footprint of one UsageRecord.
// Values are never rounded here.
type Result struct {
	Date            string   `json:"date"`
	ProfileType     string   `json:"profile_type"`
	Category        Category `json:"category"`
	Count           int64    `json:"count"`
	InputChars      float64  `json:"input_chars"`
	OutputChars     float64  `json:"output_chars"`
	SimulatedChars  float64  `json:"simulated_chars"`
	SimulatedTokens float64  `json:"simulated_tokens"`
	EnergyDynamic   float64  `json:"energy_dynamic_kwh"` // pre-PUE
	EnergyStatic    float64  `json:"energy_static_kwh"`  // pre-PUE
	EnergyKWh       float64  `json:"energy_kwh"`
	CarbonG         float64  `json:"carbon_g"`
}
