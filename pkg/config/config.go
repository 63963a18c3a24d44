// Package config loads the estimator configuration from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
	"github.com/ja7ad/genai-footprint/pkg/usage"
)

// ErrInvalid indicates a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid")

// DefaultPrompt is used when the interactive user enters a blank prompt.
const DefaultPrompt = "What is my carbon footprint?"

// Config is the full estimator configuration.
type Config struct {
	Constants       footprint.Constants `yaml:"constants"`
	Simulation      footprint.Params    `yaml:"simulation"`
	Interactive     Interactive         `yaml:"interactive"`
	UnknownProfiles string              `yaml:"unknown_profiles"`
	Batch           Batch               `yaml:"batch"`
}

// Interactive holds the defaults offered to the interactive user.
type Interactive struct {
	DefaultPrompt     string `yaml:"default_prompt"`
	TopicSizeChars    int    `yaml:"topic_size_chars"`
	ContextTopicCount int    `yaml:"context_topic_count"`
	OutputSizeChars   int    `yaml:"output_size_chars"`
}

// Batch holds batch mode I/O settings.
type Batch struct {
	Section string `yaml:"section"`
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := footprint.DefaultParams()
	return &Config{
		Constants:  footprint.DefaultConstants(),
		Simulation: p,
		Interactive: Interactive{
			DefaultPrompt:     DefaultPrompt,
			TopicSizeChars:    p.TopicSizeChars,
			ContextTopicCount: p.ContextTopicCount,
			OutputSizeChars:   p.OutputSizeChars,
		},
		UnknownProfiles: footprint.UnknownZero.String(),
		Batch: Batch{
			Section: usage.DefaultSection,
			Input:   "data/daily-analytics.yaml",
			Output:  "output/footprint_report.csv",
		},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := cfg.decode(f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// UnknownPolicy parses UnknownProfiles.
func (c *Config) UnknownPolicy() (footprint.UnknownPolicy, error) {
	return footprint.ParseUnknownPolicy(c.UnknownProfiles)
}

// InteractiveParams returns the simulation params for one interactive round
// before the user's prompt length is known.
func (c *Config) InteractiveParams() footprint.Params {
	return footprint.Params{
		TopicSizeChars:    c.Interactive.TopicSizeChars,
		OutputSizeChars:   c.Interactive.OutputSizeChars,
		ContextTopicCount: c.Interactive.ContextTopicCount,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Constants.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateParams("simulation", c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Interactive.TopicSizeChars < 0 || c.Interactive.ContextTopicCount < 0 || c.Interactive.OutputSizeChars < 0 {
		errs = append(errs, "interactive sizes must be >= 0")
	}
	if _, err := c.UnknownPolicy(); err != nil {
		errs = append(errs, err.Error())
	}
	if strings.TrimSpace(c.Batch.Section) == "" {
		errs = append(errs, "batch.section must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errs, "; "))
	}
	return nil
}

func validateParams(name string, p footprint.Params) error {
	if p.TopicSizeChars < 0 || p.PromptSizeChars < 0 || p.OutputSizeChars < 0 || p.ContextTopicCount < 0 {
		return fmt.Errorf("%s sizes must be >= 0", name)
	}
	return nil
}
