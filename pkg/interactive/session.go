// Package interactive implements the single-prompt console estimator.
//
// Each round is independent: the user's prompt and context overrides are
// read, one chatbot request is costed and a breakdown is printed. Only the
// decision to continue survives between rounds. End of input is treated as
// the user declining to continue.
package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
	"github.com/ja7ad/genai-footprint/pkg/util"
)

const (
	previewRunes = 50
	affirmative  = "y"
)

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 60)
)

// Defaults are the values used when the user leaves an answer blank.
type Defaults struct {
	Prompt            string
	TopicSizeChars    int
	ContextTopicCount int
	OutputSizeChars   int
}

// Session runs estimation rounds against a console.
type Session struct {
	in  *bufio.Reader
	out io.Writer
	eng *footprint.Engine
	d   Defaults
	log zerolog.Logger
}

// NewSession creates a session reading answers from in and writing to out.
func NewSession(in io.Reader, out io.Writer, eng *footprint.Engine, d Defaults, log zerolog.Logger) *Session {
	return &Session{in: bufio.NewReader(in), out: out, eng: eng, d: d, log: log}
}

// Run loops over rounds until the user declines, input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		more, err := s.Round()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Estimate is the outcome of one round.
type Estimate struct {
	Prompt       string
	PromptChars  int
	Docs         int
	ContextChars int64
	Result       footprint.Result
}

// Round runs one estimation round and reports whether to run another.
func (s *Session) Round() (bool, error) {
	fmt.Fprintf(s.out, "\n%s\nINTERACTIVE DEMO: ANALYSE YOUR PROMPT\n%s\n", heavyRule, heavyRule)
	fmt.Fprint(s.out, "\nType your question (prompt) below:\n> ")

	prompt, ok, err := s.readLine()
	if err != nil || !ok {
		return false, err
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = s.d.Prompt
		fmt.Fprintf(s.out, "   (no input, using default prompt: %q)\n", prompt)
	}

	topic, docs, err := s.readContext()
	if err != nil {
		return false, err
	}

	est := s.estimate(prompt, topic, docs)
	s.print(est)

	fmt.Fprint(s.out, "Run another estimate? (y/n) : ")
	again, ok, err := s.readLine()
	if err != nil || !ok {
		return false, err
	}
	// "y" or "Y" only; "yes" and blank stop
	return strings.ToLower(again) == affirmative, nil
}

// readContext asks for the topic size and document count. Blank answers
// keep the defaults; an invalid answer resets both to the defaults.
func (s *Session) readContext() (topic, docs int, err error) {
	topic, docs = s.d.TopicSizeChars, s.d.ContextTopicCount

	fmt.Fprintln(s.out, "\nDocument context (press Enter for defaults):")
	fmt.Fprintf(s.out, "   - Average document size (default %d chars) : ", topic)
	line, ok, err := s.readLine()
	if err != nil || !ok {
		return topic, docs, err
	}
	t, valid := parseOverride(line, s.d.TopicSizeChars)
	if !valid {
		s.invalid(line)
		return s.d.TopicSizeChars, s.d.ContextTopicCount, nil
	}

	fmt.Fprintf(s.out, "   - Documents read by the AI (default %d) : ", docs)
	line, ok, err = s.readLine()
	if err != nil || !ok {
		return t, docs, err
	}
	n, valid := parseOverride(line, s.d.ContextTopicCount)
	if !valid {
		s.invalid(line)
		return s.d.TopicSizeChars, s.d.ContextTopicCount, nil
	}
	return t, n, nil
}

func (s *Session) invalid(line string) {
	s.log.Warn().Str("input", line).Msg("invalid number, using defaults")
	fmt.Fprintln(s.out, "   ! Invalid input, using default values.")
}

func (s *Session) estimate(prompt string, topic, docs int) Estimate {
	promptChars := utf8.RuneCountInString(prompt)
	p := footprint.Params{
		TopicSizeChars:    topic,
		PromptSizeChars:   promptChars,
		OutputSizeChars:   s.d.OutputSizeChars,
		ContextTopicCount: docs,
	}
	res := s.eng.EstimateInteractive(p)

	s.log.Debug().
		Int("prompt_chars", promptChars).
		Int("docs", docs).
		Int("topic_chars", topic).
		Float64("energy_dynamic_kwh", res.EnergyDynamic).
		Float64("energy_static_kwh", res.EnergyStatic).
		Msg("interactive estimate")

	return Estimate{
		Prompt:       prompt,
		PromptChars:  promptChars,
		Docs:         docs,
		ContextChars: int64(docs) * int64(topic),
		Result:       res,
	}
}

func (s *Session) print(e Estimate) {
	w := s.out
	fmt.Fprintf(w, "\n%s\nRESULTS FOR: \"%s...\"\n%s\n", lightRule, preview(e.Prompt), lightRule)

	fmt.Fprintln(w, "1) WHAT YOU WROTE:")
	fmt.Fprintf(w, "    Prompt size            : %d characters\n", e.PromptChars)

	fmt.Fprintln(w, "\n2) WHAT THE AI READ (INVISIBLE):")
	fmt.Fprintf(w, "    Documents consulted    : %d docs\n", e.Docs)
	fmt.Fprintf(w, "    Document volume        : %d characters\n", e.ContextChars)
	if ratio, ok := util.FloorRatio(e.ContextChars, int64(e.PromptChars)); ok {
		fmt.Fprintf(w, "    -> The AI read %d× more text than you wrote!\n", ratio)
	} else {
		fmt.Fprintln(w, "    -> The AI read N/A× more text than you wrote (empty prompt)")
	}

	fmt.Fprintln(w, "\n3) PHYSICAL IMPACT:")
	fmt.Fprintf(w, "    Total volume processed : %.0f tokens\n", e.Result.SimulatedTokens)
	fmt.Fprintf(w, "    Energy consumed        : %.6f kWh\n", e.Result.EnergyKWh)
	fmt.Fprintf(w, "    Carbon footprint       : %.4f gCO2e\n", e.Result.CarbonG)
	fmt.Fprintf(w, "%s\n\n", heavyRule)
}

// readLine returns the next line without its terminator. ok is false at
// end of input when nothing was read.
func (s *Session) readLine() (line string, ok bool, err error) {
	line, err = s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if line == "" {
			return "", false, nil
		}
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// parseOverride returns def for a blank answer. Negative numbers are
// rejected along with non-integers.
func parseOverride(line string, def int) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return def, true
	}
	v, err := strconv.Atoi(line)
	if err != nil || v < 0 {
		return def, false
	}
	return v, true
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewRunes {
		return s
	}
	return string([]rune(s)[:previewRunes])
}
