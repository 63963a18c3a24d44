package interactive

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
)

func defaults() Defaults {
	return Defaults{Prompt: "What is my carbon footprint?", TopicSizeChars: 3000, ContextTopicCount: 3, OutputSizeChars: 350}
}

func run(t *testing.T, input string) (string, *bytes.Buffer) {
	t.Helper()
	var out, logs bytes.Buffer
	s := NewSession(strings.NewReader(input), &out, footprint.New(nil), defaults(), zerolog.New(&logs))
	require.NoError(t, s.Run(context.Background()))
	return out.String(), &logs
}

func TestSession_SingleRoundDefaults(t *testing.T) {
	prompt := strings.Repeat("a", 500)
	out, _ := run(t, prompt+"\n\n\nn\n")

	assert.Contains(t, out, "Prompt size            : 500 characters")
	assert.Contains(t, out, "Documents consulted    : 3 docs")
	assert.Contains(t, out, "Document volume        : 9000 characters")
	assert.Contains(t, out, "The AI read 18× more text")
	assert.Contains(t, out, "Total volume processed : 2462 tokens")
	assert.Contains(t, out, "Energy consumed        : 0.001940 kWh")
	assert.Contains(t, out, "Carbon footprint       : 0.9213 gCO2e")
	assert.Contains(t, out, `RESULTS FOR: "`+strings.Repeat("a", 50)+`..."`)
	assert.Equal(t, 1, strings.Count(out, "INTERACTIVE DEMO"))
}

func TestSession_BlankPromptUsesDefault(t *testing.T) {
	out, _ := run(t, "\n\n\nn\n")
	assert.Contains(t, out, `using default prompt: "What is my carbon footprint?"`)
	assert.Contains(t, out, "Prompt size            : 28 characters")
	assert.Contains(t, out, "The AI read 321× more text")
}

func TestSession_Overrides(t *testing.T) {
	out, _ := run(t, "hello\n1000\n5\nno\n")
	assert.Contains(t, out, "Prompt size            : 5 characters")
	assert.Contains(t, out, "Documents consulted    : 5 docs")
	assert.Contains(t, out, "Document volume        : 5000 characters")
	assert.Contains(t, out, "The AI read 1000× more text")
}

func TestSession_InvalidOverrideResetsBoth(t *testing.T) {
	// the document count question is skipped once the topic size is invalid
	out, logs := run(t, "hello\nlots\nn\n")
	assert.Contains(t, out, "Invalid input, using default values.")
	assert.NotContains(t, out, "Documents read by the AI")
	assert.Contains(t, out, "Document volume        : 9000 characters")
	assert.Contains(t, logs.String(), "invalid number")

	out, _ = run(t, "hello\n1000\nthree\nn\n")
	assert.Contains(t, out, "Invalid input, using default values.")
	assert.Contains(t, out, "Documents consulted    : 3 docs")
	assert.Contains(t, out, "Document volume        : 9000 characters", "valid topic override is discarded too")

	out, _ = run(t, "hello\n-10\nn\n")
	assert.Contains(t, out, "Invalid input, using default values.")
}

func TestSession_LoopsOnlyOnAffirmative(t *testing.T) {
	out, _ := run(t, "one\n\n\ny\ntwo\n\n\nY\nthree\n\n\nyes\nfour\n\n\ny\n")
	assert.Equal(t, 3, strings.Count(out, "INTERACTIVE DEMO"), "y and Y continue, yes stops")
	assert.NotContains(t, out, `RESULTS FOR: "four...`)
}

func TestSession_EndOfInput(t *testing.T) {
	out, _ := run(t, "")
	assert.Equal(t, 1, strings.Count(out, "INTERACTIVE DEMO"))
	assert.NotContains(t, out, "RESULTS FOR")

	// input ending mid-round still completes the round with defaults
	out, _ = run(t, "partial prompt")
	assert.Contains(t, out, "Prompt size            : 14 characters")
	assert.Contains(t, out, "Document volume        : 9000 characters")
	assert.Equal(t, 1, strings.Count(out, "RESULTS FOR"))
}

func TestSession_EmptyPromptRatioGuarded(t *testing.T) {
	var out bytes.Buffer
	d := defaults()
	d.Prompt = ""
	s := NewSession(strings.NewReader("\n\n\nn\n"), &out, footprint.New(nil), d, zerolog.Nop())

	more, err := s.Round()
	require.NoError(t, err)
	assert.False(t, more)
	assert.Contains(t, out.String(), "N/A")
	assert.Contains(t, out.String(), "Prompt size            : 0 characters")
}

func TestSession_CancelledContext(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(strings.NewReader("hello\n\n\ny\n"), &out, footprint.New(nil), defaults(), zerolog.Nop())
	require.NoError(t, s.Run(ctx))
	assert.Empty(t, out.String())
}

func TestSession_UnicodePromptCountsRunes(t *testing.T) {
	out, _ := run(t, "Quelle est mon empreinte carbone ?\n\n\nn\n")
	assert.Contains(t, out, "Prompt size            : 34 characters")

	out, _ = run(t, "émissions\n\n\nn\n")
	assert.Contains(t, out, "Prompt size            : 9 characters")
}

func TestParseOverride(t *testing.T) {
	v, ok := parseOverride("  ", 7)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	v, ok = parseOverride(" 42 ", 7)
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = parseOverride("4.2", 7)
	assert.False(t, ok)
	_, ok = parseOverride("-1", 7)
	assert.False(t, ok)
}
