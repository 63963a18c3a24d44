package footprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"chatbots", Chatbot},
		{"ChatBot_sessions", Chatbot},
		{"completions", Completion},
		{"COMPLETION", Completion},
		{"translations", Translation},
		{"nmt", Translation},
		{"NMT-requests", Translation},
		{"", Unknown},
		{"description", Unknown},
		{"search", Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.in))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	assert.Equal(t, Chatbot, Classify("chatbot-completion-translation"))
	assert.Equal(t, Chatbot, Classify("translation_of_chatbot"))
	assert.Equal(t, Completion, Classify("nmt completion"))
	assert.Equal(t, Translation, Classify("nmt translation"))
}

func TestClassify_CaseInvariantAndIdempotent(t *testing.T) {
	for _, label := range []string{"Chatbots", "completionS", "Translations", "Nmt", "weird"} {
		c := Classify(label)
		assert.Equal(t, c, Classify(strings.ToUpper(label)))
		assert.Equal(t, c, Classify(strings.ToLower(label)))
		// classifying a category's own name maps back to it
		if c != Unknown {
			assert.Equal(t, c, Classify(c.String()))
		}
	}
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "chatbot", Chatbot.String())
	assert.Equal(t, "completion", Completion.String())
	assert.Equal(t, "translation", Translation.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "unknown", Category(99).String())

	b, err := Translation.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "translation", string(b))
}

func TestEstimateVolume(t *testing.T) {
	p := Params{TopicSizeChars: 3000, PromptSizeChars: 500, OutputSizeChars: 350, ContextTopicCount: 3}

	in, out := EstimateVolume(Chatbot, p)
	assert.Equal(t, 9500.0, in)
	assert.Equal(t, 350.0, out)

	in, out = EstimateVolume(Completion, p)
	assert.Equal(t, 3500.0, in)
	assert.Equal(t, 350.0, out)

	in, out = EstimateVolume(Translation, p)
	assert.Equal(t, 3000.0, in)
	assert.Equal(t, 3000.0, out)

	in, out = EstimateVolume(Unknown, p)
	assert.Zero(t, in)
	assert.Zero(t, out)
}
