package footprint

// EstimateVolume returns the simulated input and output characters of a single
// request of the given category.
//
//	Chatbot:     in = context_topics*topic + prompt, out = output
//	Completion:  in = topic + prompt,               out = output
//	Translation: in = topic,                        out = topic
//	Unknown:     in = out = 0
func EstimateVolume(cat Category, p Params) (input, output float64) {
	topic := float64(p.TopicSizeChars)
	prompt := float64(p.PromptSizeChars)
	out := float64(p.OutputSizeChars)

	switch cat {
	case Chatbot:
		return float64(p.ContextTopicCount)*topic + prompt, out
	case Completion:
		return topic + prompt, out
	case Translation:
		return topic, topic
	default:
		return 0, 0
	}
}
