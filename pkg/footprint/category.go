package footprint

import "strings"

// Category is the closed set of usage profiles the engine knows how to cost.
type Category int

const (
	Unknown Category = iota
	Chatbot
	Completion
	Translation
)

var categoryNames = [...]string{
	Unknown:     "unknown",
	Chatbot:     "chatbot",
	Completion:  "completion",
	Translation: "translation",
}

func (c Category) String() string {
	if c < Unknown || c > Translation {
		return categoryNames[Unknown]
	}
	return categoryNames[c]
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Generative reports whether the category is costed with the token + latency model.
func (c Category) Generative() bool { return c != Translation }

// Classify maps a free-form profile label to a Category.
//
// Matching is a case-insensitive substring test in fixed priority order:
// chatbot, then completion, then translation or nmt. The first match wins.
func Classify(label string) Category {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "chatbot"):
		return Chatbot
	case strings.Contains(l, "completion"):
		return Completion
	case strings.Contains(l, "translation"), strings.Contains(l, "nmt"):
		return Translation
	default:
		return Unknown
	}
}
