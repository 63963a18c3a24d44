package usage

import "errors"

var (
	// ErrParse indicates that the document is not valid YAML.
	ErrParse = errors.New("usage: malformed document")

	// ErrInvalidEntry indicates a usage entry that is not a {date, count}
	// mapping or whose count is not a non-negative integer.
	ErrInvalidEntry = errors.New("usage: invalid entry")
)
