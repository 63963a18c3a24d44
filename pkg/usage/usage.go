package usage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/genai-footprint/pkg/footprint"
)

// DefaultSection is the top-level key grouping usage profiles.
const DefaultSection = "genai"

// Group is one usage profile and its time series, in document order.
type Group struct {
	Name    string
	Records []footprint.UsageRecord
}

// Dataset is a parsed usage document.
type Dataset struct {
	Section string
	// Found is false when the grouping key is absent; Groups is then empty.
	Found  bool
	Groups []Group
	// Skipped lists keys under Section whose value is not a sequence.
	Skipped []string
}

// Load opens path and parses it with Parse.
func Load(path, section string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Parse(f, section)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a usage document of the form
//
//	<section>:
//	  <profile>:
//	    - {date: 2025-01-01, count: 12}
//
// A missing section is not an error: the returned Dataset has Found == false.
// Values under the section that are not sequences are skipped as metadata.
func Parse(r io.Reader, section string) (*Dataset, error) {
	if section == "" {
		section = DefaultSection
	}
	ds := &Dataset{Section: section}

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return ds, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(doc.Content) == 0 {
		return ds, nil
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return ds, nil
	}

	sec := lookup(root, section)
	if sec == nil {
		return ds, nil
	}
	ds.Found = true

	sec = resolve(sec)
	switch sec.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if sec.Tag == "!!null" {
			return ds, nil
		}
		fallthrough
	default:
		return nil, fmt.Errorf("%w: line %d: %q must map profile names to entries", ErrInvalidEntry, sec.Line, section)
	}

	for i := 0; i+1 < len(sec.Content); i += 2 {
		name := sec.Content[i].Value
		val := resolve(sec.Content[i+1])
		if val.Kind != yaml.SequenceNode {
			ds.Skipped = append(ds.Skipped, name)
			continue
		}

		g := Group{Name: name, Records: make([]footprint.UsageRecord, 0, len(val.Content))}
		for _, item := range val.Content {
			rec, err := decodeEntry(name, resolve(item))
			if err != nil {
				return nil, err
			}
			g.Records = append(g.Records, rec)
		}
		ds.Groups = append(ds.Groups, g)
	}

	return ds, nil
}

func decodeEntry(profile string, n *yaml.Node) (footprint.UsageRecord, error) {
	rec := footprint.UsageRecord{ProfileType: profile}
	if n.Kind != yaml.MappingNode {
		return rec, fmt.Errorf("%w: line %d: %s entry must be a mapping", ErrInvalidEntry, n.Line, profile)
	}

	if d := lookup(n, "date"); d != nil {
		d = resolve(d)
		if d.Tag != "!!null" {
			rec.Date = d.Value
		}
	}

	if c := lookup(n, "count"); c != nil {
		c = resolve(c)
		if c.Tag != "!!null" {
			// yaml.v3 would truncate a float scalar into an int
			if c.Tag != "!!int" {
				return rec, fmt.Errorf("%w: line %d: %s count %q is not an integer", ErrInvalidEntry, c.Line, profile, c.Value)
			}
			if err := c.Decode(&rec.Count); err != nil {
				return rec, fmt.Errorf("%w: line %d: %s count %q is not an integer", ErrInvalidEntry, c.Line, profile, c.Value)
			}
		}
	}
	if rec.Count < 0 {
		return rec, fmt.Errorf("%w: line %d: %s count %d is negative", ErrInvalidEntry, n.Line, profile, rec.Count)
	}

	return rec, nil
}

// lookup returns the value node for key in mapping m, or nil.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return resolve(n.Content[0])
	}
	return n
}
