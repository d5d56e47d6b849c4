package site

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/docsite/internal/errors"
)

// DefaultOutlineLevel is the heading level shown when none is configured.
const DefaultOutlineLevel = 2

// OutlineLevel is the range of heading levels in the outline. It is
// authored as a single level (2), a range ([2, 3]), or "deep" (2 through 6).
type OutlineLevel struct {
	From int
	To   int
	Deep bool
}

// IsZero reports whether no level was set.
func (l OutlineLevel) IsZero() bool {
	return l == OutlineLevel{}
}

// UnmarshalYAML accepts all three forms.
func (l *OutlineLevel) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "deep" {
			*l = OutlineLevel{From: 2, To: 6, Deep: true}
			return nil
		}
		var n int
		if err := node.Decode(&n); err != nil {
			return errors.Newf("line %d: outline level must be a number, a [from, to] pair, or \"deep\"", node.Line)
		}
		*l = OutlineLevel{From: n, To: n}
		return nil
	case yaml.SequenceNode:
		var pair []int
		if err := node.Decode(&pair); err != nil || len(pair) != 2 {
			return errors.Newf("line %d: outline level range must be [from, to]", node.Line)
		}
		*l = OutlineLevel{From: pair[0], To: pair[1]}
		return nil
	default:
		return errors.Newf("line %d: outline level must be a number, a [from, to] pair, or \"deep\"", node.Line)
	}
}

func (l OutlineLevel) value() any {
	switch {
	case l.Deep:
		return "deep"
	case l.From == l.To:
		return l.From
	default:
		return []int{l.From, l.To}
	}
}

// MarshalYAML encodes the authored form.
func (l OutlineLevel) MarshalYAML() (any, error) {
	return l.value(), nil
}

// MarshalJSON encodes the authored form.
func (l OutlineLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.value())
}

// Valid reports whether the range lies within h1 to h6.
func (l OutlineLevel) Valid() bool {
	return l.From >= 1 && l.From <= l.To && l.To <= 6
}
