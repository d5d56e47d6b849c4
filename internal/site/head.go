package site

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/docsite/internal/errors"
)

// HeadTag is an element injected into every page's <head>, authored as
// [tag, attributes] or [tag, attributes, content].
type HeadTag struct {
	Tag     string            `validate:"oneof=meta link script style base noscript"`
	Attrs   map[string]string
	Content string
}

// UnmarshalYAML decodes the list form.
func (h *HeadTag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 || len(node.Content) > 3 {
		return errors.Newf("line %d: head entry must be [tag, attributes] or [tag, attributes, content]", node.Line)
	}
	if err := node.Content[0].Decode(&h.Tag); err != nil {
		return err
	}
	if len(node.Content) > 1 {
		if err := node.Content[1].Decode(&h.Attrs); err != nil {
			return err
		}
	}
	if len(node.Content) > 2 {
		if err := node.Content[2].Decode(&h.Content); err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML encodes the list form.
func (h HeadTag) MarshalYAML() (any, error) {
	return h.list(), nil
}

// MarshalJSON encodes the list form.
func (h HeadTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.list())
}

func (h HeadTag) list() []any {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	out := []any{h.Tag, attrs}
	if h.Content != "" {
		out = append(out, h.Content)
	}
	return out
}
