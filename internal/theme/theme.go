package theme

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/translate"
)

// Known preset names.
var Presets = []string{"uno", "attributify", "icons", "typography", "webFonts", "wind", "mini"}

// Known transformer names.
var Transformers = []string{"directives", "variantGroup", "compileClass"}

// Theme is the utility-CSS configuration.
type Theme struct {
	FontFamily   map[string]string `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	BoxShadow    map[string]string `yaml:"boxShadow,omitempty" json:"boxShadow,omitempty"`
	Colors       map[string]Color  `yaml:"colors,omitempty" json:"colors,omitempty"`
	MaxWidth     map[string]string `yaml:"maxWidth,omitempty" json:"maxWidth,omitempty"`
	Presets      []Preset          `yaml:"presets,omitempty" json:"presets,omitempty"`
	Transformers []string          `yaml:"transformers,omitempty" json:"transformers,omitempty"`
	// WebFonts maps a font alias to a "Family:400,700" spec.
	WebFonts map[string]string `yaml:"webFonts,omitempty" json:"webFonts,omitempty"`
}

// Preset is a registered preset with its options. In YAML a bare string is
// shorthand for a preset without options.
type Preset struct {
	Name    string         `yaml:"name" json:"name"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// UnmarshalYAML accepts "name" or {name, options}.
func (p *Preset) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Name = node.Value
		return nil
	}
	type plain Preset
	return node.Decode((*plain)(p))
}

// Color is either a single value or a shade scale such as
// {DEFAULT: "#1772d0", "50": "#e8f1fb"}.
type Color struct {
	Value  string
	Shades map[string]string
}

// UnmarshalYAML accepts a scalar or a mapping of shades.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c.Value = node.Value
		return nil
	case yaml.MappingNode:
		return node.Decode(&c.Shades)
	default:
		return errors.Newf("line %d: color must be a string or a map of shades", node.Line)
	}
}

// MarshalYAML writes whichever form is populated.
func (c Color) MarshalYAML() (any, error) {
	if c.Shades != nil {
		return c.Shades, nil
	}
	return c.Value, nil
}

// MarshalJSON writes whichever form is populated.
func (c Color) MarshalJSON() ([]byte, error) {
	if c.Shades != nil {
		return json.Marshal(c.Shades)
	}
	return json.Marshal(c.Value)
}

// colorValues flattens the palette into token paths such as "brand" or
// "brand.50", sorted.
func (t *Theme) colorValues() []colorValue {
	names := sortedKeys(t.Colors)
	var out []colorValue
	for _, name := range names {
		c := t.Colors[name]
		if c.Shades == nil {
			out = append(out, colorValue{path: name, value: c.Value})
			continue
		}
		for _, shade := range sortedKeys(c.Shades) {
			out = append(out, colorValue{path: name + "." + shade, value: c.Shades[shade]})
		}
	}
	return out
}

type colorValue struct {
	path  string
	value string
}

// HasPreset reports whether a preset with name is registered.
func (t *Theme) HasPreset(name string) bool {
	for _, p := range t.Presets {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Load reads a theme from a YAML or TOML file.
func Load(path string) (*Theme, error) {
	var t Theme
	if err := translate.DecodeFile(path, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
