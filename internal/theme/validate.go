package theme

import (
	"slices"
	"strconv"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/validator"
)

var validate = playground.New()

// WebFont is a parsed "Family:400,700" spec.
type WebFont struct {
	Family  string
	Weights []int
}

// ParseWebFont parses a web font spec. Weights are optional; a bare family
// name loads the default weight.
func ParseWebFont(spec string) (WebFont, error) {
	family, weights, hasWeights := strings.Cut(spec, ":")
	wf := WebFont{Family: strings.TrimSpace(family)}
	if wf.Family == "" {
		return wf, errors.New("font family is required")
	}
	if !hasWeights {
		return wf, nil
	}
	for _, w := range strings.Split(weights, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(w))
		if err != nil {
			return wf, errors.Newf("weight %q is not a number", w)
		}
		if n < 1 || n > 1000 {
			return wf, errors.Newf("weight %d is out of range 1-1000", n)
		}
		wf.Weights = append(wf.Weights, n)
	}
	return wf, nil
}

// Validate checks preset and transformer names, color values, and web font
// specs. prefix is prepended to every issue location.
func Validate(t *Theme, prefix string) *validator.Result {
	result := &validator.Result{}
	if t == nil {
		return result
	}

	names := make([]string, len(t.Presets))
	for i, p := range t.Presets {
		names[i] = p.Name
	}
	checkNames(result, prefix+"presets", "preset", names, Presets)
	checkNames(result, prefix+"transformers", "transformer", t.Transformers, Transformers)

	for _, cv := range t.colorValues() {
		if err := validate.Var(cv.value, "required,hexcolor"); err != nil {
			result.AddError(prefix+"colors."+cv.path, "color must be a hex value (#rgb, #rrggbb or #rrggbbaa)", cv.value)
		}
	}

	for _, group := range []struct {
		field  string
		tokens map[string]string
	}{
		{"fontFamily", t.FontFamily},
		{"boxShadow", t.BoxShadow},
		{"maxWidth", t.MaxWidth},
	} {
		for _, name := range sortedKeys(group.tokens) {
			if strings.TrimSpace(group.tokens[name]) == "" {
				result.AddError(prefix+group.field+"."+name, "token value is required", nil)
			}
		}
	}

	for _, alias := range sortedKeys(t.WebFonts) {
		if _, err := ParseWebFont(t.WebFonts[alias]); err != nil {
			result.AddError(prefix+"webFonts."+alias, "invalid web font: "+err.Error(), t.WebFonts[alias])
		}
	}
	if len(t.WebFonts) > 0 && !t.HasPreset("webFonts") {
		result.AddWarning(prefix+"webFonts", "web fonts are declared but the webFonts preset is not registered", nil)
	}

	return result
}

func checkNames(result *validator.Result, base, kind string, names, known []string) {
	seen := make(map[string]string, len(names))
	for i, name := range names {
		loc := base + "[" + strconv.Itoa(i) + "]"
		switch {
		case name == "":
			result.AddError(loc, kind+" name is required", nil)
			continue
		case !slices.Contains(known, name):
			result.Add(validator.Issue{
				Severity: validator.SeverityError,
				Location: loc,
				Message:  "unknown " + kind,
				Value:    name,
				Context:  map[string]string{"known": strings.Join(known, ", ")},
			})
			continue
		}
		if first, dup := seen[name]; dup {
			result.Add(validator.Issue{
				Severity: validator.SeverityWarning,
				Location: loc,
				Message:  kind + " registered more than once",
				Value:    name,
				Context:  map[string]string{"first": first},
			})
			continue
		}
		seen[name] = loc
	}
}
