package site

import (
	"reflect"
	"sort"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/theme"
	"github.com/thoreinstein/docsite/internal/validator"
)

var validate = newStructValidator()

func newStructValidator() *playground.Validate {
	v := playground.New()
	// Report locations by their YAML names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks field formats, the locale table, search options, and the
// theme. It does not build navigation trees; see Build.
func Validate(s *Site) *validator.Result {
	result := &validator.Result{}

	for _, k := range s.unknown {
		result.AddWarning(k, "unknown key is ignored", nil)
	}
	if s.IgnoreDeadLinks {
		result.AddWarning("ignoreDeadLinks", "ignoreDeadLinks has no effect; list exceptions in linkCheck.ignore instead", true)
	}

	structIssues(result, s)

	for _, key := range sortedLocaleKeys(s.Locales) {
		l := s.Locales[key]
		if key != RootLocale && l.Link != "" && l.Link != "/"+key+"/" {
			result.Add(validator.Issue{
				Severity: validator.SeverityWarning,
				Location: "locales." + key + ".link",
				Message:  "locale link does not match its key",
				Value:    l.Link,
				Context:  map[string]string{"expected": "/" + key + "/"},
			})
		}
	}

	checkOutline(result, "themeConfig.", &s.ThemeConfig)
	for _, key := range sortedLocaleKeys(s.Locales) {
		if tc := s.Locales[key].ThemeConfig; tc != nil {
			checkOutline(result, "locales."+key+".themeConfig.", tc)
		}
	}

	if s.Search != nil && s.Search.Provider == "algolia" {
		for _, opt := range []string{"appId", "apiKey", "indexName"} {
			if v, ok := s.Search.Options[opt].(string); !ok || v == "" {
				result.AddError("search.options."+opt, "algolia search requires "+opt, nil)
			}
		}
	}

	result.Merge(theme.Validate(s.Theme, "theme."))
	return result
}

func structIssues(result *validator.Result, s *Site) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		result.AddError("", err.Error(), nil)
		return
	}
	issues := make([]validator.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issue := validator.Issue{
			Severity: validator.SeverityError,
			Location: strings.TrimPrefix(fe.Namespace(), "Site."),
			Message:  tagMessage(fe),
		}
		if fe.Tag() != "required" {
			issue.Value = fe.Value()
		}
		issues = append(issues, issue)
	}
	// Map dives report in iteration order.
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Location < issues[j].Location })
	for _, i := range issues {
		result.Add(i)
	}
}

func tagMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be an absolute URL"
	case "hexcolor":
		return "must be a hex color"
	case "bcp47_language_tag":
		return "must be a BCP 47 language tag such as en-US"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "startswith":
		return "must start with " + fe.Param()
	case "endswith":
		return "must end with " + fe.Param()
	case "contains":
		return "must contain " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func checkOutline(result *validator.Result, prefix string, tc *ThemeConfig) {
	if tc.Outline == nil || tc.Outline.Level.IsZero() {
		return
	}
	if !tc.Outline.Level.Valid() {
		result.AddError(prefix+"outline.level", "outline levels must lie within 1 to 6, from <= to", tc.Outline.Level.value())
	}
}

func sortedLocaleKeys(m map[string]Locale) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
