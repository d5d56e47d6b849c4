package site

import (
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/thoreinstein/docsite/internal/validator"
)

// Defaults filled in by Normalize.
const (
	DefaultSrcDir         = "."
	DefaultLang           = "en-US"
	DefaultSearchProvider = "local"
)

func newFooterPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	// Footer links are not user content.
	policy.RequireNoFollowOnLinks(false)
	return policy
}

// Normalize fills defaults in place and sanitizes footer HTML. A footer value
// changed by sanitizing is reported as a warning.
func Normalize(s *Site) *validator.Result {
	result := &validator.Result{}
	policy := newFooterPolicy()

	if s.SrcDir == "" {
		s.SrcDir = DefaultSrcDir
	}
	if s.Lang == "" {
		s.Lang = DefaultLang
	}
	if s.Search == nil {
		s.Search = &Search{}
	}
	if s.Search.Provider == "" {
		s.Search.Provider = DefaultSearchProvider
	}

	normalizeThemeConfig(result, policy, "themeConfig.", &s.ThemeConfig)
	for _, key := range sortedLocaleKeys(s.Locales) {
		l := s.Locales[key]
		if l.ThemeConfig != nil {
			normalizeThemeConfig(result, policy, "locales."+key+".themeConfig.", l.ThemeConfig)
		}
	}
	return result
}

func normalizeThemeConfig(result *validator.Result, policy *bluemonday.Policy, prefix string, tc *ThemeConfig) {
	if tc.Outline == nil {
		tc.Outline = &Outline{}
	}
	if tc.Outline.Level.IsZero() {
		tc.Outline.Level = OutlineLevel{From: DefaultOutlineLevel, To: DefaultOutlineLevel}
	}

	if tc.Footer != nil {
		tc.Footer.Message = sanitize(result, policy, prefix+"footer.message", tc.Footer.Message)
		tc.Footer.Copyright = sanitize(result, policy, prefix+"footer.copyright", tc.Footer.Copyright)
	}
}

// sanitize returns the cleaned value. Entity-only differences, such as "&"
// becoming "&amp;", keep the authored text.
func sanitize(result *validator.Result, policy *bluemonday.Policy, loc, value string) string {
	if value == "" {
		return value
	}
	clean := policy.Sanitize(value)
	if html.UnescapeString(clean) == html.UnescapeString(value) {
		return value
	}
	result.Add(validator.Issue{
		Severity: validator.SeverityWarning,
		Location: loc,
		Message:  "unsafe HTML removed",
		Value:    value,
		Context:  map[string]string{"sanitized": clean},
	})
	return clean
}
