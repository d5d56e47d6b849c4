package site

import (
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/docsite/internal/translate"
	"github.com/thoreinstein/docsite/internal/validator"
)

func parseSite(t *testing.T, src string) *Site {
	t.Helper()
	s, err := Parse(translate.FormatYAML, []byte(dedent.Dedent(src)))
	require.NoError(t, err)
	return s
}

func issueLines(issues []validator.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Location+": "+i.Message)
	}
	return out
}

func TestValidate_Fixture(t *testing.T) {
	s, err := Load("testdata/site.yaml")
	require.NoError(t, err)
	assert.Empty(t, Validate(s).Issues)
}

func TestValidate_StructErrors(t *testing.T) {
	s := parseSite(t, `
		lang: not a tag
		base: docs
		head:
		  - [iframe, {src: "https://example.com"}]
		locales:
		  fr:
		    lang: fr-FR
		themeConfig:
		  socialLinks:
		    - icon: github
		      link: github.com/example
		  editLink:
		    pattern: https://github.com/example/edit/main
		pwa:
		  name: Notes
		  theme_color: blue
	`)

	result := Validate(s)
	assert.Equal(t, []string{
		"base: must start with /",
		"head[0].Tag: must be one of: meta, link, script, style, base, noscript",
		"lang: must be a BCP 47 language tag such as en-US",
		"locales[fr].label: is required",
		"pwa.theme_color: must be a hex color",
		"themeConfig.editLink.pattern: must contain :path",
		"themeConfig.socialLinks[0].link: must be an absolute URL",
		"title: is required",
	}, issueLines(result.Errors()))

	for _, i := range result.Errors() {
		if i.Location == "title" {
			assert.Nil(t, i.Value)
		}
		if i.Location == "pwa.theme_color" {
			assert.Equal(t, "blue", i.Value)
		}
	}
}

func TestValidate_LocaleLinkMismatch(t *testing.T) {
	s := parseSite(t, `
		title: Notes
		locales:
		  zh:
		    label: 中文
		    link: /cn/
	`)
	result := Validate(s)
	assert.False(t, result.HasErrors())
	require.Len(t, result.Warnings(), 1)
	assert.Equal(t, "locales.zh.link", result.Warnings()[0].Location)
	assert.Equal(t, "/zh/", result.Warnings()[0].Context["expected"])
}

func TestValidate_OutlineRange(t *testing.T) {
	s := parseSite(t, `
		title: Notes
		themeConfig:
		  outline:
		    level: [4, 2]
		locales:
		  zh:
		    label: 中文
		    themeConfig:
		      outline:
		        level: 7
	`)
	assert.Equal(t, []string{
		"themeConfig.outline.level: outline levels must lie within 1 to 6, from <= to",
		"locales.zh.themeConfig.outline.level: outline levels must lie within 1 to 6, from <= to",
	}, issueLines(Validate(s).Errors()))
}

func TestValidate_AlgoliaOptions(t *testing.T) {
	s := parseSite(t, `
		title: Notes
		search:
		  provider: algolia
		  options:
		    appId: ABC
	`)
	assert.Equal(t, []string{
		"search.options.apiKey: algolia search requires apiKey",
		"search.options.indexName: algolia search requires indexName",
	}, issueLines(Validate(s).Errors()))
}

func TestValidate_Theme(t *testing.T) {
	s := parseSite(t, `
		title: Notes
		theme:
		  presets: [uno, tailwind]
	`)
	assert.Equal(t, []string{"theme.presets[1]: unknown preset"}, issueLines(Validate(s).Errors()))
}
