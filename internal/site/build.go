package site

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/thoreinstein/docsite/internal/content"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/linkcheck"
	"github.com/thoreinstein/docsite/internal/logging"
	"github.com/thoreinstein/docsite/internal/nav"
	"github.com/thoreinstein/docsite/internal/validator"
)

// Options controls Build.
type Options struct {
	// LinkCheck holds the tool-level settings. The site's own linkCheck
	// block overrides Enabled and Anchors and extends Ignore.
	LinkCheck linkcheck.Options
	Logger    *slog.Logger
}

// Built is a normalized site with its navigation trees.
type Built struct {
	Site *Site
	// Trees holds the root tree under RootLocale and one tree per locale
	// that declares its own themeConfig.
	Trees map[string]*nav.Tree

	scopes map[string]scope
}

// scope is where a locale tree lives: the location prefix of its issues and
// the directory its relative links resolve against.
type scope struct {
	prefix string
	base   string
}

// Tree returns the tree of a locale, falling back to the root tree.
func (b *Built) Tree(locale string) *nav.Tree {
	if t, ok := b.Trees[locale]; ok {
		return t
	}
	return b.Trees[RootLocale]
}

// Locales returns the keys of Trees, root first and the rest sorted.
func (b *Built) Locales() []string {
	keys := []string{RootLocale}
	for _, k := range sortedLocaleKeys(b.Site.Locales) {
		if _, ok := b.Trees[k]; ok && k != RootLocale {
			keys = append(keys, k)
		}
	}
	return keys
}

// Scope returns the issue location prefix of a locale tree and the directory
// its relative links resolve against.
func (b *Built) Scope(locale string) (prefix, base string) {
	sc, ok := b.scopes[locale]
	if !ok {
		sc = b.scopes[RootLocale]
	}
	return sc.prefix, sc.base
}

// Build validates and normalizes s in place, builds every navigation tree,
// and checks tree links against set. A nil set skips link checking.
//
// The returned Built is always usable for display, even when the result
// holds errors.
func Build(s *Site, set *content.Set, opts Options) (*Built, *validator.Result) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscard()
	}

	result := Validate(s)
	result.Merge(Normalize(s))

	built := &Built{
		Site:   s,
		Trees:  make(map[string]*nav.Tree, len(s.Locales)+1),
		scopes: make(map[string]scope, len(s.Locales)+1),
	}

	build := func(key string, sc scope, tc *ThemeConfig) {
		b := &nav.Builder{Prefix: sc.prefix, Logger: logger}
		tree, res := b.Build(tc.RawTree())
		result.Merge(res)
		built.Trees[key] = tree
		built.scopes[key] = sc

		leaves, groups := tree.Count()
		logger.Debug("built navigation", "locale", key, "leaves", leaves, "groups", groups)
	}

	if l, ok := s.Locales[RootLocale]; ok && l.ThemeConfig != nil {
		build(RootLocale, scope{prefix: "locales." + RootLocale + ".themeConfig.", base: "/"}, l.ThemeConfig)
	} else {
		build(RootLocale, scope{prefix: "themeConfig.", base: "/"}, &s.ThemeConfig)
	}

	for _, key := range sortedLocaleKeys(s.Locales) {
		l := s.Locales[key]
		if key == RootLocale || l.ThemeConfig == nil {
			continue
		}
		build(key, scope{prefix: "locales." + key + ".themeConfig.", base: LocaleBase(key, l)}, l.ThemeConfig)
	}

	if set != nil {
		check := opts.LinkCheck
		if check.Logger == nil {
			check.Logger = logger
		}
		result.Merge(built.CheckLinks(set, check))
	}
	return built, result
}

// LinkOptions merges the tool-level link check settings with the site's own
// linkCheck block. Patterns already in tool.Ignore are not repeated.
func (b *Built) LinkOptions(tool linkcheck.Options) linkcheck.Options {
	return effectiveLinkCheck(tool, b.Site.LinkCheck)
}

// CheckLinks checks every locale tree against set, resolving each tree's
// relative links against its locale base. tool holds the tool-level settings;
// the site's linkCheck block is applied here.
func (b *Built) CheckLinks(set *content.Set, tool linkcheck.Options) *validator.Result {
	result := &validator.Result{}
	check := b.LinkOptions(tool)
	for _, key := range b.Locales() {
		sc := b.scopes[key]
		c := check
		c.Base = sc.base
		c.Prefix = sc.prefix
		result.Merge(linkcheck.Check(b.Trees[key], set, c))
	}
	return result
}

func effectiveLinkCheck(tool linkcheck.Options, site *LinkCheck) linkcheck.Options {
	out := tool
	out.Ignore = append([]string(nil), tool.Ignore...)
	if site == nil {
		return out
	}
	if site.Enabled != nil {
		out.Enabled = *site.Enabled
	}
	if site.Anchors != nil {
		out.Anchors = *site.Anchors
	}
	for _, pattern := range site.Ignore {
		if !slices.Contains(out.Ignore, pattern) {
			out.Ignore = append(out.Ignore, pattern)
		}
	}
	return out
}

// MarshalJSON emits the normalized site with built trees in place of the
// authored nav and sidebar.
func (b *Built) MarshalJSON() ([]byte, error) {
	out := *b.Site
	out.ThemeConfig.tree = b.Trees[RootLocale]
	if len(b.Site.Locales) > 0 {
		out.Locales = make(map[string]Locale, len(b.Site.Locales))
		for key, l := range b.Site.Locales {
			if l.ThemeConfig != nil {
				tc := *l.ThemeConfig
				tc.tree = b.Trees[key]
				l.ThemeConfig = &tc
			}
			out.Locales[key] = l
		}
	}
	return json.Marshal(out)
}

// Marshal returns the indented JSON document for the site generator. Equal
// inputs give byte-identical output.
func Marshal(b *Built) ([]byte, error) {
	compact, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "encoding site")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, errors.Wrap(err, "indenting site")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
