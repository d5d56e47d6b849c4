package site

import (
	"encoding/json"

	"github.com/thoreinstein/docsite/internal/nav"
	"github.com/thoreinstein/docsite/internal/theme"
)

// RootLocale is the locale key served at "/".
const RootLocale = "root"

// Site is the build-time configuration object.
type Site struct {
	Title       string            `yaml:"title" json:"title" validate:"required"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Lang        string            `yaml:"lang,omitempty" json:"lang" validate:"omitempty,bcp47_language_tag"`
	SrcDir      string            `yaml:"srcDir,omitempty" json:"srcDir"`
	Base        string            `yaml:"base,omitempty" json:"base,omitempty" validate:"omitempty,startswith=/,endswith=/"`
	CleanURLs   bool              `yaml:"cleanUrls,omitempty" json:"cleanUrls"`
	LastUpdated bool              `yaml:"lastUpdated,omitempty" json:"lastUpdated"`
	Head        []HeadTag         `yaml:"head,omitempty" json:"head,omitempty" validate:"dive"`
	Locales     map[string]Locale `yaml:"locales,omitempty" json:"locales,omitempty" validate:"dive"`
	ThemeConfig ThemeConfig       `yaml:"themeConfig,omitempty" json:"themeConfig"`
	Search      *Search           `yaml:"search,omitempty" json:"search,omitempty"`
	PWA         *PWA              `yaml:"pwa,omitempty" json:"pwa,omitempty"`
	Theme       *theme.Theme      `yaml:"theme,omitempty" json:"theme,omitempty"`

	LinkCheck *LinkCheck `yaml:"linkCheck,omitempty" json:"-"`
	// IgnoreDeadLinks is read only to warn that it has no effect.
	IgnoreDeadLinks bool `yaml:"ignoreDeadLinks,omitempty" json:"-"`

	unknown []string
}

// Locale is one entry of the locale table.
type Locale struct {
	Label       string       `yaml:"label" json:"label" validate:"required"`
	Lang        string       `yaml:"lang,omitempty" json:"lang,omitempty" validate:"omitempty,bcp47_language_tag"`
	Link        string       `yaml:"link,omitempty" json:"link,omitempty" validate:"omitempty,startswith=/,endswith=/"`
	Title       string       `yaml:"title,omitempty" json:"title,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	ThemeConfig *ThemeConfig `yaml:"themeConfig,omitempty" json:"themeConfig,omitempty"`
}

// ThemeConfig holds the default theme's options. Nav and Sidebar are kept in
// authored form; the built trees replace them on output.
type ThemeConfig struct {
	Logo                string         `yaml:"logo,omitempty" json:"logo,omitempty"`
	Nav                 []nav.RawItem  `yaml:"nav,omitempty" json:"-"`
	Sidebar             nav.RawSidebar `yaml:"sidebar,omitempty" json:"-"`
	SocialLinks         []SocialLink   `yaml:"socialLinks,omitempty" json:"socialLinks,omitempty" validate:"dive"`
	Footer              *Footer        `yaml:"footer,omitempty" json:"footer,omitempty"`
	Outline             *Outline       `yaml:"outline,omitempty" json:"outline,omitempty"`
	DocFooter           *DocFooter     `yaml:"docFooter,omitempty" json:"docFooter,omitempty"`
	EditLink            *EditLink      `yaml:"editLink,omitempty" json:"editLink,omitempty"`
	LastUpdatedText     string         `yaml:"lastUpdatedText,omitempty" json:"lastUpdatedText,omitempty"`
	ReturnToTopLabel    string         `yaml:"returnToTopLabel,omitempty" json:"returnToTopLabel,omitempty"`
	SidebarMenuLabel    string         `yaml:"sidebarMenuLabel,omitempty" json:"sidebarMenuLabel,omitempty"`
	DarkModeSwitchLabel string         `yaml:"darkModeSwitchLabel,omitempty" json:"darkModeSwitchLabel,omitempty"`
	tree                *nav.Tree
}

// MarshalJSON emits the built navigation tree in place of the authored one.
func (tc ThemeConfig) MarshalJSON() ([]byte, error) {
	type plain ThemeConfig
	out := struct {
		plain
		Nav     any `json:"nav,omitempty"`
		Sidebar any `json:"sidebar,omitempty"`
	}{plain: plain(tc)}
	if tc.tree != nil {
		out.Nav, out.Sidebar = tc.tree.Parts()
	}
	return json.Marshal(out)
}

// RawTree returns the authored nav and sidebar.
func (tc *ThemeConfig) RawTree() nav.RawTree {
	return nav.RawTree{Nav: tc.Nav, Sidebar: tc.Sidebar}
}

// SocialLink is an icon link in the navigation bar.
type SocialLink struct {
	Icon      string `yaml:"icon" json:"icon" validate:"required"`
	Link      string `yaml:"link" json:"link" validate:"required,url"`
	AriaLabel string `yaml:"ariaLabel,omitempty" json:"ariaLabel,omitempty"`
}

// Footer is shown at the bottom of every page. Both fields may hold inline
// HTML, which is sanitized during normalization.
type Footer struct {
	Message   string `yaml:"message,omitempty" json:"message,omitempty"`
	Copyright string `yaml:"copyright,omitempty" json:"copyright,omitempty"`
}

// Outline configures the on-page table of contents.
type Outline struct {
	Level OutlineLevel `yaml:"level,omitempty" json:"level"`
	Label string       `yaml:"label,omitempty" json:"label,omitempty"`
}

// DocFooter labels the previous/next links.
type DocFooter struct {
	Prev string `yaml:"prev,omitempty" json:"prev,omitempty"`
	Next string `yaml:"next,omitempty" json:"next,omitempty"`
}

// EditLink points each page at its source.
type EditLink struct {
	Pattern string `yaml:"pattern" json:"pattern" validate:"required,contains=:path"`
	Text    string `yaml:"text,omitempty" json:"text,omitempty"`
}

// Search selects the search provider.
type Search struct {
	Provider string         `yaml:"provider,omitempty" json:"provider" validate:"omitempty,oneof=local algolia"`
	Options  map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// PWA is the web app manifest.
type PWA struct {
	Name            string    `yaml:"name" json:"name" validate:"required"`
	ShortName       string    `yaml:"short_name,omitempty" json:"short_name,omitempty"`
	Description     string    `yaml:"description,omitempty" json:"description,omitempty"`
	ThemeColor      string    `yaml:"theme_color,omitempty" json:"theme_color,omitempty" validate:"omitempty,hexcolor"`
	BackgroundColor string    `yaml:"background_color,omitempty" json:"background_color,omitempty" validate:"omitempty,hexcolor"`
	Icons           []PWAIcon `yaml:"icons,omitempty" json:"icons,omitempty" validate:"dive"`
}

// PWAIcon is one manifest icon.
type PWAIcon struct {
	Src   string `yaml:"src" json:"src" validate:"required"`
	Sizes string `yaml:"sizes,omitempty" json:"sizes,omitempty"`
	Type  string `yaml:"type,omitempty" json:"type,omitempty"`
}

// LinkCheck overrides the tool's link check settings for one site.
type LinkCheck struct {
	Enabled *bool    `yaml:"enabled,omitempty"`
	Anchors *bool    `yaml:"anchors,omitempty"`
	Ignore  []string `yaml:"ignore,omitempty"`
}

// LocaleBase returns the path a locale is served under.
func LocaleBase(key string, l Locale) string {
	if key == RootLocale {
		return "/"
	}
	if l.Link != "" {
		return l.Link
	}
	return "/" + key + "/"
}
