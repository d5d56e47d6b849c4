package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExternal(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"https://github.com/", true},
		{"http://example.com/x", true},
		{"mailto:me@example.com", true},
		{"tel:+123", true},
		{"//cdn.example.com/a.js", true},
		{"/guide/", false},
		{"guide/intro", false},
		{"./a.md", false},
		{"#top", false},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExternal(tt.link))
		})
	}
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		base     string
		route    string
		fragment string
	}{
		{"root", "/", "", "/", ""},
		{"clean url", "/guide/intro", "", "/guide/intro", ""},
		{"md suffix", "/guide/intro.md", "", "/guide/intro", ""},
		{"html suffix", "/guide/intro.html", "", "/guide/intro", ""},
		{"directory", "/guide/", "", "/guide/", ""},
		{"explicit index", "/guide/index.md", "", "/guide/", ""},
		{"root index", "/index", "", "/", ""},
		{"fragment", "/guide/intro#install", "", "/guide/intro", "install"},
		{"query and fragment", "/guide/intro?x=1#install", "", "/guide/intro", "install"},
		{"relative to root", "guide/intro", "/", "/guide/intro", ""},
		{"relative to locale", "guide/", "/zh/", "/zh/guide/", ""},
		{"parent", "../about", "/zh/", "/about", ""},
		{"base is a page", "intro", "/guide/start", "/guide/intro", ""},
		{"fragment only", "#top", "/guide/", "/guide/", "top"},
		{"escaped", "/notes/hello%20world", "", "/notes/hello world", ""},
		{"escaped fragment", "/zh/guide/intro#%E5%AE%89%E8%A3%85%E6%8C%87%E5%8D%97", "/zh/", "/zh/guide/intro", "安装指南"},
		{"unicode fragment", "/zh/guide/intro#安装指南", "/zh/", "/zh/guide/intro", "安装指南"},
		{"dot segments", "/guide/./a/../intro", "", "/guide/intro", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseLink(tt.link, tt.base)
			require.NoError(t, err)
			assert.False(t, ref.External)
			assert.Equal(t, tt.route, ref.Route)
			assert.Equal(t, tt.fragment, ref.Fragment)
			assert.Equal(t, tt.link, ref.Link)
		})
	}
}

func TestParseLink_External(t *testing.T) {
	ref, err := ParseLink("https://example.com/a#b", "/")
	require.NoError(t, err)
	assert.True(t, ref.External)
	assert.Empty(t, ref.Route)
}

func TestParseLink_Errors(t *testing.T) {
	_, err := ParseLink("  ", "/")
	require.Error(t, err)

	_, err = ParseLink("/bad%zz", "/")
	require.Error(t, err)

	_, err = ParseLink("/guide/#bad%zz", "/")
	require.Error(t, err)
}
