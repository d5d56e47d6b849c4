package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestReporter_Text(t *testing.T) {
	noColor(t)

	mixed := &Result{}
	mixed.AddError("themeConfig.nav[1]", "link does not resolve to a document", "/guide/intor")
	mixed.Issues[0].Field = "link"
	mixed.Issues[0].Context = map[string]string{"suggestion": "/guide/intro", "locale": "root"}
	mixed.AddWarning("themeConfig.sidebar[2]", "duplicate section text", "Notes")
	mixed.AddInfo("", "ignoreDeadLinks is set", nil)

	warnOnly := &Result{}
	warnOnly.AddWarning("themeConfig.sidebar[0]", "empty group", nil)

	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{
			name:   "passed",
			result: &Result{},
			want:   "✓ Validation passed\n",
		},
		{
			name:   "warnings only",
			result: warnOnly,
			want: "✓ Validation passed with 1 warning(s)\n\n" +
				"  ⚠ themeConfig.sidebar[0]: empty group\n",
		},
		{
			name:   "errors first",
			result: mixed,
			want: "Validation failed: 1 error(s), 1 warning(s)\n\n" +
				"  ✗ themeConfig.nav[1].link: link does not resolve to a document [/guide/intor]\n" +
				"      locale: root\n" +
				"      suggestion: /guide/intro\n" +
				"  ⚠ themeConfig.sidebar[2]: duplicate section text [Notes]\n" +
				"  ℹ ignoreDeadLinks is set\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewReporter(&buf, FormatText).Report(tt.result))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestReporter_TruncatesValues(t *testing.T) {
	noColor(t)

	r := &Result{}
	r.AddError("head[0]", "unknown tag", strings.Repeat("é", 100))

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(r))
	assert.Contains(t, buf.String(), "["+strings.Repeat("é", 57)+"...]")
}

func TestReporter_JSON(t *testing.T) {
	result := &Result{}
	result.AddError("nav[0].items[1]", "link does not resolve", "/guide/missing")
	result.AddWarning("sidebar[2]", "duplicate section text", "Notes")

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatJSON).Report(result))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"issues\": ["), buf.String())

	var decoded Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "nav[0].items[1]", decoded.Issues[0].Location)
	assert.Equal(t, SeverityError, decoded.Issues[0].Severity)
	assert.Equal(t, SeverityWarning, decoded.Issues[1].Severity)
}

func TestReporter_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(nil))
	assert.Empty(t, buf.String())
}
