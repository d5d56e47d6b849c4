package validator

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/docsite/internal/errors"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.String())
		})
	}
}

func TestSeverity_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Issue{Severity: SeverityWarning, Message: "m"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"warning"`)

	var got Issue
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, SeverityWarning, got.Severity)

	var bad Severity
	assert.Error(t, bad.UnmarshalText([]byte("fatal")))
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name string
		i    Issue
		want string
	}{
		{
			name: "error with location and value",
			i: Issue{
				Severity: SeverityError,
				Location: "sidebar[0].items[1]",
				Message:  "link does not resolve",
				Value:    "/guide/missing",
			},
			want: "error: sidebar[0].items[1]: link does not resolve (got /guide/missing)",
		},
		{
			name: "warning without location",
			i: Issue{
				Severity: SeverityWarning,
				Message:  "duplicate section",
			},
			want: "warning: duplicate section",
		},
		{
			name: "info with field",
			i: Issue{
				Severity: SeverityInfo,
				Field:    "title",
				Message:  "is long",
			},
			want: "info: field \"title\": is long",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.i.Error())
		})
	}
}

func TestResult_Helpers(t *testing.T) {
	r := &Result{}
	assert.False(t, r.HasErrors())

	r.AddError("nav[0]", "m1", "v1")
	r.AddWarning("nav[1]", "m2", "v2")
	r.AddInfo("nav[2]", "m3", nil)

	assert.True(t, r.HasErrors())
	assert.True(t, r.HasWarnings())
	assert.Len(t, r.Errors(), 1)
	assert.Len(t, r.Warnings(), 1)
	assert.Len(t, r.Issues, 3)
}

func TestResult_MergePreservesOrder(t *testing.T) {
	a := &Result{}
	a.AddError("nav[0]", "first", nil)
	b := &Result{}
	b.AddError("sidebar[0]", "second", nil)
	b.AddError("sidebar[1]", "third", nil)

	a.Merge(b)
	a.Merge(nil)

	require.Len(t, a.Issues, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{a.Issues[0].Message, a.Issues[1].Message, a.Issues[2].Message})
}

func TestResult_Err(t *testing.T) {
	r := &Result{}
	r.AddWarning("nav[0]", "only a warning", nil)
	assert.NoError(t, r.Err(errors.ErrBrokenLinks))

	r.AddError("nav[1]", "link does not resolve", "/a")
	r.AddError("sidebar[0].items[0]", "link does not resolve", "/b")

	err := r.Err(errors.ErrBrokenLinks)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBrokenLinks))
	assert.True(t, strings.HasPrefix(err.Error(), "broken links: 2 problem(s)\n"), err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "(*Result).Err", "a stack trace is attached")
	assert.Contains(t, err.Error(), "/a")
	assert.Contains(t, err.Error(), "/b")
	assert.Equal(t, 2, strings.Count(err.Error(), "  - "))
}

func TestResult_NilSafety(t *testing.T) {
	var r *Result
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasWarnings())
	assert.Nil(t, r.Errors())
	assert.Nil(t, r.Warnings())
	assert.NoError(t, r.Err(errors.ErrBrokenLinks))
}
