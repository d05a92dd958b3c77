package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command in mock mode and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "CONTENT_API_URL", "VALKEY_HOST", "MULTI_TENANT", "RATE_LIMIT"} {
		t.Setenv(key, "")
	}
	t.Setenv("CONTENT_BACKEND", "mock")
	t.Setenv("CONTENT_MOCK_FALLBACK", "true")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func TestGetList(t *testing.T) {
	out, err := run(t, "get", "blog", "--lang", "es", "--page", "4", "--limit", "5")
	require.NoError(t, err)

	var page struct {
		Items       []map[string]any `json:"items"`
		TotalPages  int              `json:"totalPages"`
		CurrentPage int              `json:"currentPage"`
		TotalItems  int              `json:"totalItems"`
		Source      string           `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, "backend", page.Source)
	assert.Equal(t, 17, page.TotalItems)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, 4, page.CurrentPage)
	assert.Len(t, page.Items, 2)
}

func TestGetItemFallsBackToDefaultLanguage(t *testing.T) {
	out, err := run(t, "get", "projects", "2", "--lang", "pt")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "en", result["langUsed"])
	assert.Equal(t, "2", result["data"].(map[string]any)["id"])
}

func TestGetDocument(t *testing.T) {
	out, err := run(t, "get", "blog", "5", "--document", "--lang", "es")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "es", result["langUsed"])
	assert.Equal(t, false, result["isUsingFallback"])
}

func TestGetErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown resource", args: []string{"get", "team"}},
		{name: "unsupported language", args: []string{"get", "blog", "--lang", "fr"}},
		{name: "too many args", args: []string{"get", "blog", "1", "2"}},
		{name: "missing item", args: []string{"get", "blog", "404"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestInvalidConfiguration(t *testing.T) {
	t.Setenv("CONTENT_BACKEND", "rest")
	t.Setenv("CONTENT_API_URL", "")

	root := newRootCmd()
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "get", "blog"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONTENT_API_URL")
}

func TestFlushCacheRequiresValkey(t *testing.T) {
	_, err := run(t, "flush-cache", "--tenant", "acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}
