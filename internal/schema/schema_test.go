package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
)

func mustValidator(t *testing.T, r models.Resource) *Validator {
	t.Helper()
	v, err := For(r)
	require.NoError(t, err)
	return v
}

func TestForUnknownResource(t *testing.T) {
	_, err := For(models.Resource("team"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team")
}

func TestValidateBlogPost(t *testing.T) {
	v := mustValidator(t, models.ResourceBlog)

	raw := json.RawMessage(`{
		"id": "1",
		"title": "Shipping faster",
		"body": "Body text",
		"date": "2024-03-01",
		"language": "es",
		"featured": true,
		"meta": {"author": "Ada", "tags": ["go"]}
	}`)

	item, err := v.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "1", item.ID)
	assert.Equal(t, i18n.Spanish, item.Language)
	assert.True(t, item.Featured)
	assert.Equal(t, "Ada", item.Meta["author"])
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name     string
		resource models.Resource
		raw      string
		wantIn   string
	}{
		{
			name:     "missing title",
			resource: models.ResourceBlog,
			raw:      `{"id":"1","body":"b","date":"2024-01-01"}`,
			wantIn:   "title",
		},
		{
			name:     "wrong type for featured",
			resource: models.ResourceBlog,
			raw:      `{"id":"1","title":"t","body":"b","date":"2024-01-01","featured":"yes"}`,
			wantIn:   "featured",
		},
		{
			name:     "unsupported language",
			resource: models.ResourceBlog,
			raw:      `{"id":"1","title":"t","body":"b","date":"2024-01-01","language":"fr"}`,
			wantIn:   "language",
		},
		{
			name:     "blog without date",
			resource: models.ResourceBlog,
			raw:      `{"id":"1","title":"t","body":"b"}`,
			wantIn:   "date",
		},
		{
			name:     "malformed date",
			resource: models.ResourceProjects,
			raw:      `{"id":"1","title":"t","body":"b","category":"web","date":"01/02/2024"}`,
			wantIn:   "date",
		},
		{
			name:     "project without category",
			resource: models.ResourceProjects,
			raw:      `{"id":"1","title":"t","body":"b"}`,
			wantIn:   "category",
		},
		{
			name:     "blank title",
			resource: models.ResourceProjects,
			raw:      `{"id":"1","title":"   ","body":"b","category":"web"}`,
			wantIn:   "title",
		},
		{
			name:     "not an object",
			resource: models.ResourceProjects,
			raw:      `["id","title"]`,
			wantIn:   "#",
		},
		{
			name:     "invalid json",
			resource: models.ResourceBlog,
			raw:      `{"id":`,
			wantIn:   "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustValidator(t, tt.resource)
			_, err := v.Validate(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "error should wrap ErrInvalid")

			var schemaErr *Error
			require.True(t, errors.As(err, &schemaErr))
			assert.NotEmpty(t, schemaErr.Issues)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}

func TestValidateAcceptsRFC3339Date(t *testing.T) {
	v := mustValidator(t, models.ResourceBlog)
	_, err := v.Validate(json.RawMessage(`{"id":"1","title":"t","body":"b","date":"2024-03-01T10:00:00Z"}`))
	assert.NoError(t, err)
}

// TestCheckSoftFail verifies that an item missing a required field is kept,
// unmodified, and marked untrusted instead of being rejected.
func TestCheckSoftFail(t *testing.T) {
	v := mustValidator(t, models.ResourceBlog)
	raw := json.RawMessage(`{"id":"9","body":"orphan body","date":"2024-01-01","custom":1}`)

	doc := v.Check(raw)

	assert.False(t, doc.Trusted)
	assert.NotEmpty(t, doc.Issues)
	assert.Equal(t, "9", doc.Item.ID, "best-effort view should still be decoded")

	encoded, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(encoded))
}

func TestCheckTrusted(t *testing.T) {
	v := mustValidator(t, models.ResourceProjects)
	doc := v.Check(json.RawMessage(`{"id":"3","title":"Atlas","body":"b","category":"web","language":"pt"}`))

	assert.True(t, doc.Trusted)
	assert.Empty(t, doc.Issues)
	assert.Equal(t, i18n.Portuguese, doc.Item.Language)
}

func TestCheckBestEffortOnTypeMismatch(t *testing.T) {
	v := mustValidator(t, models.ResourceProjects)
	doc := v.Check(json.RawMessage(`{"id":"4","title":12,"body":"still here","category":"web"}`))

	assert.False(t, doc.Trusted)
	assert.Equal(t, "4", doc.Item.ID)
	assert.Equal(t, "still here", doc.Item.Body)
}

func TestCheckItem(t *testing.T) {
	v := mustValidator(t, models.ResourceProjects)

	good := v.CheckItem(models.Item{ID: "1", Title: "t", Body: "b", Category: "web", Language: i18n.English})
	assert.True(t, good.Trusted)

	bad := models.Item{ID: "2", Body: "b", Language: i18n.English}
	doc := v.CheckItem(bad)
	assert.False(t, doc.Trusted)
	assert.Equal(t, bad, doc.Item)
}

func TestIssueString(t *testing.T) {
	tests := []struct {
		issue Issue
		want  string
	}{
		{issue: Issue{Location: "/title", Message: "cannot be blank"}, want: "#/title: cannot be blank"},
		{issue: Issue{Location: "", Message: "missing"}, want: "#: missing"},
		{issue: Issue{Location: "#/a"}, want: "#/a"},
	}
	for _, tt := range tests {
		if got := tt.issue.String(); got != tt.want {
			t.Errorf("Issue.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIssuesFromPlainError(t *testing.T) {
	issues := Issues(errors.New("boom"))
	require.Len(t, issues, 1)
	assert.True(t, strings.Contains(issues[0].Message, "boom"))
	assert.Nil(t, Issues(nil))
}
