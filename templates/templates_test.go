package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, tpl string, data any) string {
	t.Helper()
	parsed, err := New("test").Parse(tpl)
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, parsed.Execute(&sb, data))
	return sb.String()
}

func TestPathEscape(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"plain.txt":             "plain.txt",
		"a/b/c.txt":             "a/b/c.txt",
		"with space.txt":        "with%20space.txt",
		"docs/q&a.txt":          "docs/q&a.txt",
		"100%/done.txt":         "100%25/done.txt",
		"odd#name?.txt":         "odd%23name%3F.txt",
		"päron/sommar läge.txt": "p%C3%A4ron/sommar%20l%C3%A4ge.txt",
	}
	for in, want := range cases {
		assert.Equal(t, want, PathEscape(in), "input %q", in)
	}
}

func TestPathEscapeAvailableInTemplates(t *testing.T) {
	out := render(t, `{{pathEscape "with space.txt"}}`, nil)
	assert.Equal(t, "with%20space.txt", out)
}

func TestSprigFunctionsAvailable(t *testing.T) {
	assert.Equal(t, "3 files", render(t, `{{3}} {{3 | plural "file" "files"}}`, nil))
	assert.Equal(t, "HELLO", render(t, `{{"hello" | upper}}`, nil))
}

func TestAutoEscapingIsOn(t *testing.T) {
	out := render(t, `<p>{{.}}</p>`, `<script>alert(1)</script>`)
	assert.NotContains(t, out, "<script>")
}
