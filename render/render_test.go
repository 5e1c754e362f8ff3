package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLRendersHeadingsInOrder(t *testing.T) {
	out, err := New().HTML("# Turing Test Results\n\n## The Question\n\nWhy?\n\n---\n\n## The Verdict\n\nVerdict: Response 1 is human.\n")
	require.NoError(t, err)

	title := strings.Index(out, "<h1")
	question := strings.Index(out, "<h2")
	rule := strings.Index(out, "<hr")
	require.True(t, title >= 0 && question > title && rule > question)
	require.Contains(t, out, "Verdict: Response 1 is human.")
}

func TestHTMLStripsScripts(t *testing.T) {
	out, err := New().HTML("## AI Response\n\n<script>alert(1)</script>\n\n[x](javascript:alert(1))\n")
	require.NoError(t, err)
	require.NotContains(t, out, "<script")
	require.NotContains(t, out, "javascript:")
}

func TestHTMLEmptyInput(t *testing.T) {
	out, err := New().HTML("")
	require.NoError(t, err)
	require.Empty(t, out)
}
