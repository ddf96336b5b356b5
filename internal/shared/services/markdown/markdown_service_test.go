package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("We share:\n\n- **full name**\n- phone number\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>full name</strong>")
	assert.Contains(t, out, "<li>phone number</li>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert(1)</script>")
}

func TestToHTMLSanitized_Links(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("[policy](https://example.org/privacy) and [x](javascript:alert(1))")
	require.NoError(t, err)

	assert.Contains(t, out, `href="https://example.org/privacy"`)
	assert.Contains(t, out, "nofollow")
	assert.NotContains(t, out, "javascript:")
}

func TestToHTMLSanitized_Empty(t *testing.T) {
	out, err := NewMarkdownService().ToHTMLSanitized("   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStripTags(t *testing.T) {
	svc := NewMarkdownService()
	assert.Equal(t, "Phòng khám An Bình", svc.StripTags(" <b>Phòng khám</b> An Bình "))
	assert.Equal(t, "Nha khoa A & B", svc.StripTags("Nha khoa A & B<script>x()</script>"))
}
