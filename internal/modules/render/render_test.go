package render

import (
	"testing"

	"github.com/fieldpost/core/internal/models"
	"github.com/fieldpost/core/internal/modules/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHost() form.Host {
	return form.Host{
		SiteName:   "Example Site",
		AdminEmail: "owner@example.com",
		PageID:     "page-1",
		PageTitle:  "Contact Us",
	}
}

func TestBlocksMarkdownAndForm(t *testing.T) {
	blocks := []models.Block{
		{Name: models.BlockMarkdown, Content: "# Hello\n\nGet in **touch**."},
		{Name: models.BlockContactForm, Attrs: map[string]string{"submit_button_text": "Send"}},
		{Name: "unknown-block", Content: "ignored"},
	}

	html, err := Blocks(form.NewRenderPass(), blocks, testHost(), "/api/v2/pages/page-1/contact")
	require.NoError(t, err)
	s := string(html)

	assert.Contains(t, s, "<h1>Hello</h1>")
	assert.Contains(t, s, "<strong>touch</strong>")
	assert.Contains(t, s, `action="/api/v2/pages/page-1/contact"`)
	assert.Contains(t, s, `name="contact-form-id" value="page-1"`)
	assert.Contains(t, s, `name="action" value="contact-form"`)
	assert.Contains(t, s, ">Send</button>")
	assert.NotContains(t, s, "ignored")
}

func TestBlocksSuppressedFormRendersNothing(t *testing.T) {
	blocks := []models.Block{
		{Name: models.BlockContactForm, Attrs: map[string]string{"subject": "First"}},
		{Name: models.BlockContactForm, Attrs: map[string]string{"subject": "Second"}},
	}

	html, err := Blocks(form.NewRenderPass(), blocks, testHost(), "/submit")
	require.NoError(t, err)
	// Only the first instance renders; the conflicting duplicate is silent.
	assert.Equal(t, 1, countForms(string(html)))
}

func countForms(s string) int {
	n := 0
	for i := 0; i+6 <= len(s); i++ {
		if s[i:i+6] == "<form " {
			n++
		}
	}
	return n
}

func TestFormsDedupesIdenticalBlocks(t *testing.T) {
	block := models.Block{Name: models.BlockContactForm, Attrs: map[string]string{"subject": "Same"}}
	blocks := []models.Block{block, block}

	forms := Forms(form.NewRenderPass(), blocks, testHost())
	// Identical re-evaluations resolve to one authoritative instance.
	require.Len(t, forms, 1)
	assert.Equal(t, "Same", forms[0].Subject)
}

func TestFormsSuppressesConflictingDuplicate(t *testing.T) {
	blocks := []models.Block{
		{Name: models.BlockContactForm, Attrs: map[string]string{"subject": "First"}},
		{Name: models.BlockContactForm, Attrs: map[string]string{"subject": "Second"}},
	}

	forms := Forms(form.NewRenderPass(), blocks, testHost())
	require.Len(t, forms, 1)
	assert.Equal(t, "First", forms[0].Subject)
}
