package form

import (
	"net/url"
	"testing"

	"github.com/fieldpost/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHost() Host {
	return Host{
		SiteName:   "Example Site",
		AdminEmail: "admin@example.com",
		PageID:     "page-1",
		PageTitle:  "Contact Us",
	}
}

func formBlock(attrs map[string]string, fields ...map[string]string) models.Block {
	b := models.Block{Name: models.BlockContactForm, Attrs: attrs}
	for _, f := range fields {
		b.Children = append(b.Children, models.Block{Name: models.BlockContactField, Attrs: f})
	}
	return b
}

func parseOne(t *testing.T, block models.Block, host Host) *Form {
	t.Helper()
	f := Parse(NewRenderPass(), block, host)
	require.NotNil(t, f)
	return f
}

func TestBuildDefaults(t *testing.T) {
	f := parseOne(t, formBlock(nil), testHost())

	assert.Equal(t, "page-1", f.ID)
	assert.Equal(t, "admin@example.com", f.To)
	assert.Equal(t, "[Example Site] Contact Us", f.Subject)
	assert.Equal(t, "Submit", f.SubmitButtonText)
	assert.False(t, f.ShowSubject)

	// No declared fields synthesizes Name, Email, Website, Message.
	require.Len(t, f.Fields, 4)
	assert.Equal(t, "Name", f.Fields[0].Label())
	assert.True(t, f.Fields[0].Required())
	assert.Equal(t, "Email", f.Fields[1].Label())
	assert.True(t, f.Fields[1].Required())
	assert.Equal(t, "Website", f.Fields[2].Label())
	assert.False(t, f.Fields[2].Required())
	assert.Equal(t, "Message", f.Fields[3].Label())
}

func TestBuildShowSubjectAddsSlot(t *testing.T) {
	f := parseOne(t, formBlock(map[string]string{"show_subject": "YES"}), testHost())
	require.Len(t, f.Fields, 5)
	assert.Equal(t, "Subject", f.Fields[3].Label())
	assert.Equal(t, TypeSubject, f.Fields[3].Type())
}

func TestBuildWidgetHost(t *testing.T) {
	host := testHost()
	host.PageID = ""
	host.PageTitle = ""
	host.WidgetID = "w42"

	f := parseOne(t, formBlock(nil), host)
	assert.Equal(t, "widget-w42", f.ID)
	assert.Equal(t, "[Example Site] Sidebar", f.Subject)
}

func TestBuildExplicitAttrs(t *testing.T) {
	f := parseOne(t, formBlock(map[string]string{
		"to":                 "sales@example.com",
		"subject":            "New lead",
		"submit_button_text": "Send it",
	}), testHost())
	assert.Equal(t, "sales@example.com", f.To)
	assert.Equal(t, "New lead", f.Subject)
	assert.Equal(t, "Send it", f.SubmitButtonText)
}

func TestPopulateValuesPositional(t *testing.T) {
	f := parseOne(t, formBlock(nil), testHost())
	f.PopulateValues(url.Values{
		"field-1": {"Ada"},
		"field-2": {"ada@example.com"},
		"field-4": {"hello there"},
	})

	assert.Equal(t, "Ada", f.Fields[0].Value.String())
	assert.Equal(t, "ada@example.com", f.Fields[1].Value.String())
	// Missing keys read back as an empty scalar, not a nil value.
	assert.Equal(t, "", f.Fields[2].Value.String())
	assert.False(t, f.Fields[2].Value.IsList())
	assert.Equal(t, "hello there", f.Fields[3].Value.String())
}

func TestStandardPlaceholderURLCollapses(t *testing.T) {
	f := parseOne(t, formBlock(nil), testHost())
	f.PopulateValues(url.Values{
		"field-1": {"A"},
		"field-2": {"a@b.com"},
		"field-3": {"http://"},
		"field-4": {"hi"},
	})

	std := f.Standard()
	assert.Equal(t, "A", std.Author)
	assert.Equal(t, "a@b.com", std.AuthorEmail)
	assert.Equal(t, "", std.AuthorURL)
	assert.Equal(t, "hi", std.Content)
	assert.Empty(t, ExtraValues(f.Fields, f.IDs))
}

func TestStandardAuthorFallsBackToEmail(t *testing.T) {
	f := parseOne(t, formBlock(nil,
		map[string]string{"label": "Email", "type": "email"},
		map[string]string{"label": "Message", "type": "textarea"},
	), testHost())
	f.PopulateValues(url.Values{"field-1": {"grace@example.com"}, "field-2": {"hi"}})

	std := f.Standard()
	assert.Equal(t, "grace@example.com", std.Author)
	assert.Equal(t, "grace@example.com", std.AuthorEmail)
}

func TestStandardStripsMarkupAndControl(t *testing.T) {
	f := parseOne(t, formBlock(nil,
		map[string]string{"label": "Name", "type": "name"},
		map[string]string{"label": "Message", "type": "textarea"},
	), testHost())
	f.PopulateValues(url.Values{
		"field-1": {" <b>Ada</b>\nLovelace "},
		"field-2": {"line one\nline two"},
	})

	std := f.Standard()
	// Scalar identity values lose control characters entirely.
	assert.Equal(t, "AdaLovelace", std.Author)
	// Message content keeps its newlines.
	assert.Equal(t, "line one\nline two", std.Content)
}

func TestEffectiveSubjectOverride(t *testing.T) {
	f := parseOne(t, formBlock(map[string]string{"subject": "Fallback", "show_subject": "yes"}), testHost())
	assert.Equal(t, "Fallback", f.EffectiveSubject())

	f.PopulateValues(url.Values{"field-4": {"Urgent question"}})
	assert.Equal(t, "Urgent question", f.EffectiveSubject())
}

func TestValidateAllCollectsFailures(t *testing.T) {
	f := parseOne(t, formBlock(nil), testHost())
	f.PopulateValues(url.Values{"field-2": {"not-an-email"}})

	errs := f.ValidateAll()
	require.Len(t, errs, 2)
	assert.Equal(t, "Name", errs[0].Label)
	assert.Equal(t, "Email", errs[1].Label)

	f.PopulateValues(url.Values{"field-1": {"Ada"}, "field-2": {"a@b.com"}})
	assert.Nil(t, f.ValidateAll())
}

func TestFindValidRecipients(t *testing.T) {
	f := parseOne(t, formBlock(map[string]string{
		"to": "a@b.com, bogus, , c@d.com",
	}), testHost())

	assert.Equal(t, []string{"a@b.com", "c@d.com"}, f.FindValidRecipients(nil))

	// Reputation check removes flagged addresses.
	unsafe := func(addr string) bool { return addr == "a@b.com" }
	assert.Equal(t, []string{"c@d.com"}, f.FindValidRecipients(unsafe))

	f.To = "nothing valid here"
	assert.Nil(t, f.FindValidRecipients(nil))
}
