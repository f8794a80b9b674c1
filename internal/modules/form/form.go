package form

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/fieldpost/core/internal/models"
	"github.com/fieldpost/core/internal/pkg/sanitize"
)

var formAttrOptions = []attrOption{
	{name: "to", def: ""},
	{name: "subject", def: ""},
	{name: "show_subject", def: "no", normalize: strings.ToLower},
	{name: "widget", def: ""},
	{name: "submit_button_text", def: "Submit"},
}

// Host describes the content item a form block lives in. It supplies the
// logical form id and the defaults that the block's attributes may omit.
type Host struct {
	SiteName   string
	AdminEmail string
	PageID     string
	PageTitle  string
	WidgetID   string
}

// LogicalID derives the identity a POST must carry to address this form.
func (h Host) LogicalID() string {
	if h.WidgetID != "" {
		return "widget-" + h.WidgetID
	}
	return h.PageID
}

// Form is one contact form instance: resolved attributes plus the ordered
// field collection. It lives for a single render or submission request.
type Form struct {
	ID               string
	To               string
	Subject          string
	ShowSubject      bool
	SubmitButtonText string

	Fields []*Field
	IDs    FieldIDs
}

// Parse builds a Form from a contact-form block, registering it with the
// render pass. Returns nil when the pass suppresses this instance (same
// logical id, different content).
func Parse(pass *RenderPass, block models.Block, host Host) *Form {
	id := host.LogicalID()
	return pass.observe(id, Fingerprint(block), func() *Form {
		return build(block, host)
	})
}

func build(block models.Block, host Host) *Form {
	attrs := make(map[string]string, len(formAttrOptions))
	for _, opt := range formAttrOptions {
		raw, ok := block.Attrs[opt.name]
		if !ok || strings.TrimSpace(raw) == "" {
			attrs[opt.name] = opt.def
			continue
		}
		v := strings.TrimSpace(raw)
		if opt.normalize != nil {
			v = opt.normalize(v)
		}
		attrs[opt.name] = v
	}

	f := &Form{
		ID:               host.LogicalID(),
		To:               attrs["to"],
		Subject:          attrs["subject"],
		ShowSubject:      attrs["show_subject"] == "yes",
		SubmitButtonText: attrs["submit_button_text"],
	}
	if f.To == "" {
		f.To = host.AdminEmail
	}
	if f.Subject == "" {
		context := host.PageTitle
		if host.WidgetID != "" {
			context = "Sidebar"
		}
		f.Subject = strings.TrimSpace(fmt.Sprintf("[%s] %s", host.SiteName, context))
	}

	for _, child := range block.Children {
		if child.Name != models.BlockContactField {
			continue
		}
		f.Fields = append(f.Fields, NewField(child.Attrs))
	}
	if len(f.Fields) == 0 {
		f.Fields = defaultFields(f.ShowSubject)
	}

	f.IDs = BuildFieldIDs(f.Fields)
	return f
}

// defaultFields is the canonical form synthesized when a block declares no
// fields of its own.
func defaultFields(showSubject bool) []*Field {
	fields := []*Field{
		NewField(map[string]string{"label": "Name", "type": TypeName, "required": "1"}),
		NewField(map[string]string{"label": "Email", "type": TypeEmail, "required": "1"}),
		NewField(map[string]string{"label": "Website", "type": TypeURL}),
	}
	if showSubject {
		fields = append(fields, NewField(map[string]string{"label": "Subject", "type": TypeSubject}))
	}
	fields = append(fields, NewField(map[string]string{"label": "Message", "type": TypeTextarea}))
	return fields
}

// PopulateValues fills every field's value from submitted input. Values are
// keyed by definition-order position ("field-1", "field-2", ...), so a field's
// address survives label edits between renders.
func (f *Form) PopulateValues(values url.Values) {
	for i, field := range f.Fields {
		key := fmt.Sprintf("field-%d", i+1)
		raw, ok := values[key]
		if !ok {
			field.Value = Scalar("")
			continue
		}
		field.Value = NormalizeValue(raw)
	}
}

// ValidateAll runs validation on every field and returns the collected
// failures, nil when everything passed.
func (f *Form) ValidateAll() []*FieldError {
	var errs []*FieldError
	for _, field := range f.Fields {
		if err := field.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Standard is the derived identity built from whichever fields occupy the
// role slots, normalized for notification and classification.
type Standard struct {
	Author          string
	AuthorLabel     string
	AuthorEmail     string
	AuthorEmailLbl  string
	AuthorURL       string
	AuthorURLLabel  string
	Content         string
	ContentLabel    string
	SubjectOverride string
}

// Standard derives the identity fields from the role slots. A bare "http://"
// collapses to an empty URL; a missing name falls back to the email address.
func (f *Form) Standard() Standard {
	var s Standard

	if fld := f.IDs.RoleField(f.Fields, RoleName); fld != nil {
		s.Author = cleanScalar(fld.Value)
		s.AuthorLabel = fld.Label()
	}
	if fld := f.IDs.RoleField(f.Fields, RoleEmail); fld != nil {
		s.AuthorEmail = cleanScalar(fld.Value)
		s.AuthorEmailLbl = fld.Label()
	}
	if fld := f.IDs.RoleField(f.Fields, RoleURL); fld != nil {
		s.AuthorURL = cleanScalar(fld.Value)
		if s.AuthorURL == "http://" {
			s.AuthorURL = ""
		}
		s.AuthorURLLabel = fld.Label()
	}
	if fld := f.IDs.RoleField(f.Fields, RoleText); fld != nil {
		s.Content = strings.TrimSpace(sanitize.StripTags(fld.Value.String()))
		s.ContentLabel = fld.Label()
	}
	if fld := f.IDs.RoleField(f.Fields, RoleSubject); fld != nil {
		s.SubjectOverride = cleanScalar(fld.Value)
	}

	if s.Author == "" {
		s.Author = s.AuthorEmail
	}
	return s
}

// EffectiveSubject is the subject actually sent: the subject field's value
// when present, else the form's subject attribute.
func (f *Form) EffectiveSubject() string {
	if s := f.Standard().SubjectOverride; s != "" {
		return s
	}
	return f.Subject
}

func cleanScalar(v Value) string {
	return sanitize.StripControl(strings.TrimSpace(sanitize.StripTags(v.String())))
}

// FindValidRecipients filters the comma-separated recipient list down to
// parseable addresses that the optional reputation check does not flag.
// Returns nil when no valid recipient remains, which the processor treats as
// "this POST is not for us".
func (f *Form) FindValidRecipients(unsafe func(string) bool) []string {
	var out []string
	for _, part := range strings.Split(f.To, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		parsed, err := mail.ParseAddress(addr)
		if err != nil {
			continue
		}
		if unsafe != nil && unsafe(parsed.Address) {
			continue
		}
		out = append(out, parsed.Address)
	}
	return out
}
