package form

import (
	"fmt"
	"html/template"
	"strings"
)

// formTemplate renders one form instance. Field inputs are named by
// definition-order position so the processor can materialize values without
// relying on labels.
var formTemplate = template.Must(template.New("contact-form").Parse(`<form class="contact-form" method="post" action="{{.Action}}">
{{- range .Fields}}
<div class="contact-form-field">
<label for="{{.Name}}">{{.Label}}{{if .Required}} <span class="required">(required)</span>{{end}}</label>
{{.Input}}
{{- if .Error}}
<span class="field-error">{{.Error}}</span>
{{- end}}
</div>
{{- end}}
<input type="hidden" name="contact-form-id" value="{{.FormID}}"/>
<input type="hidden" name="action" value="contact-form"/>
<button type="submit">{{.SubmitText}}</button>
</form>
`))

type renderedField struct {
	Name     string
	Label    string
	Required bool
	Input    template.HTML
	Error    string
}

type renderedForm struct {
	Action     string
	FormID     string
	SubmitText string
	Fields     []renderedField
}

// RenderHTML renders the form to HTML. Action is the submission endpoint the
// markup should post to.
func (f *Form) RenderHTML(action string) (template.HTML, error) {
	data := renderedForm{
		Action:     action,
		FormID:     f.ID,
		SubmitText: f.SubmitButtonText,
	}
	for i, field := range f.Fields {
		name := fmt.Sprintf("field-%d", i+1)
		rf := renderedField{
			Name:     name,
			Label:    field.Label(),
			Required: field.Required(),
			Input:    fieldInput(name, field),
		}
		if field.Err != nil {
			rf.Error = field.Err.Message
		}
		data.Fields = append(data.Fields, rf)
	}

	var sb strings.Builder
	if err := formTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}

func fieldInput(name string, f *Field) template.HTML {
	esc := template.HTMLEscapeString
	value := f.Value.String()
	if value == "" {
		value = f.Default()
	}

	switch f.Type() {
	case TypeTextarea:
		return template.HTML(fmt.Sprintf(
			`<textarea name="%s" id="%s">%s</textarea>`,
			esc(name), esc(name), esc(value)))
	case TypeSelect:
		var sb strings.Builder
		fmt.Fprintf(&sb, `<select name="%s" id="%s">`, esc(name), esc(name))
		for _, opt := range f.Options() {
			selected := ""
			if opt == value {
				selected = ` selected`
			}
			fmt.Fprintf(&sb, `<option value="%s"%s>%s</option>`, esc(opt), selected, esc(opt))
		}
		sb.WriteString(`</select>`)
		return template.HTML(sb.String())
	case TypeCheckbox, TypeRadio:
		inputType := f.Type()
		selected := f.Value.List()
		var sb strings.Builder
		for _, opt := range f.Options() {
			checked := ""
			for _, sel := range selected {
				if sel == opt {
					checked = ` checked`
					break
				}
			}
			fmt.Fprintf(&sb, `<label><input type="%s" name="%s" value="%s"%s/> %s</label>`,
				inputType, esc(name), esc(opt), checked, esc(opt))
		}
		if sb.Len() == 0 {
			checked := ""
			if !f.Value.IsEmpty() {
				checked = ` checked`
			}
			fmt.Fprintf(&sb, `<input type="%s" name="%s" value="1"%s/>`, inputType, esc(name), checked)
		}
		return template.HTML(sb.String())
	default:
		inputType := "text"
		switch f.Type() {
		case TypeEmail:
			inputType = "email"
		case TypeURL:
			inputType = "url"
		}
		placeholder := ""
		if p := f.Attr("placeholder"); p != "" {
			placeholder = fmt.Sprintf(` placeholder="%s"`, esc(p))
		}
		return template.HTML(fmt.Sprintf(
			`<input type="%s" name="%s" id="%s" value="%s"%s/>`,
			inputType, esc(name), esc(name), esc(value), placeholder))
	}
}
