package models

// Block is one node of the tokenized body of a page or widget. The host's
// markup engine emits these; this service never parses raw markup itself.
// A block is either prose (`markdown`) or a structural block such as
// `contact-form` with nested `contact-field` children.
type Block struct {
	Name     string            `json:"name"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Content  string            `json:"content,omitempty"`
	Children []Block           `json:"children,omitempty"`
}

// Block names understood by the renderer.
const (
	BlockMarkdown     = "markdown"
	BlockContactForm  = "contact-form"
	BlockContactField = "contact-field"
)
