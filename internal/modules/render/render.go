package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/fieldpost/core/internal/models"
	"github.com/fieldpost/core/internal/modules/form"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Blocks renders a tokenized block tree to HTML: markdown blocks through
// goldmark, contact-form blocks through the form renderer. The render pass
// keeps duplicate form evaluations idempotent; a suppressed form renders
// nothing. Unknown block names are skipped.
func Blocks(pass *form.RenderPass, blocks []models.Block, host form.Host, action string) (template.HTML, error) {
	var sb strings.Builder

	for _, block := range blocks {
		switch block.Name {
		case models.BlockMarkdown:
			var buf bytes.Buffer
			if err := markdownEngine.Convert([]byte(block.Content), &buf); err != nil {
				return "", err
			}
			sb.Write(buf.Bytes())
		case models.BlockContactForm:
			f := form.Parse(pass, block, host)
			if f == nil {
				continue
			}
			html, err := f.RenderHTML(action)
			if err != nil {
				return "", err
			}
			sb.WriteString(string(html))
		}
	}

	return template.HTML(sb.String()), nil
}

// Forms parses every contact-form block in the tree through the pass and
// returns the active instances. Used by the submission endpoint, which must
// re-evaluate the same tree the render produced.
func Forms(pass *form.RenderPass, blocks []models.Block, host form.Host) []*form.Form {
	var out []*form.Form
	seen := map[*form.Form]struct{}{}
	for _, block := range blocks {
		if block.Name != models.BlockContactForm {
			continue
		}
		f := form.Parse(pass, block, host)
		if f == nil {
			continue
		}
		// A byte-identical re-evaluation hands back the same instance.
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
