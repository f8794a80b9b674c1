package form

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/fieldpost/core/internal/models"
)

// RenderPass tracks which form instance is authoritative for each logical id
// while one page build re-evaluates its block tree. It is created per request
// and handed down the parse chain; there is no process-global state to reset.
type RenderPass struct {
	forms map[string]*passEntry
}

type passEntry struct {
	form        *Form
	fingerprint string
}

func NewRenderPass() *RenderPass {
	return &RenderPass{forms: make(map[string]*passEntry)}
}

// Fingerprint computes a stable digest of a block's attributes and content so
// re-evaluations of the same markup can be recognized as harmless.
func Fingerprint(block models.Block) string {
	raw, _ := json.Marshal(block)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// observe registers a freshly parsed form. The first instance per logical id
// wins; a byte-identical re-parse returns the remembered instance so no
// registry work repeats; a differing re-parse with the same id is suppressed
// and observe returns nil.
func (p *RenderPass) observe(id, fingerprint string, build func() *Form) *Form {
	if entry, ok := p.forms[id]; ok {
		if entry.fingerprint == fingerprint {
			return entry.form
		}
		return nil
	}
	f := build()
	p.forms[id] = &passEntry{form: f, fingerprint: fingerprint}
	return f
}

// Active returns the authoritative form for a logical id, if one was parsed
// during this pass.
func (p *RenderPass) Active(id string) *Form {
	if entry, ok := p.forms[id]; ok {
		return entry.form
	}
	return nil
}
