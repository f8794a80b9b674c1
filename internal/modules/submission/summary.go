package submission

import (
	"fmt"
	"strings"

	"github.com/fieldpost/core/internal/models"
	"github.com/fieldpost/core/internal/modules/feedback"
	"github.com/fieldpost/core/internal/modules/form"
	"github.com/fieldpost/core/internal/pkg/jwt"
	"go.uber.org/zap"
)

// BuildSummary renders the human-readable success summary from the persisted
// record and its meta rows, not from in-memory values. Reading back through
// the same addressing rules that wrote the record proves the round trip.
func (p *Processor) BuildSummary(f *form.Form, feedbackID string) (string, error) {
	record, err := p.store.Get(feedbackID)
	if err != nil {
		return "", err
	}
	content, footer := parseRecordBody(record.Text)

	var extraMap map[string]string
	if err := p.store.GetMeta(feedbackID, models.MetaExtraFields, &extraMap); err != nil && err != feedback.ErrNotFound {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Message sent!\n\n")

	writePair := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, value)
	}

	std := f.Standard()
	writePair(orLabel(std.AuthorLabel, "Name"), footer.Author)
	writePair(orLabel(std.AuthorEmailLbl, "Email"), footer.AuthorEmail)
	writePair(orLabel(std.AuthorURLLabel, "Website"), footer.AuthorURL)
	writePair(orLabel(std.ContentLabel, "Message"), strings.TrimSpace(content))

	// Extra values come back by re-deriving the prefixed keys with the same
	// (role-count, order) formula used at write time. A key that derives
	// differently than it was written simply reads as absent.
	keys := form.ExtraKeys(f.Fields, f.IDs)
	for i, idx := range f.IDs.Extra {
		value, ok := extraMap[keys[i]]
		if !ok {
			continue
		}
		writePair(f.Fields[idx].Label(), value)
	}

	return sb.String(), nil
}

// SummaryForToken resolves the post-redirect success view: the freshness
// token minted with the redirect must still be valid and bound to exactly
// this submission. Anything else, a stale token included, renders the page
// with no summary rather than erroring.
func (p *Processor) SummaryForToken(f *form.Form, feedbackID, token string) string {
	if f == nil || feedbackID == "" || token == "" {
		return ""
	}
	if !jwt.VerifySubject(token, freshnessSubject(feedbackID)) {
		return ""
	}
	summary, err := p.BuildSummary(f, feedbackID)
	if err != nil {
		p.log.Warn("summary rebuild failed", zap.String("id", feedbackID), zap.Error(err))
		return ""
	}
	return summary
}

func orLabel(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}
