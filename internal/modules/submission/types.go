package submission

import (
	"net/url"

	"github.com/fieldpost/core/internal/modules/form"
)

// Request is one decoded submission POST, independent of the HTTP framing.
type Request struct {
	// FormID is the posted form-id discriminator. It must match the active
	// form's logical id or the submission is not for this form.
	FormID string
	// Values holds the posted field values keyed by position ("field-1", ...).
	Values url.Values

	IP        string
	Referrer  string
	SourceURL string
	// UserLabel is the display name of an authenticated user, empty for
	// anonymous visitors. Only disclosed in the message footer.
	UserLabel string
	// WantsJSON selects the inline-summary outcome over the redirect outcome.
	WantsJSON bool
}

// OutcomeKind discriminates the tagged result of processing one POST.
type OutcomeKind int

const (
	// OutcomeIgnored means the POST was not addressed to this form (identity
	// mismatch or no valid recipients). No side effects happened.
	OutcomeIgnored OutcomeKind = iota
	// OutcomeFieldErrors carries per-field validation failures back to the
	// rendering boundary. Nothing was classified or persisted.
	OutcomeFieldErrors
	// OutcomeSummary carries the human-readable success summary, rebuilt from
	// the persisted record.
	OutcomeSummary
	// OutcomeRedirect carries the post-submission redirect target.
	OutcomeRedirect
)

// Outcome is what the request boundary acts on; the processor never touches
// the HTTP response itself.
type Outcome struct {
	Kind        OutcomeKind
	FeedbackID  string
	Spam        bool
	Summary     string
	RedirectURL string
	FieldErrors []*form.FieldError
}
