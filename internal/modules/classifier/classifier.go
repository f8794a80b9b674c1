package classifier

import "context"

// Payload is the fixed-shape record handed to a classifier. Single-line
// fields must already have control characters stripped.
type Payload struct {
	Author      string `json:"comment_author"`
	AuthorEmail string `json:"comment_author_email"`
	AuthorURL   string `json:"comment_author_url"`
	Subject     string `json:"contact_form_subject"`
	IP          string `json:"user_ip"`
	Content     string `json:"comment_content"`
}

// Verdict is a classifier decision.
type Verdict string

const (
	VerdictHam  Verdict = "ham"
	VerdictSpam Verdict = "spam"
)

// Classifier scores a submission. A non-nil error is an abstain signal: the
// caller aborts the submission without persisting anything.
type Classifier interface {
	Classify(ctx context.Context, p Payload) (Verdict, error)
}
