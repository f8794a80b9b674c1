package classifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Akismet calls the Akismet comment-check endpoint. An HTTP or protocol
// failure surfaces as an error, which the processor treats as an abstain and
// aborts the submission.
type Akismet struct {
	Key     string
	SiteURL string
	client  *http.Client
}

func NewAkismet(key, siteURL string) *Akismet {
	return &Akismet{
		Key:     key,
		SiteURL: siteURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Akismet) Classify(ctx context.Context, p Payload) (Verdict, error) {
	endpoint := fmt.Sprintf("https://%s.rest.akismet.com/1.1/comment-check", a.Key)

	values := url.Values{}
	values.Set("blog", a.SiteURL)
	values.Set("user_ip", p.IP)
	values.Set("comment_type", "contact-form")
	values.Set("comment_author", p.Author)
	values.Set("comment_author_email", p.AuthorEmail)
	values.Set("comment_author_url", p.AuthorURL)
	values.Set("comment_content", p.Content)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(values.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("akismet request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("akismet returned status %d", resp.StatusCode)
	}

	switch strings.TrimSpace(string(body)) {
	case "true":
		return VerdictSpam, nil
	case "false":
		return VerdictHam, nil
	default:
		return "", fmt.Errorf("akismet returned unexpected body %q", strings.TrimSpace(string(body)))
	}
}
