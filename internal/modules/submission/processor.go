package submission

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fieldpost/core/internal/config"
	"github.com/fieldpost/core/internal/models"
	"github.com/fieldpost/core/internal/modules/classifier"
	"github.com/fieldpost/core/internal/modules/form"
	"github.com/fieldpost/core/internal/pkg/cron"
	"github.com/fieldpost/core/internal/pkg/jwt"
	"github.com/fieldpost/core/internal/pkg/mail"
	"github.com/fieldpost/core/internal/pkg/sanitize"
	"go.uber.org/zap"
)

const (
	sweepJobName  = "feedback:spam-sweep"
	sweepInterval = 24 * time.Hour

	// tokenTTL bounds how long the post-redirect success view stays valid.
	tokenTTL = 5 * time.Minute
)

type mailSender interface {
	Send(mail.Message) error
}

// Store is the persistence collaborator: one atomic record create plus a
// keyed meta side table. *feedback.Service satisfies it.
type Store interface {
	Create(title string, status models.FeedbackStatus, parentID, body string) (string, error)
	SetMeta(feedbackID, name string, value interface{}) error
	GetMeta(feedbackID, name string, dest interface{}) error
	Get(id string) (*models.FeedbackModel, error)
	DeleteSpamOlderThan(retention time.Duration) (int64, error)
}

type optionsProvider interface {
	Get() (*config.Options, error)
}

// emailSnapshot is the exact recipient/message pair stored alongside each
// record, under the _feedback_email meta key.
type emailSnapshot struct {
	To      []string          `json:"to"`
	Message string            `json:"message"`
	Headers map[string]string `json:"headers"`
}

// Processor drives the submission pipeline for one POST. Construction wires
// the collaborators; per-request state lives on the stack.
type Processor struct {
	store   Store
	options optionsProvider
	cron    *cron.Scheduler
	log     *zap.Logger

	// newClassifier and newSender are swappable for tests.
	newClassifier func(opts *config.Options) classifier.Classifier
	newSender     func(opts config.MailOptions) mailSender

	// UnsafeAddress is the optional recipient reputation check.
	UnsafeAddress func(addr string) bool
}

func NewProcessor(store Store, opts optionsProvider, sched *cron.Scheduler, log *zap.Logger) *Processor {
	return &Processor{
		store:         store,
		options:       opts,
		cron:          sched,
		log:           log.Named("submission"),
		newClassifier: defaultClassifier,
		newSender: func(opts config.MailOptions) mailSender {
			return mail.New(mail.Config{
				Enable:    opts.Enable,
				Host:      opts.Host,
				Port:      opts.Port,
				User:      opts.User,
				Pass:      opts.Pass,
				UseResend: opts.UseResend,
				ResendKey: opts.ResendKey,
			})
		},
	}
}

func defaultClassifier(opts *config.Options) classifier.Classifier {
	if opts.Spam.Provider == "akismet" && opts.Spam.AkismetKey != "" {
		return classifier.NewAkismet(opts.Spam.AkismetKey, opts.Site.URL)
	}
	return classifier.NewKeyword(opts.Spam.SpamKeywords, opts.Spam.BlockIPs)
}

// Process runs the pipeline against one active form. The returned error is
// only non-nil for a classifier abstain, in which case nothing was persisted
// and no mail was sent.
func (p *Processor) Process(ctx context.Context, f *form.Form, req Request) (Outcome, error) {
	// 1. Identity check. A page can host several forms; each one inspects the
	// shared POST body and only the addressed instance reacts. The action
	// discriminator keeps unrelated POSTs that happen to carry a matching id
	// from being treated as submissions.
	if req.Values.Get("action") != "contact-form" {
		return Outcome{Kind: OutcomeIgnored}, nil
	}
	if req.FormID == "" || req.FormID != f.ID {
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	opts, err := p.options.Get()
	if err != nil {
		return Outcome{}, fmt.Errorf("load options: %w", err)
	}

	// 2. Recipient resolution.
	recipients := f.FindValidRecipients(p.UnsafeAddress)
	if len(recipients) == 0 {
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	// 3. Field materialization.
	f.PopulateValues(req.Values)
	std := f.Standard()

	// 4. Validation. Failures go back to the boundary; classification and
	// persistence are skipped entirely.
	if errs := f.ValidateAll(); len(errs) > 0 {
		return Outcome{Kind: OutcomeFieldErrors, FieldErrors: errs}, nil
	}

	subject := sanitize.StripControl(strings.TrimSpace(sanitize.StripTags(f.EffectiveSubject())))

	// 5. Classification payload.
	payload := classifier.Payload{
		Author:      std.Author,
		AuthorEmail: std.AuthorEmail,
		AuthorURL:   std.AuthorURL,
		Subject:     subject,
		IP:          sanitize.StripControl(req.IP),
		Content:     std.Content,
	}

	// 6. Verdict. An error is an abstain: abort before any write.
	verdict, err := p.newClassifier(opts).Classify(ctx, payload)
	if err != nil {
		return Outcome{}, fmt.Errorf("spam classification unavailable: %w", err)
	}
	isSpam := verdict == classifier.VerdictSpam

	// 7. Message composition.
	now := time.Now()
	extra := form.ExtraValues(f.Fields, f.IDs)
	message := composeMessage(f, std, extra, req, opts, now)

	mailSubject := subject
	if isSpam {
		mailSubject = "***SPAM*** " + mailSubject
	}

	// 8. Persistence.
	status := models.FeedbackPublished
	if isSpam {
		status = models.FeedbackSpam
	}
	title := fmt.Sprintf("%s - %s", std.Author, formatSiteTime(now, opts))
	body := composeRecordBody(std, subject, req.IP, form.AllValues(f.Fields))

	feedbackID, err := p.store.Create(title, status, f.ID, body)
	if err != nil {
		return Outcome{}, fmt.Errorf("persist submission: %w", err)
	}

	extraMap := make(map[string]string, len(extra))
	for _, pair := range extra {
		extraMap[pair.Key] = pair.Value
	}
	snapshot := emailSnapshot{
		To:      recipients,
		Message: message,
		Headers: mailHeaders(std, recipients, opts),
	}
	if err := p.store.SetMeta(feedbackID, models.MetaExtraFields, extraMap); err != nil {
		p.log.Warn("store extra fields failed", zap.String("id", feedbackID), zap.Error(err))
	}
	if err := p.store.SetMeta(feedbackID, models.MetaAkismetValues, payload); err != nil {
		p.log.Warn("store classifier payload failed", zap.String("id", feedbackID), zap.Error(err))
	}
	if err := p.store.SetMeta(feedbackID, models.MetaEmailSnapshot, snapshot); err != nil {
		p.log.Warn("store email snapshot failed", zap.String("id", feedbackID), zap.Error(err))
	}

	// 9. Spam sweep scheduling, registered once process-wide.
	p.ensureSweep(opts)

	// 10. Notification, fire and forget. Spam is silenced unless configured.
	if !isSpam || opts.Spam.NotifySpam {
		p.notify(opts, std, recipients, mailSubject, message)
	}

	// 11. Tagged outcome.
	if req.WantsJSON {
		summary, err := p.BuildSummary(f, feedbackID)
		if err != nil {
			p.log.Warn("summary rebuild failed", zap.String("id", feedbackID), zap.Error(err))
			summary = "Message sent."
		}
		return Outcome{Kind: OutcomeSummary, FeedbackID: feedbackID, Spam: isSpam, Summary: summary}, nil
	}

	redirect, err := redirectURL(req.Referrer, f.ID, feedbackID)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: OutcomeRedirect, FeedbackID: feedbackID, Spam: isSpam, RedirectURL: redirect}, nil
}

func (p *Processor) ensureSweep(opts *config.Options) {
	if p.cron == nil || p.cron.Has(sweepJobName) {
		return
	}
	retentionDays := opts.Spam.RetentionDays
	if retentionDays <= 0 {
		retentionDays = 15
	}
	retention := time.Duration(retentionDays) * 24 * time.Hour
	p.cron.Register(cron.Job{
		Name:        sweepJobName,
		Description: "delete spam feedback older than the retention window",
		Interval:    sweepInterval,
		Fn: func(ctx context.Context) error {
			_, err := p.store.DeleteSpamOlderThan(retention)
			return err
		},
	})
}

func (p *Processor) notify(opts *config.Options, std form.Standard, recipients []string, subject, message string) {
	headers := mailHeaders(std, recipients, opts)
	msg := mail.Message{
		To:          recipients,
		Subject:     subject,
		Text:        message,
		FromName:    std.Author,
		FromAddr:    headers["From"],
		ReplyToAddr: headers["Reply-To"],
	}
	sender := p.newSender(opts.Mail)
	go func() {
		if err := sender.Send(msg); err != nil {
			p.log.Warn("notification mail failed", zap.Error(err))
		}
	}()
}

// mailHeaders synthesizes the notification headers. From always uses the
// site's own domain so a submitter cannot spoof it; Reply-To points at the
// submitter when an email was given, else the first recipient.
func mailHeaders(std form.Standard, recipients []string, opts *config.Options) map[string]string {
	replyTo := std.AuthorEmail
	if replyTo == "" && len(recipients) > 0 {
		replyTo = recipients[0]
	}
	return map[string]string{
		"From":         "fieldpost@" + siteHost(opts.Site.URL),
		"Reply-To":     replyTo,
		"Content-Type": "text/plain; charset=\"UTF-8\"",
	}
}

func siteHost(siteURL string) string {
	u, err := url.Parse(strings.TrimSpace(siteURL))
	if err != nil || u.Host == "" {
		return "localhost"
	}
	return u.Hostname()
}

// freshnessSubject binds a redirect token to one submission record.
func freshnessSubject(feedbackID string) string {
	return "feedback:" + feedbackID
}

// redirectURL appends the form id, the new record id and a short-lived signed
// token to the referring URL.
func redirectURL(referrer, formID, feedbackID string) (string, error) {
	if strings.TrimSpace(referrer) == "" {
		referrer = "/"
	}
	u, err := url.Parse(referrer)
	if err != nil {
		return "", fmt.Errorf("bad referrer: %w", err)
	}

	token, err := jwt.SignSubject(freshnessSubject(feedbackID), tokenTTL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("form-id", formID)
	q.Set("submission-id", feedbackID)
	q.Set("token", token)
	u.RawQuery = q.Encode()
	u.Fragment = "contact-form-" + formID
	return u.String(), nil
}
