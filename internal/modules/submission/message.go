package submission

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fieldpost/core/internal/config"
	"github.com/fieldpost/core/internal/modules/form"
)

// bodyDelimiter separates the message half of a persisted record from its
// structured footer. Part of the stored data format.
const bodyDelimiter = "\n<!--more-->\n"

// extraPrefix is the numeric addressing prefix on persisted overflow keys.
// The notification mail shows the bare label; only storage keeps the prefix.
var extraPrefix = regexp.MustCompile(`^\d+_`)

// composeMessage builds the plain-text notification body: the standard
// identity pairs, the de-duplicated extra pairs, then the footer block with
// timestamp, IP, source URL and the login-state disclosure.
func composeMessage(f *form.Form, std form.Standard, extra []form.Pair, req Request, opts *config.Options, now time.Time) string {
	var sb strings.Builder

	writePair := func(label, value string) {
		if value == "" {
			return
		}
		if label == "" {
			label = "Field"
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, value)
	}

	writePair(std.AuthorLabel, std.Author)
	writePair(std.AuthorEmailLbl, std.AuthorEmail)
	writePair(std.AuthorURLLabel, std.AuthorURL)
	writePair(std.ContentLabel, std.Content)

	for _, pair := range extra {
		writePair(extraPrefix.ReplaceAllString(pair.Key, ""), pair.Value)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Time: %s\n", formatSiteTime(now, opts))
	fmt.Fprintf(&sb, "IP Address: %s\n", req.IP)
	fmt.Fprintf(&sb, "Contact Form URL: %s\n", req.SourceURL)
	if req.UserLabel != "" {
		fmt.Fprintf(&sb, "Sent by a verified %s user.\n", opts.Site.Name)
	} else {
		sb.WriteString("Sent by an unverified visitor to your site.\n")
	}

	return sb.String()
}

// composeRecordBody builds the persisted record body: the message content,
// the delimiter, a structured identity footer and a dump of every prefixed
// field value for plain-text search.
func composeRecordBody(std form.Standard, subject, ip string, all []form.Pair) string {
	var sb strings.Builder

	sb.WriteString(std.Content)
	sb.WriteString(bodyDelimiter)
	fmt.Fprintf(&sb, "AUTHOR: %s\n", std.Author)
	fmt.Fprintf(&sb, "AUTHOR EMAIL: %s\n", std.AuthorEmail)
	fmt.Fprintf(&sb, "AUTHOR URL: %s\n", std.AuthorURL)
	fmt.Fprintf(&sb, "SUBJECT: %s\n", subject)
	fmt.Fprintf(&sb, "IP: %s\n", ip)
	for _, pair := range all {
		fmt.Fprintf(&sb, "%s: %s\n", pair.Key, pair.Value)
	}

	return sb.String()
}

// recordFooter is the parsed structured half of a persisted record body.
type recordFooter struct {
	Author      string
	AuthorEmail string
	AuthorURL   string
	Subject     string
	IP          string
}

// parseRecordBody splits a persisted body back into content and footer. The
// inverse of composeRecordBody for the round-trip summary.
func parseRecordBody(body string) (content string, footer recordFooter) {
	parts := strings.SplitN(body, bodyDelimiter, 2)
	content = parts[0]
	if len(parts) < 2 {
		return content, footer
	}

	for _, line := range strings.Split(parts[1], "\n") {
		switch {
		case strings.HasPrefix(line, "AUTHOR EMAIL: "):
			footer.AuthorEmail = strings.TrimPrefix(line, "AUTHOR EMAIL: ")
		case strings.HasPrefix(line, "AUTHOR URL: "):
			footer.AuthorURL = strings.TrimPrefix(line, "AUTHOR URL: ")
		case strings.HasPrefix(line, "AUTHOR: "):
			footer.Author = strings.TrimPrefix(line, "AUTHOR: ")
		case strings.HasPrefix(line, "SUBJECT: "):
			footer.Subject = strings.TrimPrefix(line, "SUBJECT: ")
		case strings.HasPrefix(line, "IP: "):
			footer.IP = strings.TrimPrefix(line, "IP: ")
		}
	}
	return content, footer
}

func formatSiteTime(t time.Time, opts *config.Options) string {
	layout := strings.TrimSpace(opts.Site.DateFormat + " " + opts.Site.TimeFormat)
	if layout == "" {
		layout = "2006-01-02 15:04"
	}
	return t.Format(layout)
}
