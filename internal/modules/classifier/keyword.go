package classifier

import (
	"context"
	"regexp"
	"strings"
)

// defaultBlockedKeywords always trigger spam detection, on top of whatever
// the site configures.
var defaultBlockedKeywords = []string{
	"spam", "casino", "porn", "viagra", "cialis",
	"gambling", "lottery", "poker", "blackjack",
	"payday loan", "crypto giveaway", "work from home",
}

// Keyword is the offline default classifier: blocked-IP patterns plus keyword
// matching over the message content and subject. It never abstains.
type Keyword struct {
	Keywords []string
	BlockIPs []string
}

func NewKeyword(keywords, blockIPs []string) *Keyword {
	return &Keyword{Keywords: keywords, BlockIPs: blockIPs}
}

func (k *Keyword) Classify(_ context.Context, p Payload) (Verdict, error) {
	ip := strings.TrimSpace(p.IP)
	if ip != "" {
		for _, pattern := range k.BlockIPs {
			pattern = strings.TrimSpace(pattern)
			if pattern == "" {
				continue
			}
			if pattern == ip {
				return VerdictSpam, nil
			}
			if re, err := regexp.Compile(pattern); err == nil && re.MatchString(ip) {
				return VerdictSpam, nil
			}
		}
	}

	text := p.Content + "\n" + p.Subject + "\n" + p.AuthorURL
	lower := strings.ToLower(text)

	all := make([]string, 0, len(k.Keywords)+len(defaultBlockedKeywords))
	all = append(all, k.Keywords...)
	all = append(all, defaultBlockedKeywords...)

	for _, kw := range all {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return VerdictSpam, nil
		}
		if re, err := regexp.Compile("(?i)" + kw); err == nil && re.MatchString(text) {
			return VerdictSpam, nil
		}
	}

	return VerdictHam, nil
}
