package config

// Options is the site configuration stored in the database (options table,
// key="configs"). Admin updates arrive as partial JSON patches merged over the
// stored document.
type Options struct {
	Site SiteOptions `json:"site"`
	Mail MailOptions `json:"mail"`
	Spam SpamOptions `json:"spam"`
}

// SiteOptions describes the host site. URL is the canonical site address and
// is the source of the synthesized From domain on notification mail.
type SiteOptions struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	AdminEmail string `json:"admin_email"`
	DateFormat string `json:"date_format"`
	TimeFormat string `json:"time_format"`
}

type MailOptions struct {
	Enable    bool   `json:"enable"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	User      string `json:"user"`
	Pass      string `json:"pass"`
	UseResend bool   `json:"use_resend"`
	ResendKey string `json:"resend_key"`
}

// SpamOptions controls spam classification and retention.
type SpamOptions struct {
	Provider      string   `json:"provider"` // "keyword" | "akismet"
	AkismetKey    string   `json:"akismet_key"`
	NotifySpam    bool     `json:"notify_spam"`
	SpamKeywords  []string `json:"spam_keywords"`
	BlockIPs      []string `json:"block_ips"`
	RetentionDays int      `json:"retention_days"`
}

// DefaultOptions returns sensible defaults for a fresh install.
func DefaultOptions() Options {
	return Options{
		Site: SiteOptions{
			Name:       "Fieldpost",
			URL:        "http://localhost:2368",
			AdminEmail: "",
			DateFormat: "2006-01-02",
			TimeFormat: "15:04",
		},
		Mail: MailOptions{
			Enable: false,
			Port:   587,
		},
		Spam: SpamOptions{
			Provider:      "keyword",
			NotifySpam:    false,
			SpamKeywords:  []string{},
			BlockIPs:      []string{},
			RetentionDays: 15,
		},
	}
}
