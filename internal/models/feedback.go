package models

// FeedbackStatus is the moderation status of a stored submission.
type FeedbackStatus string

const (
	FeedbackPublished FeedbackStatus = "publish"
	FeedbackSpam      FeedbackStatus = "spam"
)

// FeedbackModel is one persisted contact-form submission.
// Text holds the message content, a `<!--more-->` delimiter, a structured
// author/subject/IP footer and a dump of all field values so that plain
// full-text search picks the submission up.
type FeedbackModel struct {
	Base
	Title    string         `json:"title"     gorm:"not null"`
	Slug     string         `json:"slug"      gorm:"type:varchar(64);index"`
	Status   FeedbackStatus `json:"status"    gorm:"type:varchar(16);default:publish;index"`
	ParentID string         `json:"parent_id" gorm:"type:char(64);index"`
	Text     string         `json:"text"      gorm:"type:longtext"`
}

func (FeedbackModel) TableName() string { return "feedbacks" }

// FeedbackMetaModel is the side table keyed by feedback id. One row per meta
// key; values are JSON-encoded.
type FeedbackMetaModel struct {
	ID         uint   `json:"id"          gorm:"primaryKey"`
	FeedbackID string `json:"feedback_id" gorm:"type:char(36);uniqueIndex:idx_feedback_meta"`
	Name       string `json:"name"        gorm:"type:varchar(191);uniqueIndex:idx_feedback_meta"`
	Value      string `json:"value"       gorm:"type:longtext"`
}

func (FeedbackMetaModel) TableName() string { return "feedback_meta" }

// Meta keys written for every accepted submission. The names are part of the
// persisted data format; do not rename without a migration.
const (
	MetaExtraFields   = "_feedback_extra_fields"
	MetaAkismetValues = "_feedback_akismet_values"
	MetaEmailSnapshot = "_feedback_email"
)
