package models

// PageModel is a content item whose body is a tokenized block tree. Pages may
// embed contact-form blocks; the page id doubles as the logical form id for
// submissions posted to it.
type PageModel struct {
	Base
	Title       string  `json:"title"        gorm:"not null"`
	Slug        string  `json:"slug"         gorm:"type:varchar(191);uniqueIndex"`
	AuthorEmail string  `json:"author_email" gorm:"type:varchar(191)"`
	Blocks      []Block `json:"blocks"       gorm:"type:longtext;serializer:json"`
}

func (PageModel) TableName() string { return "pages" }

// WidgetModel is a sidebar placement holding a block tree. Forms hosted in a
// widget get the synthetic logical id "widget-<id>".
type WidgetModel struct {
	Base
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks" gorm:"type:longtext;serializer:json"`
}

func (WidgetModel) TableName() string { return "widgets" }
