package models

// OptionModel is a simple key/value store for persisted site options.
type OptionModel struct {
	ID    uint   `json:"id"    gorm:"primaryKey"`
	Name  string `json:"name"  gorm:"type:varchar(191);uniqueIndex"`
	Value string `json:"value" gorm:"type:longtext"`
}

func (OptionModel) TableName() string { return "options" }
