package models

// UserModel is the site owner account used for the moderation API.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"type:varchar(80);uniqueIndex"`
	Name     string `json:"name"`
	Mail     string `json:"mail"     gorm:"type:varchar(191)"`
	URL      string `json:"url"`
	Password string `json:"-"        gorm:"type:varchar(191)"` // bcrypt hash
}

func (UserModel) TableName() string { return "users" }
