package model

// MaxLanguageNameLen is the column width of languages.name, in characters
const MaxLanguageNameLen = 100

// Language is a registry entry for one language token
type Language struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null"`
}

// TableName returns the table name for Language
func (Language) TableName() string {
	return "languages"
}

// ContentLanguage links one content row to one language
type ContentLanguage struct {
	ContentID  uint `gorm:"primaryKey;autoIncrement:false"`
	LanguageID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName returns the table name for ContentLanguage
func (ContentLanguage) TableName() string {
	return "content_languages"
}

// All returns every model managed by the store, in dependency order
func All() []interface{} {
	return []interface{}{&Language{}, &Content{}, &ContentLanguage{}}
}
