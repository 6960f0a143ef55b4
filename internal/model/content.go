package model

import (
	"time"
)

// Sentinel values substituted for missing input
const (
	MissingString    = "NA"
	MissingDate      = "1900-01-01"
	MissingLanguages = "[]"
)

// DateLayout is the wire and CSV format of calendar dates
const DateLayout = "2006-01-02"

// Content represents a media record
type Content struct {
	ID                  uint      `gorm:"primaryKey"`
	Budget              float64   `gorm:"not null;default:0"`
	Revenue             float64   `gorm:"not null;default:0"`
	Runtime             int       `gorm:"not null;default:0"`
	Status              string    `gorm:"size:50"`
	Homepage            string    `gorm:"size:500"`
	OriginalLanguage    string    `gorm:"size:50"`
	OriginalTitle       string    `gorm:"size:500;not null"`
	Title               string    `gorm:"size:500;not null"`
	Overview            string    `gorm:"type:text"`
	ReleaseDate         time.Time `gorm:"type:date;not null;index"`
	VoteAverage         float64   `gorm:"not null;default:0;index"`
	VoteCount           int       `gorm:"not null;default:0"`
	ProductionCompanyID int64     `gorm:"not null;index"`
	GenreID             int64     `gorm:"not null;index"`
	IsDeleted           bool      `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for Content
func (Content) TableName() string {
	return "contents"
}
