package models

import (
	"github.com/lib/pq"
)

// ContestApplication is a creator's application to a specific contest.
type ContestApplication struct {
	BaseModel
	ContestID       string            `gorm:"not null;index" json:"contestId"`
	UserID          string            `gorm:"not null;index" json:"userId"`
	PostURL         string            `json:"postUrl,omitempty"`
	ApplicationText string            `json:"applicationText,omitempty"`
	SampleURLs      pq.StringArray    `gorm:"type:text[]" json:"sampleUrls,omitempty"`
	Status          ApplicationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	Contest *Contest `gorm:"foreignKey:ContestID" json:"contest,omitempty"`
}

func (ContestApplication) TableName() string {
	return "contest_applications"
}
