package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ContestBasicInfo is the "basics" section of a contest document.
type ContestBasicInfo struct {
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
	Rules       string `json:"rules,omitempty"`
}

// ContestRequirements describes who may join and what they must produce.
type ContestRequirements struct {
	WhoMayJoin   string   `json:"whoMayJoin,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Script       string   `json:"script,omitempty"`
	ContentLinks []string `json:"contentLinks,omitempty"`
}

// ContestPrizeTimeline holds the prize budget and schedule.
// Per-position payouts are decimal strings keyed by rank ("1", "2", ...).
type ContestPrizeTimeline struct {
	Budget           string            `json:"budget,omitempty"`
	WinnerCount      int               `json:"winnerCount,omitempty"`
	PerPosition      map[string]string `json:"perPosition,omitempty"`
	StartDate        *time.Time        `json:"startDate,omitempty"`
	EndDate          *time.Time        `json:"endDate,omitempty"`
	RankingCriterion string            `json:"rankingCriterion,omitempty"`
}

// ContestIncentive is a named extra prize with a qualifying threshold.
type ContestIncentive struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Prize     string `json:"prize"`
}

// Contest is a brand's contest. Sections are stored as jsonb documents; the
// budget and dates are denormalized into columns for filtering.
type Contest struct {
	BaseModel
	UserID          string          `gorm:"not null;index" json:"userId"`
	BasicInfo       datatypes.JSON  `gorm:"type:jsonb" json:"basicInfo"`
	Requirements    datatypes.JSON  `gorm:"type:jsonb" json:"requirements"`
	PrizeTimeline   datatypes.JSON  `gorm:"type:jsonb" json:"prizeTimeline"`
	Incentives      datatypes.JSON  `gorm:"type:jsonb" json:"incentives,omitempty"`
	Budget          decimal.Decimal `gorm:"type:numeric" json:"budget"`
	WinnerCount     int             `json:"winnerCount"`
	StartDate       *time.Time      `json:"startDate,omitempty"`
	EndDate         *time.Time      `gorm:"index" json:"endDate,omitempty"`
	Status          ContestStatus   `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	FeedbackMessage string          `json:"feedbackMessage,omitempty"`
	Views           int             `json:"views"`
}
