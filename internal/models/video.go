package models

import (
	"github.com/shopspring/decimal"
)

// Video is a creator-authored sellable asset.
type Video struct {
	BaseModel
	UserID        string          `gorm:"not null;index" json:"userId"`
	Title         string          `gorm:"not null" json:"title"`
	Description   string          `json:"description,omitempty"`
	VideoURL      string          `json:"videoUrl,omitempty"`
	ThumbnailURL  string          `json:"thumbnailUrl,omitempty"`
	Price         decimal.Decimal `gorm:"type:numeric" json:"price"`
	LicenseType   LicenseType     `gorm:"type:varchar(20);default:'standard'" json:"licenseType"`
	Views         int             `json:"views"`
	PurchaseCount int             `json:"purchaseCount"`
	Status        VideoStatus     `gorm:"type:varchar(20);default:'draft';index" json:"status"`
}

// VideoPurchase records one buyer's purchase of a video.
type VideoPurchase struct {
	BaseModel
	VideoID     string          `gorm:"not null;index" json:"videoId"`
	BuyerUserID string          `gorm:"not null;index" json:"buyerUserId"`
	Amount      decimal.Decimal `gorm:"type:numeric" json:"amount"`
	LicenseType LicenseType     `gorm:"type:varchar(20)" json:"licenseType"`
	CheckoutRef string          `json:"checkoutRef,omitempty"`
	Status      PurchaseStatus  `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	Video *Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (VideoPurchase) TableName() string {
	return "video_purchases"
}
