package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// CreatorProfile is the canonical profile, keyed by email (not userId).
// Created and updated opportunistically when a verification status changes or
// a file upload arrives for a known email.
type CreatorProfile struct {
	Email              string         `gorm:"primaryKey" json:"email"`
	UserID             string         `gorm:"index" json:"userId,omitempty"`
	FirstName          string         `json:"firstName,omitempty"`
	LastName           string         `json:"lastName,omitempty"`
	Bio                string         `json:"bio,omitempty"`
	ProfilePictureURL  string         `json:"profilePictureUrl,omitempty"`
	LogoURL            string         `json:"logoUrl,omitempty"`
	ProfileImageURL    string         `json:"profileImageUrl,omitempty"`
	TiktokURL          string         `json:"tiktokUrl,omitempty"`
	SocialLinks        datatypes.JSON `gorm:"type:jsonb" json:"socialLinks,omitempty"`
	Pricing            datatypes.JSON `gorm:"type:jsonb" json:"pricing,omitempty"`
	ContentTypes       pq.StringArray `gorm:"type:text[]" json:"contentTypes,omitempty"`
	Country            string         `json:"country,omitempty"`
	Gender             string         `json:"gender,omitempty"`
	Ethnicity          string         `json:"ethnicity,omitempty"`
	DateOfBirth        string         `json:"dateOfBirth,omitempty"`
	VerificationStatus string         `json:"verificationStatus,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (CreatorProfile) TableName() string {
	return "creator_profiles"
}

// DecodedSocialLinks unmarshals the social links map.
func (p *CreatorProfile) DecodedSocialLinks() map[string]string {
	links := map[string]string{}
	if len(p.SocialLinks) > 0 {
		_ = json.Unmarshal(p.SocialLinks, &links)
	}
	return links
}

// DecodedPricing unmarshals the pricing tiers map.
func (p *CreatorProfile) DecodedPricing() map[string]string {
	pricing := map[string]string{}
	if len(p.Pricing) > 0 {
		_ = json.Unmarshal(p.Pricing, &pricing)
	}
	return pricing
}

// BrandProfile mirrors a brand account's review state, keyed by email like
// CreatorProfile.
type BrandProfile struct {
	Email        string    `gorm:"primaryKey" json:"email"`
	UserID       string    `gorm:"index" json:"userId,omitempty"`
	CompanyName  string    `json:"companyName,omitempty"`
	ReviewStatus string    `json:"reviewStatus,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (BrandProfile) TableName() string {
	return "brand_profiles"
}
