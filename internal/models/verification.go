package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// ProfileData is the creator-supplied document embedded in a verification record.
type ProfileData struct {
	FirstName         string            `json:"firstName,omitempty"`
	LastName          string            `json:"lastName,omitempty"`
	Email             string            `json:"email,omitempty"`
	Bio               string            `json:"bio,omitempty"`
	SocialMedia       map[string]string `json:"socialMedia,omitempty"`
	TiktokURL         string            `json:"tiktokUrl,omitempty"`
	ContentTypes      []string          `json:"contentTypes,omitempty"`
	ContentLinks      []string          `json:"contentLinks,omitempty"`
	Country           string            `json:"country,omitempty"`
	Gender            string            `json:"gender,omitempty"`
	Ethnicity         string            `json:"ethnicity,omitempty"`
	DateOfBirth       string            `json:"dateOfBirth,omitempty"`
	Pricing           map[string]string `json:"pricing,omitempty"`
	LogoURL           string            `json:"logoUrl,omitempty"`
	ProfilePictureURL string            `json:"profilePictureUrl,omitempty"`
}

// CreatorVerification is a creator's submitted application for approval.
// UserID is immutable after creation and authorizes updates.
type CreatorVerification struct {
	BaseModel
	UserID            string             `gorm:"not null;index" json:"userId"`
	Email             string             `gorm:"index" json:"email"`
	ProfileData       datatypes.JSON     `gorm:"type:jsonb" json:"profileData"`
	LogoURL           string             `json:"logoUrl,omitempty"`
	ProfilePictureURL string             `json:"profilePictureUrl,omitempty"`
	IDDocumentURL     string             `json:"idDocumentUrl,omitempty"`
	IntroVideoURL     string             `json:"introVideoUrl,omitempty"`
	Status            VerificationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	FeedbackMessage   string             `json:"feedbackMessage,omitempty"`
}

func (CreatorVerification) TableName() string {
	return "creator_verifications"
}

// DecodedProfileData unmarshals the embedded document. A missing or malformed
// document decodes to the zero value.
func (v *CreatorVerification) DecodedProfileData() ProfileData {
	var pd ProfileData
	if len(v.ProfileData) > 0 {
		_ = json.Unmarshal(v.ProfileData, &pd)
	}
	return pd
}
