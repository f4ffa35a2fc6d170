package dto

import (
	"time"

	"creatorhub_backend/internal/models"
)

// SubmitVerificationRequest creates a new pending verification record.
type SubmitVerificationRequest struct {
	UserID      string             `json:"-"`
	Email       string             `json:"email" binding:"required" validate:"required,email"`
	ProfileData models.ProfileData `json:"profileData"`
}

// ApprovalActionRequest is the administrative status-update action.
type ApprovalActionRequest struct {
	VerificationID string `json:"verificationId" validate:"required"`
	CreatorEmail   string `json:"creatorEmail" validate:"omitempty,email"`
	UserID         string `json:"userId"`
	Action         string `json:"action" validate:"required,oneof=approve reject request_info suspend"`
	Message        string `json:"message"`
}

// UpdateVerificationRequest is the partial PUT payload. userId, createdAt and
// the record id are rejected by the service; profileData is deep-merged.
type UpdateVerificationRequest struct {
	Email       *string                `json:"email" validate:"omitempty,email"`
	ProfileData map[string]interface{} `json:"profileData"`
	Status      *string                `json:"status" validate:"omitempty,oneof=pending approved rejected info_requested suspended"`
}

// ListCreatorsRequest filters the consolidated creator list.
type ListCreatorsRequest struct {
	Status string `form:"status"`
	Email  string `form:"email"`
	UserID string `form:"userId"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// ConsolidatedCreator is the derived creator view: a verification record
// flattened together with its profile record. Never stored.
type ConsolidatedCreator struct {
	VerificationID  string            `json:"verificationId"`
	UserID          string            `json:"userId"`
	Email           string            `json:"email,omitempty"`
	Name            string            `json:"name"`
	FirstName       string            `json:"firstName,omitempty"`
	LastName        string            `json:"lastName,omitempty"`
	LogoURL         string            `json:"logoUrl,omitempty"`
	Bio             string            `json:"bio,omitempty"`
	SocialMedia     map[string]string `json:"socialMedia,omitempty"`
	ContentTypes    []string          `json:"contentTypes,omitempty"`
	ContentLinks    []string          `json:"contentLinks,omitempty"`
	Country         string            `json:"country,omitempty"`
	Gender          string            `json:"gender,omitempty"`
	Ethnicity       string            `json:"ethnicity,omitempty"`
	DateOfBirth     string            `json:"dateOfBirth,omitempty"`
	Pricing         map[string]string `json:"pricing,omitempty"`
	IDDocumentURL   string            `json:"idDocumentUrl,omitempty"`
	IntroVideoURL   string            `json:"introVideoUrl,omitempty"`
	Status          string            `json:"status"`
	FeedbackMessage string            `json:"feedbackMessage,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Pagination is the list metadata returned alongside any paginated payload.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// ConsolidatedCreatorList is one page of consolidated creators.
type ConsolidatedCreatorList struct {
	Creators   []ConsolidatedCreator `json:"creators"`
	Pagination Pagination            `json:"pagination"`
}

// UploadAssetRequest accompanies the multipart file upload.
type UploadAssetRequest struct {
	FileType       string `form:"fileType" validate:"required,oneof=logo id video"`
	Email          string `form:"email" validate:"omitempty,email"`
	VerificationID string `form:"verificationId" validate:"required"`
	UserID         string `form:"userId"`
}
