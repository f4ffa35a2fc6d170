package dto

import (
	"time"

	"creatorhub_backend/internal/models"
)

// CreateVideoRequest publishes a sellable video.
type CreateVideoRequest struct {
	UserID      string `json:"-"`
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" validate:"required,url"`
	Thumbnail   string `json:"thumbnailUrl" validate:"omitempty,url"`
	Price       string `json:"price" validate:"required"`
	LicenseType string `json:"licenseType" validate:"required,oneof=standard exclusive"`
}

// ListVideosRequest filters the public video listing.
type ListVideosRequest struct {
	UserID   string `form:"userId"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// VideoResponse is the public view of a video.
type VideoResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	VideoURL      string             `json:"videoUrl,omitempty"`
	ThumbnailURL  string             `json:"thumbnailUrl,omitempty"`
	Price         string             `json:"price"`
	LicenseType   models.LicenseType `json:"licenseType"`
	Views         int                `json:"views"`
	PurchaseCount int                `json:"purchaseCount"`
	Status        models.VideoStatus `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// VideoListResponse is one page of videos.
type VideoListResponse struct {
	Videos     []VideoResponse `json:"videos"`
	Pagination Pagination      `json:"pagination"`
}

// PurchaseResponse is the buyer-facing view of a purchase, including the
// external checkout redirect.
type PurchaseResponse struct {
	ID          string                `json:"id"`
	VideoID     string                `json:"videoId"`
	BuyerUserID string                `json:"buyerUserId"`
	Amount      string                `json:"amount"`
	LicenseType models.LicenseType    `json:"licenseType"`
	CheckoutURL string                `json:"checkoutUrl,omitempty"`
	Status      models.PurchaseStatus `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// LeaderboardEntry is one ranked creator on the GMV leaderboard.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	LogoURL    string `json:"logoUrl,omitempty"`
	GMV        string `json:"gmv"`
	SalesCount int64  `json:"salesCount"`
	VideoCount int64  `json:"videoCount"`
}
