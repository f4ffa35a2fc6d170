package dto

import (
	"time"

	"creatorhub_backend/internal/models"
)

// CreateContestRequest carries the sectioned contest document.
type CreateContestRequest struct {
	UserID        string                      `json:"-"`
	BasicInfo     models.ContestBasicInfo     `json:"basicInfo" validate:"required"`
	Requirements  models.ContestRequirements  `json:"requirements"`
	PrizeTimeline models.ContestPrizeTimeline `json:"prizeTimeline"`
	Incentives    []models.ContestIncentive   `json:"incentives"`
}

// UpdateContestRequest is a partial update; nil sections are left untouched.
type UpdateContestRequest struct {
	BasicInfo     *models.ContestBasicInfo     `json:"basicInfo"`
	Requirements  *models.ContestRequirements  `json:"requirements"`
	PrizeTimeline *models.ContestPrizeTimeline `json:"prizeTimeline"`
	Incentives    *[]models.ContestIncentive   `json:"incentives"`
}

// ContestApprovalRequest is the administrative action for the contest flow.
type ContestApprovalRequest struct {
	ContestID string `json:"contestId" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=approve reject request_edit"`
	Message   string `json:"message"`
}

// ListContestsRequest filters the contest list.
type ListContestsRequest struct {
	Status string `form:"status"`
	UserID string `form:"userId"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// ContestResponse is a contest with its jsonb sections decoded.
type ContestResponse struct {
	ID              string                      `json:"id"`
	UserID          string                      `json:"userId"`
	BasicInfo       models.ContestBasicInfo     `json:"basicInfo"`
	Requirements    models.ContestRequirements  `json:"requirements"`
	PrizeTimeline   models.ContestPrizeTimeline `json:"prizeTimeline"`
	Incentives      []models.ContestIncentive   `json:"incentives,omitempty"`
	Budget          string                      `json:"budget"`
	WinnerCount     int                         `json:"winnerCount"`
	StartDate       *time.Time                  `json:"startDate,omitempty"`
	EndDate         *time.Time                  `json:"endDate,omitempty"`
	Status          models.ContestStatus        `json:"status"`
	FeedbackMessage string                      `json:"feedbackMessage,omitempty"`
	Views           int                         `json:"views"`
	OwnerName       string                      `json:"ownerName,omitempty"`
	OwnerEmail      string                      `json:"ownerEmail,omitempty"`
	CreatedAt       time.Time                   `json:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt"`

	Applications []ApplicationSummary            `json:"applications,omitempty"`
	Stats        *ContestApplicationStatsSummary `json:"stats,omitempty"`
}

// ContestListResponse is one page of contests.
type ContestListResponse struct {
	Contests   []ContestResponse `json:"contests"`
	Pagination Pagination        `json:"pagination"`
}

type ContestApplicationStatsSummary struct {
	TotalApplications    int64 `json:"totalApplications"`
	PendingApplications  int64 `json:"pendingApplications"`
	ApprovedApplications int64 `json:"approvedApplications"`
	RejectedApplications int64 `json:"rejectedApplications"`
}

// CreateApplicationRequest is a creator's application to a contest.
type CreateApplicationRequest struct {
	UserID          string   `json:"-"`
	ContestID       string   `json:"-"`
	PostURL         string   `json:"postUrl" validate:"omitempty,url"`
	ApplicationText string   `json:"applicationText"`
	SampleURLs      []string `json:"sampleUrls" validate:"omitempty,dive,url"`
}

// UpdateApplicationStatusRequest reviews one application.
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,oneof=approved rejected"`
}

// ApplicationSummary is the owner-facing view of one application.
type ApplicationSummary struct {
	ID              string                   `json:"id"`
	ContestID       string                   `json:"contestId"`
	UserID          string                   `json:"userId"`
	PostURL         string                   `json:"postUrl,omitempty"`
	ApplicationText string                   `json:"applicationText,omitempty"`
	SampleURLs      []string                 `json:"sampleUrls,omitempty"`
	Status          models.ApplicationStatus `json:"status"`
	CreatedAt       time.Time                `json:"createdAt"`
}
