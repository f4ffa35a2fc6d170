package handlers

import (
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/storage"
	"creatorhub_backend/internal/validator"
)

// AppHandlers holds every HTTP handler.
type AppHandlers struct {
	AuthHandler            *AuthHandler
	CreatorApprovalHandler *CreatorApprovalHandler
	ContestHandler         *ContestHandler
	ContestApprovalHandler *ContestApprovalHandler
	VideoHandler           *VideoHandler
	LeaderboardHandler     *LeaderboardHandler
	NotificationHandler    *NotificationHandler
	FileHandler            *FileHandler
}

// NewAppHandlers wires services into handlers.
func NewAppHandlers(sc *services.ServiceContainer, store storage.Storage, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:            NewAuthHandler(base, sc.AuthService),
		CreatorApprovalHandler: NewCreatorApprovalHandler(base, sc.CreatorService, sc.ApprovalService, sc.UploadService),
		ContestHandler:         NewContestHandler(base, sc.ContestService),
		ContestApprovalHandler: NewContestApprovalHandler(base, sc.ApprovalService, sc.ContestService),
		VideoHandler:           NewVideoHandler(base, sc.VideoService, sc.LeaderboardService),
		LeaderboardHandler:     NewLeaderboardHandler(base, sc.LeaderboardService),
		NotificationHandler:    NewNotificationHandler(base, sc.NotificationService),
		FileHandler:            NewFileHandler(base, store),
	}
}
