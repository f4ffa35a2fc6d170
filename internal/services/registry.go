package services

import (
	"creatorhub_backend/internal/cache"
	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         *AuthService
	CreatorService      *CreatorService
	ApprovalService     *ApprovalService
	ContestService      *ContestService
	VideoService        *VideoService
	LeaderboardService  *LeaderboardService
	NotificationService *NotificationService
	UploadService       *UploadService
}

// NewServiceContainer wires repositories into services.
func NewServiceContainer(db *gorm.DB, store storage.Storage, c *cache.Cache, emailProvider email.Provider, cfg *config.Config) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	profileRepo := repositories.NewCreatorProfileRepository(db)
	brandProfileRepo := repositories.NewBrandProfileRepository(db)
	contestRepo := repositories.NewContestRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	videoRepo := repositories.NewVideoRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo),
		CreatorService:      NewCreatorService(verificationRepo, profileRepo, userRepo),
		ApprovalService:     NewApprovalService(verificationRepo, profileRepo, brandProfileRepo, contestRepo, userRepo, notificationRepo, emailProvider),
		ContestService:      NewContestService(contestRepo, applicationRepo, userRepo, notificationRepo),
		VideoService:        NewVideoService(videoRepo, purchaseRepo, verificationRepo, userRepo, notificationRepo, cfg),
		LeaderboardService:  NewLeaderboardService(purchaseRepo, verificationRepo, profileRepo, userRepo, c),
		NotificationService: NewNotificationService(notificationRepo),
		UploadService:       NewUploadService(verificationRepo, profileRepo, store, cfg),
	}
}
