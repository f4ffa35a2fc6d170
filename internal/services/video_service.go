package services

import (
	"fmt"

	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VideoService struct {
	videoRepo        repositories.VideoRepository
	purchaseRepo     repositories.PurchaseRepository
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	cfg              *config.Config
}

func NewVideoService(
	videoRepo repositories.VideoRepository,
	purchaseRepo repositories.PurchaseRepository,
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	cfg *config.Config,
) *VideoService {
	return &VideoService{
		videoRepo:        videoRepo,
		purchaseRepo:     purchaseRepo,
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		cfg:              cfg,
	}
}

// CreateVideo publishes a sellable video. Only creators with an approved
// verification may sell.
func (s *VideoService) CreateVideo(req *dto.CreateVideoRequest) (*models.Video, error) {
	creator, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, err
	}
	if creator.Role != models.UserRoleCreator {
		return nil, apperrors.ErrInsufficientPermissions
	}

	approved, err := s.verificationRepo.FindAll(repositories.VerificationCriteria{
		UserID: req.UserID,
		Status: string(models.VerificationStatusApproved),
	})
	if err != nil {
		return nil, err
	}
	if len(approved) == 0 {
		return nil, apperrors.NewForbiddenError("Only approved creators can publish videos")
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, apperrors.NewBadRequestError("Invalid price")
	}

	video := &models.Video{
		UserID:       req.UserID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.Thumbnail,
		Price:        price,
		LicenseType:  models.LicenseType(req.LicenseType),
		Status:       models.VideoStatusPublished,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) GetVideo(videoID, requesterID string) (*dto.VideoResponse, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVideoNotFound) {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, err
	}

	if requesterID != video.UserID {
		go s.videoRepo.IncrementViews(videoID)
	}

	return buildVideoResponse(video), nil
}

func (s *VideoService) List(req dto.ListVideosRequest) (*dto.VideoListResponse, error) {
	criteria := repositories.VideoCriteria{
		UserID:   req.UserID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if criteria.Status == "" {
		criteria.Status = string(models.VideoStatusPublished)
	}
	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.PageSize <= 0 {
		criteria.PageSize = 10
	}

	videos, total, err := s.videoRepo.FindAll(criteria)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.VideoResponse, 0, len(videos))
	for i := range videos {
		responses = append(responses, *buildVideoResponse(&videos[i]))
	}

	pages := int((total + int64(criteria.PageSize) - 1) / int64(criteria.PageSize))
	return &dto.VideoListResponse{
		Videos: responses,
		Pagination: dto.Pagination{
			Total: int(total),
			Page:  criteria.Page,
			Limit: criteria.PageSize,
			Pages: pages,
		},
	}, nil
}

// Purchase opens a pending purchase and hands back the external checkout
// redirect. Payment confirmation arrives later through ConfirmPurchase.
func (s *VideoService) Purchase(videoID, buyerUserID string) (*dto.PurchaseResponse, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVideoNotFound) {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, err
	}

	if video.Status != models.VideoStatusPublished {
		return nil, apperrors.NewBadRequestError("Video is not available for purchase")
	}
	if video.UserID == buyerUserID {
		return nil, apperrors.ErrCannotPurchaseOwnVideo
	}

	if _, err := s.purchaseRepo.FindByBuyerAndVideo(buyerUserID, videoID); err == nil {
		return nil, apperrors.ErrVideoAlreadyPurchased
	} else if !apperrors.Is(err, repositories.ErrPurchaseNotFound) {
		return nil, err
	}

	purchase := &models.VideoPurchase{
		VideoID:     videoID,
		BuyerUserID: buyerUserID,
		Amount:      video.Price,
		LicenseType: video.LicenseType,
		CheckoutRef: uuid.NewString(),
		Status:      models.PurchaseStatusPending,
	}

	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	response := buildPurchaseResponse(purchase)
	if s.cfg != nil && s.cfg.Checkout.BaseURL != "" {
		response.CheckoutURL = fmt.Sprintf("%s/%s", s.cfg.Checkout.BaseURL, purchase.CheckoutRef)
	}
	return response, nil
}

// ConfirmPurchase settles a pending purchase after the payment callback.
// An exclusive license delists the video so it cannot be sold again.
func (s *VideoService) ConfirmPurchase(checkoutRef string) (*models.VideoPurchase, error) {
	purchase, err := s.findByCheckoutRef(checkoutRef)
	if err != nil {
		return nil, err
	}

	if purchase.Status == models.PurchaseStatusPaid {
		return purchase, nil
	}
	if purchase.Status != models.PurchaseStatusPending {
		return nil, apperrors.NewBadRequestError("Purchase is not awaiting payment")
	}

	purchase.Status = models.PurchaseStatusPaid
	if err := s.purchaseRepo.Update(purchase); err != nil {
		return nil, err
	}

	if err := s.videoRepo.IncrementPurchaseCount(purchase.VideoID); err != nil {
		logger.Error("Failed to bump purchase count", "video_id", purchase.VideoID, "error", err)
	}

	video, err := s.videoRepo.FindByID(purchase.VideoID)
	if err == nil {
		if video.LicenseType == models.LicenseTypeExclusive {
			if err := s.videoRepo.SetStatus(video.ID, models.VideoStatusDelisted); err != nil {
				logger.Error("Failed to delist exclusively sold video", "video_id", video.ID, "error", err)
			}
		}
		s.notifySeller(video)
	}

	return purchase, nil
}

func (s *VideoService) GetBuyerPurchases(buyerUserID, requesterID string) ([]dto.PurchaseResponse, error) {
	if buyerUserID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	purchases, err := s.purchaseRepo.FindByBuyer(buyerUserID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		responses = append(responses, *buildPurchaseResponse(&purchases[i]))
	}
	return responses, nil
}

func (s *VideoService) findByCheckoutRef(checkoutRef string) (*models.VideoPurchase, error) {
	purchase, err := s.purchaseRepo.FindByCheckoutRef(checkoutRef)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPurchaseNotFound) {
			return nil, apperrors.NewNotFoundError("Purchase not found")
		}
		return nil, err
	}
	return purchase, nil
}

func (s *VideoService) notifySeller(video *models.Video) {
	seller, err := s.userRepo.FindByID(video.UserID)
	if err != nil {
		logger.Error("Failed to resolve seller for sale notification", "user_id", video.UserID, "error", err)
		return
	}
	if err := s.notificationRepo.CreateVideoSoldNotification(seller.Email, video.Title); err != nil {
		logger.Error("Failed to record sale notification", "user_id", video.UserID, "error", err)
	}
}

func buildVideoResponse(video *models.Video) *dto.VideoResponse {
	return &dto.VideoResponse{
		ID:            video.ID,
		UserID:        video.UserID,
		Title:         video.Title,
		Description:   video.Description,
		VideoURL:      video.VideoURL,
		ThumbnailURL:  video.ThumbnailURL,
		Price:         video.Price.String(),
		LicenseType:   video.LicenseType,
		Views:         video.Views,
		PurchaseCount: video.PurchaseCount,
		Status:        video.Status,
		CreatedAt:     video.CreatedAt,
	}
}

func buildPurchaseResponse(purchase *models.VideoPurchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:          purchase.ID,
		VideoID:     purchase.VideoID,
		BuyerUserID: purchase.BuyerUserID,
		Amount:      purchase.Amount.String(),
		LicenseType: purchase.LicenseType,
		Status:      purchase.Status,
		CreatedAt:   purchase.CreatedAt,
	}
}
