package repositories

import (
	"errors"

	"creatorhub_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
)

// VideoCriteria filters the public video listing.
type VideoCriteria struct {
	UserID   string `form:"userId"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreatorSales aggregates one creator's paid purchases.
type CreatorSales struct {
	UserID     string          `json:"userId"`
	GMV        decimal.Decimal `json:"gmv"`
	SalesCount int64           `json:"salesCount"`
	VideoCount int64           `json:"videoCount"`
}

type VideoRepository interface {
	Create(video *models.Video) error
	FindByID(id string) (*models.Video, error)
	FindAll(criteria VideoCriteria) ([]models.Video, int64, error)
	Update(video *models.Video) error
	IncrementViews(id string) error
	IncrementPurchaseCount(id string) error
	SetStatus(id string, status models.VideoStatus) error
}

type PurchaseRepository interface {
	Create(purchase *models.VideoPurchase) error
	FindByID(id string) (*models.VideoPurchase, error)
	FindByBuyerAndVideo(buyerUserID, videoID string) (*models.VideoPurchase, error)
	FindByCheckoutRef(checkoutRef string) (*models.VideoPurchase, error)
	FindByBuyer(buyerUserID string) ([]models.VideoPurchase, error)
	Update(purchase *models.VideoPurchase) error
	AggregateSalesByCreator(limit int) ([]CreatorSales, error)
}

type VideoRepositoryImpl struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &VideoRepositoryImpl{db: db}
}

func (r *VideoRepositoryImpl) Create(video *models.Video) error {
	return r.db.Create(video).Error
}

func (r *VideoRepositoryImpl) FindByID(id string) (*models.Video, error) {
	var video models.Video
	err := r.db.First(&video, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepositoryImpl) FindAll(criteria VideoCriteria) ([]models.Video, int64, error) {
	query := r.db.Model(&models.Video{})

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Offset((criteria.Page - 1) * criteria.PageSize).Limit(criteria.PageSize)
	}

	var videos []models.Video
	err := query.Order("created_at DESC").Find(&videos).Error
	return videos, total, err
}

func (r *VideoRepositoryImpl) Update(video *models.Video) error {
	return r.db.Save(video).Error
}

func (r *VideoRepositoryImpl) IncrementViews(id string) error {
	return r.db.Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *VideoRepositoryImpl) IncrementPurchaseCount(id string) error {
	return r.db.Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("purchase_count", gorm.Expr("purchase_count + 1")).Error
}

func (r *VideoRepositoryImpl) SetStatus(id string, status models.VideoStatus) error {
	result := r.db.Model(&models.Video{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

type PurchaseRepositoryImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &PurchaseRepositoryImpl{db: db}
}

func (r *PurchaseRepositoryImpl) Create(purchase *models.VideoPurchase) error {
	return r.db.Create(purchase).Error
}

func (r *PurchaseRepositoryImpl) FindByID(id string) (*models.VideoPurchase, error) {
	var purchase models.VideoPurchase
	err := r.db.First(&purchase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) FindByBuyerAndVideo(buyerUserID, videoID string) (*models.VideoPurchase, error) {
	var purchase models.VideoPurchase
	err := r.db.Where("buyer_user_id = ? AND video_id = ? AND status IN ?",
		buyerUserID, videoID, []models.PurchaseStatus{models.PurchaseStatusPending, models.PurchaseStatusPaid}).
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) FindByCheckoutRef(checkoutRef string) (*models.VideoPurchase, error) {
	var purchase models.VideoPurchase
	err := r.db.Where("checkout_ref = ?", checkoutRef).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) FindByBuyer(buyerUserID string) ([]models.VideoPurchase, error) {
	var purchases []models.VideoPurchase
	err := r.db.Preload("Video").
		Where("buyer_user_id = ?", buyerUserID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *PurchaseRepositoryImpl) Update(purchase *models.VideoPurchase) error {
	return r.db.Save(purchase).Error
}

// AggregateSalesByCreator sums paid purchase amounts per selling creator,
// ranked by GMV descending.
func (r *PurchaseRepositoryImpl) AggregateSalesByCreator(limit int) ([]CreatorSales, error) {
	var rows []CreatorSales
	err := r.db.Model(&models.VideoPurchase{}).
		Select(`videos.user_id AS user_id,
			COALESCE(SUM(video_purchases.amount), 0) AS gmv,
			COUNT(video_purchases.id) AS sales_count,
			COUNT(DISTINCT videos.id) AS video_count`).
		Joins("JOIN videos ON videos.id = video_purchases.video_id").
		Where("video_purchases.status = ?", models.PurchaseStatusPaid).
		Group("videos.user_id").
		Order("gmv DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
