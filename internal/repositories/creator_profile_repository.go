package repositories

import (
	"errors"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("creator profile not found")
	ErrBrandProfileNotFound = errors.New("brand profile not found")
)

type CreatorProfileRepository interface {
	FindByEmail(email string) (*models.CreatorProfile, error)
	Upsert(profile *models.CreatorProfile) error
	SetVerificationStatus(email string, status string) error
	SetAssetURL(email string, field string, url string) error
}

type BrandProfileRepository interface {
	FindByEmail(email string) (*models.BrandProfile, error)
	Upsert(profile *models.BrandProfile) error
	SetReviewStatus(email string, status string) error
}

type CreatorProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewCreatorProfileRepository(db *gorm.DB) CreatorProfileRepository {
	return &CreatorProfileRepositoryImpl{db: db}
}

func (r *CreatorProfileRepositoryImpl) FindByEmail(email string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	err := r.db.First(&profile, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *CreatorProfileRepositoryImpl) Upsert(profile *models.CreatorProfile) error {
	var existing models.CreatorProfile
	err := r.db.First(&existing, "email = ?", profile.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(profile).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&models.CreatorProfile{}).
		Where("email = ?", profile.Email).
		Updates(profile).Error
}

// SetVerificationStatus mirrors a simplified verification status onto the
// profile. Missing profiles are not an error; the mirror is opportunistic.
func (r *CreatorProfileRepositoryImpl) SetVerificationStatus(email string, status string) error {
	result := r.db.Model(&models.CreatorProfile{}).
		Where("email = ?", email).
		Update("verification_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *CreatorProfileRepositoryImpl) SetAssetURL(email string, field string, url string) error {
	result := r.db.Model(&models.CreatorProfile{}).
		Where("email = ?", email).
		Update(field, url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

type BrandProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewBrandProfileRepository(db *gorm.DB) BrandProfileRepository {
	return &BrandProfileRepositoryImpl{db: db}
}

func (r *BrandProfileRepositoryImpl) FindByEmail(email string) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := r.db.First(&profile, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *BrandProfileRepositoryImpl) Upsert(profile *models.BrandProfile) error {
	var existing models.BrandProfile
	err := r.db.First(&existing, "email = ?", profile.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(profile).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&models.BrandProfile{}).
		Where("email = ?", profile.Email).
		Updates(profile).Error
}

func (r *BrandProfileRepositoryImpl) SetReviewStatus(email string, status string) error {
	result := r.db.Model(&models.BrandProfile{}).
		Where("email = ?", email).
		Update("review_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBrandProfileNotFound
	}
	return nil
}
