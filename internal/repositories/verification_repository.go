package repositories

import (
	"errors"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationNotFound = errors.New("verification record not found")

// VerificationCriteria filters the verification scan. All fields are optional;
// the matching set is always returned whole, ordered by created_at descending.
type VerificationCriteria struct {
	Status string `form:"status"`
	Email  string `form:"email"`
	UserID string `form:"userId"`
}

type VerificationRepository interface {
	Create(v *models.CreatorVerification) error
	FindByID(id string) (*models.CreatorVerification, error)
	FindAll(criteria VerificationCriteria) ([]models.CreatorVerification, error)
	Update(v *models.CreatorVerification) error
	UpdateStatus(id string, status models.VerificationStatus, feedback string) error
	PatchAssetURL(id string, field string, url string) error
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) Create(v *models.CreatorVerification) error {
	return r.db.Create(v).Error
}

func (r *VerificationRepositoryImpl) FindByID(id string) (*models.CreatorVerification, error) {
	var v models.CreatorVerification
	err := r.db.First(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepositoryImpl) FindAll(criteria VerificationCriteria) ([]models.CreatorVerification, error) {
	query := r.db.Model(&models.CreatorVerification{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Email != "" {
		query = query.Where("email = ? OR profile_data->>'email' = ?", criteria.Email, criteria.Email)
	}
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}

	var records []models.CreatorVerification
	err := query.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *VerificationRepositoryImpl) Update(v *models.CreatorVerification) error {
	return r.db.Save(v).Error
}

func (r *VerificationRepositoryImpl) UpdateStatus(id string, status models.VerificationStatus, feedback string) error {
	result := r.db.Model(&models.CreatorVerification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"feedback_message": feedback,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVerificationNotFound
	}
	return nil
}

// PatchAssetURL writes one of the uploaded-asset URL columns.
func (r *VerificationRepositoryImpl) PatchAssetURL(id string, field string, url string) error {
	result := r.db.Model(&models.CreatorVerification{}).
		Where("id = ?", id).
		Update(field, url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVerificationNotFound
	}
	return nil
}
