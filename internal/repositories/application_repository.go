package repositories

import (
	"errors"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application already exists")
)

// ApplicationStats summarizes applications against one contest.
type ApplicationStats struct {
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	RejectedApplications int64 `json:"rejected_applications"`
}

type ApplicationRepository interface {
	Create(application *models.ContestApplication) error
	FindByID(id string) (*models.ContestApplication, error)
	FindByContest(contestID string) ([]models.ContestApplication, error)
	FindByCreator(userID string) ([]models.ContestApplication, error)
	UpdateStatus(id string, status models.ApplicationStatus) error
	GetStats(contestID string) (*ApplicationStats, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(application *models.ContestApplication) error {
	var existing models.ContestApplication
	err := r.db.Where("contest_id = ? AND user_id = ?", application.ContestID, application.UserID).
		First(&existing).Error
	if err == nil {
		return ErrApplicationAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.ContestApplication, error) {
	var application models.ContestApplication
	err := r.db.First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByContest(contestID string) ([]models.ContestApplication, error) {
	var applications []models.ContestApplication
	err := r.db.Where("contest_id = ?", contestID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByCreator(userID string) ([]models.ContestApplication, error) {
	var applications []models.ContestApplication
	err := r.db.Preload("Contest").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.ContestApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) GetStats(contestID string) (*ApplicationStats, error) {
	var stats ApplicationStats
	base := r.db.Model(&models.ContestApplication{}).Where("contest_id = ?", contestID)

	if err := base.Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}
	r.db.Model(&models.ContestApplication{}).Where("contest_id = ? AND status = ?", contestID, models.ApplicationStatusPending).Count(&stats.PendingApplications)
	r.db.Model(&models.ContestApplication{}).Where("contest_id = ? AND status = ?", contestID, models.ApplicationStatusApproved).Count(&stats.ApprovedApplications)
	r.db.Model(&models.ContestApplication{}).Where("contest_id = ? AND status = ?", contestID, models.ApplicationStatusRejected).Count(&stats.RejectedApplications)

	return &stats, nil
}
