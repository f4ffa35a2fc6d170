package repositories

import (
	"errors"
	"time"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContestNotFound = errors.New("contest not found")

// ContestCriteria filters the contest scan, ordered by created_at descending.
type ContestCriteria struct {
	Status string `form:"status"`
	UserID string `form:"userId"`
}

// ContestStats summarizes a brand's contests.
type ContestStats struct {
	TotalContests     int64 `json:"total_contests"`
	ActiveContests    int64 `json:"active_contests"`
	PendingContests   int64 `json:"pending_contests"`
	CompletedContests int64 `json:"completed_contests"`
}

type ContestRepository interface {
	Create(contest *models.Contest) error
	FindByID(id string) (*models.Contest, error)
	FindAll(criteria ContestCriteria) ([]models.Contest, error)
	FindByOwner(userID string) ([]models.Contest, error)
	FindActive(limit int) ([]models.Contest, error)
	Update(contest *models.Contest) error
	UpdateStatus(id string, status models.ContestStatus, feedback string) error
	Delete(id string) error
	IncrementViews(id string) error
	CompleteExpired(now time.Time) (int64, error)
	GetStats(userID string) (*ContestStats, error)
}

type ContestRepositoryImpl struct {
	db *gorm.DB
}

func NewContestRepository(db *gorm.DB) ContestRepository {
	return &ContestRepositoryImpl{db: db}
}

func (r *ContestRepositoryImpl) Create(contest *models.Contest) error {
	return r.db.Create(contest).Error
}

func (r *ContestRepositoryImpl) FindByID(id string) (*models.Contest, error) {
	var contest models.Contest
	err := r.db.First(&contest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}
	return &contest, nil
}

func (r *ContestRepositoryImpl) FindAll(criteria ContestCriteria) ([]models.Contest, error) {
	query := r.db.Model(&models.Contest{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}

	var contests []models.Contest
	err := query.Order("created_at DESC").Find(&contests).Error
	return contests, err
}

func (r *ContestRepositoryImpl) FindByOwner(userID string) ([]models.Contest, error) {
	var contests []models.Contest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&contests).Error
	return contests, err
}

func (r *ContestRepositoryImpl) FindActive(limit int) ([]models.Contest, error) {
	var contests []models.Contest
	err := r.db.Where("status = ?", models.ContestStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&contests).Error
	return contests, err
}

func (r *ContestRepositoryImpl) Update(contest *models.Contest) error {
	return r.db.Save(contest).Error
}

func (r *ContestRepositoryImpl) UpdateStatus(id string, status models.ContestStatus, feedback string) error {
	result := r.db.Model(&models.Contest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"feedback_message": feedback,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContestNotFound
	}
	return nil
}

func (r *ContestRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Contest{}, "id = ?", id).Error
}

func (r *ContestRepositoryImpl) IncrementViews(id string) error {
	return r.db.Model(&models.Contest{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// CompleteExpired flips active contests whose end date has passed to completed.
func (r *ContestRepositoryImpl) CompleteExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Contest{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.ContestStatusActive, now).
		Update("status", models.ContestStatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *ContestRepositoryImpl) GetStats(userID string) (*ContestStats, error) {
	var stats ContestStats
	base := r.db.Model(&models.Contest{}).Where("user_id = ?", userID)

	if err := base.Count(&stats.TotalContests).Error; err != nil {
		return nil, err
	}
	r.db.Model(&models.Contest{}).Where("user_id = ? AND status = ?", userID, models.ContestStatusActive).Count(&stats.ActiveContests)
	r.db.Model(&models.Contest{}).Where("user_id = ? AND status = ?", userID, models.ContestStatusPending).Count(&stats.PendingContests)
	r.db.Model(&models.Contest{}).Where("user_id = ? AND status = ?", userID, models.ContestStatusCompleted).Count(&stats.CompletedContests)

	return &stats, nil
}
