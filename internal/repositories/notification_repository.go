package repositories

import (
	"errors"
	"fmt"
	"time"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification type tags
const (
	NotificationTypeVerificationStatus = "verification_status"
	NotificationTypeContestStatus      = "contest_status"
	NotificationTypeApplicationStatus  = "application_status"
	NotificationTypeVideoSold          = "video_sold"
)

// NotificationCriteria filters a recipient's notification list.
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id string) (*models.Notification, error)
	FindByRecipient(email string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(id string) error
	MarkAllAsRead(email string) error
	GetUnreadCount(email string) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)

	// Factory methods for common notification types
	CreateStatusNotification(recipientEmail, notificationType, message string) error
	CreateVideoSoldNotification(sellerEmail, videoTitle string) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if notification.RecipientEmail == "" {
		return errors.New("notification recipient email is required")
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindByRecipient(email string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("recipient_email = ?", email)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Offset((criteria.Page - 1) * criteria.PageSize).Limit(criteria.PageSize)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(id string) error {
	now := time.Now()
	result := r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(email string) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).
		Where("recipient_email = ? AND is_read = ?", email, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		}).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(email string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_email = ? AND is_read = ?", email, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ? AND is_read = ?", cutoff, true).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// Factory methods

func (r *NotificationRepositoryImpl) CreateStatusNotification(recipientEmail, notificationType, message string) error {
	return r.Create(&models.Notification{
		RecipientEmail: recipientEmail,
		Type:           notificationType,
		Message:        message,
	})
}

func (r *NotificationRepositoryImpl) CreateVideoSoldNotification(sellerEmail, videoTitle string) error {
	return r.Create(&models.Notification{
		RecipientEmail: sellerEmail,
		Type:           NotificationTypeVideoSold,
		Message:        fmt.Sprintf("Your video %q has been purchased.", videoTitle),
	})
}
