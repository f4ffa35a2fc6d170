package services

import (
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"
)

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) List(recipientEmail string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.FindByRecipient(recipientEmail, criteria)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.GetUnreadCount(recipientEmail)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

// MarkAsRead flips one notification. The recipient check keeps users out of
// each other's feeds.
func (s *NotificationService) MarkAsRead(notificationID, recipientEmail string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("Notification not found")
		}
		return err
	}

	if notification.RecipientEmail != recipientEmail {
		return apperrors.ErrInsufficientPermissions
	}

	return s.notificationRepo.MarkAsRead(notificationID)
}

func (s *NotificationService) MarkAllAsRead(recipientEmail string) error {
	return s.notificationRepo.MarkAllAsRead(recipientEmail)
}

func buildNotificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:             n.ID,
		RecipientEmail: n.RecipientEmail,
		Type:           n.Type,
		Message:        n.Message,
		IsRead:         n.IsRead,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}
