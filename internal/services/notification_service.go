package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"giftlist_backend/internal/models"
	"giftlist_backend/internal/repositories"
	"giftlist_backend/internal/services/dto"
	"giftlist_backend/pkg/apperrors"
)

// NotifyParams - полный набор полей уведомления. Recipient, Type, Message,
// EntityID и EntityModel обязательны, остальное опционально.
type NotifyParams struct {
	RecipientID string
	SenderID    *string
	Type        string
	Message     string
	MessageRu   string
	Description string
	EntityID    string
	EntityModel models.EntityModel
	Data        map[string]interface{}
}

type NotificationService interface {
	// Notify создает одно уведомление. Отдает ValidationError при
	// отсутствии обязательных полей или значении вне закрытого набора.
	Notify(params NotifyParams) (*models.Notification, error)

	// NotifyMany рассылает одно и то же уведомление списку получателей,
	// дубликаты в списке схлопываются.
	NotifyMany(recipientIDs []string, params NotifyParams) error

	GetNotification(userID, notificationID string) (*dto.NotificationResponse, error)
	GetUserNotifications(userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error
}

type notificationService struct {
	notificationRepo  repositories.NotificationRepository
	userRepo          repositories.UserRepository
	giftRepo          repositories.GiftRepository
	eventRepo         repositories.EventRepository
	friendRequestRepo repositories.FriendRequestRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	giftRepo repositories.GiftRepository,
	eventRepo repositories.EventRepository,
	friendRequestRepo repositories.FriendRequestRepository,
) NotificationService {
	return &notificationService{
		notificationRepo:  notificationRepo,
		userRepo:          userRepo,
		giftRepo:          giftRepo,
		eventRepo:         eventRepo,
		friendRequestRepo: friendRequestRepo,
	}
}

// ---------------- Fan-out ----------------

func (s *notificationService) Notify(params NotifyParams) (*models.Notification, error) {
	notification, err := s.build(params)
	if err != nil {
		return nil, err
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notification, nil
}

func (s *notificationService) NotifyMany(recipientIDs []string, params NotifyParams) error {
	seen := make(map[string]bool, len(recipientIDs))
	notifications := make([]models.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		if recipientID == "" || seen[recipientID] {
			continue
		}
		seen[recipientID] = true

		params.RecipientID = recipientID
		notification, err := s.build(params)
		if err != nil {
			return err
		}
		notifications = append(notifications, *notification)
	}
	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) build(params NotifyParams) (*models.Notification, error) {
	details := map[string]string{}
	if params.RecipientID == "" {
		details["recipient_id"] = "recipient is required"
	}
	if params.Type == "" {
		details["type"] = "type is required"
	} else if !models.KnownNotificationTypes[params.Type] {
		details["type"] = fmt.Sprintf("unknown notification type %q", params.Type)
	}
	if params.Message == "" {
		details["message"] = "message is required"
	}
	if params.EntityID == "" {
		details["entity_id"] = "entity id is required"
	}
	if params.EntityModel == "" {
		details["entity_model"] = "entity model is required"
	} else if !models.KnownEntityModels[params.EntityModel] {
		details["entity_model"] = fmt.Sprintf("unknown entity model %q", params.EntityModel)
	}
	if len(details) > 0 {
		return nil, apperrors.ValidationError(details)
	}

	var dataJSON datatypes.JSON
	if params.Data != nil {
		raw, err := json.Marshal(params.Data)
		if err != nil {
			return nil, apperrors.InternalError(fmt.Errorf("marshal notification data: %w", err))
		}
		dataJSON = datatypes.JSON(raw)
	}

	return &models.Notification{
		RecipientID: params.RecipientID,
		SenderID:    params.SenderID,
		Type:        params.Type,
		Message:     params.Message,
		MessageRu:   params.MessageRu,
		Description: params.Description,
		EntityID:    params.EntityID,
		EntityModel: params.EntityModel,
		Data:        dataJSON,
	}, nil
}

// ---------------- Read side ----------------

func (s *notificationService) GetNotification(userID, notificationID string) (*dto.NotificationResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	// Чужое уведомление неотличимо от несуществующего.
	if notification.RecipientID != userID {
		return nil, apperrors.ErrNotFound(repositories.ErrNotificationNotFound)
	}

	response := dto.NewNotificationResponse(notification, user.Language)
	response.Entity = s.resolveEntity(notification)
	return response, nil
}

func (s *notificationService) GetUserNotifications(userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 || criteria.PageSize > 100 {
		criteria.PageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindByCriteria(repositories.NotificationCriteria{
		RecipientID: userID,
		UnreadOnly:  criteria.UnreadOnly,
		Limit:       criteria.PageSize,
		Offset:      (criteria.Page - 1) * criteria.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.UnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		response := dto.NewNotificationResponse(&notifications[i], user.Language)
		response.Entity = s.resolveEntity(&notifications[i])
		responses = append(responses, response)
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.UnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	if err := s.notificationRepo.MarkAsRead(notificationID, userID); err != nil {
		return apperrors.ErrNotFound(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	if err := s.notificationRepo.Delete(notificationID, userID); err != nil {
		return apperrors.ErrNotFound(err)
	}
	return nil
}

// resolveEntity подгружает сущность, на которую ссылается уведомление.
// Явная таблица соответствия EntityModel -> репозиторий. Ошибки загрузки
// не фатальны: ссылка могла протухнуть (подарок удален и т.п.).
func (s *notificationService) resolveEntity(notification *models.Notification) interface{} {
	switch notification.EntityModel {
	case models.EntityModelUser:
		user, err := s.userRepo.FindByID(notification.EntityID)
		if err != nil {
			return nil
		}
		return dto.NewUserResponse(user)
	case models.EntityModelGift:
		gift, err := s.giftRepo.FindByID(notification.EntityID)
		if err != nil {
			return nil
		}
		return dto.NewGiftResponse(gift)
	case models.EntityModelEvent:
		event, err := s.eventRepo.FindByID(notification.EntityID)
		if err != nil {
			return nil
		}
		return dto.NewEventResponse(event)
	case models.EntityModelFriendRequest:
		request, err := s.friendRequestRepo.FindByID(notification.EntityID)
		if err != nil {
			return nil
		}
		return dto.NewFriendRequestResponse(request)
	default:
		return nil
	}
}
