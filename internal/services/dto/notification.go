package dto

import (
	"encoding/json"
	"time"

	"giftlist_backend/internal/models"
)

// ---------------- Criteria ----------------

// Для постраничной выборки уведомлений получателя.
type NotificationCriteria struct {
	Page       int
	PageSize   int
	UnreadOnly bool
}

// ---------------- Responses ----------------

type NotificationResponse struct {
	ID          string                 `json:"id"`
	RecipientID string                 `json:"recipient_id"`
	SenderID    *string                `json:"sender_id,omitempty"`
	Sender      *UserResponse          `json:"sender,omitempty"`
	Type        string                 `json:"type"`
	Message     string                 `json:"message"`
	Description string                 `json:"description,omitempty"`
	EntityID    string                 `json:"entity_id"`
	EntityModel string                 `json:"entity_model"`
	Entity      interface{}            `json:"entity,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
	IsRead      bool                   `json:"is_read"`
	ReadAt      *time.Time             `json:"read_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int64                   `json:"total"`
	UnreadCount   int64                   `json:"unread_count"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
}

// NewNotificationResponse выбирает текст по локали получателя:
// MessageRu для "ru" при наличии, иначе Message.
func NewNotificationResponse(notification *models.Notification, language string) *NotificationResponse {
	if notification == nil {
		return nil
	}

	message := notification.Message
	if language == models.LanguageRu && notification.MessageRu != "" {
		message = notification.MessageRu
	}

	var data map[string]interface{}
	if len(notification.Data) > 0 {
		// Ошибка разбора не фатальна, payload просто опускается.
		_ = json.Unmarshal(notification.Data, &data)
	}

	return &NotificationResponse{
		ID:          notification.ID,
		RecipientID: notification.RecipientID,
		SenderID:    notification.SenderID,
		Sender:      NewUserResponse(notification.Sender),
		Type:        notification.Type,
		Message:     message,
		Description: notification.Description,
		EntityID:    notification.EntityID,
		EntityModel: string(notification.EntityModel),
		Data:        data,
		IsRead:      notification.IsRead,
		ReadAt:      notification.ReadAt,
		CreatedAt:   notification.CreatedAt,
	}
}
