package models

import (
	"time"

	"gorm.io/datatypes"
)

// EntityModel - тип сущности, на которую ссылается уведомление.
// Полиморфная ссылка: разрешается явной таблицей соответствия на чтении,
// без рефлексии.
type EntityModel string

const (
	EntityModelUser          EntityModel = "user"
	EntityModelEvent         EntityModel = "event"
	EntityModelGift          EntityModel = "gift"
	EntityModelFriendRequest EntityModel = "friend_request"
)

// Закрытый набор типов уведомлений.
const (
	NotificationGiftReserved          = "gift_reserved"
	NotificationGiftGiven             = "gift_given"
	NotificationGiftThankYouNote      = "gift_thank_you_note"
	NotificationFundraisingOpened     = "gift_fundraising_opened"
	NotificationFundraisingClosed     = "gift_fundraising_closed"
	NotificationFriendRequest         = "friend_request"
	NotificationFriendRequestAccepted = "friend_request_accepted"
	NotificationFriendRequestDeclined = "friend_request_declined"
	NotificationEventStartingSoon     = "event_starting_soon"
	NotificationEventCompleted        = "event_completed"
	NotificationEventThankYou         = "event_thank_you"
	NotificationEventGiftersRevealed  = "event_gifters_revealed"
)

// KnownNotificationTypes перечисляет допустимые значения Type.
var KnownNotificationTypes = map[string]bool{
	NotificationGiftReserved:          true,
	NotificationGiftGiven:             true,
	NotificationGiftThankYouNote:      true,
	NotificationFundraisingOpened:     true,
	NotificationFundraisingClosed:     true,
	NotificationFriendRequest:         true,
	NotificationFriendRequestAccepted: true,
	NotificationFriendRequestDeclined: true,
	NotificationEventStartingSoon:     true,
	NotificationEventCompleted:        true,
	NotificationEventThankYou:         true,
	NotificationEventGiftersRevealed:  true,
}

// KnownEntityModels перечисляет допустимые значения EntityModel.
var KnownEntityModels = map[EntityModel]bool{
	EntityModelUser:          true,
	EntityModelEvent:         true,
	EntityModelGift:          true,
	EntityModelFriendRequest: true,
}

type Notification struct {
	BaseModel
	RecipientID string  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SenderID    *string `gorm:"type:uuid" json:"sender_id"`

	Type string `gorm:"not null" json:"type"` // "gift_reserved", "event_completed", ...

	// Message - текст по умолчанию, MessageRu - локализованный вариант.
	// На чтении выбирается по локали получателя с откатом на Message.
	Message     string `gorm:"not null" json:"message"`
	MessageRu   string `json:"message_ru,omitempty"`
	Description string `json:"description"`

	EntityID    string         `gorm:"not null" json:"entity_id"`
	EntityModel EntityModel    `gorm:"type:varchar(20);not null" json:"entity_model"`
	Data        datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`

	IsRead bool       `gorm:"default:false" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
