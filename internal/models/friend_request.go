package models

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
)

// FriendRequest - заявка в друзья. Отклоненная или принятая заявка удаляется,
// терминальных статусов в таблице не остается. Между парой пользователей
// одновременно существует не более одной pending-заявки (проверяется в обе стороны).
type FriendRequest struct {
	BaseModel
	RequesterID string              `gorm:"type:uuid;not null;index" json:"requester_id"`
	RecipientID string              `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Status      FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
