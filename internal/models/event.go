package models

import "time"

// Event - событие (день рождения, сбор и т.п.) с участниками и подарками.
// Флаги StartNotificationSent/CompletionNotificationSent и GiftersRevealedAt -
// one-shot guard'ы планировщика: выставляются условным UPDATE и гарантируют,
// что каждое уведомление жизненного цикла уходит не более одного раза.
type Event struct {
	BaseModel
	OwnerID     int64  `gorm:"not null;index" json:"owner_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	StartDate time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate   *time.Time `gorm:"index" json:"end_date"`

	// IsAnonymous скрывает, кто что зарезервировал, до момента раскрытия.
	IsAnonymous       bool       `gorm:"default:false" json:"is_anonymous"`
	GiftersRevealedAt *time.Time `json:"gifters_revealed_at"`

	SendAcknowledgements bool `gorm:"default:false" json:"send_acknowledgements"`
	// AcknowledgementMessage поддерживает плейсхолдеры {name} и {event}.
	AcknowledgementMessage string `json:"acknowledgement_message"`

	StartNotificationSent      bool `gorm:"default:false" json:"-"`
	CompletionNotificationSent bool `gorm:"default:false" json:"-"`

	// Relations
	Members []User `gorm:"many2many:event_members" json:"members,omitempty"`
	Gifts   []Gift `gorm:"many2many:event_gifts" json:"gifts,omitempty"`
	Viewers []User `gorm:"many2many:event_viewers" json:"viewers,omitempty"`
}
