package models

// User - пользователь, привязанный к Telegram-аккаунту.
// Создается при первом входе через Telegram и никогда не удаляется физически.
type User struct {
	BaseModel
	TelegramID int64  `gorm:"uniqueIndex;not null" json:"telegram_id"`
	FirstName  string `gorm:"not null" json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `gorm:"index" json:"username"`
	PhotoURL   string `json:"photo_url"`
	Language   string `gorm:"type:varchar(8);default:'en'" json:"language"`
	Currency   string `gorm:"type:varchar(8);default:'USD'" json:"currency"`

	// Relations
	Friends []User `gorm:"many2many:user_friends;joinForeignKey:UserID;joinReferences:FriendID" json:"friends,omitempty"`
	Blocked []User `gorm:"many2many:user_blocked;joinForeignKey:UserID;joinReferences:BlockedID" json:"blocked,omitempty"`

	// Viewers - allow-list видимости профиля. Пустой список = профиль публичный.
	Viewers []User `gorm:"many2many:user_viewers;joinForeignKey:UserID;joinReferences:ViewerID" json:"viewers,omitempty"`
	// GiftViewers - allow-list видимости подаренных пользователем подарков.
	GiftViewers []User `gorm:"many2many:user_gift_viewers;joinForeignKey:UserID;joinReferences:ViewerID" json:"gift_viewers,omitempty"`
}

// LanguageRu - единственная локаль, для которой храним переведенный вариант уведомлений.
const LanguageRu = "ru"
