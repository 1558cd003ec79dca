package models

// Gift - позиция вишлиста. Владелец хранится по Telegram ID (денормализовано,
// чтобы выбирать вишлист без join на users).
type Gift struct {
	BaseModel
	OwnerID     int64  `gorm:"not null;index" json:"owner_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PhotoURL    string `json:"photo_url"`

	Price    *float64 `gorm:"type:decimal(15,2)" json:"price"`
	Currency string   `gorm:"type:varchar(8);default:'USD'" json:"currency"`

	// Инвариант: ReservedBy заполнен тогда и только тогда, когда IsReserved = true.
	IsReserved bool   `gorm:"default:false" json:"is_reserved"`
	ReservedBy *int64 `gorm:"index" json:"reserved_by"`

	IsGiven bool `gorm:"default:false" json:"is_given"`
	// IsThanked может стать true только после IsGiven.
	IsThanked bool `gorm:"default:false" json:"is_thanked"`

	// Relations
	Donation *Donation `gorm:"foreignKey:GiftID" json:"donation,omitempty"`
	Viewers  []User    `gorm:"many2many:gift_viewers" json:"viewers,omitempty"`
}
