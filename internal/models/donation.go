package models

// Donation - сбор средств на подарок. На один подарок существует не более
// одного живого сбора (uniqueIndex по GiftID).
type Donation struct {
	BaseModel
	GiftID      string `gorm:"type:uuid;uniqueIndex;not null" json:"gift_id"`
	AuthorID    string `gorm:"type:uuid;not null" json:"author_id"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`

	// Relations
	Author *User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Donors []Donor `gorm:"foreignKey:DonationID" json:"donors,omitempty"`
}

// Donor - отдельный взнос. Неизменяем после создания; удаляется только
// вместе со всем сбором.
type Donor struct {
	BaseModel
	DonationID string  `gorm:"type:uuid;not null;index" json:"donation_id"`
	UserID     string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount     float64 `gorm:"type:decimal(15,2);not null" json:"amount"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
