package dto

import (
	"time"

	"giftlist_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateGiftRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	URL         string   `json:"url" validate:"omitempty,url"`
	PhotoURL    string   `json:"photo_url" validate:"omitempty,url"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Currency    string   `json:"currency" validate:"omitempty,currency"`
	ViewerIDs   []string `json:"viewer_ids" validate:"dive,uuid"`
}

type UpdateGiftRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	URL         *string  `json:"url,omitempty" validate:"omitempty,url"`
	PhotoURL    *string  `json:"photo_url,omitempty" validate:"omitempty,url"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency    *string  `json:"currency,omitempty" validate:"omitempty,currency"`
}

// ---------------- Responses ----------------

type GiftResponse struct {
	ID          string   `json:"id"`
	OwnerID     int64    `json:"owner_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    string   `json:"currency"`

	IsReserved bool   `json:"is_reserved"`
	ReservedBy *int64 `json:"reserved_by,omitempty"`
	IsGiven    bool   `json:"is_given"`
	IsThanked  bool   `json:"is_thanked"`

	Donation  *DonationResponse `json:"donation,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewGiftResponse(gift *models.Gift) *GiftResponse {
	if gift == nil {
		return nil
	}
	return &GiftResponse{
		ID:          gift.ID,
		OwnerID:     gift.OwnerID,
		Name:        gift.Name,
		Description: gift.Description,
		URL:         gift.URL,
		PhotoURL:    gift.PhotoURL,
		Price:       gift.Price,
		Currency:    gift.Currency,
		IsReserved:  gift.IsReserved,
		ReservedBy:  gift.ReservedBy,
		IsGiven:     gift.IsGiven,
		IsThanked:   gift.IsThanked,
		Donation:    NewDonationResponse(gift.Donation),
		CreatedAt:   gift.CreatedAt,
		UpdatedAt:   gift.UpdatedAt,
	}
}

func NewGiftResponses(gifts []models.Gift) []*GiftResponse {
	responses := make([]*GiftResponse, 0, len(gifts))
	for i := range gifts {
		responses = append(responses, NewGiftResponse(&gifts[i]))
	}
	return responses
}
