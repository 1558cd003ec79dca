package dto

import (
	"time"

	"giftlist_backend/internal/models"
)

// ---------------- Requests ----------------

type ContributeRequest struct {
	Amount      float64 `json:"amount" validate:"gte=0"`
	IsAnonymous bool    `json:"is_anonymous"`
}

// ---------------- Responses ----------------

type DonationResponse struct {
	ID          string           `json:"id"`
	GiftID      string           `json:"gift_id"`
	AuthorID    string           `json:"author_id"`
	IsAnonymous bool             `json:"is_anonymous"`
	Total       float64          `json:"total"`
	Donors      []*DonorResponse `json:"donors,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type DonorResponse struct {
	UserID    string        `json:"user_id"`
	Amount    float64       `json:"amount"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewDonationResponse(donation *models.Donation) *DonationResponse {
	if donation == nil {
		return nil
	}
	resp := &DonationResponse{
		ID:          donation.ID,
		GiftID:      donation.GiftID,
		AuthorID:    donation.AuthorID,
		IsAnonymous: donation.IsAnonymous,
		CreatedAt:   donation.CreatedAt,
	}
	for i := range donation.Donors {
		donor := &donation.Donors[i]
		resp.Total += donor.Amount
		resp.Donors = append(resp.Donors, &DonorResponse{
			UserID:    donor.UserID,
			Amount:    donor.Amount,
			User:      NewUserResponse(donor.User),
			CreatedAt: donor.CreatedAt,
		})
	}
	return resp
}

// ContributionResponse дополняет снимок сбора фактом пересечения порога.
type ContributionResponse struct {
	Donation    *DonationResponse `json:"donation"`
	TotalBefore float64           `json:"total_before"`
	TotalAfter  float64           `json:"total_after"`
	Opened      bool              `json:"opened"`
	Closed      bool              `json:"closed"`
}
