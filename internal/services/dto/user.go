package dto

import (
	"time"

	"giftlist_backend/internal/models"
)

// ---------------- Requests ----------------

type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Username  *string `json:"username,omitempty" validate:"omitempty,max=100"`
	PhotoURL  *string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Language  *string `json:"language,omitempty" validate:"omitempty,min=2,max=8"`
	Currency  *string `json:"currency,omitempty" validate:"omitempty,currency"`
}

// UpdateViewersRequest заменяет allow-list целиком. Пустой список
// означает "виден всем".
type UpdateViewersRequest struct {
	ViewerIDs []string `json:"viewer_ids" validate:"dive,uuid"`
}

// ---------------- Responses ----------------

type UserResponse struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name,omitempty"`
	Username   string    `json:"username,omitempty"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	Language   string    `json:"language"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:         user.ID,
		TelegramID: user.TelegramID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Username:   user.Username,
		PhotoURL:   user.PhotoURL,
		Language:   user.Language,
		Currency:   user.Currency,
		CreatedAt:  user.CreatedAt,
	}
}

func NewUserResponses(users []models.User) []*UserResponse {
	responses := make([]*UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, NewUserResponse(&users[i]))
	}
	return responses
}
