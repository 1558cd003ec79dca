package dto

import (
	"time"

	"giftlist_backend/internal/models"
)

// ---------------- Requests ----------------

type SendFriendRequestRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
}

type RespondFriendRequestRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline"`
}

// ---------------- Responses ----------------

type FriendRequestResponse struct {
	ID        string        `json:"id"`
	Requester *UserResponse `json:"requester,omitempty"`
	Recipient *UserResponse `json:"recipient,omitempty"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewFriendRequestResponse(request *models.FriendRequest) *FriendRequestResponse {
	if request == nil {
		return nil
	}
	return &FriendRequestResponse{
		ID:        request.ID,
		Requester: NewUserResponse(request.Requester),
		Recipient: NewUserResponse(request.Recipient),
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
	}
}

func NewFriendRequestResponses(requests []models.FriendRequest) []*FriendRequestResponse {
	responses := make([]*FriendRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, NewFriendRequestResponse(&requests[i]))
	}
	return responses
}
