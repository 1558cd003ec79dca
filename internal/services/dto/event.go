package dto

import (
	"time"

	"giftlist_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateEventRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date"`

	IsAnonymous            bool   `json:"is_anonymous"`
	SendAcknowledgements   bool   `json:"send_acknowledgements"`
	AcknowledgementMessage string `json:"acknowledgement_message" validate:"omitempty,max=1000"`

	ViewerIDs []string `json:"viewer_ids" validate:"dive,uuid"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`

	IsAnonymous            *bool   `json:"is_anonymous,omitempty"`
	SendAcknowledgements   *bool   `json:"send_acknowledgements,omitempty"`
	AcknowledgementMessage *string `json:"acknowledgement_message,omitempty" validate:"omitempty,max=1000"`
}

type EventGiftRequest struct {
	GiftID string `json:"gift_id" validate:"required,uuid"`
}

type EventMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// ---------------- Responses ----------------

type EventResponse struct {
	ID          string     `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`

	IsAnonymous       bool       `json:"is_anonymous"`
	GiftersRevealedAt *time.Time `json:"gifters_revealed_at,omitempty"`

	SendAcknowledgements   bool   `json:"send_acknowledgements"`
	AcknowledgementMessage string `json:"acknowledgement_message,omitempty"`

	Members []*UserResponse `json:"members,omitempty"`
	Gifts   []*GiftResponse `json:"gifts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewEventResponse(event *models.Event) *EventResponse {
	if event == nil {
		return nil
	}
	return &EventResponse{
		ID:                     event.ID,
		OwnerID:                event.OwnerID,
		Name:                   event.Name,
		Description:            event.Description,
		StartDate:              event.StartDate,
		EndDate:                event.EndDate,
		IsAnonymous:            event.IsAnonymous,
		GiftersRevealedAt:      event.GiftersRevealedAt,
		SendAcknowledgements:   event.SendAcknowledgements,
		AcknowledgementMessage: event.AcknowledgementMessage,
		Members:                NewUserResponses(event.Members),
		Gifts:                  NewGiftResponses(event.Gifts),
		CreatedAt:              event.CreatedAt,
		UpdatedAt:              event.UpdatedAt,
	}
}

func NewEventResponses(events []models.Event) []*EventResponse {
	responses := make([]*EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, NewEventResponse(&events[i]))
	}
	return responses
}
