package handlers

import (
	"giftlist_backend/internal/services"
	"giftlist_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	GiftHandler         *GiftHandler
	DonationHandler     *DonationHandler
	EventHandler        *EventHandler
	FriendHandler       *FriendHandler
	NotificationHandler *NotificationHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, container.UserService),
		UserHandler:         NewUserHandler(base, container.UserService),
		GiftHandler:         NewGiftHandler(base, container.GiftService),
		DonationHandler:     NewDonationHandler(base, container.DonationService),
		EventHandler:        NewEventHandler(base, container.EventService),
		FriendHandler:       NewFriendHandler(base, container.FriendService),
		NotificationHandler: NewNotificationHandler(base, container.NotificationService),
	}
}
