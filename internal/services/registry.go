package services

import (
	"gorm.io/gorm"

	"giftlist_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService         UserService
	GiftService         GiftService
	DonationService     DonationService
	EventService        EventService
	FriendService       FriendService
	NotificationService NotificationService
}

func NewServiceContainer(db *gorm.DB) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	giftRepo := repositories.NewGiftRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	friendRequestRepo := repositories.NewFriendRequestRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	notificationService := NewNotificationService(notificationRepo, userRepo, giftRepo, eventRepo, friendRequestRepo)

	return &ServiceContainer{
		UserService:         NewUserService(userRepo),
		GiftService:         NewGiftService(giftRepo, userRepo, notificationService),
		DonationService:     NewDonationService(donationRepo, giftRepo, userRepo, notificationService),
		EventService:        NewEventService(eventRepo, giftRepo, userRepo),
		FriendService:       NewFriendService(userRepo, friendRequestRepo, notificationService),
		NotificationService: notificationService,
	}
}
