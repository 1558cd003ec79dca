package services

import (
	"fmt"

	"giftlist_backend/internal/logger"
	"giftlist_backend/internal/models"
	"giftlist_backend/internal/repositories"
	"giftlist_backend/internal/services/dto"
	"giftlist_backend/pkg/apperrors"
)

const (
	FriendActionAccept  = "accept"
	FriendActionDecline = "decline"
)

type FriendService interface {
	// SendRequest создает pending-заявку. Самому себе, уже друзьям и при
	// существующей заявке в любую сторону - ошибка.
	SendRequest(requesterID, recipientID string) (*dto.FriendRequestResponse, error)

	// CancelRequest отзывает собственную исходящую заявку.
	CancelRequest(requesterID, requestID string) error

	// Respond принимает или отклоняет заявку, адресованную получателю.
	// В обоих случаях заявка удаляется, хранятся только pending.
	Respond(recipientID, requestID, action string) error

	RemoveFriend(userID, friendID string) error
	Block(userID, targetID string) error
	Unblock(userID, targetID string) error

	ListFriends(userID string) ([]*dto.UserResponse, error)
	ListIncoming(userID string) ([]*dto.FriendRequestResponse, error)
	ListOutgoing(userID string) ([]*dto.FriendRequestResponse, error)
}

type friendService struct {
	userRepo          repositories.UserRepository
	friendRequestRepo repositories.FriendRequestRepository
	notifications     NotificationService
}

func NewFriendService(
	userRepo repositories.UserRepository,
	friendRequestRepo repositories.FriendRequestRepository,
	notifications NotificationService,
) FriendService {
	return &friendService{
		userRepo:          userRepo,
		friendRequestRepo: friendRequestRepo,
		notifications:     notifications,
	}
}

func (s *friendService) SendRequest(requesterID, recipientID string) (*dto.FriendRequestResponse, error) {
	if requesterID == recipientID {
		return nil, apperrors.ErrFriendRequestToSelf
	}

	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	recipient, err := s.userRepo.FindByID(recipientID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	// Заблокированный пользователь неотличим от несуществующего.
	for _, pair := range [][2]string{{recipientID, requesterID}, {requesterID, recipientID}} {
		blocked, err := s.userRepo.IsBlocked(pair[0], pair[1])
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if blocked {
			return nil, apperrors.ErrNotFound(repositories.ErrUserNotFound)
		}
	}

	friends, err := s.userRepo.AreFriends(requesterID, recipientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if friends {
		return nil, apperrors.ErrAlreadyFriends
	}

	if _, err := s.friendRequestRepo.FindPendingBetween(requesterID, recipientID); err == nil {
		return nil, apperrors.ErrFriendRequestPending
	}

	request := &models.FriendRequest{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.FriendRequestStatusPending,
	}
	if err := s.friendRequestRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}
	request.Requester = requester
	request.Recipient = recipient

	s.notify(NotifyParams{
		RecipientID: recipientID,
		SenderID:    &requester.ID,
		Type:        models.NotificationFriendRequest,
		Message:     fmt.Sprintf("%s sent you a friend request", requester.FirstName),
		MessageRu:   fmt.Sprintf("%s отправил вам заявку в друзья", requester.FirstName),
		EntityID:    request.ID,
		EntityModel: models.EntityModelFriendRequest,
	})

	return dto.NewFriendRequestResponse(request), nil
}

func (s *friendService) CancelRequest(requesterID, requestID string) error {
	request, err := s.friendRequestRepo.FindByID(requestID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if request.RequesterID != requesterID || request.Status != models.FriendRequestStatusPending {
		return apperrors.ErrNotFound(repositories.ErrFriendRequestNotFound)
	}
	if err := s.friendRequestRepo.Delete(requestID); err != nil {
		return apperrors.ErrNotFound(err)
	}
	return nil
}

func (s *friendService) Respond(recipientID, requestID, action string) error {
	request, err := s.friendRequestRepo.FindByID(requestID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	// Чужая или уже обработанная заявка неотличима от несуществующей.
	if request.RecipientID != recipientID || request.Status != models.FriendRequestStatusPending {
		return apperrors.ErrNotFound(repositories.ErrFriendRequestNotFound)
	}

	recipient, err := s.userRepo.FindByID(recipientID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	switch action {
	case FriendActionAccept:
		// Обе стороны дружбы, вставка идемпотентна.
		if err := s.userRepo.AddFriend(request.RequesterID, request.RecipientID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.friendRequestRepo.Delete(requestID); err != nil {
			return apperrors.InternalError(err)
		}
		s.notify(NotifyParams{
			RecipientID: request.RequesterID,
			SenderID:    &recipient.ID,
			Type:        models.NotificationFriendRequestAccepted,
			Message:     fmt.Sprintf("%s accepted your friend request", recipient.FirstName),
			MessageRu:   fmt.Sprintf("%s принял вашу заявку в друзья", recipient.FirstName),
			EntityID:    recipient.ID,
			EntityModel: models.EntityModelUser,
		})
	case FriendActionDecline:
		if err := s.friendRequestRepo.Delete(requestID); err != nil {
			return apperrors.InternalError(err)
		}
		s.notify(NotifyParams{
			RecipientID: request.RequesterID,
			SenderID:    &recipient.ID,
			Type:        models.NotificationFriendRequestDeclined,
			Message:     fmt.Sprintf("%s declined your friend request", recipient.FirstName),
			MessageRu:   fmt.Sprintf("%s отклонил вашу заявку в друзья", recipient.FirstName),
			EntityID:    recipient.ID,
			EntityModel: models.EntityModelUser,
		})
	default:
		return apperrors.ValidationError(map[string]string{"action": "must be accept or decline"})
	}
	return nil
}

func (s *friendService) RemoveFriend(userID, friendID string) error {
	friends, err := s.userRepo.AreFriends(userID, friendID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !friends {
		return apperrors.ErrNotFound(repositories.ErrUserNotFound)
	}
	if err := s.userRepo.RemoveFriend(userID, friendID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Block разрывает дружбу в обе стороны и удаляет любые заявки между парой.
func (s *friendService) Block(userID, targetID string) error {
	if userID == targetID {
		return apperrors.NewBadRequestError("cannot block yourself")
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return apperrors.ErrNotFound(err)
	}
	if err := s.userRepo.AddBlocked(userID, targetID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.RemoveFriend(userID, targetID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.friendRequestRepo.DeleteBetween(userID, targetID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *friendService) Unblock(userID, targetID string) error {
	if err := s.userRepo.RemoveBlocked(userID, targetID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *friendService) ListFriends(userID string) ([]*dto.UserResponse, error) {
	friends, err := s.userRepo.ListFriends(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponses(friends), nil
}

func (s *friendService) ListIncoming(userID string) ([]*dto.FriendRequestResponse, error) {
	requests, err := s.friendRequestRepo.ListIncoming(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewFriendRequestResponses(requests), nil
}

func (s *friendService) ListOutgoing(userID string) ([]*dto.FriendRequestResponse, error) {
	requests, err := s.friendRequestRepo.ListOutgoing(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewFriendRequestResponses(requests), nil
}

func (s *friendService) notify(params NotifyParams) {
	if _, err := s.notifications.Notify(params); err != nil {
		logger.WithError(err).Warn("friend notification failed", "type", params.Type)
	}
}
