package services

import (
	"giftlist_backend/internal/models"
	"giftlist_backend/internal/repositories"
	"giftlist_backend/internal/services/dto"
	"giftlist_backend/internal/visibility"
	"giftlist_backend/pkg/apperrors"
)

type EventService interface {
	CreateEvent(userID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(userID, eventID string) (*dto.EventResponse, error)
	ListVisibleEvents(userID string) ([]*dto.EventResponse, error)
	UpdateEvent(userID, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(userID, eventID string) error
	SetEventViewers(userID, eventID string, viewerIDs []string) error

	// Join/Leave - членство самого пользователя, RemoveMember - владелец
	// убирает участника.
	Join(userID, eventID string) error
	Leave(userID, eventID string) error
	RemoveMember(userID, eventID, memberID string) error

	AddGift(userID, eventID, giftID string) error
	RemoveGift(userID, eventID, giftID string) error
}

type eventService struct {
	eventRepo repositories.EventRepository
	giftRepo  repositories.GiftRepository
	userRepo  repositories.UserRepository
}

func NewEventService(
	eventRepo repositories.EventRepository,
	giftRepo repositories.GiftRepository,
	userRepo repositories.UserRepository,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		giftRepo:  giftRepo,
		userRepo:  userRepo,
	}
}

func (s *eventService) CreateEvent(userID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, apperrors.ValidationError(map[string]string{
			"end_date": "end date must not be before start date",
		})
	}

	event := &models.Event{
		OwnerID:                owner.TelegramID,
		Name:                   req.Name,
		Description:            req.Description,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		IsAnonymous:            req.IsAnonymous,
		SendAcknowledgements:   req.SendAcknowledgements,
		AcknowledgementMessage: req.AcknowledgementMessage,
	}

	if len(req.ViewerIDs) > 0 {
		viewers, err := s.userRepo.FindByIDs(req.ViewerIDs)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		event.Viewers = viewers
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewEventResponse(event), nil
}

func (s *eventService) GetEvent(userID, eventID string) (*dto.EventResponse, error) {
	_, event, err := s.visibleEvent(userID, eventID)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponse(event), nil
}

func (s *eventService) ListVisibleEvents(userID string) ([]*dto.EventResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	events, err := s.eventRepo.FindVisibleTo(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewEventResponses(events), nil
}

func (s *eventService) UpdateEvent(userID, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	_, event, err := s.ownEvent(userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate
	}
	if req.IsAnonymous != nil {
		event.IsAnonymous = *req.IsAnonymous
	}
	if req.SendAcknowledgements != nil {
		event.SendAcknowledgements = *req.SendAcknowledgements
	}
	if req.AcknowledgementMessage != nil {
		event.AcknowledgementMessage = *req.AcknowledgementMessage
	}

	if event.EndDate != nil && event.EndDate.Before(event.StartDate) {
		return nil, apperrors.ValidationError(map[string]string{
			"end_date": "end date must not be before start date",
		})
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewEventResponse(event), nil
}

func (s *eventService) DeleteEvent(userID, eventID string) error {
	_, _, err := s.ownEvent(userID, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.Delete(eventID); err != nil {
		return apperrors.ErrNotFound(err)
	}
	return nil
}

func (s *eventService) SetEventViewers(userID, eventID string, viewerIDs []string) error {
	_, _, err := s.ownEvent(userID, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.ReplaceViewers(eventID, viewerIDs); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Membership ----------------

func (s *eventService) Join(userID, eventID string) error {
	_, _, err := s.visibleEvent(userID, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.AddMember(eventID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *eventService) Leave(userID, eventID string) error {
	_, _, err := s.visibleEvent(userID, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.RemoveMember(eventID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *eventService) RemoveMember(userID, eventID, memberID string) error {
	_, _, err := s.ownEvent(userID, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.RemoveMember(eventID, memberID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Gifts ----------------

func (s *eventService) AddGift(userID, eventID, giftID string) error {
	user, _, err := s.ownEvent(userID, eventID)
	if err != nil {
		return err
	}
	gift, err := s.giftRepo.FindByID(giftID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	// К событию прикрепляются подарки из вишлиста его владельца.
	if gift.OwnerID != user.TelegramID {
		return apperrors.ErrNotGiftOwner
	}
	if err := s.eventRepo.AddGift(eventID, giftID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *eventService) RemoveGift(userID, eventID, giftID string) error {
	_, _, err := s.ownEvent(userID, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.RemoveGift(eventID, giftID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Helpers ----------------

func (s *eventService) visibleEvent(userID, eventID string) (*models.User, *models.Event, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}
	// Allow-list подгружается только когда запрашивает не владелец.
	if event.OwnerID != user.TelegramID {
		viewers, err := s.eventRepo.FindViewers(eventID)
		if err != nil {
			return nil, nil, apperrors.InternalError(err)
		}
		event.Viewers = viewers
		if !visibility.EventVisibleTo(event, user) {
			return nil, nil, apperrors.ErrNotFound(repositories.ErrEventNotFound)
		}
	}
	return user, event, nil
}

func (s *eventService) ownEvent(userID, eventID string) (*models.User, *models.Event, error) {
	user, event, err := s.visibleEvent(userID, eventID)
	if err != nil {
		return nil, nil, err
	}
	if event.OwnerID != user.TelegramID {
		return nil, nil, apperrors.ErrNotEventOwner
	}
	return user, event, nil
}
