package services

import (
	"fmt"

	"giftlist_backend/internal/logger"
	"giftlist_backend/internal/models"
	"giftlist_backend/internal/repositories"
	"giftlist_backend/internal/services/dto"
	"giftlist_backend/internal/visibility"
	"giftlist_backend/pkg/apperrors"
)

type GiftService interface {
	CreateGift(userID string, req *dto.CreateGiftRequest) (*dto.GiftResponse, error)
	GetGift(userID, giftID string) (*dto.GiftResponse, error)
	ListUserGifts(userID string, ownerTelegramID int64) ([]*dto.GiftResponse, error)
	UpdateGift(userID, giftID string, req *dto.UpdateGiftRequest) (*dto.GiftResponse, error)
	DeleteGift(userID, giftID string) error
	SetGiftViewers(userID, giftID string, viewerIDs []string) error

	// ToggleReserve переключает бронь: чужой подарок бронируется, своя
	// бронь (или любая, если действует владелец) снимается.
	ToggleReserve(userID, giftID string) (*dto.GiftResponse, error)

	// ToggleGiven переключает флаг вручения, только владелец.
	// Переход true -> false также сбрасывает благодарность.
	ToggleGiven(userID, giftID string) (*dto.GiftResponse, error)

	// Thank отмечает подарок отблагодаренным и уведомляет дарителя
	// (или всех вкладчиков при сборе). Требует given && !thanked.
	Thank(userID, giftID string) (*dto.GiftResponse, error)

	// ThankAll проходит по всем given && !thanked подаркам владельца.
	// Повторный вызов ничего не делает.
	ThankAll(userID string) (int, error)

	// MarkGiven - переход планировщика: зарезервированный, но не врученный
	// подарок завершенного события помечается врученным с уведомлением.
	MarkGiven(giftID string) error
}

type giftService struct {
	giftRepo      repositories.GiftRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewGiftService(
	giftRepo repositories.GiftRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) GiftService {
	return &giftService{
		giftRepo:      giftRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// ---------------- CRUD ----------------

func (s *giftService) CreateGift(userID string, req *dto.CreateGiftRequest) (*dto.GiftResponse, error) {
	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	gift := &models.Gift{
		OwnerID:     owner.TelegramID,
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		PhotoURL:    req.PhotoURL,
		Price:       req.Price,
	}
	if req.Currency != "" {
		gift.Currency = req.Currency
	} else {
		gift.Currency = owner.Currency
	}

	if len(req.ViewerIDs) > 0 {
		viewers, err := s.userRepo.FindByIDs(req.ViewerIDs)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		gift.Viewers = viewers
	}

	if err := s.giftRepo.Create(gift); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewGiftResponse(gift), nil
}

func (s *giftService) GetGift(userID, giftID string) (*dto.GiftResponse, error) {
	requester, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	gift, err := s.visibleGift(requester, giftID)
	if err != nil {
		return nil, err
	}
	return dto.NewGiftResponse(gift), nil
}

func (s *giftService) ListUserGifts(userID string, ownerTelegramID int64) ([]*dto.GiftResponse, error) {
	requester, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	owner, err := s.userRepo.FindByTelegramID(ownerTelegramID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if requester.ID != owner.ID {
		ownerWithLists, err := s.userRepo.FindByIDWithLists(owner.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		owner = ownerWithLists
		if !visibility.UserVisibleTo(owner, requester) {
			return nil, apperrors.ErrNotFound(repositories.ErrUserNotFound)
		}
	}

	gifts, err := s.giftRepo.FindByOwner(ownerTelegramID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	givenVisible := visibility.GivenGiftsVisibleTo(owner, requester)
	responses := make([]*dto.GiftResponse, 0, len(gifts))
	for i := range gifts {
		gift := &gifts[i]
		if !visibility.GiftVisibleTo(gift, requester) {
			continue
		}
		if gift.IsGiven && !givenVisible {
			continue
		}
		responses = append(responses, dto.NewGiftResponse(gift))
	}
	return responses, nil
}

func (s *giftService) UpdateGift(userID, giftID string, req *dto.UpdateGiftRequest) (*dto.GiftResponse, error) {
	_, gift, err := s.ownGift(userID, giftID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		gift.Name = *req.Name
	}
	if req.Description != nil {
		gift.Description = *req.Description
	}
	if req.URL != nil {
		gift.URL = *req.URL
	}
	if req.PhotoURL != nil {
		gift.PhotoURL = *req.PhotoURL
	}
	if req.Price != nil {
		gift.Price = req.Price
	}
	if req.Currency != nil {
		gift.Currency = *req.Currency
	}

	if err := s.giftRepo.Update(gift); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewGiftResponse(gift), nil
}

func (s *giftService) DeleteGift(userID, giftID string) error {
	_, _, err := s.ownGift(userID, giftID)
	if err != nil {
		return err
	}
	if err := s.giftRepo.Delete(giftID); err != nil {
		return apperrors.ErrNotFound(err)
	}
	return nil
}

func (s *giftService) SetGiftViewers(userID, giftID string, viewerIDs []string) error {
	_, _, err := s.ownGift(userID, giftID)
	if err != nil {
		return err
	}
	if err := s.giftRepo.ReplaceViewers(giftID, viewerIDs); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- State machine ----------------

func (s *giftService) ToggleReserve(userID, giftID string) (*dto.GiftResponse, error) {
	actor, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	gift, err := s.visibleGift(actor, giftID)
	if err != nil {
		return nil, err
	}

	isOwner := gift.OwnerID == actor.TelegramID
	if !gift.IsReserved {
		if isOwner {
			return nil, apperrors.ErrReserveOwnGift
		}
		// Условный UPDATE: из двух одновременных бронирующих побеждает один.
		ok, err := s.giftRepo.TryReserve(gift.ID, actor.TelegramID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !ok {
			return nil, apperrors.ErrGiftAlreadyReserved
		}
		gift.IsReserved = true
		gift.ReservedBy = &actor.TelegramID
		s.notifyOwner(gift, &actor.ID, NotifyParams{
			Type:      models.NotificationGiftReserved,
			Message:   fmt.Sprintf("Someone reserved %q from your wishlist", gift.Name),
			MessageRu: fmt.Sprintf("Кто-то забронировал %q из вашего вишлиста", gift.Name),
		})
		return dto.NewGiftResponse(gift), nil
	}

	// Снять бронь может тот, кто ее поставил, либо владелец.
	isReserver := gift.ReservedBy != nil && *gift.ReservedBy == actor.TelegramID
	if !isReserver && !isOwner {
		return nil, apperrors.ErrGiftAlreadyReserved
	}
	if gift.IsGiven {
		return nil, apperrors.ErrInvalidOperation("gift", "gift has already been given")
	}
	ok, err := s.giftRepo.ReleaseReserve(gift.ID, *gift.ReservedBy)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		// Бронь сменилась между чтением и снятием.
		return nil, apperrors.ErrGiftAlreadyReserved
	}
	gift.IsReserved = false
	gift.ReservedBy = nil
	return dto.NewGiftResponse(gift), nil
}

func (s *giftService) ToggleGiven(userID, giftID string) (*dto.GiftResponse, error) {
	_, gift, err := s.ownGift(userID, giftID)
	if err != nil {
		return nil, err
	}

	if gift.IsGiven {
		gift.IsGiven = false
		gift.IsThanked = false
		if err := s.giftRepo.Update(gift); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return dto.NewGiftResponse(gift), nil
	}

	gift.IsGiven = true
	if err := s.giftRepo.Update(gift); err != nil {
		return nil, apperrors.InternalError(err)
	}
	s.notifyOwner(gift, s.reserverID(gift), NotifyParams{
		Type:      models.NotificationGiftGiven,
		Message:   fmt.Sprintf("%q has been given", gift.Name),
		MessageRu: fmt.Sprintf("%q вручен", gift.Name),
	})
	return dto.NewGiftResponse(gift), nil
}

func (s *giftService) Thank(userID, giftID string) (*dto.GiftResponse, error) {
	owner, gift, err := s.ownGift(userID, giftID)
	if err != nil {
		return nil, err
	}
	if err := s.thankGift(owner, gift); err != nil {
		return nil, err
	}
	return dto.NewGiftResponse(gift), nil
}

func (s *giftService) ThankAll(userID string) (int, error) {
	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return 0, apperrors.ErrNotFound(err)
	}

	gifts, err := s.giftRepo.FindThankable(owner.TelegramID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	thanked := 0
	for i := range gifts {
		if err := s.thankGift(owner, &gifts[i]); err != nil {
			logger.WithError(err).Warn("thank all: skipping gift", "gift_id", gifts[i].ID)
			continue
		}
		thanked++
	}
	return thanked, nil
}

func (s *giftService) MarkGiven(giftID string) error {
	gift, err := s.giftRepo.FindByID(giftID)
	if err != nil {
		return err
	}
	if !gift.IsReserved || gift.IsGiven {
		return nil
	}
	gift.IsGiven = true
	if err := s.giftRepo.Update(gift); err != nil {
		return err
	}
	s.notifyOwner(gift, s.reserverID(gift), NotifyParams{
		Type:      models.NotificationGiftGiven,
		Message:   fmt.Sprintf("%q has been given", gift.Name),
		MessageRu: fmt.Sprintf("%q вручен", gift.Name),
	})
	return nil
}

// ---------------- Helpers ----------------

func (s *giftService) thankGift(owner *models.User, gift *models.Gift) error {
	if !gift.IsGiven {
		return apperrors.ErrGiftNotGiven
	}
	if gift.IsThanked {
		return apperrors.ErrGiftAlreadyThanked
	}

	gift.IsThanked = true
	if err := s.giftRepo.Update(gift); err != nil {
		return apperrors.InternalError(err)
	}

	params := NotifyParams{
		SenderID:    &owner.ID,
		Type:        models.NotificationGiftThankYouNote,
		Message:     fmt.Sprintf("%s thanks you for %q", owner.FirstName, gift.Name),
		MessageRu:   fmt.Sprintf("%s благодарит вас за %q", owner.FirstName, gift.Name),
		EntityID:    gift.ID,
		EntityModel: models.EntityModelGift,
	}

	// При сборе благодарим каждого вкладчика, иначе бронировавшего.
	if gift.Donation != nil && len(gift.Donation.Donors) > 0 {
		recipientIDs := make([]string, 0, len(gift.Donation.Donors))
		for _, donor := range gift.Donation.Donors {
			recipientIDs = append(recipientIDs, donor.UserID)
		}
		if err := s.notifications.NotifyMany(recipientIDs, params); err != nil {
			logger.WithError(err).Warn("thank-you fan-out failed", "gift_id", gift.ID)
		}
		return nil
	}

	if reserverID := s.reserverID(gift); reserverID != nil {
		params.RecipientID = *reserverID
		if _, err := s.notifications.Notify(params); err != nil {
			logger.WithError(err).Warn("thank-you notification failed", "gift_id", gift.ID)
		}
	}
	return nil
}

// visibleGift загружает подарок и проверяет видимость: allow-list
// подгружается только когда requester не владелец. Невидимый подарок
// неотличим от отсутствующего.
func (s *giftService) visibleGift(requester *models.User, giftID string) (*models.Gift, error) {
	gift, err := s.giftRepo.FindByID(giftID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if gift.OwnerID != requester.TelegramID {
		viewers, err := s.giftRepo.FindViewers(giftID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		gift.Viewers = viewers
		if !visibility.GiftVisibleTo(gift, requester) {
			return nil, apperrors.ErrNotFound(repositories.ErrGiftNotFound)
		}
	}
	return gift, nil
}

// ownGift поверх visibleGift проверяет право владельца: видимый чужой
// подарок дает Forbidden.
func (s *giftService) ownGift(userID, giftID string) (*models.User, *models.Gift, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}
	gift, err := s.visibleGift(user, giftID)
	if err != nil {
		return nil, nil, err
	}
	if gift.OwnerID != user.TelegramID {
		return nil, nil, apperrors.ErrNotGiftOwner
	}
	return user, gift, nil
}

// reserverID возвращает внутренний ID пользователя, бронировавшего подарок.
func (s *giftService) reserverID(gift *models.Gift) *string {
	if gift.ReservedBy == nil {
		return nil
	}
	reserver, err := s.userRepo.FindByTelegramID(*gift.ReservedBy)
	if err != nil {
		return nil
	}
	return &reserver.ID
}

// notifyOwner шлет уведомление владельцу подарка, ошибки доставки
// логируются и не прерывают операцию.
func (s *giftService) notifyOwner(gift *models.Gift, senderID *string, params NotifyParams) {
	owner, err := s.userRepo.FindByTelegramID(gift.OwnerID)
	if err != nil {
		logger.WithError(err).Warn("gift owner lookup failed", "gift_id", gift.ID)
		return
	}
	params.RecipientID = owner.ID
	params.SenderID = senderID
	params.EntityID = gift.ID
	params.EntityModel = models.EntityModelGift
	if _, err := s.notifications.Notify(params); err != nil {
		logger.WithError(err).Warn("gift notification failed", "gift_id", gift.ID, "type", params.Type)
	}
}
