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

type DonationService interface {
	// Contribute добавляет взнос в сбор подарка. Первый взнос открывает
	// сбор, взнос, перешагнувший цену, закрывает его ровно один раз.
	Contribute(userID, giftID string, req *dto.ContributeRequest) (*dto.ContributionResponse, error)

	GetDonation(userID, giftID string) (*dto.DonationResponse, error)

	// Withdraw удаляет сбор вместе со взносами. Доступно автору сбора
	// и владельцу подарка.
	Withdraw(userID, giftID string) error
}

type donationService struct {
	donationRepo  repositories.DonationRepository
	giftRepo      repositories.GiftRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewDonationService(
	donationRepo repositories.DonationRepository,
	giftRepo repositories.GiftRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) DonationService {
	return &donationService{
		donationRepo:  donationRepo,
		giftRepo:      giftRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *donationService) Contribute(userID, giftID string, req *dto.ContributeRequest) (*dto.ContributionResponse, error) {
	if req.Amount < 0 {
		return nil, apperrors.ErrNegativeDonationAmount
	}

	actor, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if _, err := s.visibleGift(actor, giftID); err != nil {
		return nil, err
	}

	result, err := s.donationRepo.AppendDonor(giftID, userID, req.Amount, req.IsAnonymous)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if result.Opened {
		s.notifyOwner(result.Gift, actor, NotifyParams{
			Type:      models.NotificationFundraisingOpened,
			Message:   fmt.Sprintf("Fundraising for %q has started", result.Gift.Name),
			MessageRu: fmt.Sprintf("Начался сбор на %q", result.Gift.Name),
		}, result.Donation.IsAnonymous)
	}

	closed := s.crossedThreshold(result)
	if closed {
		s.notifyClosure(result, actor)
	}

	donation, err := s.donationRepo.FindByGiftID(giftID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ContributionResponse{
		Donation:    dto.NewDonationResponse(donation),
		TotalBefore: result.TotalBefore,
		TotalAfter:  result.TotalAfter,
		Opened:      result.Opened,
		Closed:      closed,
	}, nil
}

func (s *donationService) GetDonation(userID, giftID string) (*dto.DonationResponse, error) {
	requester, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if _, err := s.visibleGift(requester, giftID); err != nil {
		return nil, err
	}

	donation, err := s.donationRepo.FindByGiftID(giftID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return dto.NewDonationResponse(donation), nil
}

func (s *donationService) Withdraw(userID, giftID string) error {
	actor, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	// Невидимый подарок неотличим от отсутствующего: актор без доступа
	// не должен узнать, что подарок и сбор существуют.
	gift, err := s.visibleGift(actor, giftID)
	if err != nil {
		return err
	}

	donation, err := s.donationRepo.FindByGiftID(giftID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if donation.AuthorID != actor.ID && gift.OwnerID != actor.TelegramID {
		return apperrors.ErrNotDonationOwner
	}

	if err := s.donationRepo.DeleteWithDonors(donation.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// visibleGift загружает подарок и проверяет видимость: allow-list
// подгружается только когда actor не владелец.
func (s *donationService) visibleGift(actor *models.User, giftID string) (*models.Gift, error) {
	gift, err := s.giftRepo.FindByID(giftID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if gift.OwnerID != actor.TelegramID {
		viewers, err := s.giftRepo.FindViewers(giftID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		gift.Viewers = viewers
		if !visibility.GiftVisibleTo(gift, actor) {
			return nil, apperrors.ErrNotFound(repositories.ErrGiftNotFound)
		}
	}
	return gift, nil
}

// crossedThreshold: единственный раз, когда totalBefore был ниже цены, а
// totalAfter достиг ее. Сравнение под блокировкой строки подарка и служит
// one-shot guard'ом, отдельного флага в БД нет.
func (s *donationService) crossedThreshold(result *repositories.ContributionResult) bool {
	price := result.Gift.Price
	if price == nil {
		return false
	}
	return result.TotalBefore < *price && *price <= result.TotalAfter
}

// notifyClosure уведомляет владельца и всех вкладчиков о закрытии сбора,
// отправителем числится вкладчик, перешагнувший порог.
func (s *donationService) notifyClosure(result *repositories.ContributionResult, actor *models.User) {
	recipientIDs := make([]string, 0, len(result.ContributorIDs)+1)
	if owner, err := s.userRepo.FindByTelegramID(result.Gift.OwnerID); err == nil {
		recipientIDs = append(recipientIDs, owner.ID)
	} else {
		logger.WithError(err).Warn("gift owner lookup failed", "gift_id", result.Gift.ID)
	}
	recipientIDs = append(recipientIDs, result.ContributorIDs...)

	err := s.notifications.NotifyMany(recipientIDs, NotifyParams{
		SenderID:    &actor.ID,
		Type:        models.NotificationFundraisingClosed,
		Message:     fmt.Sprintf("Fundraising for %q is complete", result.Gift.Name),
		MessageRu:   fmt.Sprintf("Сбор на %q завершен", result.Gift.Name),
		EntityID:    result.Gift.ID,
		EntityModel: models.EntityModelGift,
	})
	if err != nil {
		logger.WithError(err).Warn("fundraising closed fan-out failed", "gift_id", result.Gift.ID)
	}
}

func (s *donationService) notifyOwner(gift *models.Gift, actor *models.User, params NotifyParams, anonymous bool) {
	owner, err := s.userRepo.FindByTelegramID(gift.OwnerID)
	if err != nil {
		logger.WithError(err).Warn("gift owner lookup failed", "gift_id", gift.ID)
		return
	}
	params.RecipientID = owner.ID
	if !anonymous {
		params.SenderID = &actor.ID
	}
	params.EntityID = gift.ID
	params.EntityModel = models.EntityModelGift
	if _, err := s.notifications.Notify(params); err != nil {
		logger.WithError(err).Warn("donation notification failed", "gift_id", gift.ID, "type", params.Type)
	}
}
