package services

import (
	"errors"

	"giftlist_backend/internal/auth"
	"giftlist_backend/internal/config"
	"giftlist_backend/internal/models"
	"giftlist_backend/internal/repositories"
	"giftlist_backend/internal/services/dto"
	"giftlist_backend/internal/visibility"
	"giftlist_backend/pkg/apperrors"
)

type UserService interface {
	// TelegramLogin проверяет подпись initData, создает пользователя при
	// первом входе и выдает JWT.
	TelegramLogin(req *dto.TelegramLoginRequest) (*dto.AuthResponse, error)

	GetMe(userID string) (*dto.UserResponse, error)
	GetProfile(requesterID, targetID string) (*dto.UserResponse, error)
	UpdateSettings(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)

	// Allow-list'ы профиля: кто видит профиль и кто видит врученные подарки.
	SetViewers(userID string, viewerIDs []string) error
	SetGiftViewers(userID string, viewerIDs []string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) TelegramLogin(req *dto.TelegramLoginRequest) (*dto.AuthResponse, error) {
	cfg := config.GetConfig()

	tgUser, err := auth.VerifyInitData(req.InitData, cfg.Telegram.BotToken)
	if err != nil {
		if errors.Is(err, auth.ErrInitDataExpired) {
			return nil, apperrors.NewUnauthorizedError("login payload expired")
		}
		return nil, apperrors.NewUnauthorizedError("invalid login payload")
	}

	user, err := s.userRepo.FindByTelegramID(tgUser.ID)
	switch {
	case err == nil:
		// Профильные поля обновляются данными из Telegram при каждом входе.
		user.FirstName = tgUser.FirstName
		user.LastName = tgUser.LastName
		user.Username = tgUser.Username
		if tgUser.PhotoURL != "" {
			user.PhotoURL = tgUser.PhotoURL
		}
		if err := s.userRepo.Update(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	case errors.Is(err, repositories.ErrUserNotFound):
		user = &models.User{
			TelegramID: tgUser.ID,
			FirstName:  tgUser.FirstName,
			LastName:   tgUser.LastName,
			Username:   tgUser.Username,
			PhotoURL:   tgUser.PhotoURL,
		}
		if tgUser.LanguageCode != "" {
			user.Language = tgUser.LanguageCode
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	default:
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, user.TelegramID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

func (s *userService) GetMe(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) GetProfile(requesterID, targetID string) (*dto.UserResponse, error) {
	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	target, err := s.userRepo.FindByIDWithLists(targetID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if !visibility.UserVisibleTo(target, requester) {
		return nil, apperrors.ErrNotFound(repositories.ErrUserNotFound)
	}
	return dto.NewUserResponse(target), nil
}

func (s *userService) UpdateSettings(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	if req.Language != nil {
		user.Language = *req.Language
	}
	if req.Currency != nil {
		user.Currency = *req.Currency
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) SetViewers(userID string, viewerIDs []string) error {
	if err := s.userRepo.ReplaceViewers(userID, viewerIDs); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) SetGiftViewers(userID string, viewerIDs []string) error {
	if err := s.userRepo.ReplaceGiftViewers(userID, viewerIDs); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
