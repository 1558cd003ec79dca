package repositories

import (
	"errors"

	"giftlist_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFriendRequestNotFound = errors.New("friend request not found")

type FriendRequestRepository interface {
	Create(request *models.FriendRequest) error
	FindByID(id string) (*models.FriendRequest, error)

	// FindPendingBetween ищет pending-заявку между парой в любом направлении.
	FindPendingBetween(userA, userB string) (*models.FriendRequest, error)

	ListIncoming(userID string) ([]models.FriendRequest, error)
	ListOutgoing(userID string) ([]models.FriendRequest, error)

	Delete(id string) error
	DeleteBetween(userA, userB string) error
}

type FriendRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &FriendRequestRepositoryImpl{db: db}
}

func (r *FriendRequestRepositoryImpl) Create(request *models.FriendRequest) error {
	return r.db.Create(request).Error
}

func (r *FriendRequestRepositoryImpl) FindByID(id string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.Preload("Requester").Preload("Recipient").First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFriendRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *FriendRequestRepositoryImpl) FindPendingBetween(userA, userB string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.Where(
		"status = ? AND ((requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?))",
		models.FriendRequestStatusPending, userA, userB, userB, userA,
	).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFriendRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *FriendRequestRepositoryImpl) ListIncoming(userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Preload("Requester").
		Where("recipient_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *FriendRequestRepositoryImpl) ListOutgoing(userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Preload("Recipient").
		Where("requester_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *FriendRequestRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.FriendRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFriendRequestNotFound
	}
	return nil
}

// DeleteBetween удаляет любые заявки между парой (используется при блокировке).
func (r *FriendRequestRepositoryImpl) DeleteBetween(userA, userB string) error {
	return r.db.Where(
		"(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	).Delete(&models.FriendRequest{}).Error
}
