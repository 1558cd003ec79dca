package repositories

import (
	"errors"

	"giftlist_backend/internal/models"

	"gorm.io/gorm"
)

var ErrGiftNotFound = errors.New("gift not found")

type GiftRepository interface {
	Create(gift *models.Gift) error
	FindByID(id string) (*models.Gift, error)
	FindByOwner(ownerID int64) ([]models.Gift, error)
	Update(gift *models.Gift) error
	Delete(id string) error

	// FindThankable возвращает подарки владельца, за которые можно
	// поблагодарить: врученные и еще не отблагодаренные.
	FindThankable(ownerID int64) ([]models.Gift, error)

	// ReplaceViewers заменяет allow-list подарка целиком.
	ReplaceViewers(giftID string, viewerIDs []string) error

	// FindViewers загружает allow-list отдельно: FindByID его не грузит,
	// владельцу для проверки видимости список не нужен.
	FindViewers(giftID string) ([]models.User, error)

	// TryReserve/ReleaseReserve - атомарные условные UPDATE'ы брони.
	// true = переход выполнили мы; false = состояние уже изменилось.
	TryReserve(giftID string, reservedBy int64) (bool, error)
	ReleaseReserve(giftID string, reservedBy int64) (bool, error)
}

type GiftRepositoryImpl struct {
	db *gorm.DB
}

func NewGiftRepository(db *gorm.DB) GiftRepository {
	return &GiftRepositoryImpl{db: db}
}

func (r *GiftRepositoryImpl) Create(gift *models.Gift) error {
	return r.db.Create(gift).Error
}

func (r *GiftRepositoryImpl) FindByID(id string) (*models.Gift, error) {
	var gift models.Gift
	err := r.db.
		Preload("Donation").
		Preload("Donation.Donors").
		First(&gift, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, err
	}
	return &gift, nil
}

func (r *GiftRepositoryImpl) FindByOwner(ownerID int64) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.
		Preload("Viewers").
		Preload("Donation").
		Preload("Donation.Donors").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&gifts).Error
	return gifts, err
}

func (r *GiftRepositoryImpl) Update(gift *models.Gift) error {
	return r.db.Save(gift).Error
}

func (r *GiftRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Gift{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGiftNotFound
	}
	return nil
}

func (r *GiftRepositoryImpl) ReplaceViewers(giftID string, viewerIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM gift_viewers WHERE gift_id = ?", giftID).Error; err != nil {
			return err
		}
		for _, viewerID := range viewerIDs {
			row := map[string]interface{}{"gift_id": giftID, "user_id": viewerID}
			if err := tx.Table("gift_viewers").Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GiftRepositoryImpl) FindViewers(giftID string) ([]models.User, error) {
	var viewers []models.User
	err := r.db.
		Joins("JOIN gift_viewers gv ON gv.user_id = users.id").
		Where("gv.gift_id = ?", giftID).
		Find(&viewers).Error
	return viewers, err
}

func (r *GiftRepositoryImpl) FindThankable(ownerID int64) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.
		Preload("Donation").
		Preload("Donation.Donors").
		Where("owner_id = ? AND is_given = ? AND is_thanked = ?", ownerID, true, false).
		Find(&gifts).Error
	return gifts, err
}

func (r *GiftRepositoryImpl) TryReserve(giftID string, reservedBy int64) (bool, error) {
	result := r.db.Model(&models.Gift{}).
		Where("id = ? AND is_reserved = ?", giftID, false).
		Updates(map[string]interface{}{"is_reserved": true, "reserved_by": reservedBy})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GiftRepositoryImpl) ReleaseReserve(giftID string, reservedBy int64) (bool, error) {
	result := r.db.Model(&models.Gift{}).
		Where("id = ? AND is_reserved = ? AND is_given = ? AND reserved_by = ?",
			giftID, true, false, reservedBy).
		Updates(map[string]interface{}{"is_reserved": false, "reserved_by": nil})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
