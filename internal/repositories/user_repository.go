package repositories

import (
	"errors"

	"giftlist_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	// User operations
	FindByID(id string) (*models.User, error)
	FindByIDWithLists(id string) (*models.User, error)
	FindByTelegramID(telegramID int64) (*models.User, error)
	FindByIDs(ids []string) ([]models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error

	// Friendship edge (симметричная пара строк в join-таблице)
	AddFriend(userID, friendID string) error
	RemoveFriend(userID, friendID string) error
	AreFriends(userID, friendID string) (bool, error)
	ListFriends(userID string) ([]models.User, error)

	// Block list
	AddBlocked(userID, blockedID string) error
	RemoveBlocked(userID, blockedID string) error
	IsBlocked(userID, blockedID string) (bool, error)

	// Allow-lists
	ReplaceViewers(userID string, viewerIDs []string) error
	ReplaceGiftViewers(userID string, viewerIDs []string) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByIDWithLists загружает пользователя вместе с allow-list'ами видимости.
func (r *UserRepositoryImpl) FindByIDWithLists(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Viewers").Preload("GiftViewers").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// --- Friendship ---

// AddFriend добавляет ребро дружбы в обе стороны. Идемпотентно: повторное
// добавление существующей пары не является ошибкой.
func (r *UserRepositoryImpl) AddFriend(userID, friendID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		rows := []map[string]interface{}{
			{"user_id": userID, "friend_id": friendID},
			{"user_id": friendID, "friend_id": userID},
		}
		for _, row := range rows {
			if err := tx.Table("user_friends").Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepositoryImpl) RemoveFriend(userID, friendID string) error {
	return r.db.Exec(
		"DELETE FROM user_friends WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, friendID, friendID, userID,
	).Error
}

func (r *UserRepositoryImpl) AreFriends(userID, friendID string) (bool, error) {
	var count int64
	err := r.db.Table("user_friends").
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) ListFriends(userID string) ([]models.User, error) {
	var user models.User
	err := r.db.Preload("Friends").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Friends, nil
}

// --- Block list ---

func (r *UserRepositoryImpl) AddBlocked(userID, blockedID string) error {
	row := map[string]interface{}{"user_id": userID, "blocked_id": blockedID}
	return r.db.Table("user_blocked").Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

func (r *UserRepositoryImpl) RemoveBlocked(userID, blockedID string) error {
	return r.db.Exec("DELETE FROM user_blocked WHERE user_id = ? AND blocked_id = ?", userID, blockedID).Error
}

func (r *UserRepositoryImpl) IsBlocked(userID, blockedID string) (bool, error) {
	var count int64
	err := r.db.Table("user_blocked").
		Where("user_id = ? AND blocked_id = ?", userID, blockedID).
		Count(&count).Error
	return count > 0, err
}

// --- Allow-lists ---

func (r *UserRepositoryImpl) ReplaceViewers(userID string, viewerIDs []string) error {
	return r.replaceList("user_viewers", "viewer_id", userID, viewerIDs)
}

func (r *UserRepositoryImpl) ReplaceGiftViewers(userID string, viewerIDs []string) error {
	return r.replaceList("user_gift_viewers", "viewer_id", userID, viewerIDs)
}

func (r *UserRepositoryImpl) replaceList(table, column, userID string, ids []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+table+" WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		for _, id := range ids {
			row := map[string]interface{}{"user_id": userID, column: id}
			if err := tx.Table(table).Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
