package repositories

import (
	"errors"
	"time"

	"giftlist_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepository interface {
	Create(event *models.Event) error
	FindByID(id string) (*models.Event, error)
	FindVisibleTo(user *models.User) ([]models.Event, error)
	Update(event *models.Event) error
	Delete(id string) error

	// Membership / gifts
	AddMember(eventID, userID string) error
	RemoveMember(eventID, userID string) error
	AddGift(eventID, giftID string) error
	RemoveGift(eventID, giftID string) error

	// ReplaceViewers заменяет allow-list события целиком.
	ReplaceViewers(eventID string, viewerIDs []string) error

	// FindViewers загружает allow-list отдельно: FindByID его не грузит,
	// владельцу и участникам список для проверки видимости не нужен.
	FindViewers(eventID string) ([]models.User, error)

	// FindAllForSweep возвращает все события со связями, нужными планировщику.
	FindAllForSweep() ([]models.Event, error)

	// One-shot guard'ы планировщика: атомарный условный UPDATE.
	// true = флаг выставили мы, уведомление можно отправлять.
	MarkStartNotified(eventID string) (bool, error)
	MarkCompletionNotified(eventID string) (bool, error)
	MarkGiftersRevealed(eventID string, at time.Time) (bool, error)
}

type EventRepositoryImpl struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *EventRepositoryImpl) FindByID(id string) (*models.Event, error) {
	var event models.Event
	err := r.db.
		Preload("Members").
		Preload("Gifts").
		First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindVisibleTo возвращает события, видимые пользователю: собственные,
// те, где он участник, и публичные или разрешенные allow-list'ом.
func (r *EventRepositoryImpl) FindVisibleTo(user *models.User) ([]models.Event, error) {
	var events []models.Event
	err := r.db.
		Preload("Members").
		Preload("Viewers").
		Where(`owner_id = ?
			OR id IN (SELECT event_id FROM event_members WHERE user_id = ?)
			OR id NOT IN (SELECT event_id FROM event_viewers)
			OR id IN (SELECT event_id FROM event_viewers WHERE user_id = ?)`,
			user.TelegramID, user.ID, user.ID).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *EventRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) AddMember(eventID, userID string) error {
	row := map[string]interface{}{"event_id": eventID, "user_id": userID}
	return r.db.Table("event_members").Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

func (r *EventRepositoryImpl) RemoveMember(eventID, userID string) error {
	return r.db.Exec("DELETE FROM event_members WHERE event_id = ? AND user_id = ?", eventID, userID).Error
}

func (r *EventRepositoryImpl) AddGift(eventID, giftID string) error {
	row := map[string]interface{}{"event_id": eventID, "gift_id": giftID}
	return r.db.Table("event_gifts").Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

func (r *EventRepositoryImpl) RemoveGift(eventID, giftID string) error {
	return r.db.Exec("DELETE FROM event_gifts WHERE event_id = ? AND gift_id = ?", eventID, giftID).Error
}

func (r *EventRepositoryImpl) ReplaceViewers(eventID string, viewerIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_viewers WHERE event_id = ?", eventID).Error; err != nil {
			return err
		}
		for _, viewerID := range viewerIDs {
			row := map[string]interface{}{"event_id": eventID, "user_id": viewerID}
			if err := tx.Table("event_viewers").Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *EventRepositoryImpl) FindViewers(eventID string) ([]models.User, error) {
	var viewers []models.User
	err := r.db.
		Joins("JOIN event_viewers ev ON ev.user_id = users.id").
		Where("ev.event_id = ?", eventID).
		Find(&viewers).Error
	return viewers, err
}

func (r *EventRepositoryImpl) FindAllForSweep() ([]models.Event, error) {
	var events []models.Event
	err := r.db.
		Preload("Members").
		Preload("Gifts").
		Find(&events).Error
	return events, err
}

// MarkStartNotified выставляет флаг "уведомление о старте отправлено".
// UPDATE ... WHERE flag = false: при гонке двух sweep'ов флаг достанется
// ровно одному.
func (r *EventRepositoryImpl) MarkStartNotified(eventID string) (bool, error) {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND start_notification_sent = ?", eventID, false).
		Update("start_notification_sent", true)
	return result.RowsAffected == 1, result.Error
}

func (r *EventRepositoryImpl) MarkCompletionNotified(eventID string) (bool, error) {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND completion_notification_sent = ?", eventID, false).
		Update("completion_notification_sent", true)
	return result.RowsAffected == 1, result.Error
}

func (r *EventRepositoryImpl) MarkGiftersRevealed(eventID string, at time.Time) (bool, error) {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND gifters_revealed_at IS NULL", eventID).
		Update("gifters_revealed_at", at)
	return result.RowsAffected == 1, result.Error
}
