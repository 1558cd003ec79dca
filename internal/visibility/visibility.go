// Package visibility решает, видна ли запись с allow-list'ом запрашивающему.
// Все проверки чистые: никаких запросов к базе, только загруженные модели.
// Невидимая запись должна превращаться в NotFound на уровне сервиса, чтобы
// не раскрывать сам факт ее существования.
package visibility

import "giftlist_backend/internal/models"

// Allowed - базовый предикат allow-list'а. Пустой список означает, что запись
// публичная; проверка обязана вернуть ответ до обращения к каким-либо связям.
func Allowed(viewers []models.User, requesterID string) bool {
	if len(viewers) == 0 {
		return true
	}
	for _, v := range viewers {
		if v.ID == requesterID {
			return true
		}
	}
	return false
}

// UserVisibleTo - виден ли профиль target пользователю requester.
func UserVisibleTo(target, requester *models.User) bool {
	if target == nil || requester == nil {
		return false
	}
	if target.ID == requester.ID {
		return true
	}
	return Allowed(target.Viewers, requester.ID)
}

// GiftVisibleTo - виден ли подарок пользователю requester.
func GiftVisibleTo(gift *models.Gift, requester *models.User) bool {
	if gift == nil || requester == nil {
		return false
	}
	if gift.OwnerID == requester.TelegramID {
		return true
	}
	return Allowed(gift.Viewers, requester.ID)
}

// EventVisibleTo - видно ли событие: владелец, участник или из allow-list'а.
func EventVisibleTo(event *models.Event, requester *models.User) bool {
	if event == nil || requester == nil {
		return false
	}
	if event.OwnerID == requester.TelegramID {
		return true
	}
	for _, m := range event.Members {
		if m.ID == requester.ID {
			return true
		}
	}
	return Allowed(event.Viewers, requester.ID)
}

// GivenGiftsVisibleTo - видны ли подаренные owner'ом подарки (allow-list GiftViewers).
func GivenGiftsVisibleTo(owner, requester *models.User) bool {
	if owner == nil || requester == nil {
		return false
	}
	if owner.ID == requester.ID {
		return true
	}
	return Allowed(owner.GiftViewers, requester.ID)
}
