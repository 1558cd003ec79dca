package services

import (
	"errors"
	"sync"
	"testing"

	"giftlist_backend/internal/models"
	"giftlist_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestToggleReserve_OwnGiftForbidden(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	_, err := env.giftService.ToggleReserve(owner.ID, gift.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrReserveOwnGift), "владелец не бронирует свое")
}

func TestToggleReserve_RoundTrip(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	friend := env.users.addUser(2, "Friend", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	// Бронируем
	resp, err := env.giftService.ToggleReserve(friend.ID, gift.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsReserved)
	require.NotNil(t, resp.ReservedBy)
	assert.Equal(t, friend.TelegramID, *resp.ReservedBy)

	// Владельцу ушло уведомление о брони
	reserved := env.notifications.byType(models.NotificationGiftReserved)
	require.Len(t, reserved, 1)
	assert.Equal(t, owner.ID, reserved[0].RecipientID)
	t.Logf("бронь поставлена, уведомление получателю %s", reserved[0].RecipientID)

	// Повторный вызов того же пользователя снимает бронь
	resp, err = env.giftService.ToggleReserve(friend.ID, gift.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsReserved)
	assert.Nil(t, resp.ReservedBy)
}

func TestToggleReserve_ThirdPartyConflict(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	first := env.users.addUser(2, "First", "en")
	second := env.users.addUser(3, "Second", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	_, err := env.giftService.ToggleReserve(first.ID, gift.ID)
	require.NoError(t, err)

	// Третий пользователь не может ни перехватить, ни снять чужую бронь
	_, err = env.giftService.ToggleReserve(second.ID, gift.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGiftAlreadyReserved))

	// Владелец снять бронь может
	resp, err := env.giftService.ToggleReserve(owner.ID, gift.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsReserved)
}

// Бронь ставится условным UPDATE, поэтому из конкурентных бронирующих
// побеждает ровно один.
func TestToggleReserve_ConcurrentSingleWinner(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	const workers = 8
	actors := make([]*models.User, workers)
	for i := range actors {
		actors[i] = env.users.addUser(int64(100+i), "Actor", "en")
	}

	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.giftService.ToggleReserve(actors[i].ID, gift.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.True(t, errors.Is(err, apperrors.ErrGiftAlreadyReserved))
	}
	assert.Equal(t, 1, winners, "бронь достается ровно одному")
	t.Logf("8 конкурентных бронирований: победителей %d", winners)

	// Владелец уведомлен один раз, в базе бронь победителя
	assert.Len(t, env.notifications.byType(models.NotificationGiftReserved), 1)
	stored, err := env.gifts.FindByID(gift.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsReserved)
	require.NotNil(t, stored.ReservedBy)
}

func TestToggleReserve_GivenGiftLocked(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	friend := env.users.addUser(2, "Friend", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	_, err := env.giftService.ToggleReserve(friend.ID, gift.ID)
	require.NoError(t, err)
	_, err = env.giftService.ToggleGiven(owner.ID, gift.ID)
	require.NoError(t, err)

	// Бронь врученного подарка снять нельзя
	_, err = env.giftService.ToggleReserve(friend.ID, gift.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestToggleGiven_OnlyOwner(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	friend := env.users.addUser(2, "Friend", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	_, err := env.giftService.ToggleGiven(friend.ID, gift.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotGiftOwner))
}

func TestToggleGiven_ResetClearsThanked(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	friend := env.users.addUser(2, "Friend", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	_, err := env.giftService.ToggleReserve(friend.ID, gift.ID)
	require.NoError(t, err)
	_, err = env.giftService.ToggleGiven(owner.ID, gift.ID)
	require.NoError(t, err)
	_, err = env.giftService.Thank(owner.ID, gift.ID)
	require.NoError(t, err)

	// Откат вручения сбрасывает и благодарность
	resp, err := env.giftService.ToggleGiven(owner.ID, gift.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsGiven)
	assert.False(t, resp.IsThanked)
}

func TestToggleGiven_NotifiesReserver(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	friend := env.users.addUser(2, "Friend", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	_, err := env.giftService.ToggleReserve(friend.ID, gift.ID)
	require.NoError(t, err)
	_, err = env.giftService.ToggleGiven(owner.ID, gift.ID)
	require.NoError(t, err)

	given := env.notifications.byType(models.NotificationGiftGiven)
	require.Len(t, given, 1)
	assert.Equal(t, owner.ID, given[0].RecipientID)
	require.NotNil(t, given[0].SenderID)
	assert.Equal(t, friend.ID, *given[0].SenderID, "отправителем числится бронировавший")
}

func TestThank_RequiresGiven(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	_, err := env.giftService.Thank(owner.ID, gift.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGiftNotGiven))
}

func TestThank_OnceAndNotifiesReserver(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Вова", "ru")
	friend := env.users.addUser(2, "Friend", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	_, err := env.giftService.ToggleReserve(friend.ID, gift.ID)
	require.NoError(t, err)
	_, err = env.giftService.ToggleGiven(owner.ID, gift.ID)
	require.NoError(t, err)

	resp, err := env.giftService.Thank(owner.ID, gift.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsThanked)

	notes := env.notifications.byType(models.NotificationGiftThankYouNote)
	require.Len(t, notes, 1)
	assert.Equal(t, friend.ID, notes[0].RecipientID)

	// Повторная благодарность отклоняется
	_, err = env.giftService.Thank(owner.ID, gift.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGiftAlreadyThanked))
}

func TestThank_CrowdfundedNotifiesAllDonors(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	alice := env.users.addUser(2, "Alice", "en")
	bob := env.users.addUser(3, "Bob", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Велосипед", floatPtr(300))

	stored, err := env.gifts.FindByID(gift.ID)
	require.NoError(t, err)
	stored.IsGiven = true
	stored.Donation = &models.Donation{
		BaseModel: newBase(),
		GiftID:    gift.ID,
		AuthorID:  alice.ID,
		Donors: []models.Donor{
			{BaseModel: newBase(), UserID: alice.ID, Amount: 200},
			{BaseModel: newBase(), UserID: bob.ID, Amount: 100},
		},
	}
	require.NoError(t, env.gifts.Update(stored))

	_, err = env.giftService.Thank(owner.ID, gift.ID)
	require.NoError(t, err)

	notes := env.notifications.byType(models.NotificationGiftThankYouNote)
	recipients := make(map[string]bool)
	for _, n := range notes {
		recipients[n.RecipientID] = true
	}
	assert.Len(t, notes, 2, "благодарность получает каждый вкладчик")
	assert.True(t, recipients[alice.ID])
	assert.True(t, recipients[bob.ID])
}

func TestThankAll_Idempotent(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	friend := env.users.addUser(2, "Friend", "en")

	for _, name := range []string{"Часы", "Книга", "Кружка"} {
		gift := env.gifts.addGift(owner.TelegramID, name, nil)
		_, err := env.giftService.ToggleReserve(friend.ID, gift.ID)
		require.NoError(t, err)
		_, err = env.giftService.ToggleGiven(owner.ID, gift.ID)
		require.NoError(t, err)
	}

	thanked, err := env.giftService.ThankAll(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, thanked)

	// Второй проход не находит кандидатов
	thanked, err = env.giftService.ThankAll(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, thanked)
}

func TestGetGift_InvisibleLooksAbsent(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	insider := env.users.addUser(2, "Insider", "en")
	outsider := env.users.addUser(3, "Outsider", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)

	require.NoError(t, env.gifts.ReplaceViewers(gift.ID, []string{insider.ID}))

	_, err := env.giftService.GetGift(insider.ID, gift.ID)
	require.NoError(t, err)

	// Для постороннего подарок неотличим от несуществующего
	_, err = env.giftService.GetGift(outsider.ID, gift.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	// И операции владельца для него тоже выглядят как 404, а не 403
	err = env.giftService.DeleteGift(outsider.ID, gift.ID)
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetGift_OwnerSkipsViewerLoading(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	insider := env.users.addUser(2, "Insider", "en")
	gift := env.gifts.addGift(owner.TelegramID, "Часы", nil)
	require.NoError(t, env.gifts.ReplaceViewers(gift.ID, []string{insider.ID}))

	// Владельцу allow-list для проверки видимости не нужен
	_, err := env.giftService.GetGift(owner.ID, gift.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, env.gifts.viewerLoads)

	// Для остальных список подгружается отдельно
	_, err = env.giftService.GetGift(insider.ID, gift.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.gifts.viewerLoads)
}

func TestMarkGiven_SchedulerPath(t *testing.T) {
	env := newTestEnv()
	owner := env.users.addUser(1, "Owner", "en")
	friend := env.users.addUser(2, "Friend", "en")
	reserved := env.gifts.addGift(owner.TelegramID, "Часы", nil)
	untouched := env.gifts.addGift(owner.TelegramID, "Книга", nil)

	_, err := env.giftService.ToggleReserve(friend.ID, reserved.ID)
	require.NoError(t, err)

	require.NoError(t, env.giftService.MarkGiven(reserved.ID))
	require.NoError(t, env.giftService.MarkGiven(untouched.ID))

	got, err := env.gifts.FindByID(reserved.ID)
	require.NoError(t, err)
	assert.True(t, got.IsGiven)

	got, err = env.gifts.FindByID(untouched.ID)
	require.NoError(t, err)
	assert.False(t, got.IsGiven, "незарезервированный подарок не трогаем")

	// Повторный вызов не шлет второе уведомление
	require.NoError(t, env.giftService.MarkGiven(reserved.ID))
	assert.Len(t, env.notifications.byType(models.NotificationGiftGiven), 1)
}
