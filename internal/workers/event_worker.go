package workers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"giftlist_backend/internal/logger"
	"giftlist_backend/internal/models"
	"giftlist_backend/internal/repositories"
	"giftlist_backend/internal/services"
)

const lifecycleLeadTime = 24 * time.Hour

// EventWorker периодически проходит по событиям и выполняет переходы
// жизненного цикла: "скоро начнется", "завершилось", "раскрытие дарителей".
// Каждый переход защищен условным UPDATE в БД, поэтому параллельные
// инстансы не дублируют уведомления.
type EventWorker struct {
	eventRepo     repositories.EventRepository
	userRepo      repositories.UserRepository
	giftService   services.GiftService
	notifications services.NotificationService
	period        time.Duration
}

func NewEventWorker(
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	giftService services.GiftService,
	notifications services.NotificationService,
	period time.Duration,
) *EventWorker {
	if period <= 0 {
		period = time.Minute
	}
	return &EventWorker{
		eventRepo:     eventRepo,
		userRepo:      userRepo,
		giftService:   giftService,
		notifications: notifications,
		period:        period,
	}
}

// Start запускает фоновый цикл обхода событий.
func (w *EventWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *EventWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("event worker stopped")
			return
		case now := <-ticker.C:
			// Обход выполняется синхронно: пока он идет, тики копятся
			// в канале и схлопываются, параллельных обходов не бывает.
			w.RunSweepOnce(ctx, now)
		}
	}
}

// RunSweepOnce обходит все события один раз относительно момента now.
// Ошибка одного события не прерывает обход остальных.
func (w *EventWorker) RunSweepOnce(ctx context.Context, now time.Time) {
	events, err := w.eventRepo.FindAllForSweep()
	if err != nil {
		logger.WorkerLog("event_worker", "load events", err)
		return
	}

	for i := range events {
		if ctx.Err() != nil {
			return
		}
		if err := w.sweepEvent(&events[i], now); err != nil {
			logger.WorkerLog("event_worker", fmt.Sprintf("sweep event %s", events[i].ID), err)
		}
	}
}

func (w *EventWorker) sweepEvent(event *models.Event, now time.Time) error {
	half := w.period / 2

	// 1. Событие начинается через сутки.
	if !event.StartNotificationSent && inWindow(event.StartDate, now.Add(lifecycleLeadTime), half) {
		if err := w.notifyStartingSoon(event); err != nil {
			return err
		}
	}

	// 2. Событие завершилось.
	if event.EndDate != nil && !event.CompletionNotificationSent && inWindow(*event.EndDate, now, half) {
		if err := w.completeEvent(event); err != nil {
			return err
		}
	}

	// 3. Раскрытие дарителей через сутки после завершения анонимного события.
	if event.IsAnonymous && event.GiftersRevealedAt == nil && event.EndDate != nil &&
		inWindow(*event.EndDate, now.Add(-lifecycleLeadTime), half) {
		if err := w.revealGifters(event, now); err != nil {
			return err
		}
	}

	return nil
}

func (w *EventWorker) notifyStartingSoon(event *models.Event) error {
	// RowsAffected == 1 означает, что переход выполнили именно мы.
	ok, err := w.eventRepo.MarkStartNotified(event.ID)
	if err != nil || !ok {
		return err
	}

	return w.notifyOwner(event, services.NotifyParams{
		Type:      models.NotificationEventStartingSoon,
		Message:   fmt.Sprintf("%q starts in 24 hours", event.Name),
		MessageRu: fmt.Sprintf("%q начнется через 24 часа", event.Name),
	})
}

func (w *EventWorker) completeEvent(event *models.Event) error {
	ok, err := w.eventRepo.MarkCompletionNotified(event.ID)
	if err != nil || !ok {
		return err
	}

	if err := w.notifyOwner(event, services.NotifyParams{
		Type:      models.NotificationEventCompleted,
		Message:   fmt.Sprintf("%q has ended", event.Name),
		MessageRu: fmt.Sprintf("%q завершилось", event.Name),
	}); err != nil {
		logger.WorkerLog("event_worker", "event completed notification", err)
	}

	// Зарезервированные, но не врученные подарки считаются врученными.
	for i := range event.Gifts {
		gift := &event.Gifts[i]
		if !gift.IsReserved || gift.IsGiven {
			continue
		}
		if err := w.giftService.MarkGiven(gift.ID); err != nil {
			logger.WorkerLog("event_worker", fmt.Sprintf("mark gift %s given", gift.ID), err)
		}
	}

	if event.SendAcknowledgements {
		w.sendAcknowledgements(event)
	}
	return nil
}

func (w *EventWorker) revealGifters(event *models.Event, now time.Time) error {
	// События без подарков пропускаются, guard не выставляется.
	if len(event.Gifts) == 0 {
		return nil
	}

	ok, err := w.eventRepo.MarkGiftersRevealed(event.ID, now)
	if err != nil || !ok {
		return err
	}

	return w.notifyOwner(event, services.NotifyParams{
		Type:      models.NotificationEventGiftersRevealed,
		Message:   fmt.Sprintf("Gifters for %q are now revealed", event.Name),
		MessageRu: fmt.Sprintf("Дарители %q теперь раскрыты", event.Name),
	})
}

// sendAcknowledgements шлет каждому участнику персональную благодарность,
// подставляя {name} и {event}.
func (w *EventWorker) sendAcknowledgements(event *models.Event) {
	template := event.AcknowledgementMessage
	if template == "" {
		template = "Thank you, {name}, for being part of {event}!"
	}

	owner, err := w.userRepo.FindByTelegramID(event.OwnerID)
	if err != nil {
		logger.WorkerLog("event_worker", "acknowledgement owner lookup", err)
		return
	}

	for i := range event.Members {
		member := &event.Members[i]
		message := strings.ReplaceAll(template, "{name}", member.FirstName)
		message = strings.ReplaceAll(message, "{event}", event.Name)

		_, err := w.notifications.Notify(services.NotifyParams{
			RecipientID: member.ID,
			SenderID:    &owner.ID,
			Type:        models.NotificationEventThankYou,
			Message:     message,
			MessageRu:   message,
			EntityID:    event.ID,
			EntityModel: models.EntityModelEvent,
		})
		if err != nil {
			logger.WorkerLog("event_worker", fmt.Sprintf("acknowledgement to %s", member.ID), err)
		}
	}
}

func (w *EventWorker) notifyOwner(event *models.Event, params services.NotifyParams) error {
	owner, err := w.userRepo.FindByTelegramID(event.OwnerID)
	if err != nil {
		return err
	}
	params.RecipientID = owner.ID
	params.EntityID = event.ID
	params.EntityModel = models.EntityModelEvent
	_, err = w.notifications.Notify(params)
	return err
}

// inWindow: t попадает в полуинтервал [center-half, center+half).
func inWindow(t, center time.Time, half time.Duration) bool {
	diff := t.Sub(center)
	return diff >= -half && diff < half
}
