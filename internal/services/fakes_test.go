package services

import (
	"sync"
	"time"

	"giftlist_backend/internal/models"
	"giftlist_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory реализации репозиториев для юнит-тестов сервисов.
// Поведение повторяет контракт gorm-реализаций: те же ошибки NotFound,
// AppendDonor сериализуется мьютексом так же, как FOR UPDATE строкой подарка.

func newBase() models.BaseModel {
	now := time.Now()
	return models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// ---------------- users ----------------

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*models.User
	friends     map[string]map[string]bool
	blocked     map[string]map[string]bool
	viewers     map[string][]string
	giftViewers map[string][]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       make(map[string]*models.User),
		friends:     make(map[string]map[string]bool),
		blocked:     make(map[string]map[string]bool),
		viewers:     make(map[string][]string),
		giftViewers: make(map[string][]string),
	}
}

func (r *fakeUserRepo) addUser(telegramID int64, firstName, language string) *models.User {
	user := &models.User{
		BaseModel:  newBase(),
		TelegramID: telegramID,
		FirstName:  firstName,
		Language:   language,
		Currency:   "USD",
	}
	r.mu.Lock()
	r.users[user.ID] = user
	r.mu.Unlock()
	return user
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByIDWithLists(id string) (*models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, viewerID := range r.viewers[id] {
		if v, ok := r.users[viewerID]; ok {
			user.Viewers = append(user.Viewers, *v)
		}
	}
	for _, viewerID := range r.giftViewers[id] {
		if v, ok := r.users[viewerID]; ok {
			user.GiftViewers = append(user.GiftViewers, *v)
		}
	}
	return user, nil
}

func (r *fakeUserRepo) FindByTelegramID(telegramID int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.TelegramID == telegramID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByIDs(ids []string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []models.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			found = append(found, *user)
		}
	}
	return found, nil
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.BaseModel = newBase()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) AddFriend(userID, friendID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edge(r.friends, userID, friendID, true)
	r.edge(r.friends, friendID, userID, true)
	return nil
}

func (r *fakeUserRepo) RemoveFriend(userID, friendID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edge(r.friends, userID, friendID, false)
	r.edge(r.friends, friendID, userID, false)
	return nil
}

func (r *fakeUserRepo) AreFriends(userID, friendID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.friends[userID][friendID], nil
}

func (r *fakeUserRepo) ListFriends(userID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var friends []models.User
	for friendID := range r.friends[userID] {
		if user, ok := r.users[friendID]; ok {
			friends = append(friends, *user)
		}
	}
	return friends, nil
}

func (r *fakeUserRepo) AddBlocked(userID, blockedID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edge(r.blocked, userID, blockedID, true)
	return nil
}

func (r *fakeUserRepo) RemoveBlocked(userID, blockedID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edge(r.blocked, userID, blockedID, false)
	return nil
}

func (r *fakeUserRepo) IsBlocked(userID, blockedID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocked[userID][blockedID], nil
}

func (r *fakeUserRepo) ReplaceViewers(userID string, viewerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewers[userID] = append([]string(nil), viewerIDs...)
	return nil
}

func (r *fakeUserRepo) ReplaceGiftViewers(userID string, viewerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.giftViewers[userID] = append([]string(nil), viewerIDs...)
	return nil
}

func (r *fakeUserRepo) edge(m map[string]map[string]bool, from, to string, set bool) {
	if m[from] == nil {
		m[from] = make(map[string]bool)
	}
	if set {
		m[from][to] = true
	} else {
		delete(m[from], to)
	}
}

// ---------------- gifts ----------------

type fakeGiftRepo struct {
	mu    sync.Mutex
	gifts map[string]*models.Gift

	// viewerLoads считает обращения к allow-list'у: владельцу он не нужен.
	viewerLoads int
}

func newFakeGiftRepo() *fakeGiftRepo {
	return &fakeGiftRepo{gifts: make(map[string]*models.Gift)}
}

func (r *fakeGiftRepo) addGift(ownerTelegramID int64, name string, price *float64) *models.Gift {
	gift := &models.Gift{
		BaseModel: newBase(),
		OwnerID:   ownerTelegramID,
		Name:      name,
		Price:     price,
		Currency:  "USD",
	}
	r.mu.Lock()
	r.gifts[gift.ID] = gift
	r.mu.Unlock()
	return gift
}

func (r *fakeGiftRepo) Create(gift *models.Gift) error {
	if gift.ID == "" {
		gift.BaseModel = newBase()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *gift
	r.gifts[gift.ID] = &copied
	return nil
}

func (r *fakeGiftRepo) FindByID(id string) (*models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gift, ok := r.gifts[id]
	if !ok {
		return nil, repositories.ErrGiftNotFound
	}
	copied := *gift
	// Allow-list не грузится, его отдает только FindViewers.
	copied.Viewers = nil
	return &copied, nil
}

func (r *fakeGiftRepo) FindByOwner(ownerID int64) ([]models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var gifts []models.Gift
	for _, gift := range r.gifts {
		if gift.OwnerID == ownerID {
			gifts = append(gifts, *gift)
		}
	}
	return gifts, nil
}

func (r *fakeGiftRepo) Update(gift *models.Gift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.gifts[gift.ID]
	if !ok {
		return repositories.ErrGiftNotFound
	}
	copied := *gift
	// Save не трогает allow-list, им управляет только ReplaceViewers.
	if copied.Viewers == nil {
		copied.Viewers = existing.Viewers
	}
	r.gifts[gift.ID] = &copied
	return nil
}

func (r *fakeGiftRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gifts[id]; !ok {
		return repositories.ErrGiftNotFound
	}
	delete(r.gifts, id)
	return nil
}

func (r *fakeGiftRepo) FindThankable(ownerID int64) ([]models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var gifts []models.Gift
	for _, gift := range r.gifts {
		if gift.OwnerID == ownerID && gift.IsGiven && !gift.IsThanked {
			gifts = append(gifts, *gift)
		}
	}
	return gifts, nil
}

func (r *fakeGiftRepo) ReplaceViewers(giftID string, viewerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gift, ok := r.gifts[giftID]
	if !ok {
		return repositories.ErrGiftNotFound
	}
	gift.Viewers = nil
	for _, viewerID := range viewerIDs {
		gift.Viewers = append(gift.Viewers, models.User{BaseModel: models.BaseModel{ID: viewerID}})
	}
	return nil
}

func (r *fakeGiftRepo) FindViewers(giftID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gift, ok := r.gifts[giftID]
	if !ok {
		return nil, repositories.ErrGiftNotFound
	}
	r.viewerLoads++
	return append([]models.User(nil), gift.Viewers...), nil
}

func (r *fakeGiftRepo) TryReserve(giftID string, reservedBy int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gift, ok := r.gifts[giftID]
	if !ok || gift.IsReserved {
		return false, nil
	}
	gift.IsReserved = true
	gift.ReservedBy = &reservedBy
	return true, nil
}

func (r *fakeGiftRepo) ReleaseReserve(giftID string, reservedBy int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gift, ok := r.gifts[giftID]
	if !ok || !gift.IsReserved || gift.IsGiven ||
		gift.ReservedBy == nil || *gift.ReservedBy != reservedBy {
		return false, nil
	}
	gift.IsReserved = false
	gift.ReservedBy = nil
	return true, nil
}

// ---------------- donations ----------------

type fakeDonationRepo struct {
	mu        sync.Mutex
	gifts     *fakeGiftRepo
	donations map[string]*models.Donation // по giftID
}

func newFakeDonationRepo(gifts *fakeGiftRepo) *fakeDonationRepo {
	return &fakeDonationRepo{gifts: gifts, donations: make(map[string]*models.Donation)}
}

func (r *fakeDonationRepo) FindByGiftID(giftID string) (*models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	donation, ok := r.donations[giftID]
	if !ok {
		return nil, repositories.ErrDonationNotFound
	}
	copied := *donation
	copied.Donors = append([]models.Donor(nil), donation.Donors...)
	return &copied, nil
}

// AppendDonor повторяет транзакцию с блокировкой строки подарка:
// весь шаг от чтения суммы до вставки донора атомарен.
func (r *fakeDonationRepo) AppendDonor(giftID, userID string, amount float64, isAnonymous bool) (*repositories.ContributionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gift, err := r.gifts.FindByID(giftID)
	if err != nil {
		return nil, err
	}

	donation, ok := r.donations[giftID]
	opened := false
	if !ok {
		donation = &models.Donation{
			BaseModel:   newBase(),
			GiftID:      giftID,
			AuthorID:    userID,
			IsAnonymous: isAnonymous,
		}
		r.donations[giftID] = donation
		opened = true
	}

	totalBefore := 0.0
	for _, donor := range donation.Donors {
		totalBefore += donor.Amount
	}

	donor := models.Donor{
		BaseModel:  newBase(),
		DonationID: donation.ID,
		UserID:     userID,
		Amount:     amount,
	}
	donation.Donors = append(donation.Donors, donor)

	seen := map[string]bool{}
	var contributorIDs []string
	for _, d := range donation.Donors {
		if !seen[d.UserID] {
			seen[d.UserID] = true
			contributorIDs = append(contributorIDs, d.UserID)
		}
	}

	return &repositories.ContributionResult{
		Gift:           gift,
		Donation:       donation,
		Donor:          &donor,
		Opened:         opened,
		TotalBefore:    totalBefore,
		TotalAfter:     totalBefore + amount,
		ContributorIDs: contributorIDs,
	}, nil
}

func (r *fakeDonationRepo) DeleteWithDonors(donationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for giftID, donation := range r.donations {
		if donation.ID == donationID {
			delete(r.donations, giftID)
			return nil
		}
	}
	return repositories.ErrDonationNotFound
}

// ---------------- friend requests ----------------

type fakeFriendRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.FriendRequest
}

func newFakeFriendRequestRepo() *fakeFriendRequestRepo {
	return &fakeFriendRequestRepo{requests: make(map[string]*models.FriendRequest)}
}

func (r *fakeFriendRequestRepo) Create(request *models.FriendRequest) error {
	if request.ID == "" {
		request.BaseModel = newBase()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakeFriendRequestRepo) FindByID(id string) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrFriendRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeFriendRequestRepo) FindPendingBetween(userA, userB string) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, request := range r.requests {
		if request.Status != models.FriendRequestStatusPending {
			continue
		}
		if (request.RequesterID == userA && request.RecipientID == userB) ||
			(request.RequesterID == userB && request.RecipientID == userA) {
			copied := *request
			return &copied, nil
		}
	}
	return nil, repositories.ErrFriendRequestNotFound
}

func (r *fakeFriendRequestRepo) ListIncoming(userID string) ([]models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []models.FriendRequest
	for _, request := range r.requests {
		if request.RecipientID == userID && request.Status == models.FriendRequestStatusPending {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *fakeFriendRequestRepo) ListOutgoing(userID string) ([]models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []models.FriendRequest
	for _, request := range r.requests {
		if request.RequesterID == userID && request.Status == models.FriendRequestStatusPending {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *fakeFriendRequestRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return repositories.ErrFriendRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *fakeFriendRequestRepo) DeleteBetween(userA, userB string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, request := range r.requests {
		if (request.RequesterID == userA && request.RecipientID == userB) ||
			(request.RequesterID == userB && request.RecipientID == userA) {
			delete(r.requests, id)
		}
	}
	return nil
}

// ---------------- notifications ----------------

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.BaseModel = newBase()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) CreateBatch(notifications []models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range notifications {
		if notifications[i].ID == "" {
			notifications[i].BaseModel = newBase()
		}
		r.notifications = append(r.notifications, notifications[i])
	}
	return nil
}

func (r *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			copied := r.notifications[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) FindByCriteria(criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID != criteria.RecipientID {
			continue
		}
		if criteria.UnreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	total := int64(len(matched))
	if criteria.Offset < len(matched) {
		matched = matched[criteria.Offset:]
	} else {
		matched = nil
	}
	if criteria.Limit > 0 && criteria.Limit < len(matched) {
		matched = matched[:criteria.Limit]
	}
	return matched, total, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].RecipientID == recipientID {
			now := time.Now()
			r.notifications[i].IsRead = true
			r.notifications[i].ReadAt = &now
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID && !r.notifications[i].IsRead {
			r.notifications[i].IsRead = true
			r.notifications[i].ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) UnreadCount(recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].RecipientID == recipientID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

// byType возвращает уведомления заданного типа.
func (r *fakeNotificationRepo) byType(notificationType string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Notification
	for _, n := range r.notifications {
		if n.Type == notificationType {
			matched = append(matched, n)
		}
	}
	return matched
}

// ---------------- events ----------------

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]*models.Event

	viewerLoads int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*models.Event)}
}

func (r *fakeEventRepo) Create(event *models.Event) error {
	if event.ID == "" {
		event.BaseModel = newBase()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) FindByID(id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	copied := *event
	// Allow-list не грузится, его отдает только FindViewers.
	copied.Viewers = nil
	return &copied, nil
}

func (r *fakeEventRepo) FindVisibleTo(user *models.User) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []models.Event
	for _, event := range r.events {
		events = append(events, *event)
	}
	return events, nil
}

func (r *fakeEventRepo) Update(event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.events[event.ID]
	if !ok {
		return repositories.ErrEventNotFound
	}
	copied := *event
	if copied.Viewers == nil {
		copied.Viewers = existing.Viewers
	}
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) AddMember(eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return repositories.ErrEventNotFound
	}
	for _, m := range event.Members {
		if m.ID == userID {
			return nil
		}
	}
	event.Members = append(event.Members, models.User{BaseModel: models.BaseModel{ID: userID}})
	return nil
}

func (r *fakeEventRepo) RemoveMember(eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return repositories.ErrEventNotFound
	}
	for i, m := range event.Members {
		if m.ID == userID {
			event.Members = append(event.Members[:i], event.Members[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeEventRepo) AddGift(eventID, giftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return repositories.ErrEventNotFound
	}
	for _, g := range event.Gifts {
		if g.ID == giftID {
			return nil
		}
	}
	event.Gifts = append(event.Gifts, models.Gift{BaseModel: models.BaseModel{ID: giftID}})
	return nil
}

func (r *fakeEventRepo) RemoveGift(eventID, giftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return repositories.ErrEventNotFound
	}
	for i, g := range event.Gifts {
		if g.ID == giftID {
			event.Gifts = append(event.Gifts[:i], event.Gifts[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeEventRepo) ReplaceViewers(eventID string, viewerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return repositories.ErrEventNotFound
	}
	event.Viewers = nil
	for _, viewerID := range viewerIDs {
		event.Viewers = append(event.Viewers, models.User{BaseModel: models.BaseModel{ID: viewerID}})
	}
	return nil
}

func (r *fakeEventRepo) FindViewers(eventID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	r.viewerLoads++
	return append([]models.User(nil), event.Viewers...), nil
}

func (r *fakeEventRepo) FindAllForSweep() ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []models.Event
	for _, event := range r.events {
		events = append(events, *event)
	}
	return events, nil
}

func (r *fakeEventRepo) MarkStartNotified(eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok || event.StartNotificationSent {
		return false, nil
	}
	event.StartNotificationSent = true
	return true, nil
}

func (r *fakeEventRepo) MarkCompletionNotified(eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok || event.CompletionNotificationSent {
		return false, nil
	}
	event.CompletionNotificationSent = true
	return true, nil
}

func (r *fakeEventRepo) MarkGiftersRevealed(eventID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok || event.GiftersRevealedAt != nil {
		return false, nil
	}
	event.GiftersRevealedAt = &at
	return true, nil
}
