package repositories

import (
	"errors"

	"giftlist_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDonationNotFound = errors.New("donation not found")

// ContributionResult - снимок состояния сбора сразу после добавления взноса.
// TotalBefore/TotalAfter считаются внутри той же транзакции, что и вставка
// донора, под блокировкой строки подарка - это точка сериализации
// одновременных взносов в один подарок.
type ContributionResult struct {
	Gift     *models.Gift
	Donation *models.Donation
	Donor    *models.Donor

	// Opened = true, если этот взнос создал сбор.
	Opened bool

	TotalBefore float64
	TotalAfter  float64

	// ContributorIDs - уникальные user ID всех вкладчиков, включая текущего.
	ContributorIDs []string
}

type DonationRepository interface {
	FindByGiftID(giftID string) (*models.Donation, error)

	// AppendDonor атомарно добавляет взнос: блокирует строку подарка,
	// создает сбор при первом взносе, вставляет донора и возвращает
	// согласованные суммы до/после.
	AppendDonor(giftID, userID string, amount float64, isAnonymous bool) (*ContributionResult, error)

	// DeleteWithDonors удаляет всех доноров и сам сбор одной транзакцией.
	DeleteWithDonors(donationID string) error
}

type DonationRepositoryImpl struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &DonationRepositoryImpl{db: db}
}

func (r *DonationRepositoryImpl) FindByGiftID(giftID string) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.
		Preload("Donors").
		Preload("Donors.User").
		Preload("Author").
		First(&donation, "gift_id = ?", giftID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

func (r *DonationRepositoryImpl) AppendDonor(giftID, userID string, amount float64, isAnonymous bool) (*ContributionResult, error) {
	var result ContributionResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var gift models.Gift
		// SELECT ... FOR UPDATE: все взносы в один подарок сериализуются здесь,
		// поэтому суммы до/после читаются из согласованного снимка.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&gift, "id = ?", giftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGiftNotFound
			}
			return err
		}

		var donation models.Donation
		err := tx.Preload("Donors").First(&donation, "gift_id = ?", giftID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			donation = models.Donation{
				GiftID:      giftID,
				AuthorID:    userID,
				IsAnonymous: isAnonymous,
			}
			if err := tx.Create(&donation).Error; err != nil {
				return err
			}
			result.Opened = true
		case err != nil:
			return err
		}

		seen := make(map[string]bool)
		for _, d := range donation.Donors {
			result.TotalBefore += d.Amount
			if !seen[d.UserID] {
				seen[d.UserID] = true
				result.ContributorIDs = append(result.ContributorIDs, d.UserID)
			}
		}
		result.TotalAfter = result.TotalBefore + amount

		donor := models.Donor{
			DonationID: donation.ID,
			UserID:     userID,
			Amount:     amount,
		}
		if err := tx.Create(&donor).Error; err != nil {
			return err
		}

		if !seen[userID] {
			result.ContributorIDs = append(result.ContributorIDs, userID)
		}

		result.Gift = &gift
		result.Donation = &donation
		result.Donor = &donor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *DonationRepositoryImpl) DeleteWithDonors(donationID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("donation_id = ?", donationID).Delete(&models.Donor{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", donationID).Delete(&models.Donation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrDonationNotFound
		}
		return nil
	})
}
