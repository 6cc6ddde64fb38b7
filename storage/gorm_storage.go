package storage

import (
	"errors"
	"math"
	"time"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorage is the relational implementation, backed by Postgres in
// production and a SQLite file in development.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStorage) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormStorage) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStorage) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStorage) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStorage) GetUserByResetToken(token string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "reset_password_token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStorage) UpdateUser(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *GormStorage) ListUsers(filter UserFilter) ([]models.User, error) {
	q := s.db.Model(&models.User{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("username LIKE ? OR full_name LIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var users []models.User
	if err := q.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStorage) CreateTender(tender *models.Tender) error {
	return s.db.Create(tender).Error
}

func (s *GormStorage) GetTender(id uuid.UUID) (*models.Tender, error) {
	var tender models.Tender
	if err := s.db.Preload("User").First(&tender, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &tender, nil
}

func (s *GormStorage) UpdateTender(tender *models.Tender) error {
	return s.db.Save(tender).Error
}

func (s *GormStorage) DeleteTender(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tender_id = ?", id).Delete(&models.TenderBid{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tender{}, "id = ?", id).Error
	})
}

func (s *GormStorage) ListTenders(filter TenderFilter) ([]models.Tender, error) {
	q := s.db.Model(&models.Tender{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		q = q.Where("location = ?", filter.Location)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var tenders []models.Tender
	if err := q.Order("created_at desc").Find(&tenders).Error; err != nil {
		return nil, err
	}
	return tenders, nil
}

func (s *GormStorage) IncrementTenderViews(id uuid.UUID) error {
	return s.db.Model(&models.Tender{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (s *GormStorage) CreateBid(bid *models.TenderBid) error {
	return s.db.Create(bid).Error
}

func (s *GormStorage) GetBid(id uuid.UUID) (*models.TenderBid, error) {
	var bid models.TenderBid
	if err := s.db.First(&bid, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &bid, nil
}

func (s *GormStorage) ListBidsForTender(tenderID uuid.UUID) ([]models.TenderBid, error) {
	var bids []models.TenderBid
	err := s.db.Preload("User").
		Where("tender_id = ?", tenderID).
		Order("created_at asc").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (s *GormStorage) AcceptBid(bidID uuid.UUID) (*models.TenderBid, error) {
	var accepted models.TenderBid
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&accepted, "id = ?", bidID).Error; err != nil {
			return translate(err)
		}

		if err := tx.Model(&models.TenderBid{}).
			Where("tender_id = ?", accepted.TenderID).
			Update("is_accepted", false).Error; err != nil {
			return err
		}

		accepted.IsAccepted = true
		if err := tx.Save(&accepted).Error; err != nil {
			return err
		}

		return tx.Model(&models.Tender{}).
			Where("id = ?", accepted.TenderID).
			Update("status", models.TenderStatusInProgress).Error
	})
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}

func (s *GormStorage) CreateListing(listing *models.MarketplaceListing) error {
	return s.db.Create(listing).Error
}

func (s *GormStorage) GetListing(id uuid.UUID) (*models.MarketplaceListing, error) {
	var listing models.MarketplaceListing
	if err := s.db.Preload("User").First(&listing, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (s *GormStorage) UpdateListing(listing *models.MarketplaceListing) error {
	return s.db.Save(listing).Error
}

func (s *GormStorage) ListListings(filter ListingFilter) ([]models.MarketplaceListing, error) {
	q := s.db.Model(&models.MarketplaceListing{})
	if !filter.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		q = q.Where("location = ?", filter.Location)
	}
	if filter.ListingType != "" {
		q = q.Where("listing_type = ?", filter.ListingType)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var listings []models.MarketplaceListing
	if err := q.Order("created_at desc").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *GormStorage) IncrementListingViews(id uuid.UUID) error {
	return s.db.Model(&models.MarketplaceListing{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (s *GormStorage) CreateMessage(message *models.Message) error {
	return s.db.Create(message).Error
}

func (s *GormStorage) GetMessage(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := s.db.First(&message, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

func (s *GormStorage) ListMessagesForUser(userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormStorage) ListConversation(userA, userB uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	).Order("created_at asc").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormStorage) MarkMessageRead(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := s.db.First(&message, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if !message.IsRead {
		message.IsRead = true
		if err := s.db.Save(&message).Error; err != nil {
			return nil, err
		}
	}
	return &message, nil
}

func (s *GormStorage) ListUnreadCounts(before time.Time) ([]UnreadCount, error) {
	var counts []UnreadCount
	err := s.db.Model(&models.Message{}).
		Select("receiver_id as user_id, count(*) as count").
		Where("is_read = ? AND created_at < ?", false, before).
		Group("receiver_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *GormStorage) CreateReview(review *models.Review) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var avg float64
		err := tx.Model(&models.Review{}).
			Where("recipient_id = ?", review.RecipientID).
			Select("avg(rating)").
			Scan(&avg).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", review.RecipientID).
			Update("rating", int(math.Round(avg))).Error
	})
}

func (s *GormStorage) ListReviewsForUser(recipientID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("Reviewer").
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *GormStorage) CreateGuarantee(guarantee *models.BankGuarantee) error {
	return s.db.Create(guarantee).Error
}

func (s *GormStorage) GetGuarantee(id uuid.UUID) (*models.BankGuarantee, error) {
	var guarantee models.BankGuarantee
	if err := s.db.First(&guarantee, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &guarantee, nil
}

func (s *GormStorage) UpdateGuarantee(guarantee *models.BankGuarantee) error {
	return s.db.Save(guarantee).Error
}

func (s *GormStorage) ListGuaranteesForUser(userID uuid.UUID) ([]models.BankGuarantee, error) {
	var guarantees []models.BankGuarantee
	err := s.db.Where("customer_id = ? OR contractor_id = ?", userID, userID).
		Order("created_at desc").
		Find(&guarantees).Error
	if err != nil {
		return nil, err
	}
	return guarantees, nil
}

func (s *GormStorage) ExpireGuarantees(now time.Time) (int64, error) {
	res := s.db.Model(&models.BankGuarantee{}).
		Where("status = ? AND end_date < ?", models.GuaranteeStatusActive, now).
		Update("status", models.GuaranteeStatusExpired)
	return res.RowsAffected, res.Error
}

func (s *GormStorage) Stats() (*Stats, error) {
	var stats Stats
	counts := []struct {
		model interface{}
		where []interface{}
		dest  *int64
	}{
		{&models.User{}, nil, &stats.Users},
		{&models.Tender{}, nil, &stats.Tenders},
		{&models.Tender{}, []interface{}{"status = ?", models.TenderStatusOpen}, &stats.OpenTenders},
		{&models.MarketplaceListing{}, nil, &stats.Listings},
		{&models.MarketplaceListing{}, []interface{}{"is_active = ?", true}, &stats.ActiveListings},
		{&models.Message{}, nil, &stats.Messages},
		{&models.Review{}, nil, &stats.Reviews},
		{&models.BankGuarantee{}, nil, &stats.Guarantees},
	}
	for _, c := range counts {
		q := s.db.Model(c.model)
		if len(c.where) > 0 {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
