package storage

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/google/uuid"
)

// MemoryStorage keeps everything in maps guarded by one RWMutex. It backs the
// test suite and ad-hoc local runs where no database file is wanted.
type MemoryStorage struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]models.User
	tenders    map[uuid.UUID]models.Tender
	bids       map[uuid.UUID]models.TenderBid
	listings   map[uuid.UUID]models.MarketplaceListing
	messages   map[uuid.UUID]models.Message
	reviews    map[uuid.UUID]models.Review
	guarantees map[uuid.UUID]models.BankGuarantee
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:      make(map[uuid.UUID]models.User),
		tenders:    make(map[uuid.UUID]models.Tender),
		bids:       make(map[uuid.UUID]models.TenderBid),
		listings:   make(map[uuid.UUID]models.MarketplaceListing),
		messages:   make(map[uuid.UUID]models.Message),
		reviews:    make(map[uuid.UUID]models.Review),
		guarantees: make(map[uuid.UUID]models.BankGuarantee),
	}
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (s *MemoryStorage) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStorage) GetUser(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStorage) findUser(match func(models.User) bool) (*models.User, error) {
	for _, user := range s.users {
		if match(user) {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

func (s *MemoryStorage) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(u models.User) bool { return u.Email == email })
}

func (s *MemoryStorage) GetUserByResetToken(token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(u models.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == token
	})
}

func (s *MemoryStorage) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStorage) ListUsers(filter UserFilter) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		if matches(filter.Search, user.Username, user.FullName) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return paginate(users, filter.Limit, filter.Offset), nil
}

func (s *MemoryStorage) CreateTender(tender *models.Tender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tender.ID == uuid.Nil {
		tender.ID = uuid.New()
	}
	now := time.Now()
	tender.CreatedAt = now
	tender.UpdatedAt = now
	s.tenders[tender.ID] = *tender
	return nil
}

func (s *MemoryStorage) GetTender(id uuid.UUID) (*models.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tender, ok := s.tenders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &tender, nil
}

func (s *MemoryStorage) UpdateTender(tender *models.Tender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenders[tender.ID]; !ok {
		return ErrNotFound
	}
	tender.UpdatedAt = time.Now()
	s.tenders[tender.ID] = *tender
	return nil
}

func (s *MemoryStorage) DeleteTender(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenders[id]; !ok {
		return ErrNotFound
	}
	delete(s.tenders, id)
	for bidID, bid := range s.bids {
		if bid.TenderID == id {
			delete(s.bids, bidID)
		}
	}
	return nil
}

func (s *MemoryStorage) ListTenders(filter TenderFilter) ([]models.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenders := make([]models.Tender, 0, len(s.tenders))
	for _, tender := range s.tenders {
		if filter.Category != "" && tender.Category != filter.Category {
			continue
		}
		if filter.Location != "" && tender.Location != filter.Location {
			continue
		}
		if filter.Status != "" && tender.Status != filter.Status {
			continue
		}
		if filter.UserID != nil && tender.UserID != *filter.UserID {
			continue
		}
		if !matches(filter.Search, tender.Title, tender.Description) {
			continue
		}
		tenders = append(tenders, tender)
	}
	sort.Slice(tenders, func(i, j int) bool { return tenders[i].CreatedAt.After(tenders[j].CreatedAt) })
	return paginate(tenders, filter.Limit, filter.Offset), nil
}

func (s *MemoryStorage) IncrementTenderViews(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tender, ok := s.tenders[id]
	if !ok {
		return ErrNotFound
	}
	tender.ViewCount++
	s.tenders[id] = tender
	return nil
}

func (s *MemoryStorage) CreateBid(bid *models.TenderBid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	now := time.Now()
	bid.CreatedAt = now
	bid.UpdatedAt = now
	s.bids[bid.ID] = *bid
	return nil
}

func (s *MemoryStorage) GetBid(id uuid.UUID) (*models.TenderBid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bid, ok := s.bids[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &bid, nil
}

func (s *MemoryStorage) ListBidsForTender(tenderID uuid.UUID) ([]models.TenderBid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := make([]models.TenderBid, 0)
	for _, bid := range s.bids {
		if bid.TenderID == tenderID {
			bids = append(bids, bid)
		}
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].CreatedAt.Before(bids[j].CreatedAt) })
	return bids, nil
}

func (s *MemoryStorage) AcceptBid(bidID uuid.UUID) (*models.TenderBid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted, ok := s.bids[bidID]
	if !ok {
		return nil, ErrNotFound
	}

	for id, bid := range s.bids {
		if bid.TenderID == accepted.TenderID && bid.IsAccepted {
			bid.IsAccepted = false
			s.bids[id] = bid
		}
	}

	accepted.IsAccepted = true
	accepted.UpdatedAt = time.Now()
	s.bids[bidID] = accepted

	tender, ok := s.tenders[accepted.TenderID]
	if !ok {
		return nil, ErrNotFound
	}
	tender.Status = models.TenderStatusInProgress
	tender.UpdatedAt = time.Now()
	s.tenders[tender.ID] = tender

	return &accepted, nil
}

func (s *MemoryStorage) CreateListing(listing *models.MarketplaceListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	s.listings[listing.ID] = *listing
	return nil
}

func (s *MemoryStorage) GetListing(id uuid.UUID) (*models.MarketplaceListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &listing, nil
}

func (s *MemoryStorage) UpdateListing(listing *models.MarketplaceListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listing.ID]; !ok {
		return ErrNotFound
	}
	listing.UpdatedAt = time.Now()
	s.listings[listing.ID] = *listing
	return nil
}

func (s *MemoryStorage) ListListings(filter ListingFilter) ([]models.MarketplaceListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]models.MarketplaceListing, 0, len(s.listings))
	for _, listing := range s.listings {
		if !filter.IncludeInactive && !listing.IsActive {
			continue
		}
		if filter.Category != "" && listing.Category != filter.Category {
			continue
		}
		if filter.Location != "" && listing.Location != filter.Location {
			continue
		}
		if filter.ListingType != "" && listing.ListingType != filter.ListingType {
			continue
		}
		if filter.UserID != nil && listing.UserID != *filter.UserID {
			continue
		}
		if !matches(filter.Search, listing.Title, listing.Description) {
			continue
		}
		listings = append(listings, listing)
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].CreatedAt.After(listings[j].CreatedAt) })
	return paginate(listings, filter.Limit, filter.Offset), nil
}

func (s *MemoryStorage) IncrementListingViews(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[id]
	if !ok {
		return ErrNotFound
	}
	listing.ViewCount++
	s.listings[id] = listing
	return nil
}

func (s *MemoryStorage) CreateMessage(message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now()
	s.messages[message.ID] = *message
	return nil
}

func (s *MemoryStorage) GetMessage(id uuid.UUID) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	message, ok := s.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &message, nil
}

func (s *MemoryStorage) ListMessagesForUser(userID uuid.UUID) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]models.Message, 0)
	for _, message := range s.messages {
		if message.SenderID == userID || message.ReceiverID == userID {
			messages = append(messages, message)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.After(messages[j].CreatedAt) })
	return messages, nil
}

func (s *MemoryStorage) ListConversation(userA, userB uuid.UUID) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]models.Message, 0)
	for _, message := range s.messages {
		if (message.SenderID == userA && message.ReceiverID == userB) ||
			(message.SenderID == userB && message.ReceiverID == userA) {
			messages = append(messages, message)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.Before(messages[j].CreatedAt) })
	return messages, nil
}

func (s *MemoryStorage) MarkMessageRead(id uuid.UUID) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, ok := s.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	message.IsRead = true
	s.messages[id] = message
	return &message, nil
}

func (s *MemoryStorage) ListUnreadCounts(before time.Time) ([]UnreadCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byUser := make(map[uuid.UUID]int64)
	for _, message := range s.messages {
		if !message.IsRead && message.CreatedAt.Before(before) {
			byUser[message.ReceiverID]++
		}
	}
	counts := make([]UnreadCount, 0, len(byUser))
	for userID, count := range byUser {
		counts = append(counts, UnreadCount{UserID: userID, Count: count})
	}
	return counts, nil
}

func (s *MemoryStorage) CreateReview(review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()
	s.reviews[review.ID] = *review

	sum, count := 0, 0
	for _, r := range s.reviews {
		if r.RecipientID == review.RecipientID {
			sum += r.Rating
			count++
		}
	}

	recipient, ok := s.users[review.RecipientID]
	if !ok {
		return ErrNotFound
	}
	recipient.Rating = int(math.Round(float64(sum) / float64(count)))
	s.users[recipient.ID] = recipient
	return nil
}

func (s *MemoryStorage) ListReviewsForUser(recipientID uuid.UUID) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]models.Review, 0)
	for _, review := range s.reviews {
		if review.RecipientID == recipientID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (s *MemoryStorage) CreateGuarantee(guarantee *models.BankGuarantee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if guarantee.ID == uuid.Nil {
		guarantee.ID = uuid.New()
	}
	now := time.Now()
	guarantee.CreatedAt = now
	guarantee.UpdatedAt = now
	s.guarantees[guarantee.ID] = *guarantee
	return nil
}

func (s *MemoryStorage) GetGuarantee(id uuid.UUID) (*models.BankGuarantee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	guarantee, ok := s.guarantees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &guarantee, nil
}

func (s *MemoryStorage) UpdateGuarantee(guarantee *models.BankGuarantee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.guarantees[guarantee.ID]; !ok {
		return ErrNotFound
	}
	guarantee.UpdatedAt = time.Now()
	s.guarantees[guarantee.ID] = *guarantee
	return nil
}

func (s *MemoryStorage) ListGuaranteesForUser(userID uuid.UUID) ([]models.BankGuarantee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	guarantees := make([]models.BankGuarantee, 0)
	for _, guarantee := range s.guarantees {
		if guarantee.CustomerID == userID || guarantee.ContractorID == userID {
			guarantees = append(guarantees, guarantee)
		}
	}
	sort.Slice(guarantees, func(i, j int) bool { return guarantees[i].CreatedAt.After(guarantees[j].CreatedAt) })
	return guarantees, nil
}

func (s *MemoryStorage) ExpireGuarantees(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired int64
	for id, guarantee := range s.guarantees {
		if guarantee.Status == models.GuaranteeStatusActive && guarantee.EndDate.Before(now) {
			guarantee.Status = models.GuaranteeStatusExpired
			guarantee.UpdatedAt = now
			s.guarantees[id] = guarantee
			expired++
		}
	}
	return expired, nil
}

func (s *MemoryStorage) Stats() (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Users:      int64(len(s.users)),
		Tenders:    int64(len(s.tenders)),
		Listings:   int64(len(s.listings)),
		Messages:   int64(len(s.messages)),
		Reviews:    int64(len(s.reviews)),
		Guarantees: int64(len(s.guarantees)),
	}
	for _, tender := range s.tenders {
		if tender.Status == models.TenderStatusOpen {
			stats.OpenTenders++
		}
	}
	for _, listing := range s.listings {
		if listing.IsActive {
			stats.ActiveListings++
		}
	}
	return &stats, nil
}
