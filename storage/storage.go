package storage

import (
	"errors"
	"time"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned by every implementation when a record does not
// exist, so handlers never depend on driver-specific errors.
var ErrNotFound = errors.New("record not found")

type TenderFilter struct {
	Category string
	Location string
	Status   string
	Search   string
	UserID   *uuid.UUID
	Limit    int
	Offset   int
}

type ListingFilter struct {
	Category        string
	Location        string
	ListingType     string
	Search          string
	UserID          *uuid.UUID
	IncludeInactive bool
	Limit           int
	Offset          int
}

type UserFilter struct {
	Search string
	Limit  int
	Offset int
}

// Stats is the aggregate snapshot served by the admin dashboard.
type Stats struct {
	Users          int64 `json:"users"`
	Tenders        int64 `json:"tenders"`
	OpenTenders    int64 `json:"open_tenders"`
	Listings       int64 `json:"listings"`
	ActiveListings int64 `json:"active_listings"`
	Messages       int64 `json:"messages"`
	Reviews        int64 `json:"reviews"`
	Guarantees     int64 `json:"guarantees"`
}

// UnreadCount pairs a receiver with how many unread messages they hold.
type UnreadCount struct {
	UserID uuid.UUID
	Count  int64
}

type Storage interface {
	CreateUser(user *models.User) error
	GetUser(id uuid.UUID) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByResetToken(token string) (*models.User, error)
	UpdateUser(user *models.User) error
	ListUsers(filter UserFilter) ([]models.User, error)

	CreateTender(tender *models.Tender) error
	GetTender(id uuid.UUID) (*models.Tender, error)
	UpdateTender(tender *models.Tender) error
	DeleteTender(id uuid.UUID) error
	ListTenders(filter TenderFilter) ([]models.Tender, error)
	IncrementTenderViews(id uuid.UUID) error

	CreateBid(bid *models.TenderBid) error
	GetBid(id uuid.UUID) (*models.TenderBid, error)
	ListBidsForTender(tenderID uuid.UUID) ([]models.TenderBid, error)
	// AcceptBid clears is_accepted on every sibling bid, marks the given bid
	// accepted and moves the tender to in_progress, all in one transaction.
	AcceptBid(bidID uuid.UUID) (*models.TenderBid, error)

	CreateListing(listing *models.MarketplaceListing) error
	GetListing(id uuid.UUID) (*models.MarketplaceListing, error)
	UpdateListing(listing *models.MarketplaceListing) error
	ListListings(filter ListingFilter) ([]models.MarketplaceListing, error)
	IncrementListingViews(id uuid.UUID) error

	CreateMessage(message *models.Message) error
	GetMessage(id uuid.UUID) (*models.Message, error)
	ListMessagesForUser(userID uuid.UUID) ([]models.Message, error)
	ListConversation(userA, userB uuid.UUID) ([]models.Message, error)
	MarkMessageRead(id uuid.UUID) (*models.Message, error)
	ListUnreadCounts(before time.Time) ([]UnreadCount, error)

	// CreateReview stores the review and recomputes the recipient's rating as
	// the rounded mean over all their reviews, in one transaction.
	CreateReview(review *models.Review) error
	ListReviewsForUser(recipientID uuid.UUID) ([]models.Review, error)

	CreateGuarantee(guarantee *models.BankGuarantee) error
	GetGuarantee(id uuid.UUID) (*models.BankGuarantee, error)
	UpdateGuarantee(guarantee *models.BankGuarantee) error
	ListGuaranteesForUser(userID uuid.UUID) ([]models.BankGuarantee, error)
	ExpireGuarantees(now time.Time) (int64, error)

	Stats() (*Stats, error)
}

// Store is the process-wide storage handle, set once at startup.
var Store Storage

func Use(s Storage) {
	Store = s
}
