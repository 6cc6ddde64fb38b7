package handlers

import (
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/RockInMyHead/tendersyte-sub000/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
	TenderID    string `json:"tender_id" validate:"omitempty,uuid"`
	ListingID   string `json:"listing_id" validate:"omitempty,uuid"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"omitempty"`
}

// CreateReview stores the review and recomputes the recipient's aggregate
// rating (rounded mean over all their reviews).
func CreateReview(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	recipientID, _ := uuid.Parse(req.RecipientID)
	if recipientID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot review yourself"})
	}
	if _, err := storage.Store.GetUser(recipientID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
	}

	review := models.Review{
		ReviewerID:  userID,
		RecipientID: recipientID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if req.TenderID != "" {
		tenderID, _ := uuid.Parse(req.TenderID)
		if _, err := storage.Store.GetTender(tenderID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tender not found"})
		}
		review.TenderID = &tenderID
	}
	if req.ListingID != "" {
		listingID, _ := uuid.Parse(req.ListingID)
		if _, err := storage.Store.GetListing(listingID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		review.ListingID = &listingID
	}

	if err := storage.Store.CreateReview(&review); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}
