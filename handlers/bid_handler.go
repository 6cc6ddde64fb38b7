package handlers

import (
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/RockInMyHead/tendersyte-sub000/notifications"
	"github.com/RockInMyHead/tendersyte-sub000/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBidRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Description   string  `json:"description" validate:"omitempty"`
	TimeframeDays int     `json:"timeframe_days" validate:"required,gt=0"`
}

func ListTenderBids(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tender id"})
	}

	if _, err := storage.Store.GetTender(tenderID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tender not found"})
	}

	bids, err := storage.Store.ListBidsForTender(tenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bids"})
	}
	return c.JSON(bids)
}

func CreateBid(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tender id"})
	}

	var req CreateBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tender, err := storage.Store.GetTender(tenderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tender not found"})
	}
	if tender.UserID == userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You cannot bid on your own tender"})
	}
	if tender.Status != models.TenderStatusOpen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tender is not open for bids"})
	}

	bid := models.TenderBid{
		TenderID:      tenderID,
		UserID:        userID,
		Amount:        req.Amount,
		Description:   req.Description,
		TimeframeDays: req.TimeframeDays,
	}

	if err := storage.Store.CreateBid(&bid); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create bid"})
	}

	return c.Status(fiber.StatusCreated).JSON(bid)
}

// AcceptBid marks one bid as the winner, clears every sibling bid and moves
// the tender to in_progress. The storage layer runs the sequence atomically.
func AcceptBid(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bidID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid bid id"})
	}

	bid, err := storage.Store.GetBid(bidID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bid not found"})
	}

	tender, err := storage.Store.GetTender(bid.TenderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tender not found"})
	}
	if tender.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the tender owner can accept bids"})
	}

	accepted, err := storage.Store.AcceptBid(bidID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to accept bid"})
	}

	if bidder, err := storage.Store.GetUser(accepted.UserID); err == nil {
		go notifications.SendEmail(bidder.FullName, bidder.Email, "Your bid was accepted",
			"<h1>Congratulations!</h1><p>Your bid on \""+tender.Title+"\" has been accepted.</p>")
	}

	return c.JSON(accepted)
}
