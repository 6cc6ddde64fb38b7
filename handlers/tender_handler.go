package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/RockInMyHead/tendersyte-sub000/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateTenderRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=255"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required,max=100"`
	Location    string    `json:"location" validate:"required,max=255"`
	Budget      float64   `json:"budget" validate:"required,gt=0"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	Images      []string  `json:"images" validate:"omitempty,dive,url"`
}

// UpdateTenderRequest deliberately has no status, view count or timestamp
// fields: those never come from the client.
type UpdateTenderRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string    `json:"description"`
	Category    *string    `json:"category" validate:"omitempty,max=100"`
	Location    *string    `json:"location" validate:"omitempty,max=255"`
	Budget      *float64   `json:"budget" validate:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline"`
	Images      *[]string  `json:"images" validate:"omitempty,dive,url"`
}

func ListTenders(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	filter := storage.TenderFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := c.Query("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userId"})
		}
		filter.UserID = &userID
	}

	tenders, err := storage.Store.ListTenders(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tenders"})
	}
	return c.JSON(tenders)
}

func CreateTender(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateTenderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tender := models.Tender{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Status:      models.TenderStatusOpen,
		Images:      req.Images,
	}

	if err := storage.Store.CreateTender(&tender); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create tender"})
	}

	return c.Status(fiber.StatusCreated).JSON(tender)
}

func GetTender(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tender id"})
	}

	tender, err := storage.Store.GetTender(tenderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tender not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if err := storage.Store.IncrementTenderViews(tenderID); err == nil {
		tender.ViewCount++
	}

	return c.JSON(tender)
}

func UpdateTender(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tender id"})
	}

	tender, err := storage.Store.GetTender(tenderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tender not found"})
	}
	if tender.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own tenders"})
	}

	var req UpdateTenderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		tender.Title = *req.Title
	}
	if req.Description != nil {
		tender.Description = *req.Description
	}
	if req.Category != nil {
		tender.Category = *req.Category
	}
	if req.Location != nil {
		tender.Location = *req.Location
	}
	if req.Budget != nil {
		tender.Budget = *req.Budget
	}
	if req.Deadline != nil {
		tender.Deadline = *req.Deadline
	}
	if req.Images != nil {
		tender.Images = *req.Images
	}

	if err := storage.Store.UpdateTender(tender); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update tender"})
	}

	return c.JSON(tender)
}

func DeleteTender(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tender id"})
	}

	tender, err := storage.Store.GetTender(tenderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tender not found"})
	}
	if tender.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own tenders"})
	}

	if err := storage.Store.DeleteTender(tenderID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete tender"})
	}

	return c.JSON(fiber.Map{"message": "Tender deleted"})
}
