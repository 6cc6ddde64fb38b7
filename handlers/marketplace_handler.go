package handlers

import (
	"errors"
	"strconv"

	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/RockInMyHead/tendersyte-sub000/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required,max=100"`
	ListingType string   `json:"listing_type" validate:"required,oneof=sell rent buy"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Condition   string   `json:"condition" validate:"omitempty,max=50"`
	Location    string   `json:"location" validate:"required,max=255"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

type UpdateListingRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" validate:"omitempty,max=100"`
	ListingType *string   `json:"listing_type" validate:"omitempty,oneof=sell rent buy"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	Condition   *string   `json:"condition" validate:"omitempty,max=50"`
	Location    *string   `json:"location" validate:"omitempty,max=255"`
	Images      *[]string `json:"images" validate:"omitempty,dive,url"`
}

func ListListings(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	filter := storage.ListingFilter{
		Category:    c.Query("category"),
		Location:    c.Query("location"),
		ListingType: c.Query("type"),
		Search:      c.Query("search"),
		Limit:       limit,
		Offset:      offset,
	}
	if raw := c.Query("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userId"})
		}
		filter.UserID = &userID
	}

	listings, err := storage.Store.ListListings(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listings"})
	}
	return c.JSON(listings)
}

func CreateListing(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	listing := models.MarketplaceListing{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ListingType: req.ListingType,
		Price:       req.Price,
		Location:    req.Location,
		Images:      req.Images,
		IsActive:    true,
	}
	if req.Condition != "" {
		listing.Condition = &req.Condition
	}

	if err := storage.Store.CreateListing(&listing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create listing"})
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

func GetListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	listing, err := storage.Store.GetListing(listingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if err := storage.Store.IncrementListingViews(listingID); err == nil {
		listing.ViewCount++
	}

	return c.JSON(listing)
}

func UpdateListing(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	listing, err := storage.Store.GetListing(listingID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}
	if listing.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own listings"})
	}

	var req UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Category != nil {
		listing.Category = *req.Category
	}
	if req.ListingType != nil {
		listing.ListingType = *req.ListingType
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.Condition != nil {
		listing.Condition = req.Condition
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}
	if req.Images != nil {
		listing.Images = *req.Images
	}

	if err := storage.Store.UpdateListing(listing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update listing"})
	}

	return c.JSON(listing)
}

// DeleteListing is a soft delete: the row stays, is_active flips to false and
// the listing drops out of default marketplace results.
func DeleteListing(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	listing, err := storage.Store.GetListing(listingID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}
	if listing.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own listings"})
	}

	listing.IsActive = false
	if err := storage.Store.UpdateListing(listing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete listing"})
	}

	return c.JSON(fiber.Map{"message": "Listing deleted"})
}
