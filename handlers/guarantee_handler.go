package handlers

import (
	"time"

	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/RockInMyHead/tendersyte-sub000/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateGuaranteeRequest struct {
	ContractorID string    `json:"contractor_id" validate:"required,uuid"`
	TenderID     string    `json:"tender_id" validate:"omitempty,uuid"`
	Amount       float64   `json:"amount" validate:"required,gt=0"`
	Description  string    `json:"description" validate:"omitempty"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

type UpdateGuaranteeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active expired canceled completed"`
}

func CreateGuarantee(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateGuaranteeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	contractorID, _ := uuid.Parse(req.ContractorID)
	if _, err := storage.Store.GetUser(contractorID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contractor not found"})
	}

	guarantee := models.BankGuarantee{
		CustomerID:   userID,
		ContractorID: contractorID,
		Amount:       req.Amount,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       models.GuaranteeStatusPending,
	}
	if req.TenderID != "" {
		tenderID, _ := uuid.Parse(req.TenderID)
		if _, err := storage.Store.GetTender(tenderID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tender not found"})
		}
		guarantee.TenderID = &tenderID
	}

	if err := storage.Store.CreateGuarantee(&guarantee); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create guarantee"})
	}

	return c.Status(fiber.StatusCreated).JSON(guarantee)
}

func GetMyGuarantees(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	guarantees, err := storage.Store.ListGuaranteesForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch guarantees"})
	}
	return c.JSON(guarantees)
}

func GetGuarantee(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	guaranteeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid guarantee id"})
	}

	guarantee, err := storage.Store.GetGuarantee(guaranteeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Guarantee not found"})
	}
	if guarantee.CustomerID != userID && guarantee.ContractorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not a party to this guarantee"})
	}
	return c.JSON(guarantee)
}

func UpdateGuaranteeStatus(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	guaranteeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid guarantee id"})
	}

	var req UpdateGuaranteeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	guarantee, err := storage.Store.GetGuarantee(guaranteeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Guarantee not found"})
	}
	if guarantee.CustomerID != userID && guarantee.ContractorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not a party to this guarantee"})
	}

	guarantee.Status = req.Status
	if err := storage.Store.UpdateGuarantee(guarantee); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update guarantee"})
	}

	return c.JSON(guarantee)
}
