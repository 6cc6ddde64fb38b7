package handlers

import (
	"strconv"

	"github.com/RockInMyHead/tendersyte-sub000/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminUpdateUserRequest struct {
	IsAdmin       *bool    `json:"is_admin"`
	IsVerified    *bool    `json:"is_verified"`
	WalletBalance *float64 `json:"wallet_balance" validate:"omitempty,gte=0"`
}

func GetDashboardStats(c *fiber.Ctx) error {
	stats, err := storage.Store.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}
	return c.JSON(stats)
}

func AdminListUsers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	users, err := storage.Store.ListUsers(storage.UserFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

func AdminUpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := storage.Store.GetUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}
	if req.WalletBalance != nil {
		user.WalletBalance = *req.WalletBalance
	}

	if err := storage.Store.UpdateUser(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}
