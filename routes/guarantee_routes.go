package routes

import (
	"github.com/RockInMyHead/tendersyte-sub000/handlers"
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func GuaranteeRoutes(app *fiber.App) {
	api := app.Group("/api")

	guarantees := api.Group("/guarantees", middleware.Protected())
	guarantees.Post("", handlers.CreateGuarantee)
	guarantees.Get("", handlers.GetMyGuarantees)
	guarantees.Get("/:id", handlers.GetGuarantee)
	guarantees.Put("/:id/status", handlers.UpdateGuaranteeStatus)
}
