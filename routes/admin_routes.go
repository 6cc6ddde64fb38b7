package routes

import (
	"github.com/RockInMyHead/tendersyte-sub000/handlers"
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/stats", handlers.GetDashboardStats)

	users := admin.Group("/users")
	users.Get("", handlers.AdminListUsers)
	users.Put("/:id", handlers.AdminUpdateUser)
}
