package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "pragmaprofe_backend/internals/helpers"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "PragmaProfe API", fiber.Map{
			"uptime": time.Since(startTime).Round(time.Second).String(),
		})
	})

	// health con ping a la DB (el /health plano del main queda para el LB)
	app.Get("/health/db", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "DB no responde")
		}
		return helper.JsonOK(c, "OK", fiber.Map{"db": "up"})
	})
}
