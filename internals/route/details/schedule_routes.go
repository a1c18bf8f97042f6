package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleController "pragmaprofe_backend/internals/features/horarios/controller"
)

func ScheduleRoutes(private fiber.Router, db *gorm.DB) {
	ctrl := scheduleController.NewScheduleController(db)

	h := private.Group("/horario")
	h.Get("/", ctrl.GetSchedule)
	h.Put("/", ctrl.SaveSchedule)
	h.Get("/actual", ctrl.GetCurrentClass)
}
