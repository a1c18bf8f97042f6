package details

import (
	"github.com/gofiber/fiber/v2"

	oaController "pragmaprofe_backend/internals/features/curriculum/oa/controller"
)

func CurriculumRoutes(public fiber.Router, admin fiber.Router) {
	ctrl := oaController.NewOAController()

	public.Get("/curriculum/oa", ctrl.GetOA)
	admin.Post("/curriculum/cache/flush", ctrl.FlushCache)
}
