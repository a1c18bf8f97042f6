package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pragmaprofe_backend/internals/constants"
	helper "pragmaprofe_backend/internals/helpers"
	authMiddleware "pragmaprofe_backend/internals/middlewares/auth"
	routeDetails "pragmaprofe_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== BASE =====================
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → alumnos anónimos, solo con el código de la sesión
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE → profes autenticados
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// ADMIN → rol admin u owner
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(db), requireAdmin())

	// ===================== FEATURES =====================
	log.Println("[INFO] Setting up ScheduleRoutes...")
	routeDetails.ScheduleRoutes(private, db)

	log.Println("[INFO] Setting up LiveRoutes...")
	routeDetails.LiveRoutes(private, public, db)

	log.Println("[INFO] Setting up BillingRoutes...")
	routeDetails.BillingRoutes(private, public, db)

	log.Println("[INFO] Setting up CurriculumRoutes...")
	routeDetails.CurriculumRoutes(public, admin)

	log.Println("✅ All routes ready")
}

func requireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if role != constants.RoleAdmin && role != constants.RoleOwner {
			return fiber.NewError(fiber.StatusForbidden, "Solo administradores")
		}
		return c.Next()
	}
}
