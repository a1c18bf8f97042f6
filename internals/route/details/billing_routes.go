package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingController "pragmaprofe_backend/internals/features/billing/plans/controller"
)

func BillingRoutes(private fiber.Router, public fiber.Router, db *gorm.DB) {
	ctrl := billingController.NewBillingController(db)

	b := private.Group("/billing")
	b.Post("/pagos", ctrl.CreatePayment)
	b.Post("/confirmar", ctrl.ConfirmPayment)
	b.Post("/trial", ctrl.StartTrial)
	b.Get("/plan", ctrl.GetEntitlement)

	// Flow confirma acá, sin JWT
	public.Post("/billing/webhook", ctrl.FlowWebhook)
}
