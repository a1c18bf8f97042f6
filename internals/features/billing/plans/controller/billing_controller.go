package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pragmaprofe_backend/internals/configs"
	"pragmaprofe_backend/internals/constants"
	"pragmaprofe_backend/internals/features/billing/plans/dto"
	"pragmaprofe_backend/internals/features/billing/plans/model"
	"pragmaprofe_backend/internals/features/billing/plans/service"
	helper "pragmaprofe_backend/internals/helpers"
)

/*
	========================================================
	  Controller
========================================================
*/

type BillingController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBillingController(db *gorm.DB) *BillingController {
	return &BillingController{DB: db, Validator: validator.New()}
}

func apiBaseURL() string {
	return configs.GetEnv("API_BASE_URL", "https://api.pragmaprofe.cl")
}

/* ===================== POST /api/u/billing/pagos ===================== */

// Crea la orden (pending) y la registra en Flow. Devuelve el token y la URL
// donde el front redirige al profe a pagar.
func (ctrl *BillingController) CreatePayment(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var body dto.CreatePaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	amount := service.PlanAmount(body.Plan, body.Months)
	if amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Plan o cantidad de meses inválidos")
	}

	order := model.PaymentOrderModel{
		OrderUserID: userID,
		OrderPlan:   body.Plan,
		OrderMonths: body.Months,
		OrderAmount: amount,
		OrderEmail:  body.Email,
		OrderStatus: model.OrderStatusPending,
	}
	if err := ctrl.DB.Create(&order).Error; err != nil {
		log.Println("[ERROR] crear orden:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	subject := fmt.Sprintf("PragmaProfe %s x%d meses", body.Plan, body.Months)
	created, err := service.Flow.CreatePayment(
		c.Context(),
		order.OrderID.String(),
		subject,
		body.Email,
		amount,
		apiBaseURL()+"/api/public/billing/webhook",
		configs.GetEnv("FRONT_BASE_URL", "https://pragmaprofe.cl")+"/billing/retorno",
	)
	if err != nil {
		log.Println("[ERROR] flow create:", err)
		ctrl.DB.Model(&order).Update("order_status", model.OrderStatusFailed)
		return fiber.NewError(fiber.StatusBadGateway, "No pudimos iniciar el pago, intenta de nuevo")
	}

	if err := ctrl.DB.Model(&order).Update("order_flow_token", created.Token).Error; err != nil {
		log.Println("[ERROR] guardar token flow:", err)
	}

	return helper.JsonCreated(c, "Pago iniciado", dto.CreatePaymentResponse{
		OrderID: order.OrderID,
		Token:   created.Token,
		PayURL:  created.PayURL(),
		Amount:  amount,
	})
}

/* ===================== POST /api/u/billing/confirmar ===================== */

// Confirma el retorno del pago contra Flow. Si Flow no responde y el
// fallback local está permitido, activamos igual con source=fallback; si
// está apagado, la orden queda pending y el call falla.
func (ctrl *BillingController) ConfirmPayment(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var body dto.ConfirmPaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var order model.PaymentOrderModel
	if err := ctrl.DB.Where("order_flow_token = ? AND order_user_id = ?", body.Token, userID).
		First(&order).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Orden no encontrada")
	}
	if order.OrderStatus == model.OrderStatusPaid {
		return helper.JsonOK(c, "El plan ya estaba activo", ctrl.entitlementOf(userID))
	}

	status, verr := service.Flow.GetStatus(c.Context(), body.Token)
	source, derr := service.DecideActivation(status, verr, service.AllowLocalFallback())
	switch {
	case derr == nil:
		var raw []byte
		if status != nil {
			raw = status.Raw
		}
		if source == model.EntitlementSourceFallback {
			log.Println("[WARN] flow status inalcanzable, activando por fallback local:", verr)
		}
		if aerr := service.ActivateOrder(ctrl.DB, &order, source, raw); aerr != nil {
			log.Println("[ERROR] activar orden:", aerr)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
	case errors.Is(derr, service.ErrPaymentRejected):
		log.Printf("[INFO] orden %s rechazada por Flow (status %d)\n", order.OrderID, status.Status)
		ctrl.DB.Model(&order).Update("order_status", model.OrderStatusFailed)
		return fiber.NewError(fiber.StatusPaymentRequired, "El pago fue rechazado")
	case errors.Is(derr, service.ErrPaymentPending):
		log.Printf("[INFO] orden %s sin pago confirmado todavía\n", order.OrderID)
		return fiber.NewError(fiber.StatusPaymentRequired, "El pago aún no se confirma")
	default:
		// Flow inalcanzable y fallback apagado: la orden queda pending
		log.Println("[WARN] flow status inalcanzable (sin fallback):", verr)
		return fiber.NewError(fiber.StatusBadGateway,
			"No pudimos verificar tu pago; intenta de nuevo en unos minutos")
	}

	return helper.JsonOK(c, "Plan activado", ctrl.entitlementOf(userID))
}

/* ===================== POST /api/public/billing/webhook ===================== */

// Webhook de confirmación de Flow: llega form-encoded con el token. Acá no
// hay sesión de usuario; resolvemos la orden por token y verificamos con
// getStatus (nunca confiamos en el POST a ciegas).
func (ctrl *BillingController) FlowWebhook(c *fiber.Ctx) error {
	token := c.FormValue("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "token requerido")
	}

	var order model.PaymentOrderModel
	if err := ctrl.DB.Where("order_flow_token = ?", token).First(&order).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Orden no encontrada")
	}
	if order.OrderStatus == model.OrderStatusPaid {
		return c.SendStatus(fiber.StatusOK)
	}

	status, err := service.Flow.GetStatus(c.Context(), token)
	if err != nil {
		log.Println("[WARN] webhook sin verificación:", err)
		// que Flow reintente
		return fiber.NewError(fiber.StatusBadGateway, "verificación pendiente")
	}

	if status.IsPaid() {
		if aerr := service.ActivateOrder(ctrl.DB, &order, model.EntitlementSourceConfirmed, status.Raw); aerr != nil {
			log.Println("[ERROR] activar orden (webhook):", aerr)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		log.Printf("✅ Orden %s pagada vía webhook\n", order.OrderID)
	} else if status.Status == service.FlowStatusRejected || status.Status == service.FlowStatusAnnulled {
		ctrl.DB.Model(&order).Update("order_status", model.OrderStatusFailed)
	}

	return c.SendStatus(fiber.StatusOK)
}

/* ===================== POST /api/u/billing/trial ===================== */

// Activa la prueba gratis (PRO por unos días). Una sola vez por usuario:
// quien ya tuvo plan o prueba no puede repetirla.
func (ctrl *BillingController) StartTrial(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	if _, terr := service.StartTrial(ctrl.DB, userID); terr != nil {
		if errors.Is(terr, service.ErrTrialAlreadyUsed) {
			return fiber.NewError(fiber.StatusConflict, "Ya usaste tu prueba gratis")
		}
		log.Println("[ERROR] iniciar prueba:", terr)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonCreated(c, "Prueba activada", ctrl.entitlementOf(userID))
}

/* ===================== GET /api/u/billing/plan ===================== */

func (ctrl *BillingController) GetEntitlement(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", ctrl.entitlementOf(userID))
}

/* ===================== Helpers ===================== */

func (ctrl *BillingController) entitlementOf(userID interface{}) dto.EntitlementResponse {
	var ent model.PlanEntitlementModel
	if err := ctrl.DB.Where("entitlement_user_id = ?", userID).First(&ent).Error; err != nil {
		// sin entitlement: plan FREE vigente siempre
		return dto.EntitlementResponse{PlanTier: constants.PlanFree, Active: true}
	}

	now := time.Now()
	if !ent.IsActive(now) {
		return dto.EntitlementResponse{
			PlanTier:  constants.PlanFree,
			Active:    true,
			PeriodEnd: &ent.EntitlementPeriodEnd,
		}
	}
	return dto.EntitlementResponse{
		PlanTier:  ent.EntitlementPlanTier,
		Active:    true,
		PeriodEnd: &ent.EntitlementPeriodEnd,
		Source:    ent.EntitlementSource,
	}
}
