package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pragmaprofe_backend/internals/configs"
	"pragmaprofe_backend/internals/constants"
	"pragmaprofe_backend/internals/features/billing/plans/model"
)

/*
	========================================================
	  Activación de planes
========================================================
*/

const (
	// precios en CLP
	PriceMonthlyCLP = 4990

	// meses de regalo al contratar 12 o más
	PromoBonusMonths = 2

	billingMonth = 30 * 24 * time.Hour
)

// PlanAmount calcula el total en CLP para un plan y cantidad de meses.
func PlanAmount(plan string, months int) int64 {
	if plan != constants.PlanPro || months < 1 {
		return 0
	}
	return int64(months) * PriceMonthlyCLP
}

// BonusMonths: contratos anuales llevan meses de regalo.
func BonusMonths(months int) int {
	if months >= 12 {
		return PromoBonusMonths
	}
	return 0
}

// ComputePeriodEnd: fin del período = ahora + (meses + bono) * 30 días.
func ComputePeriodEnd(now time.Time, months int) time.Time {
	if months < 1 {
		months = 1
	}
	total := months + BonusMonths(months)
	return now.Add(time.Duration(total) * billingMonth)
}

// AllowLocalFallback: si la confirmación contra Flow falla, ¿activamos igual?
// Configurable; encendido por defecto para no dejar al profe pagando sin plan.
func AllowLocalFallback() bool {
	return configs.GetEnvBool("FLOW_ALLOW_LOCAL_FALLBACK", true)
}

var (
	// Flow respondió pero el pago sigue pendiente.
	ErrPaymentPending = errors.New("pago aún no confirmado")
	// Flow respondió: pago rechazado o anulado.
	ErrPaymentRejected = errors.New("pago rechazado")
	// Flow inalcanzable y el fallback local está apagado.
	ErrVerifyUnavailable = errors.New("verificación no disponible")
)

// DecideActivation resuelve qué hacer con una orden dado el resultado de
// getStatus. Devuelve la fuente del entitlement a escribir, o un error si no
// corresponde activar (y la orden queda como está: pending). Función pura,
// el write lo hace ActivateOrder.
func DecideActivation(status *FlowStatusResponse, statusErr error, allowFallback bool) (string, error) {
	if statusErr != nil {
		if allowFallback {
			return model.EntitlementSourceFallback, nil
		}
		return "", ErrVerifyUnavailable
	}
	if status.IsPaid() {
		return model.EntitlementSourceConfirmed, nil
	}
	if status.Status == FlowStatusRejected || status.Status == FlowStatusAnnulled {
		return "", ErrPaymentRejected
	}
	return "", ErrPaymentPending
}

// ActivateOrder cierra el ciclo de una orden: upsert del entitlement del
// usuario y orden → paid, todo en una transacción.
func ActivateOrder(db *gorm.DB, order *model.PaymentOrderModel, source string, rawStatus []byte) error {
	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		ent := model.PlanEntitlementModel{
			EntitlementUserID:    order.OrderUserID,
			EntitlementPlanTier:  order.OrderPlan,
			EntitlementPeriodEnd: ComputePeriodEnd(now, order.OrderMonths),
			EntitlementSource:    source,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "entitlement_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"entitlement_plan_tier", "entitlement_period_end", "entitlement_source", "updated_at",
			}),
		}).Create(&ent).Error; err != nil {
			return err
		}

		order.OrderStatus = model.OrderStatusPaid
		if len(rawStatus) > 0 {
			order.OrderRawStatus = rawStatus
		}
		return tx.Save(order).Error
	})
}

/* ===================== Prueba gratis ===================== */

const TrialDays = 14

// ErrTrialAlreadyUsed: el usuario ya tiene (o tuvo) un entitlement.
var ErrTrialAlreadyUsed = errors.New("la prueba ya fue usada")

// NewTrialEntitlement arma el entitlement de prueba: PRO por TrialDays.
func NewTrialEntitlement(userID uuid.UUID, now time.Time) model.PlanEntitlementModel {
	return model.PlanEntitlementModel{
		EntitlementUserID:    userID,
		EntitlementPlanTier:  constants.PlanPro,
		EntitlementPeriodEnd: now.Add(TrialDays * 24 * time.Hour),
		EntitlementSource:    model.EntitlementSourceTrial,
	}
}

// StartTrial crea el entitlement de prueba una sola vez por usuario. El unique
// de entitlement_user_id hace el trabajo: si ya hay uno (activo, vencido o
// pagado) el insert no pega y la prueba se rechaza.
func StartTrial(db *gorm.DB, userID uuid.UUID) (*model.PlanEntitlementModel, error) {
	ent := NewTrialEntitlement(userID, time.Now())
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ent)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrTrialAlreadyUsed
	}
	return &ent, nil
}

/* ===================== Sweeper ===================== */

const (
	pendingSweepInterval = 1 * time.Hour
	pendingMaxAge        = 24 * time.Hour
)

// StartPendingOrderSweeper pasa a abandoned las órdenes pending que nadie
// confirmó. Antes esa marca vivía en el cliente y quedaba botada para siempre.
func StartPendingOrderSweeper(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(pendingSweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			cutoff := time.Now().Add(-pendingMaxAge)
			res := db.Model(&model.PaymentOrderModel{}).
				Where("order_status = ? AND created_at < ?", model.OrderStatusPending, cutoff).
				Update("order_status", model.OrderStatusAbandoned)
			if res.Error != nil {
				log.Println("[ERROR] sweeper de órdenes:", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("🧹 %d órdenes pending pasaron a abandoned\n", res.RowsAffected)
			}
		}
	}()
	log.Println("✅ Sweeper de órdenes pendientes iniciado")
}
