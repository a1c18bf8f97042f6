package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ===================== Constants ===================== */

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusAbandoned = "abandoned"

	EntitlementSourceConfirmed = "confirmed"
	EntitlementSourceFallback  = "fallback"
	EntitlementSourceTrial     = "trial"
)

/* ===================== Models ===================== */

// PlanEntitlementModel: el plan vigente de un profe. Una fila por usuario;
// renovar es upsert sobre entitlement_user_id.
type PlanEntitlementModel struct {
	EntitlementID uuid.UUID `gorm:"column:entitlement_id;type:uuid;default:gen_random_uuid();primaryKey" json:"entitlement_id"`

	EntitlementUserID    uuid.UUID `gorm:"column:entitlement_user_id;type:uuid;not null;uniqueIndex" json:"entitlement_user_id"`
	EntitlementPlanTier  string    `gorm:"column:entitlement_plan_tier;type:varchar(10);not null" json:"entitlement_plan_tier"`
	EntitlementPeriodEnd time.Time `gorm:"column:entitlement_period_end;not null" json:"entitlement_period_end"`

	// confirmed | fallback | trial
	EntitlementSource string `gorm:"column:entitlement_source;type:varchar(10);default:'confirmed'" json:"entitlement_source"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PlanEntitlementModel) TableName() string { return "plan_entitlements" }

func (e *PlanEntitlementModel) IsActive(now time.Time) bool {
	return e != nil && now.Before(e.EntitlementPeriodEnd)
}

// PaymentOrderModel: intento de pago persistido en el backend (reemplaza la
// marca "pendiente" que antes vivía en el cliente). none → pending → paid /
// failed; el sweeper pasa los pending viejos a abandoned.
type PaymentOrderModel struct {
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;default:gen_random_uuid();primaryKey" json:"order_id"`

	OrderUserID uuid.UUID `gorm:"column:order_user_id;type:uuid;not null;index" json:"order_user_id"`
	OrderPlan   string    `gorm:"column:order_plan;type:varchar(10);not null" json:"order_plan"`
	OrderMonths int       `gorm:"column:order_months;not null;default:1" json:"order_months"`
	OrderAmount int64     `gorm:"column:order_amount;not null" json:"order_amount"`
	OrderEmail  string    `gorm:"column:order_email;type:varchar(120);not null" json:"order_email"`

	OrderStatus    string `gorm:"column:order_status;type:varchar(12);default:'pending';index" json:"order_status"`
	OrderFlowToken string `gorm:"column:order_flow_token;type:varchar(80);index" json:"order_flow_token"`

	// último payload crudo de getStatus, para auditar discusiones de pago
	OrderRawStatus datatypes.JSON `gorm:"column:order_raw_status;type:jsonb" json:"order_raw_status,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentOrderModel) TableName() string { return "payment_orders" }
