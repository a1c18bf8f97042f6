package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"pragmaprofe_backend/internals/constants"
	"pragmaprofe_backend/internals/features/billing/plans/model"
)

func TestComputePeriodEnd(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("mensual", func(t *testing.T) {
		end := ComputePeriodEnd(now, 1)
		want := now.Add(30 * 24 * time.Hour)
		if !end.Equal(want) {
			t.Errorf("1 mes: esperaba %v, salió %v", want, end)
		}
	})

	t.Run("anual_lleva_bono", func(t *testing.T) {
		end := ComputePeriodEnd(now, 12)
		want := now.Add(time.Duration(12+PromoBonusMonths) * 30 * 24 * time.Hour)
		if !end.Equal(want) {
			t.Errorf("12 meses: esperaba %v (con bono), salió %v", want, end)
		}
	})

	t.Run("meses_invalidos_cuentan_como_uno", func(t *testing.T) {
		if end := ComputePeriodEnd(now, 0); !end.Equal(now.Add(30 * 24 * time.Hour)) {
			t.Errorf("0 meses debe tratarse como 1, salió %v", end)
		}
	})
}

func TestPlanAmount(t *testing.T) {
	if got := PlanAmount(constants.PlanPro, 1); got != PriceMonthlyCLP {
		t.Errorf("PRO x1: esperaba %d, salió %d", PriceMonthlyCLP, got)
	}
	if got := PlanAmount(constants.PlanPro, 12); got != 12*PriceMonthlyCLP {
		t.Errorf("PRO x12: esperaba %d, salió %d", 12*PriceMonthlyCLP, got)
	}
	if got := PlanAmount(constants.PlanFree, 1); got != 0 {
		t.Errorf("FREE no se cobra, salió %d", got)
	}
	if got := PlanAmount(constants.PlanPro, 0); got != 0 {
		t.Errorf("0 meses no es cobrable, salió %d", got)
	}
}

func TestBonusMonths(t *testing.T) {
	if BonusMonths(1) != 0 || BonusMonths(11) != 0 {
		t.Error("menos de 12 meses no lleva bono")
	}
	if BonusMonths(12) != PromoBonusMonths {
		t.Error("12 meses lleva el bono promocional")
	}
}

func TestDecideActivation(t *testing.T) {
	t.Run("pago_confirmado", func(t *testing.T) {
		source, err := DecideActivation(&FlowStatusResponse{Status: FlowStatusPaid}, nil, true)
		if err != nil || source != model.EntitlementSourceConfirmed {
			t.Errorf("pago confirmado debe activar como confirmed, salió (%q, %v)", source, err)
		}
	})

	t.Run("flow_caido_con_fallback", func(t *testing.T) {
		source, err := DecideActivation(nil, errors.New("connection refused"), true)
		if err != nil || source != model.EntitlementSourceFallback {
			t.Errorf("con fallback permitido se activa como fallback, salió (%q, %v)", source, err)
		}
	})

	t.Run("flow_caido_sin_fallback", func(t *testing.T) {
		// fallback apagado: nada que activar, la orden queda pending
		source, err := DecideActivation(nil, errors.New("connection refused"), false)
		if !errors.Is(err, ErrVerifyUnavailable) {
			t.Errorf("sin fallback debe salir ErrVerifyUnavailable, salió %v", err)
		}
		if source != "" {
			t.Errorf("sin fallback no hay fuente que escribir, salió %q", source)
		}
	})

	t.Run("pago_rechazado", func(t *testing.T) {
		for _, st := range []int{FlowStatusRejected, FlowStatusAnnulled} {
			source, err := DecideActivation(&FlowStatusResponse{Status: st}, nil, true)
			if !errors.Is(err, ErrPaymentRejected) || source != "" {
				t.Errorf("status %d: esperaba ErrPaymentRejected sin fuente, salió (%q, %v)", st, source, err)
			}
		}
	})

	t.Run("pago_pendiente", func(t *testing.T) {
		source, err := DecideActivation(&FlowStatusResponse{Status: FlowStatusPending}, nil, true)
		if !errors.Is(err, ErrPaymentPending) || source != "" {
			t.Errorf("pendiente no activa, salió (%q, %v)", source, err)
		}
	})
}

func TestAllowLocalFallback(t *testing.T) {
	t.Run("encendido_por_defecto", func(t *testing.T) {
		t.Setenv("FLOW_ALLOW_LOCAL_FALLBACK", "")
		if !AllowLocalFallback() {
			t.Error("sin FLOW_ALLOW_LOCAL_FALLBACK el fallback queda encendido")
		}
	})

	t.Run("apagable_por_env", func(t *testing.T) {
		t.Setenv("FLOW_ALLOW_LOCAL_FALLBACK", "false")
		if AllowLocalFallback() {
			t.Error("FLOW_ALLOW_LOCAL_FALLBACK=false debe apagar el fallback")
		}
	})
}

func TestNewTrialEntitlement(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	ent := NewTrialEntitlement(userID, now)
	if ent.EntitlementUserID != userID {
		t.Error("la prueba se escribe para el usuario pedido")
	}
	if ent.EntitlementPlanTier != constants.PlanPro {
		t.Errorf("la prueba da PRO, salió %s", ent.EntitlementPlanTier)
	}
	if ent.EntitlementSource != model.EntitlementSourceTrial {
		t.Errorf("la fuente debe quedar como trial, salió %s", ent.EntitlementSource)
	}
	want := now.Add(TrialDays * 24 * time.Hour)
	if !ent.EntitlementPeriodEnd.Equal(want) {
		t.Errorf("fin de la prueba: esperaba %v, salió %v", want, ent.EntitlementPeriodEnd)
	}
}
