package database

import (
	"log"

	billingModel "pragmaprofe_backend/internals/features/billing/plans/model"
	attendanceModel "pragmaprofe_backend/internals/features/clases/attendance/model"
	participationModel "pragmaprofe_backend/internals/features/clases/participation/model"
	sessionModel "pragmaprofe_backend/internals/features/clases/sessions/model"
	scheduleModel "pragmaprofe_backend/internals/features/horarios/model"
	userModel "pragmaprofe_backend/internals/features/users/auth/model"
)

// AutoMigrate crea/ajusta el esquema. En producción el esquema se maneja con
// migraciones SQL; esto es para dev y demos (flag DB_AUTO_MIGRATE).
func AutoMigrate() {
	log.Println("🔧 AutoMigrate...")
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&userModel.TokenBlacklist{},
		&scheduleModel.ScheduleModel{},
		&scheduleModel.ScheduleCellModel{},
		&sessionModel.LiveSessionModel{},
		&participationModel.WordSubmissionModel{},
		&participationModel.QuizRoundModel{},
		&participationModel.QuizAnswerModel{},
		&attendanceModel.AttendanceRecordModel{},
		&billingModel.PlanEntitlementModel{},
		&billingModel.PaymentOrderModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate: %v", err)
	}
	log.Println("✅ Esquema listo.")
}
