package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "pragmaprofe_backend/internals/features/clases/attendance/controller"
	participationController "pragmaprofe_backend/internals/features/clases/participation/controller"
	sessionController "pragmaprofe_backend/internals/features/clases/sessions/controller"
	"pragmaprofe_backend/internals/middlewares"
)

func LiveRoutes(private fiber.Router, public fiber.Router, db *gorm.DB) {
	sessions := sessionController.NewLiveSessionController(db)
	participation := participationController.NewParticipationController(db)
	attendance := attendanceController.NewAttendanceController(db)

	// ===================== Lado del profe =====================
	clases := private.Group("/clases")
	clases.Post("/", sessions.OpenSession)
	clases.Get("/", sessions.ListSessions)
	clases.Post("/:code/cerrar", sessions.CloseSession)
	clases.Post("/:code/rondas", participation.CreateRound)
	clases.Get("/:code/asistencia", attendance.ListAttendance)
	clases.Get("/:code/asistencia/export", attendance.ExportAttendance)

	// ===================== Lado del alumno (anónimo) =====================
	pub := public.Group("/clases")
	pub.Get("/:code", sessions.GetPublicSession)
	pub.Get("/:code/qr", sessions.GetSessionQR)

	// envíos con rate limit por IP+sesión
	pub.Post("/:code/palabras", middlewares.SubmissionRateLimiter(), participation.SubmitWord)
	pub.Post("/:code/respuestas", middlewares.SubmissionRateLimiter(), participation.SubmitAnswer)
	pub.Post("/:code/asistencia", middlewares.SubmissionRateLimiter(), attendance.MarkAttendance)

	// snapshots para proyectar
	pub.Get("/:code/nube", participation.GetWordCloud)
	pub.Get("/:code/carrera", participation.GetScoreboard)

	// hub en vivo (solo bajada)
	pub.Get("/:code/ws", participationController.WSUpgrade, participationController.ServeWS())
}
