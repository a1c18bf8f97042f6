package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pragmaprofe_backend/internals/features/clases/attendance/dto"
	"pragmaprofe_backend/internals/features/clases/attendance/model"
	sessionModel "pragmaprofe_backend/internals/features/clases/sessions/model"
	helper "pragmaprofe_backend/internals/helpers"
)

/*
	========================================================
	  Controller
========================================================
*/

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Validator: validator.New()}
}

/* ===================== POST /api/public/clases/:code/asistencia ===================== */

// Un alumno se marca presente escaneando el QR. El unique (sesión, ref)
// hace que el segundo escaneo del mismo dispositivo no duplique la fila.
func (ctrl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	code := normalizeCode(c.Params("code"))

	var body dto.MarkAttendanceRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var session sessionModel.LiveSessionModel
	if err := ctrl.DB.Where("session_code = ?", code).First(&session).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Esa clase no existe o ya terminó")
	}
	if !session.IsOpen() {
		return fiber.NewError(fiber.StatusGone, "La sesión ya fue cerrada")
	}

	rec := model.AttendanceRecordModel{
		AttendanceSessionCode: session.SessionCode,
		AttendanceStudentRef:  body.StudentRef,
		AttendanceStudentName: strings.TrimSpace(body.StudentName),
		AttendanceStatus:      model.AttendanceStatusPresent,
	}
	res := ctrl.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		log.Println("[ERROR] marcar asistencia:", res.Error)
		return fiber.NewError(fiber.StatusInternalServerError, "No pudimos registrar tu asistencia")
	}

	if res.RowsAffected == 0 {
		return helper.JsonOK(c, "Ya estabas en la lista", nil)
	}
	return helper.JsonCreated(c, "Asistencia registrada", nil)
}

/* ===================== GET /api/u/clases/:code/asistencia ===================== */

func (ctrl *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	session, err := ctrl.ownedSession(c)
	if err != nil {
		return err
	}

	records, err := ctrl.sessionRecords(session.SessionCode)
	if err != nil {
		log.Println("[ERROR] listar asistencia:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	out := make([]dto.AttendanceRowResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.AttendanceRowResponse{
			StudentName: r.AttendanceStudentName,
			Status:      r.AttendanceStatus,
			MarkedAt:    r.CreatedAt.Format("15:04"),
		})
	}
	return helper.JsonOK(c, "OK", out)
}

/* ===================== GET /api/u/clases/:code/asistencia/export ===================== */

// Descarga la lista como XLSX para el libro de clases.
func (ctrl *AttendanceController) ExportAttendance(c *fiber.Ctx) error {
	session, err := ctrl.ownedSession(c)
	if err != nil {
		return err
	}

	records, err := ctrl.sessionRecords(session.SessionCode)
	if err != nil {
		log.Println("[ERROR] exportar asistencia:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	f := excelize.NewFile()
	sheet := "Asistencia"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	headers := []string{"#", "Alumno", "Estado", "Hora"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellStr(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "B", "B", 32)

	for i, r := range records {
		row := i + 2
		f.SetCellInt(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellStr(sheet, fmt.Sprintf("B%d", row), r.AttendanceStudentName)
		f.SetCellStr(sheet, fmt.Sprintf("C%d", row), r.AttendanceStatus)
		f.SetCellStr(sheet, fmt.Sprintf("D%d", row), r.CreatedAt.Format("02-01-2006 15:04"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Println("[ERROR] generar xlsx:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	filename := fmt.Sprintf("asistencia_%s.xlsx", session.SessionCode)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

/* ===================== Helpers ===================== */

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (ctrl *AttendanceController) ownedSession(c *fiber.Ctx) (*sessionModel.LiveSessionModel, error) {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return nil, err
	}
	code := normalizeCode(c.Params("code"))

	var session sessionModel.LiveSessionModel
	if err := ctrl.DB.Where("session_code = ? AND session_user_id = ?", code, userID).
		First(&session).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sesión no encontrada")
	}
	return &session, nil
}

func (ctrl *AttendanceController) sessionRecords(code string) ([]model.AttendanceRecordModel, error) {
	var records []model.AttendanceRecordModel
	err := ctrl.DB.Where("attendance_session_code = ?", code).
		Order("created_at").Find(&records).Error
	return records, err
}
