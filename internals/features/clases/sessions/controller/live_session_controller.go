package controller

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pragmaprofe_backend/internals/configs"
	horarioModel "pragmaprofe_backend/internals/features/horarios/model"
	horarioService "pragmaprofe_backend/internals/features/horarios/service"
	"pragmaprofe_backend/internals/features/clases/sessions/dto"
	"pragmaprofe_backend/internals/features/clases/sessions/model"
	"pragmaprofe_backend/internals/features/clases/sessions/service"
	helper "pragmaprofe_backend/internals/helpers"
)

/*
	========================================================
	  Controller
========================================================
*/

type LiveSessionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewLiveSessionController(db *gorm.DB) *LiveSessionController {
	return &LiveSessionController{DB: db, Validator: validator.New()}
}

func frontBaseURL() string {
	return configs.GetEnv("FRONT_BASE_URL", "https://pragmaprofe.cl")
}

/* ===================== POST /api/u/clases ===================== */

// Abre una sesión en vivo. Si el body viene vacío se autocompleta con la
// clase vigente del horario del profe.
func (ctrl *LiveSessionController) OpenSession(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	// body vacío es válido acá: se autocompleta desde el horario
	var body dto.OpenSessionRequest
	if err := c.BodyParser(&body); err != nil {
		body = dto.OpenSessionRequest{}
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// autocompletar desde la clase vigente
	if body.Subject == "" {
		if cell := ctrl.currentCell(userID); cell != nil {
			body.Subject = cell.CellSubject
			body.Level = cell.CellLevel
			body.Section = cell.CellSection
			body.Unit = cell.CellUnit
		}
	}

	// generar código; reintentar si choca con el unique index
	var session model.LiveSessionModel
	for attempt := 0; attempt < 3; attempt++ {
		code, cerr := service.NewSessionCode()
		if cerr != nil {
			log.Println("[ERROR] session code:", cerr)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		session = model.LiveSessionModel{
			SessionCode:    code,
			SessionUserID:  userID,
			SessionSubject: body.Subject,
			SessionLevel:   body.Level,
			SessionSection: body.Section,
			SessionUnit:    body.Unit,
			SessionStatus:  model.SessionStatusOpen,
		}
		if cerr = ctrl.DB.Create(&session).Error; cerr == nil {
			break
		} else if attempt == 2 {
			log.Println("[ERROR] crear sesión:", cerr)
			return fiber.NewError(fiber.StatusInternalServerError, "No pudimos abrir la sesión")
		}
	}

	return helper.JsonCreated(c, "Sesión abierta", buildSessionResponse(session))
}

/* ===================== POST /api/u/clases/:code/cerrar ===================== */

// Cerrar es idempotente: cerrar una sesión ya cerrada responde OK.
func (ctrl *LiveSessionController) CloseSession(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	code := normalizeCode(c.Params("code"))

	var session model.LiveSessionModel
	if err := ctrl.DB.Where("session_code = ? AND session_user_id = ?", code, userID).
		First(&session).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Sesión no encontrada")
	}

	if session.IsOpen() {
		now := time.Now()
		session.SessionStatus = model.SessionStatusClosed
		session.SessionClosedAt = &now
		if err := ctrl.DB.Save(&session).Error; err != nil {
			log.Println("[ERROR] cerrar sesión:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
	}

	return helper.JsonOK(c, "Sesión cerrada", buildSessionResponse(session))
}

/* ===================== GET /api/u/clases ===================== */

func (ctrl *LiveSessionController) ListSessions(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	q := ctrl.DB.Model(&model.LiveSessionModel{}).Where("session_user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] contar sesiones:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	var sessions []model.LiveSessionModel
	if err := q.Order("session_opened_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&sessions).Error; err != nil {
		log.Println("[ERROR] listar sesiones:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, buildSessionResponse(s))
	}
	return helper.JsonList(c, "OK", out,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ===================== GET /api/public/clases/:code ===================== */

func (ctrl *LiveSessionController) GetPublicSession(c *fiber.Ctx) error {
	code := normalizeCode(c.Params("code"))

	var session model.LiveSessionModel
	if err := ctrl.DB.Where("session_code = ?", code).First(&session).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Esa clase no existe o ya terminó")
	}

	return helper.JsonOK(c, "OK", dto.PublicSessionResponse{
		Code:    session.SessionCode,
		Subject: session.SessionSubject,
		Level:   session.SessionLevel,
		Status:  session.SessionStatus,
	})
}

/* ===================== GET /api/public/clases/:code/qr ===================== */

// Entrega el QR de ingreso como PNG (o WebP con ?format=webp). Público:
// el profe lo proyecta directo con la URL.
func (ctrl *LiveSessionController) GetSessionQR(c *fiber.Ctx) error {
	code := normalizeCode(c.Params("code"))

	var session model.LiveSessionModel
	if err := ctrl.DB.Select("session_code").
		Where("session_code = ?", code).First(&session).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Sesión no encontrada")
	}

	joinURL := fmt.Sprintf("%s/unirse/%s", frontBaseURL(), session.SessionCode)
	size := c.QueryInt("size", 512)

	if strings.EqualFold(c.Query("format"), "webp") {
		img, err := helper.QREncodeWebP(joinURL, size)
		if err != nil {
			log.Println("[ERROR] qr webp:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No pudimos generar el QR")
		}
		c.Set(fiber.HeaderContentType, "image/webp")
		return c.Send(img)
	}

	img, err := helper.QREncodePNG(joinURL, size)
	if err != nil {
		log.Println("[ERROR] qr png:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "No pudimos generar el QR")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(img)
}

/* ===================== Helpers ===================== */

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func buildSessionResponse(s model.LiveSessionModel) dto.SessionResponse {
	base := frontBaseURL()
	return dto.SessionResponse{
		SessionID: s.SessionID,
		Code:      s.SessionCode,
		Subject:   s.SessionSubject,
		Level:     s.SessionLevel,
		Section:   s.SessionSection,
		Unit:      s.SessionUnit,
		Status:    s.SessionStatus,
		JoinURL:   fmt.Sprintf("%s/unirse/%s", base, s.SessionCode),
		QRURL:     fmt.Sprintf("/api/public/clases/%s/qr", s.SessionCode),
		OpenedAt:  s.SessionOpenedAt,
		ClosedAt:  s.SessionClosedAt,
	}
}

// currentCell resuelve la celda vigente del horario del profe (nil si no hay).
func (ctrl *LiveSessionController) currentCell(userID uuid.UUID) *horarioModel.ScheduleCellModel {
	var sched horarioModel.ScheduleModel
	if err := ctrl.DB.Where("schedule_user_id = ?", userID).First(&sched).Error; err != nil {
		return nil
	}
	now := time.Now().In(horarioService.SchoolLocation())
	marks := horarioService.MarksFromJSON(sched.ScheduleMarks)
	row, col := horarioService.ResolveSlot(marks, now)

	var cell horarioModel.ScheduleCellModel
	if err := ctrl.DB.Where("cell_schedule_id = ? AND cell_row = ? AND cell_col = ?",
		sched.ScheduleID, row, col).First(&cell).Error; err != nil {
		return nil
	}
	if cell.IsEmpty() {
		return nil
	}
	return &cell
}
