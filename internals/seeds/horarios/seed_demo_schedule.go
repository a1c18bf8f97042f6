package horarios

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	scheduleModel "pragmaprofe_backend/internals/features/horarios/model"
	scheduleService "pragmaprofe_backend/internals/features/horarios/service"
	userModel "pragmaprofe_backend/internals/features/users/auth/model"
)

type cellSeed struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Subject string `json:"subject"`
	Level   string `json:"level"`
	Section string `json:"section"`
	Unit    string `json:"unit"`
}

type scheduleSeed struct {
	OwnerEmail  string     `json:"owner_email"`
	Rows        int        `json:"rows"`
	Cols        int        `json:"cols"`
	BlockLabels []string   `json:"block_labels"`
	Cells       []cellSeed `json:"cells"`
}

// SeedSchedulesFromJSON arma el horario demo del profe demo. Idempotente:
// si el usuario ya tiene horario no se toca.
func SeedSchedulesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Leyendo horarios demo:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ No se pudo leer el JSON: %v", err)
	}

	var inputs []scheduleSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ JSON inválido: %v", err)
	}

	for _, data := range inputs {
		var owner userModel.UserModel
		if err := db.Where("user_email = ?", data.OwnerEmail).First(&owner).Error; err != nil {
			log.Printf("ℹ️ No existe el usuario '%s', horario saltado.", data.OwnerEmail)
			continue
		}

		var existing scheduleModel.ScheduleModel
		if err := db.Where("schedule_user_id = ?", owner.UserID).First(&existing).Error; err == nil {
			log.Printf("ℹ️ '%s' ya tiene horario, se salta.", data.OwnerEmail)
			continue
		}

		marks, err := scheduleService.ParseBlockLabels(data.BlockLabels)
		if err != nil {
			marks = scheduleService.DefaultMarks()
		}
		marksJSON, err := scheduleService.MarksToJSON(marks)
		if err != nil {
			log.Printf("❌ Marcas de '%s': %v", data.OwnerEmail, err)
			continue
		}

		sched := scheduleModel.ScheduleModel{
			ScheduleUserID:      owner.UserID,
			ScheduleRows:        data.Rows,
			ScheduleCols:        data.Cols,
			ScheduleBlockLabels: data.BlockLabels,
			ScheduleMarks:       marksJSON,
		}
		if err := db.Create(&sched).Error; err != nil {
			log.Printf("❌ Crear horario de '%s': %v", data.OwnerEmail, err)
			continue
		}

		for _, cell := range data.Cells {
			row := scheduleModel.ScheduleCellModel{
				CellScheduleID: sched.ScheduleID,
				CellRow:        cell.Row,
				CellCol:        cell.Col,
				CellSubject:    cell.Subject,
				CellLevel:      cell.Level,
				CellSection:    cell.Section,
				CellUnit:       cell.Unit,
			}
			if err := db.Create(&row).Error; err != nil {
				log.Printf("❌ Celda (%d,%d) de '%s': %v", cell.Row, cell.Col, data.OwnerEmail, err)
			}
		}
		log.Printf("✅ Horario demo de '%s' creado (%d celdas)", data.OwnerEmail, len(data.Cells))
	}
}
