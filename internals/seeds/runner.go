package seeds

import (
	"gorm.io/gorm"

	horarios "pragmaprofe_backend/internals/seeds/horarios"
	users "pragmaprofe_backend/internals/seeds/users"
)

// RunAllSeeds carga los datos demo (profe + horario). Pensado para ambientes
// de desarrollo; todo es idempotente.
func RunAllSeeds(db *gorm.DB) {
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	horarios.SeedSchedulesFromJSON(db, "internals/seeds/horarios/data_schedules.json")
}
