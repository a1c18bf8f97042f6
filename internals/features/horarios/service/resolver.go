package service

import (
	"time"
)

// Resolver de la clase vigente. Funciones puras: reciben la hora y el día
// explícitos para poder testearlas y para el modo demo; el gating de esos
// overrides en producción vive en el controller.

// ResolveBlockRow devuelve el índice del bloque cuyo intervalo [inicio, fin)
// contiene el minuto dado. Recreos y almuerzo son filas normales acá;
// filtrarlos es pega del caller. Si nada calza (antes del primer bloque,
// después del último, o marks malformado/vacío) devuelve 0: política
// "nunca bloquear la UI".
func ResolveBlockRow(marks []Mark, minuteOfDay int) int {
	if len(marks) < 2 || !marksAscending(marks) {
		return 0
	}
	for i := 0; i < len(marks)-1; i++ {
		if minuteOfDay >= MinuteOf(marks[i]) && minuteOfDay < MinuteOf(marks[i+1]) {
			return i
		}
	}
	return 0
}

// ResolveDayColumn mapea el día calendario (domingo=0..sábado=6) a la columna
// lunes-viernes (0..4). Fin de semana cae a la columna 0.
func ResolveDayColumn(weekday time.Weekday) int {
	switch weekday {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
		return int(weekday) - 1
	default:
		return 0
	}
}

// ResolveSlot combina fila y columna para un instante dado.
func ResolveSlot(marks []Mark, at time.Time) (row, col int) {
	minute := at.Hour()*60 + at.Minute()
	return ResolveBlockRow(marks, minute), ResolveDayColumn(at.Weekday())
}

// InAnyBlock true si el minuto cae dentro de algún bloque (para distinguir
// "fila 0 real" de "fuera de jornada").
func InAnyBlock(marks []Mark, minuteOfDay int) bool {
	if len(marks) < 2 || !marksAscending(marks) {
		return false
	}
	return minuteOfDay >= MinuteOf(marks[0]) && minuteOfDay < MinuteOf(marks[len(marks)-1])
}

// SchoolLocation: zona horaria del colegio. Si la tzdata no está disponible
// en el runtime caemos a la hora local del server.
func SchoolLocation() *time.Location {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		return time.Local
	}
	return loc
}
