package dbtime

import (
	"strings"
	"time"
)

// Tod es una hora-del-día (sin fecha ni zona).
type Tod struct{ time.Time }

// Parse: crea un Tod desde un string "HH:mm[:ss]"
func Parse(s string) (Tod, error) {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return Tod{}, err
	}
	return Tod{Time: tt}, nil
}

// MinuteOfDay: minutos desde medianoche (para comparar bloques).
func (t Tod) MinuteOfDay() int {
	return t.Hour()*60 + t.Minute()
}
