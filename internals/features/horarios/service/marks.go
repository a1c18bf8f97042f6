package service

import (
	"encoding/json"
	"fmt"
	"regexp"

	"gorm.io/datatypes"
)

// Mark es un límite de bloque dentro del día (hora local del colegio).
type Mark struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// MinuteOf pasa un Mark a minutos desde medianoche.
func MinuteOf(m Mark) int {
	return m.Hour*60 + m.Minute
}

var timeRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// DefaultMarks: tabla típica de jornada escolar (8 bloques, recreos incluidos).
// Se usa cuando las etiquetas del profe no se pueden parsear.
func DefaultMarks() []Mark {
	return []Mark{
		{8, 0}, {8, 45}, {9, 30}, {9, 50}, {10, 35}, {11, 20}, {12, 10}, {13, 0}, {13, 45},
	}
}

// ParseBlockLabels deriva los límites horarios desde las etiquetas de bloque.
// Para cada bloque toma su hora de inicio; el último límite es la hora de
// término del último bloque (o inicio+45min si la etiqueta no la trae).
// Invariante del resultado: estrictamente creciente, largo = bloques+1.
// Cualquier etiqueta inválida invalida todo y se responde con error; el caller
// decide si cae a DefaultMarks (política "nunca bloquear la UI").
func ParseBlockLabels(labels []string) ([]Mark, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("sin etiquetas de bloque")
	}

	marks := make([]Mark, 0, len(labels)+1)
	var lastEnd *Mark

	for i, label := range labels {
		times := timeRe.FindAllStringSubmatch(label, 2)
		if len(times) == 0 {
			return nil, fmt.Errorf("etiqueta %d sin horario: %q", i, label)
		}
		start, err := parseMark(times[0])
		if err != nil {
			return nil, fmt.Errorf("etiqueta %d: %w", i, err)
		}
		marks = append(marks, start)

		lastEnd = nil
		if len(times) > 1 {
			end, err := parseMark(times[1])
			if err != nil {
				return nil, fmt.Errorf("etiqueta %d: %w", i, err)
			}
			lastEnd = &end
		}
	}

	if lastEnd != nil {
		marks = append(marks, *lastEnd)
	} else {
		// sin hora de término en el último bloque: asumimos 45 minutos
		last := marks[len(marks)-1]
		total := MinuteOf(last) + 45
		marks = append(marks, Mark{Hour: total / 60, Minute: total % 60})
	}

	if !marksAscending(marks) {
		return nil, fmt.Errorf("límites de bloque no crecientes")
	}
	return marks, nil
}

func parseMark(groups []string) (Mark, error) {
	var h, m int
	if _, err := fmt.Sscanf(groups[1]+" "+groups[2], "%d %d", &h, &m); err != nil {
		return Mark{}, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Mark{}, fmt.Errorf("hora fuera de rango %02d:%02d", h, m)
	}
	return Mark{Hour: h, Minute: m}, nil
}

func marksAscending(marks []Mark) bool {
	for i := 1; i < len(marks); i++ {
		if MinuteOf(marks[i]) <= MinuteOf(marks[i-1]) {
			return false
		}
	}
	return true
}

/* ===================== JSONB codec ===================== */

// MarksToJSON serializa para la columna schedule_marks.
func MarksToJSON(marks []Mark) (datatypes.JSON, error) {
	b, err := json.Marshal(marks)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// MarksFromJSON deserializa la columna; JSON malformado devuelve nil
// (el resolver trata nil como "sin bloques" → fila 0).
func MarksFromJSON(raw datatypes.JSON) []Mark {
	if len(raw) == 0 {
		return nil
	}
	var marks []Mark
	if err := json.Unmarshal(raw, &marks); err != nil {
		return nil
	}
	return marks
}
