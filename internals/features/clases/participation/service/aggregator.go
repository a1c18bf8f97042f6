package service

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"pragmaprofe_backend/internals/features/clases/participation/model"
)

/* ===================== Nube de palabras ===================== */

const (
	MinFontSize = 14
	MaxFontSize = 72
	MaxWordLen  = 24
)

// Paleta fija; el índice sale del rango de cuantil de peso.
var wordPalette = []string{
	"#1d4ed8", "#0f766e", "#b45309", "#be123c", "#6d28d9", "#047857", "#9d174d", "#374151",
}

// Ángulos de rotación asignados por orden de inserción (render estable entre
// refrescos: nada aleatorio por render).
var wordAngles = []int{0, 0, 90, 0, -45, 0, 45, 0}

// WordEntry es una palabra agregada lista para pintar.
type WordEntry struct {
	Text     string `json:"text"`
	Weight   int    `json:"weight"`
	FontSize int    `json:"font_size"`
	Color    string `json:"color"`
	Angle    int    `json:"angle"`
}

// NormalizeWord limpia un envío: trim, minúsculas, descarta vacíos y
// puramente numéricos, trunca al largo máximo. ok=false descarta el envío.
func NormalizeWord(raw string) (normalized string, ok bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	numeric := true
	for _, r := range s {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return "", false
	}
	runes := []rune(s)
	if len(runes) > MaxWordLen {
		runes = runes[:MaxWordLen]
	}
	return string(runes), true
}

// AggregateWords reduce el log append-only a la nube. Conmutativa y
// asociativa sobre el orden de llegada: solo cuenta por clave normalizada.
// El orden de inserción (primera aparición de cada clave) fija color y
// ángulo para que renders repetidos del mismo agregado sean idénticos.
func AggregateWords(texts []string) []WordEntry {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, raw := range texts {
		word, ok := NormalizeWord(raw)
		if !ok {
			continue
		}
		if _, seen := counts[word]; !seen {
			firstSeen[word] = len(firstSeen)
		}
		counts[word]++
	}
	if len(counts) == 0 {
		return []WordEntry{}
	}

	entries := make([]WordEntry, 0, len(counts))
	maxWeight := 0
	for word, w := range counts {
		entries = append(entries, WordEntry{Text: word, Weight: w})
		if w > maxWeight {
			maxWeight = w
		}
	}

	// peso desc; empates por orden de inserción (determinístico)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return firstSeen[entries[i].Text] < firstSeen[entries[j].Text]
	})

	n := len(entries)
	for i := range entries {
		entries[i].FontSize = fontSizeFor(entries[i].Weight, maxWeight)
		// rango de cuantil sobre la lista ordenada por peso
		bucket := i * len(wordPalette) / n
		entries[i].Color = wordPalette[bucket]
		entries[i].Angle = wordAngles[firstSeen[entries[i].Text]%len(wordAngles)]
	}
	return entries
}

// fontSizeFor escala logarítmica entre MinFontSize y MaxFontSize.
func fontSizeFor(weight, maxWeight int) int {
	if maxWeight <= 1 {
		return MinFontSize
	}
	ratio := math.Log(1+float64(weight)) / math.Log(1+float64(maxWeight))
	return MinFontSize + int(math.Round(ratio*float64(MaxFontSize-MinFontSize)))
}

/* ===================== Carrera (quiz) ===================== */

// ScoreRow es una fila del ranking de la carrera.
type ScoreRow struct {
	StudentRef  string `json:"student_ref"`
	StudentName string `json:"student_name"`
	Points      int    `json:"points"`
	Correct     int    `json:"correct"`
	Answered    int    `json:"answered"`
}

// BuildScoreboard reduce las respuestas a un ranking. Tolera orden de llegada
// arbitrario y respuestas duplicadas por clave (se queda con la primera por
// (ronda, participante)): la PK determinística ya deduplica en la base, acá
// deduplicamos de nuevo por si el agregado se arma desde otra fuente.
// Empates de puntaje quedan por orden de primera aparición.
func BuildScoreboard(answers []model.QuizAnswerModel) []ScoreRow {
	type acc struct {
		row   ScoreRow
		order int
	}
	byRef := make(map[string]*acc)
	seen := make(map[string]struct{})
	orderIdx := 0

	for _, ans := range answers {
		dedupKey := ans.AnswerRoundKey + "|" + ans.AnswerStudentRef
		if _, dup := seen[dedupKey]; dup {
			continue
		}
		seen[dedupKey] = struct{}{}

		a, ok := byRef[ans.AnswerStudentRef]
		if !ok {
			a = &acc{row: ScoreRow{StudentRef: ans.AnswerStudentRef}, order: orderIdx}
			orderIdx++
			byRef[ans.AnswerStudentRef] = a
		}
		if a.row.StudentName == "" && ans.AnswerStudentName != "" {
			a.row.StudentName = ans.AnswerStudentName
		}
		a.row.Answered++
		if ans.AnswerIsCorrect {
			a.row.Correct++
			a.row.Points += model.QuizPointsPerCorrect
		}
	}

	rows := make([]*acc, 0, len(byRef))
	for _, a := range byRef {
		rows = append(rows, a)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].row.Points != rows[j].row.Points {
			return rows[i].row.Points > rows[j].row.Points
		}
		return rows[i].order < rows[j].order
	})

	out := make([]ScoreRow, 0, len(rows))
	for _, a := range rows {
		out = append(out, a.row)
	}
	return out
}
