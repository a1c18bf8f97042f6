package service

import (
	"log"
	"time"

	"gorm.io/gorm"

	"pragmaprofe_backend/internals/features/clases/sessions/model"
)

// Edad máxima de una sesión abierta. En la app original la sesión moría
// cuando el profe navegaba fuera; acá el server cierra las olvidadas.
const maxSessionAge = 8 * time.Hour

// StartStaleSessionSweeper cierra sesiones abiertas demasiado antiguas.
func StartStaleSessionSweeper(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-maxSessionAge)
			now := time.Now()
			res := db.Model(&model.LiveSessionModel{}).
				Where("session_status = ? AND session_opened_at < ?", model.SessionStatusOpen, cutoff).
				Updates(map[string]interface{}{
					"session_status":    model.SessionStatusClosed,
					"session_closed_at": &now,
				})
			if res.Error != nil {
				log.Printf("[ERROR] session sweeper: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("🧹 Session sweeper: %d sesiones cerradas por antigüedad", res.RowsAffected)
			}
		}
	}()
}
