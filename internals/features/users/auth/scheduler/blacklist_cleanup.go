package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"pragmaprofe_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler borra tokens blacklisteados ya expirados.
// Corre en background cada hora.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			res := db.Unscoped().
				Where("expired_at < ?", time.Now()).
				Delete(&model.TokenBlacklist{})
			if res.Error != nil {
				log.Printf("[ERROR] blacklist cleanup: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("🧹 Blacklist cleanup: %d tokens eliminados", res.RowsAffected)
			}
		}
	}()
}
