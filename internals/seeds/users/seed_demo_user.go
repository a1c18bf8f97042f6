package users

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pragmaprofe_backend/internals/features/users/auth/model"
)

type userSeed struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	School   string `json:"school"`
}

// SeedUsersFromJSON crea los profes demo. Idempotente: si el email ya
// existe se salta la fila.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Leyendo usuarios demo:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ No se pudo leer el JSON: %v", err)
	}

	var inputs []userSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ JSON inválido: %v", err)
	}

	for _, data := range inputs {
		var existing model.UserModel
		if err := db.Where("user_email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Ya existe '%s', se salta.", data.Email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Hash para '%s': %v", data.Email, err)
			continue
		}
		pw := string(hashed)

		user := model.UserModel{
			UserName:     data.UserName,
			UserEmail:    data.Email,
			UserPassword: &pw,
			UserRole:     data.Role,
			UserIsActive: true,
		}
		if data.School != "" {
			school := data.School
			user.UserSchool = &school
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Crear '%s': %v", data.Email, err)
			continue
		}
		log.Printf("✅ Usuario demo '%s' creado", data.Email)
	}
}
