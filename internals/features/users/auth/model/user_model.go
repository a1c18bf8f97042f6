package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Model ===================== */

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`

	UserName  string `gorm:"column:user_name;type:varchar(80);not null" json:"user_name"`
	UserEmail string `gorm:"column:user_email;type:varchar(120);not null;unique" json:"user_email"`

	// Hash bcrypt; vacío cuando la cuenta entró por Google
	UserPassword *string `gorm:"column:user_password;type:text" json:"-"`

	UserGoogleSub *string `gorm:"column:user_google_sub;type:varchar(64);uniqueIndex" json:"-"`

	UserRole     string `gorm:"column:user_role;type:varchar(20);default:'teacher'" json:"user_role"`
	UserIsActive bool   `gorm:"column:user_is_active;default:true" json:"user_is_active"`

	// Establecimiento / curso por defecto del profe (opcional)
	UserSchool *string `gorm:"column:user_school;type:varchar(120)" json:"user_school,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
