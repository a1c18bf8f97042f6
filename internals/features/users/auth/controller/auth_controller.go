package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pragmaprofe_backend/internals/configs"
	"pragmaprofe_backend/internals/features/users/auth/dto"
	"pragmaprofe_backend/internals/features/users/auth/model"
	"pragmaprofe_backend/internals/features/users/auth/service"
	helper "pragmaprofe_backend/internals/helpers"
)

/*
	========================================================
	  Controller
========================================================
*/

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validator: validator.New()}
}

// Mensajes por código de error conocido; lo no reconocido cae al genérico.
var authErrorCopy = map[string]string{
	"email-already-in-use": "Ese correo ya está registrado",
	"invalid-credential":   "Correo o contraseña incorrectos",
	"user-disabled":        "Tu cuenta fue desactivada",
	"invalid-id-token":     "No pudimos validar tu cuenta de Google",
}

func authMessage(code string) string {
	if msg, ok := authErrorCopy[code]; ok {
		return msg
	}
	return "No pudimos iniciar sesión. Intenta de nuevo."
}

/* ===================== Register ===================== */

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var existing model.UserModel
	if err := ctrl.DB.Where("user_email = ?", email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, authMessage("email-already-in-use"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[ERROR] register lookup:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] bcrypt:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
	hashStr := string(hash)

	user := model.UserModel{
		UserName:     body.UserName,
		UserEmail:    email,
		UserPassword: &hashStr,
		UserSchool:   body.School,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		log.Println("[ERROR] register create:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "No pudimos crear tu cuenta")
	}

	return ctrl.respondWithTokens(c, user, fiber.StatusCreated, "Cuenta creada")
}

/* ===================== Login ===================== */

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validator); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var user model.UserModel
	if err := ctrl.DB.Where("user_email = ?", email).First(&user).Error; err != nil {
		// mismo mensaje que password malo: no filtrar qué correos existen
		return fiber.NewError(fiber.StatusUnauthorized, authMessage("invalid-credential"))
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, authMessage("user-disabled"))
	}
	if user.UserPassword == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.UserPassword), []byte(body.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, authMessage("invalid-credential"))
	}

	return ctrl.respondWithTokens(c, user, fiber.StatusOK, "Sesión iniciada")
}

/* ===================== Google Sign-In ===================== */

// POST /api/auth/google
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var body dto.GoogleLoginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(body.IDToken) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id_token requerido")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(body.IDToken, []string{configs.GoogleClientID}); err != nil {
		log.Println("[ERROR] google verify:", err)
		return fiber.NewError(fiber.StatusUnauthorized, authMessage("invalid-id-token"))
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(body.IDToken)
	if err != nil {
		log.Println("[ERROR] google decode:", err)
		return fiber.NewError(fiber.StatusUnauthorized, authMessage("invalid-id-token"))
	}

	email := strings.ToLower(claimSet.Email)
	sub := claimSet.Sub

	// buscar por sub, luego por email (cuenta creada con password primero)
	var user model.UserModel
	err = ctrl.DB.Where("user_google_sub = ?", sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ctrl.DB.Where("user_email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			name := claimSet.Name
			if name == "" {
				name = email
			}
			user = model.UserModel{
				UserName:      name,
				UserEmail:     email,
				UserGoogleSub: &sub,
			}
			if cerr := ctrl.DB.Create(&user).Error; cerr != nil {
				log.Println("[ERROR] google create user:", cerr)
				return fiber.NewError(fiber.StatusInternalServerError, "No pudimos crear tu cuenta")
			}
		} else if err == nil {
			// vincular la cuenta existente a Google
			if uerr := ctrl.DB.Model(&user).Update("user_google_sub", &sub).Error; uerr != nil {
				log.Println("[ERROR] google link:", uerr)
			}
		}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[ERROR] google lookup:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, authMessage("user-disabled"))
	}

	return ctrl.respondWithTokens(c, user, fiber.StatusOK, "Sesión iniciada con Google")
}

/* ===================== Refresh / Logout ===================== */

// POST /api/auth/refresh
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	var body dto.RefreshRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	userID, err := service.ParseRefreshToken(body.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Refresh token inválido")
	}

	var user model.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, authMessage("user-disabled"))
	}

	return ctrl.respondWithTokens(c, user, fiber.StatusOK, "Token renovado")
}

// POST /api/auth/logout — blacklistea el access token vigente
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing token")
	}

	entry := model.TokenBlacklist{
		Token:     parts[1],
		ExpiredAt: time.Now().Add(service.AccessTokenTTL),
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		log.Println("[ERROR] logout blacklist:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonOK(c, "Sesión cerrada", nil)
}

/* ===================== Helpers ===================== */

func (ctrl *AuthController) respondWithTokens(c *fiber.Ctx, user model.UserModel, status int, msg string) error {
	access, refresh, err := service.GenerateTokenPair(user)
	if err != nil {
		log.Println("[ERROR] token pair:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.SuccessWithCode(c, status, msg, fiber.Map{
		"user": fiber.Map{
			"user_id":    user.UserID,
			"user_name":  user.UserName,
			"user_email": user.UserEmail,
			"user_role":  user.UserRole,
		},
		"tokens": dto.TokenResponse{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    int64(service.AccessTokenTTL.Seconds()),
		},
	})
}
