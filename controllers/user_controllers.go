package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/utils"
)

// UserController handles admin-panel accounts. Auth reads the users table
// directly; it is not one of the mirrored tables.
type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type registerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// Register creates an account. The first account becomes admin regardless of
// the requested role; later accounts default to staff.
func (uc *UserController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	if err := uc.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	role := input.Role
	if count == 0 {
		role = "admin"
	} else if role != "admin" && role != "staff" {
		role = "staff"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Password: string(hashed),
		Role:     role,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email is already registered"))
		return
	}

	utils.InfoLogger.Printf("user registered: %s (%s)", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login
func (uc *UserController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("user logged in: %s", user.Email)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Profile returns the authenticated account.
func (uc *UserController) Profile(c *gin.Context) {
	userID, ok := c.Get("user_id")
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User profile", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Logout revokes the presented token.
func (uc *UserController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		utils.RespondError(c, http.StatusBadRequest, errors.New("missing bearer token"))
		return
	}

	utils.BlacklistToken(token)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}
