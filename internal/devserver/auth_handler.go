package devserver

import (
	"log"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	users   UserRepository
	jwtUtil *utils.JWTUtil
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users UserRepository, jwtUtil *utils.JWTUtil) *AuthHandler {
	return &AuthHandler{users: users, jwtUtil: jwtUtil}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("Error checking existing user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "user with this email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		return
	}

	acc := &Account{
		User: model.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      model.RoleUser,
		},
		PasswordHash: hash,
	}
	if err := h.users.Create(c.Request.Context(), acc); err != nil {
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		return
	}

	token, err := h.jwtUtil.GenerateToken(acc.ID, acc.Role)
	if err != nil {
		log.Printf("Error generating token for user %d: %v", acc.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{"user": acc.User, "access_token": token},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	acc, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("Error finding user by email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		return
	}
	if acc == nil || !utils.CheckPasswordHash(req.Password, acc.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	token, err := h.jwtUtil.GenerateToken(acc.ID, acc.Role)
	if err != nil {
		log.Printf("Error generating token for user %d: %v", acc.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"user": acc.User, "access_token": token},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userIDVal, exists := c.Get(AuthUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user ID not found in context"})
		return
	}
	userID, ok := userIDVal.(int)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user ID type in context"})
		return
	}

	acc, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error loading profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load profile"})
		return
	}
	if acc == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": acc.User})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", JWTAuthMiddleware(h.jwtUtil), h.Me)
	}
}
