package devserver

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/utils"

	"github.com/gin-gonic/gin"
)

// Config holds the fixture's settings.
type Config struct {
	JWTSecret          string
	JWTExpirationHours int64
	// AdminEmail/AdminPassword seed a SUPER_ADMIN account when both are set.
	AdminEmail    string
	AdminPassword string
}

// Server wires the fixture's handlers onto a gin engine.
type Server struct {
	router  *gin.Engine
	jwtUtil *utils.JWTUtil
}

// New builds the fixture server over the given repositories.
func New(cfg Config, users UserRepository, products ProductRepository) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if cfg.JWTExpirationHours <= 0 {
		cfg.JWTExpirationHours = 24
	}
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := seedAdmin(users, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, err
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler := NewAuthHandler(users, jwtUtil)
	productHandler := NewProductHandler(products)

	root := router.Group("")
	authHandler.RegisterAuthRoutes(root)
	productHandler.RegisterProductRoutes(root, JWTAuthMiddleware(jwtUtil), AdminOnly())

	return &Server{router: router, jwtUtil: jwtUtil}, nil
}

// Router exposes the handler for http.Server or httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

func seedAdmin(users UserRepository, email, password string) error {
	ctx := context.Background()
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if existing != nil {
		return nil
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &Account{
		User: model.User{
			FirstName: "Store",
			LastName:  "Admin",
			Email:     email,
			Role:      model.RoleSuperAdmin,
		},
		PasswordHash: hash,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	return nil
}
