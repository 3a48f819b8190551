// internal/stubapi/auth.go

package stubapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gira-client/internal/models"
)

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Nom             string `json:"nom" binding:"required,min=2,max=50"`
	Prenom          string `json:"prenom" binding:"required,min=2,max=50"`
	Telephone       string `json:"telephone,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failEnvelope(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		failEnvelope(c, http.StatusConflict, "User with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		failEnvelope(c, http.StatusInternalServerError, "Error hashing password")
		return
	}

	now := time.Now()
	user := models.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Telephone: req.Telephone,
		Role: models.Role{
			ID:    uuid.NewString(),
			Nom:   models.RolePassager,
			Actif: true,
		},
		Actif:        true,
		DateCreation: &now,
	}
	s.users[req.Email] = &seededUser{user: user, passwordHash: hash}

	okEnvelope(c, http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failEnvelope(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	s.mu.RLock()
	seeded, exists := s.users[req.Email]
	s.mu.RUnlock()

	if !exists {
		failEnvelope(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword(seeded.passwordHash, []byte(req.Password)); err != nil {
		failEnvelope(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !seeded.user.Actif {
		failEnvelope(c, http.StatusForbidden, "Account is disabled")
		return
	}

	token, err := s.jwt.GenerateToken(seeded.user.ID, seeded.user.Email, string(seeded.user.Role.Nom))
	if err != nil {
		failEnvelope(c, http.StatusInternalServerError, "Error generating token")
		return
	}

	user := seeded.user
	okEnvelope(c, http.StatusOK, models.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        &user,
	})
}

// me returns the raw profile, envelope-free, like the real endpoint.
func (s *Server) me(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
