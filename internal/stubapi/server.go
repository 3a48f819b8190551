// Package stubapi is an in-memory implementation of the GIRA backend
// surface the client consumes. It exists for tests and local
// development; nothing here persists.
//
// The response contract deliberately mirrors the real backend's mixed
// one: auth and complaint endpoints wrap payloads in the
// {success, data, message} envelope while notification and dashboard
// endpoints return the raw payload.
package stubapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gira-client/internal/models"
	"gira-client/pkg/auth"
)

type Server struct {
	jwt *auth.Manager

	mu            sync.RWMutex
	users         map[string]*seededUser // keyed by email
	complaints    []models.Complaint
	notifications []models.Notification
	seq           int

	hub *Hub
}

type seededUser struct {
	user         models.User
	passwordHash []byte
}

type Option func(*Server)

// WithJWT overrides the token manager (secret and lifetime).
func WithJWT(secret string, duration time.Duration) Option {
	return func(s *Server) {
		s.jwt = auth.NewManager(secret, duration)
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		jwt:   auth.NewManager("stub-secret", 24*time.Hour),
		users: make(map[string]*seededUser),
		hub:   NewHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	go s.hub.Run()
	return s
}

// Router wires the endpoint surface. Paths match the real backend.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	router.POST("/auth/login", s.login)
	router.POST("/auth/register", s.register)

	authed := router.Group("/", s.authRequired())
	{
		authed.GET("/auth/me", s.me)

		authed.GET("/complaints", s.listComplaints)
		authed.POST("/complaints", s.createComplaint)
		authed.GET("/complaints/:id", s.getComplaint)
		authed.PATCH("/complaints/:id/status", s.updateComplaintStatus)
		authed.POST("/complaints/:id/comments", s.addComment)

		authed.GET("/notifications", s.listNotifications)
		authed.PATCH("/notifications/:id/read", s.markNotificationRead)
		authed.PATCH("/notifications/read-all", s.markAllNotificationsRead)
		authed.DELETE("/notifications/:id", s.deleteNotification)

		authed.GET("/dashboard/analytics", s.dashboardAnalytics)
		authed.GET("/dashboard/admin", s.dashboardAdmin)
		authed.GET("/dashboard/agent", s.dashboardAgent)
		authed.GET("/dashboard/passenger", s.dashboardPassenger)
	}

	// The feed authenticates via query token since browsers cannot set
	// websocket headers.
	router.GET("/ws", s.serveWS)

	return router
}

func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := s.jwt.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// envelope helpers

func okEnvelope(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func failEnvelope(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (s *Server) currentUser(c *gin.Context) (*models.User, bool) {
	email, ok := c.Get("user_email")
	if !ok {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	seeded, ok := s.users[email.(string)]
	if !ok {
		return nil, false
	}
	u := seeded.user
	return &u, true
}
