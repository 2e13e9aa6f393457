package router

import (
	"net/http"
	"time"

	"github.com/Vaishnavcibu/schedule-manager/internal/config"
	"github.com/Vaishnavcibu/schedule-manager/internal/handler"
	"github.com/Vaishnavcibu/schedule-manager/internal/middleware"
	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/response"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	AdminUser *handler.AdminUserHandler
	Teacher   *handler.TeacherHandler
	Student   *handler.StudentHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
	}

	// Authenticated profile routes sit outside the limiter; any valid role
	// may call them.
	authed := router.Group("/api/v1/auth")
	authed.Use(middleware.RequireAuth(authService), middleware.CheckSession(authService))
	{
		authed.POST("/logout", handlers.Auth.Logout)
		authed.GET("/me", handlers.Auth.Me)
	}

	// ─── 2. Admin Group (JWT + Session) ────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireRole(authService, model.RoleAdmin),
		middleware.CheckSession(authService),
	)
	{
		adminAPI.GET("/users", handlers.AdminUser.ListUsers)
		adminAPI.POST("/users", handlers.AdminUser.CreateUser)
		adminAPI.PUT("/users/:id", handlers.AdminUser.UpdateUser)
		adminAPI.PATCH("/users/:id/status", handlers.AdminUser.SetUserStatus)
		adminAPI.DELETE("/users/:id", handlers.AdminUser.DeleteUser)
		adminAPI.GET("/view", handlers.AdminUser.GetView)
	}

	// ─── 3. Teacher Group (JWT + Session) ──────────────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(
		middleware.RequireRole(authService, model.RoleTeacher),
		middleware.CheckSession(authService),
	)
	{
		teacherAPI.GET("/appointments", handlers.Teacher.ListAppointments)
		teacherAPI.POST("/appointments/:id/decision", handlers.Teacher.Decide)
		teacherAPI.PATCH("/status", handlers.Teacher.SetOwnStatus)
		teacherAPI.GET("/view", handlers.Teacher.GetView)
	}

	// ─── 4. Student Group (JWT + Session) ──────────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireRole(authService, model.RoleStudent),
		middleware.CheckSession(authService),
	)
	{
		studentAPI.GET("/teachers", handlers.Student.ListTeachers)
		studentAPI.POST("/appointments", handlers.Student.RequestAppointment)
		studentAPI.GET("/appointments", handlers.Student.ListAppointments)
		studentAPI.GET("/view", handlers.Student.GetView)
	}

	// ─── 5. WebSocket Group (WS Auth) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/view/stream", handlers.WS.ViewStream)
	}

	return router
}
