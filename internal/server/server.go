package server

import (
	"context"
	"net/http"

	"activehub/internal/activity"
	"activehub/internal/admin"
	"activehub/internal/auth"
	"activehub/internal/config"
	"activehub/internal/email"
	"activehub/internal/listing"
	"activehub/internal/member"
	"activehub/internal/owner"
	"activehub/internal/product"
	"activehub/internal/trainer"
	"activehub/internal/webhook"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	snaps := listing.NewSnapshots()

	activityService := activity.NewService(activity.NewRepository(db), snaps)
	adminService := admin.NewService(admin.NewRepository(db), activityService, emailService, cfg.JWTSecret, cfg.FrontendURL)
	ownerService := owner.NewService(owner.NewRepository(db), snaps)
	webhookService := webhook.NewService(webhook.NewRepository(db), snaps)
	memberService := member.NewService(member.NewRepository(db), emailService, cfg.JWTSecret, cfg.FrontendURL)
	trainerService := trainer.NewService(trainer.NewRepository(db), snaps, emailService, cfg.JWTSecret, cfg.FrontendURL)
	productService := product.NewService(product.NewRepository(db), snaps, activityService)

	activityHandler := activity.NewHandler(activityService)
	adminHandler := admin.NewHandler(adminService)
	ownerHandler := owner.NewHandler(ownerService)
	webhookHandler := webhook.NewHandler(webhookService)
	memberHandler := member.NewHandler(memberService)
	trainerHandler := trainer.NewHandler(trainerService)
	productHandler := product.NewHandler(productService)

	authLimiter := RateLimitMiddleware(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)

	authPublic := router.Group("/auth", authLimiter)
	{
		authPublic.POST("/signin", adminHandler.SignIn)
		authPublic.POST("/refresh", adminHandler.Refresh)
		authPublic.POST("/forgot-password", adminHandler.ForgotPassword)
		authPublic.POST("/reset-password/:id/:token", adminHandler.ResetPassword)
	}

	memberAuth := router.Group("/member-auth", authLimiter)
	{
		memberAuth.POST("/login", memberHandler.Login)
		memberAuth.POST("/set-password/:id/:token", memberHandler.SetPassword)
	}

	trainersPublic := router.Group("/trainers", authLimiter)
	{
		trainersPublic.POST("/login", trainerHandler.Login)
		trainersPublic.POST("/reset-password/:token", trainerHandler.ResetPassword)
	}

	router.POST("/webhooks/payment", webhookHandler.Ingest)
	router.GET("/products", productHandler.List)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	adminArea := router.Group("/", authMiddleware, auth.RequireRole(auth.RoleOwner, auth.RoleAdmin))
	{
		adminArea.GET("/auth/logs", activityHandler.ListLogs)
		adminArea.GET("/admin/profile", adminHandler.GetProfile)
		adminArea.PUT("/admin/profile", adminHandler.UpdateProfile)
		adminArea.PATCH("/products/:id", productHandler.ToggleActive)
		adminArea.POST("/admin/members", memberHandler.Invite)
		adminArea.POST("/admin/trainers", trainerHandler.Invite)
	}

	ownerArea := router.Group("/owner", authMiddleware, auth.RequireRole(auth.RoleOwner))
	{
		ownerArea.GET("/gyms", ownerHandler.ListGyms)
		ownerArea.GET("/webhooks", webhookHandler.List)
		ownerArea.GET("/analytics", ownerHandler.Analytics)
	}

	trainerArea := router.Group("/trainers", authMiddleware, auth.RequireRole(auth.RoleTrainer))
	{
		trainerArea.GET("/me/members", trainerHandler.ListMembers)
		trainerArea.POST("/mark-attendance", trainerHandler.MarkAttendance)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the handler for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
