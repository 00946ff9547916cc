package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/whalechillz/mas-win-sub012/internal/auth"
	"github.com/whalechillz/mas-win-sub012/internal/booking"
	"github.com/whalechillz/mas-win-sub012/internal/config"
	"github.com/whalechillz/mas-win-sub012/internal/customer"
	"github.com/whalechillz/mas-win-sub012/internal/draft"
	"github.com/whalechillz/mas-win-sub012/internal/equipment"
	"github.com/whalechillz/mas-win-sub012/internal/notification"
	"github.com/whalechillz/mas-win-sub012/internal/schedule"
	"github.com/whalechillz/mas-win-sub012/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, rdb *redis.Client, cfg *config.Config, notifier *notification.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	loc := cfg.Location()

	scheduleSvc := schedule.NewService(schedule.NewRepository(db), loc)
	customerRepo := customer.NewRepository(db)
	bookingSvc := booking.NewService(booking.NewRepository(db), scheduleSvc, customerRepo, notifier)
	draftStore := draft.NewRedisStore(rdb, cfg.DraftTTL)
	draftSvc := draft.NewService(draftStore, customerRepo, scheduleSvc, bookingSvc, cfg.HoldTTL)

	scheduleHandler := schedule.NewHandlerWithService(scheduleSvc, loc)
	customerHandler := customer.NewHandlerWithRepo(customerRepo)
	equipmentHandler := equipment.NewHandler(db)
	bookingHandler := booking.NewHandlerWithService(bookingSvc)
	draftHandler := draft.NewHandler(draftSvc)
	userHandler := user.NewHandler(db, cfg.JWTSecret)

	bookings := router.Group("/api/bookings")
	{
		bookings.GET("/settings", scheduleHandler.GetSettings)
		bookings.GET("/available", scheduleHandler.GetAvailable)
		bookings.GET("/next-available", scheduleHandler.GetNextAvailable)
		bookings.GET("/customer/:phone", customerHandler.Lookup)
		bookings.GET("/club-brands", equipmentHandler.SearchBrands)
		bookings.GET("/club-options", equipmentHandler.GetOptions)
		bookings.POST("", bookingHandler.Create)
	}

	drafts := router.Group("/api/drafts")
	{
		drafts.POST("", draftHandler.Create)
		drafts.GET("/:id", draftHandler.Get)
		drafts.PATCH("/:id", draftHandler.Update)
		drafts.PUT("/:id/slot", draftHandler.SelectSlot)
		drafts.POST("/:id/submit", draftHandler.Submit)
	}

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.GET("/bookings", bookingHandler.ListByDate)
		admin.GET("/bookings/:id", bookingHandler.Get)
		admin.POST("/bookings/:id/cancel", bookingHandler.Cancel)
		admin.PUT("/settings", scheduleHandler.UpdateSettings)
		admin.POST("/restrictions", scheduleHandler.SetRestriction)
		admin.DELETE("/restrictions/:date", scheduleHandler.ClearRestriction)
		admin.POST("/blocked-times", scheduleHandler.BlockTime)
		admin.DELETE("/blocked-times", scheduleHandler.UnblockTime)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

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
