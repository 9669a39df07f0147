package server

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"bingo-backend/internal/analytics"
	"bingo-backend/internal/auth"
	"bingo-backend/internal/cache"
	"bingo-backend/internal/config"
	"bingo-backend/internal/export"
	"bingo-backend/internal/handler"
	"bingo-backend/internal/render"
	"bingo-backend/internal/service"
	"bingo-backend/internal/staging"
)

// Server Fiber 서버 래퍼
type Server struct {
	app           *fiber.App
	cfg           *config.Config
	db            *gorm.DB
	redis         *cache.RedisClient
	authHandler   *handler.AuthHandler
	boardHandler  *handler.BoardHandler
	exportHandler *handler.ExportHandler
	healthHandler *handler.HealthHandler
	jwtManager    *auth.JWTManager
}

// New 새 서버 인스턴스 생성
func New(cfg *config.Config, db *gorm.DB) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Bucket List Bingo API",
		ServerHeader:          "Fiber",
		StrictRouting:         true,
		CaseSensitive:         true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		BodyLimit:             5 * 1024 * 1024, // 5MB, 데코 스트로크 포함 보드 기준
		DisableStartupMessage: false,
	})

	// Auth 초기화
	jwtManager := auth.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)
	googleAuth := auth.NewGoogleAuthenticator(cfg.Auth.GoogleClientID)

	// Redis 초기화 (선택적). 없으면 스테이징은 메모리로 동작한다.
	var redisClient *cache.RedisClient
	var stagingStore staging.Store
	if client, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("⚠️ Redis connection failed: %v (staged boards will not survive restarts)", err)
		stagingStore = staging.NewMemoryStore()
	} else {
		redisClient = client
		stagingStore = staging.NewRedisStore(client, cfg.Staging.TTL)
	}

	recorder := analytics.NewLogRecorder()
	boardService := service.NewBoardService(db)

	// 렌더링 파이프라인. HTTP 경로는 공유/다운로드 분기 없이 바로 스트리밍한다.
	renderer := render.NewCardRenderer(render.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		PixelRatio: cfg.Render.PixelRatio,
		Quality:    cfg.Render.Quality,
		FontPath:   cfg.Render.FontPath,
	})
	pipeline := export.NewPipeline(export.Config{
		SettleDelay: cfg.Export.SettleDelay,
		Attempts:    cfg.Export.Attempts,
		Backoff:     cfg.Export.Backoff,
	}, renderer, nil, nil, recorder)

	return &Server{
		app:           app,
		cfg:           cfg,
		db:            db,
		redis:         redisClient,
		authHandler:   handler.NewAuthHandler(db, jwtManager, googleAuth, boardService, stagingStore, recorder, cfg.Auth.SecureCookie),
		boardHandler:  handler.NewBoardHandler(boardService, stagingStore, recorder, cfg.Auth.SecureCookie),
		exportHandler: handler.NewExportHandler(pipeline, boardService, recorder),
		healthHandler: handler.NewHealthHandler(db, redisClient),
		jwtManager:    jwtManager,
	}
}

// SetupMiddleware 미들웨어 설정
func (s *Server) SetupMiddleware() {
	// 패닉 복구
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// 로깅
	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Seoul",
	}))

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORS.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
}

// SetupRoutes 라우트 설정
func (s *Server) SetupRoutes() {
	// 헬스체크 엔드포인트
	s.app.Get("/health", s.healthHandler.Check)
	s.app.Get("/health/live", s.healthHandler.Liveness)
	s.app.Get("/health/ready", s.healthHandler.Readiness)

	// Rate Limiter 설정 (인증 엔드포인트용 - Brute Force 방지)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,              // 최대 10회
		Expiration: 1 * time.Minute, // 1분당
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() // IP 기반 제한
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		},
	})

	// Auth 라우트 그룹
	authGroup := s.app.Group("/auth")
	authGroup.Post("/google", authLimiter, s.authHandler.GoogleLogin)
	authGroup.Post("/refresh", authLimiter, s.authHandler.RefreshToken)
	authGroup.Post("/logout", auth.AuthMiddleware(s.jwtManager), s.authHandler.Logout)
	authGroup.Get("/me", auth.AuthMiddleware(s.jwtManager), s.authHandler.GetMe)

	// Board 라우트 그룹.
	// 저장은 비로그인도 받아야 하므로 OptionalAuthMiddleware를 쓴다.
	boardGroup := s.app.Group("/api/boards")
	boardGroup.Get("", auth.AuthMiddleware(s.jwtManager), s.boardHandler.GetBoard)
	boardGroup.Post("", auth.OptionalAuthMiddleware(s.jwtManager), s.boardHandler.SaveBoard)
	boardGroup.Post("/visit", auth.AuthMiddleware(s.jwtManager), s.boardHandler.RecordVisit)
	boardGroup.Post("/export", auth.OptionalAuthMiddleware(s.jwtManager), s.exportHandler.ExportBoard)
}

// Start 서버 시작 (Graceful Shutdown 지원)
func (s *Server) Start() error {
	// Graceful Shutdown 설정
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := s.app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Fatalf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Bucket List Bingo API starting on %s", s.cfg.Server.Port)

	return s.app.Listen(s.cfg.Server.Port)
}

// Shutdown 서버 종료
func (s *Server) Shutdown() error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("⚠️ Redis close error: %v", err)
		}
	}
	return s.app.ShutdownWithTimeout(30 * time.Second)
}
