package app

import (
	"ai_course_backend/internal/config"
	"ai_course_backend/internal/controller"
	"ai_course_backend/internal/repository"
	"ai_course_backend/internal/service"
	"ai_course_backend/internal/store"
	"ai_course_backend/pkg/database"
	"ai_course_backend/pkg/logger"
	"ai_course_backend/pkg/monitoring"
	"ai_course_backend/pkg/security"
	"ai_course_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Stores *store.Manager
}

type repositories struct {
	snapshot *repository.SnapshotRepository
	archive  *repository.ContentArchiveRepository
}

type services struct {
	gemini  *service.GeminiService
	content *service.ContentService
	quiz    *service.QuizService
	chat    *service.ChatService
	course  *service.CourseService
}

type controllers struct {
	session    *controller.SessionController
	profile    *controller.ProfileController
	course     *controller.CourseController
	assessment *controller.AssessmentController
	ai         *controller.AIController
	chat       *controller.ChatController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		snapshot: repository.NewSnapshotRepository(db, rdb),
		archive:  repository.NewContentArchiveRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.gemini = service.NewGeminiService(cfg.Gemini)
	s.content = service.NewContentService(s.gemini, repos.archive, logger.Log)
	s.quiz = service.NewQuizService(s.gemini, logger.Log)
	s.chat = service.NewChatService(s.gemini)
	s.course = service.NewCourseService(a.Stores, s.content, s.quiz, logger.Log)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		session:    controller.NewSessionController(a.Config),
		profile:    controller.NewProfileController(a.Stores),
		course:     controller.NewCourseController(s.course, a.Stores, repos.archive),
		assessment: controller.NewAssessmentController(s.course),
		ai:         controller.NewAIController(s.quiz),
		chat:       controller.NewChatController(s.chat, a.Stores),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	app.Stores = store.NewManager(repos.snapshot, logger.Log)

	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ai-course-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
