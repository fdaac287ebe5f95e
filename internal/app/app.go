package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyset_backend/internal/config"
	"studyset_backend/internal/controller"
	"studyset_backend/internal/repository"
	"studyset_backend/internal/service"
	"studyset_backend/pkg/database"
	"studyset_backend/pkg/logger"
	"studyset_backend/pkg/monitoring"
	"studyset_backend/pkg/security"
	"studyset_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	repos           *repositories
	services        *services
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	refreshToken *repository.RefreshTokenRepository
	course       *repository.CourseRepository
	practiceTest *repository.PracticeTestRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	user         *service.UserService
	course       *service.CourseService
	practiceTest *service.PracticeTestService
	search       *service.SearchService
	admin        *service.AdminService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	course       *controller.CourseController
	practiceTest *controller.PracticeTestController
	search       *controller.SearchController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig applies a freshly loaded config. Only fields read per
// request are swapped; listeners and middleware built at startup keep
// their original settings until restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config.JWT = cfg.JWT
	a.Config.Storage = cfg.Storage
	logger.Log.Info("Configuration reloaded")
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		refreshToken: repository.NewRefreshTokenRepository(db),
		course:       repository.NewCourseRepository(db),
		practiceTest: repository.NewPracticeTestRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.refreshToken, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.course = service.NewCourseService(repos.course)
	s.practiceTest = service.NewPracticeTestService(repos.practiceTest)
	s.search = service.NewSearchService(repos.course, repos.practiceTest, rdb)
	s.admin = service.NewAdminService(repos.user)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		course:       controller.NewCourseController(s.course),
		practiceTest: controller.NewPracticeTestController(s.practiceTest),
		search:       controller.NewSearchController(s.search),
		admin:        controller.NewAdminController(s.admin),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(repos *repositories) {
	// Expired refresh tokens accumulate one row per login, so an hourly
	// sweep keeps the table bounded.
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			deleted, err := repos.refreshToken.DeleteExpired()
			if err != nil {
				logger.Log.Error("refresh token cleanup failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				logger.Log.Info("expired refresh tokens removed", zap.Int64("count", deleted))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	app.repos = repos
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("studyset-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(repos)

	return app
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

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
