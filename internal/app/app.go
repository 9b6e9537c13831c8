package app

import (
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

	"schoolhub_backend/internal/config"
	"schoolhub_backend/internal/controller"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
	"schoolhub_backend/pkg/configwatcher"
	"schoolhub_backend/pkg/database"
	"schoolhub_backend/pkg/logger"
	"schoolhub_backend/pkg/monitoring"
	"schoolhub_backend/pkg/security"
	"schoolhub_backend/pkg/tracing"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	school        *repository.SchoolRepository
	admin         *repository.AdminRepository
	schoolAdmin   *repository.SchoolAdminRepository
	user          *repository.UserRepository
	schoolTeacher *repository.SchoolTeacherRepository
	questionBank  *repository.QuestionBankRepository
	assessment    *repository.AssessmentRepository
	taker         *repository.AssessmentTakerRepository
}

type services struct {
	permission   *service.PermissionService
	storage      *service.StorageService
	auth         *service.AuthService
	school       *service.SchoolService
	admin        *service.AdminService
	user         *service.UserService
	assessment   *service.AssessmentService
	grading      *service.GradingService
	questionBank *service.QuestionBankService
}

type controllers struct {
	auth         *controller.AuthController
	school       *controller.SchoolController
	admin        *controller.AdminController
	teacher      *controller.TeacherController
	assessment   *controller.AssessmentController
	questionBank *controller.QuestionBankController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// WatchConfig hot-reloads the config file and notifies registered callbacks.
func (a *App) WatchConfig(path string) {
	go configwatcher.WatchConfig(path, func(cfg interface{}) {
		newCfg, ok := cfg.(*config.Config)
		if !ok {
			return
		}
		a.Config = newCfg
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
		logger.Log.Info("Configuration reloaded")
	})
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		school:        repository.NewSchoolRepository(db),
		admin:         repository.NewAdminRepository(db),
		schoolAdmin:   repository.NewSchoolAdminRepository(db),
		user:          repository.NewUserRepository(db),
		schoolTeacher: repository.NewSchoolTeacherRepository(db),
		questionBank:  repository.NewQuestionBankRepository(db),
		assessment:    repository.NewAssessmentRepository(db),
		taker:         repository.NewAssessmentTakerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.permission = service.NewPermissionService(repos.school, repos.schoolAdmin)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.admin, rdb, logger.Log, cfg.JWT.Secret, cfg.JWT.ExpireTime, cfg.JWT.AdminExpireTime)
	s.school = service.NewSchoolService(repos.school, s.permission)
	s.admin = service.NewAdminService(repos.admin, repos.schoolAdmin, s.permission)
	s.user = service.NewUserService(repos.user, repos.schoolTeacher, s.permission)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.taker, repos.schoolTeacher, repos.questionBank, s.permission)
	s.grading = service.NewGradingService(repos.assessment, repos.taker)
	s.questionBank = service.NewQuestionBankService(repos.questionBank, repos.assessment, repos.taker, s.permission)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		school:       controller.NewSchoolController(s.school, s.storage),
		admin:        controller.NewAdminController(s.admin),
		teacher:      controller.NewTeacherController(s.user),
		assessment:   controller.NewAssessmentController(s.assessment, s.grading),
		questionBank: controller.NewQuestionBankController(s.questionBank),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := database.SeedSuperAdmin(db, &cfg.Bootstrap); err != nil {
		logger.Log.Fatal("Failed to seed super admin", zap.Error(err))
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

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("schoolhub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	log.Println("Server exiting")
}
