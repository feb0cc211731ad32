package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduplatform_backend/internal/config"
	"eduplatform_backend/internal/controller"
	"eduplatform_backend/internal/event"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/internal/service"
	"eduplatform_backend/pkg/database"
	"eduplatform_backend/pkg/logger"
	"eduplatform_backend/pkg/monitoring"
	"eduplatform_backend/pkg/security"
	"eduplatform_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	Mongo     *mongo.Client
	Redis     *redis.Client
	publisher *event.Publisher
	tracer    *sdktrace.TracerProvider
}

type repositories struct {
	user       *repository.UserRepository
	assessment *repository.AssessmentRepository
	answered   *repository.AnsweredAssessmentRepository
	assignment *repository.AssignmentRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	assessment *service.AssessmentService
	assignment *service.AssignmentService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	assessment *controller.AssessmentController
	assignment *controller.AssignmentController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *mongo.Database, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		assessment: repository.NewAssessmentRepository(db, rdb),
		answered:   repository.NewAnsweredAssessmentRepository(db),
		assignment: repository.NewAssignmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.answered)
	s.assignment = service.NewAssignmentService(repos.assignment, s.storage)

	if a.publisher != nil {
		s.assessment.Publisher = a.publisher
		s.assignment.Publisher = a.publisher
	}

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		assessment: controller.NewAssessmentController(s.assessment),
		assignment: controller.NewAssignmentController(s.assignment),
		health:     controller.NewHealthController(a.Mongo),
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

	client, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		logger.Log.Fatal("Failed to initialize mongo", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		Mongo:  client,
		Redis:  rdb,
	}

	if cfg.Event.AmqpURI != "" && cfg.Event.Exchange != "" {
		app.publisher, err = event.NewPublisher(cfg.Event.AmqpURI, cfg.Event.Exchange)
		if err != nil {
			logger.Log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
	} else {
		logger.Log.Info("RabbitMQ not configured, submission events will not be published")
	}

	db := client.Database(cfg.Mongo.Database)
	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("eduplatform-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if err := a.Mongo.Disconnect(ctx); err != nil {
		logger.Log.Error("Failed to disconnect mongo", zap.Error(err))
	}

	log.Println("Server exiting")
}
