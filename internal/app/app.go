package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/config"
	"talentbridge_backend/internal/controller"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/service"
	"talentbridge_backend/pkg/configwatcher"
	"talentbridge_backend/pkg/logger"
	"talentbridge_backend/pkg/monitoring"
	"talentbridge_backend/pkg/security"
	"talentbridge_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	Store   repository.KVStore
	Catalog *catalog.Provider

	tracer   *sdktrace.TracerProvider
	services *services
}

type repositories struct {
	learner      *repository.LearnerRepository
	credential   *repository.CredentialRepository
	quizSession  *repository.QuizSessionRepository
	notification *repository.NotificationRepository
	progressView *repository.ProgressViewRepository
}

type services struct {
	learner      *service.LearnerService
	auth         *service.AuthService
	onboarding   *service.OnboardingService
	assessment   *service.AssessmentService
	roadmap      *service.RoadmapService
	notification *service.NotificationService
	navigation   *service.NavigationService
}

type controllers struct {
	health       *controller.HealthController
	auth         *controller.AuthController
	user         *controller.UserController
	onboarding   *controller.OnboardingController
	assessment   *controller.AssessmentController
	roadmap      *controller.RoadmapController
	notification *controller.NotificationController
	navigation   *controller.NavigationController
}

func (a *App) initRepositories(cfg *config.Config) *repositories {
	return &repositories{
		learner:      repository.NewLearnerRepository(a.Store, cfg.Cache.LearnerSize),
		credential:   repository.NewCredentialRepository(a.Store),
		quizSession:  repository.NewQuizSessionRepository(a.Store),
		notification: repository.NewNotificationRepository(a.Store),
		progressView: repository.NewProgressViewRepository(a.Store),
	}
}

func (a *App) initServices(r *repositories, cfg *config.Config) *services {
	notification := service.NewNotificationService(r.notification, a.Catalog)
	learner := service.NewLearnerService(r.learner, r.progressView, notification)

	return &services{
		learner:      learner,
		auth:         service.NewAuthService(r.credential, learner, r.quizSession, notification, cfg),
		onboarding:   service.NewOnboardingService(learner, a.Catalog),
		assessment:   service.NewAssessmentService(a.Catalog, r.quizSession, learner),
		roadmap:      service.NewRoadmapService(a.Catalog, learner),
		notification: notification,
		navigation:   service.NewNavigationService(learner),
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		health:       controller.NewHealthController(a.Store, a.Catalog),
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.learner, s.onboarding, s.auth),
		onboarding:   controller.NewOnboardingController(s.onboarding),
		assessment:   controller.NewAssessmentController(s.assessment),
		roadmap:      controller.NewRoadmapController(s.roadmap),
		notification: controller.NewNotificationController(s.notification),
		navigation:   controller.NewNavigationController(s.navigation),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp wires the application on an already opened store.
func NewApp(cfg *config.Config, store repository.KVStore) (*App, error) {
	cat, err := catalog.NewProvider(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Store:   store,
		Catalog: cat,
	}

	repos := app.initRepositories(cfg)
	app.services = app.initServices(repos, cfg)
	ctrls := app.initControllers(app.services)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	return app, nil
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.Config.Catalog.Watch && a.Catalog.Path() != "" {
		if err := configwatcher.WatchFile(ctx, a.Catalog.Path(), a.Catalog.Reload); err != nil {
			logger.Log.Warn("Catalog hot reload disabled", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			a.Close()
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	logger.Log.Info("Server exiting")
	return err
}

// Close flushes the tracer and releases the store.
func (a *App) Close() {
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			logger.Log.Error("Failed to close store", zap.Error(err))
		}
	}
}
