package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/okandemir/studentdesk/internal/app/controllers"
	appRepos "github.com/okandemir/studentdesk/internal/app/repositories"
	appRoutes "github.com/okandemir/studentdesk/internal/app/routes"
	appServices "github.com/okandemir/studentdesk/internal/app/services"
	"github.com/okandemir/studentdesk/internal/config"
	"github.com/okandemir/studentdesk/internal/db"
	appMiddleware "github.com/okandemir/studentdesk/internal/middleware"
	pkgAuth "github.com/okandemir/studentdesk/internal/pkg/auth"
	"github.com/okandemir/studentdesk/internal/pkg/logger"
	"github.com/okandemir/studentdesk/internal/schema"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	AuthService       appServices.AuthService
	StudentService    appServices.StudentService
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	SessionService    *pkgAuth.SessionService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
	})

	return cfg, lgr, nil
}

// SetupDatabase opens the configured storage backend and runs schema
// initialization. Any failure here is fatal to startup.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	database, err := db.NewDatabase(cfg)
	if err != nil {
		return nil, err
	}
	lgr.Info().
		Str("driver", cfg.Database.Driver).
		Msg("Database connection established")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	manager := schema.NewManager(database, lgr)
	err = manager.Initialize(ctx, schema.BootstrapAdmin{
		Email:    cfg.Bootstrap.AdminEmail,
		Password: cfg.Bootstrap.AdminPassword,
		Name:     cfg.Bootstrap.AdminName,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("schema initialization failed: %w", err)
	}

	return database, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, database *db.Database, lgr zerolog.Logger) *Dependencies {
	sessionService := pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey:   cfg.JWT.Secret,
		Expiration:  cfg.SessionExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	userRepo := appRepos.NewUserRepository(database)
	studentRepo := appRepos.NewStudentRepository(database)

	authService := appServices.NewAuthService(userRepo)
	studentService := appServices.NewStudentService(studentRepo)

	return &Dependencies{
		AuthService:       authService,
		StudentService:    studentService,
		AuthController:    appControllers.NewAuthController(authService, sessionService),
		StudentController: appControllers.NewStudentController(studentService),
		AuthMiddleware:    appMiddleware.NewAuthMiddleware(sessionService),
		SessionService:    sessionService,
		Logger:            lgr,
	}
}

// SetupRouter builds the gin engine with all routes mounted.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router, deps.AuthController, deps.StudentController, deps.AuthMiddleware)

	return router
}
