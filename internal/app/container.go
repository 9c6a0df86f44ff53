package app

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"
	"jobboard/internal/ws"
)

// Container owns the long-lived dependencies of the server process.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Auth     *middleware.AuthMiddleware
	Handlers routes.Handlers
	stopHub  context.CancelFunc
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.Default()

	if cfg.App.AutoMigrate {
		r := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger}
		if err := r.Run("up", cfg.Database.DSN()); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	txm := dbpostgres.NewTransactionManager(pool)
	employers := repository.NewPostgresEmployerRepository(pool)
	employees := repository.NewPostgresEmployeeRepository(pool)
	jobs := repository.NewPostgresJobRepository(pool)
	applications := repository.NewPostgresApplicationRepository(pool)
	chats := repository.NewPostgresChatRepository(pool)

	redisCache := cache.NewRedis(cfg.Redis, logger)

	hub := ws.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)
	events := ws.NewPublisher(hub, logger)

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authSvc := ucauth.NewService(employers, employees, ucauth.WithLogger(logger))

	authUC := usecase.NewAuthUsecase(authSvc, jwtSvc, logger)
	jobUC := usecase.NewJobUsecase(txm, jobs, employers, applications, redisCache, cfg.Redis.TTL, events, logger)
	appUC := usecase.NewApplicationUsecase(txm, applications, jobs, employers, employees, events, logger)
	profileUC := usecase.NewProfileUsecase(employers, employees, logger)
	chatUC := usecase.NewChatUsecase(chats, employees, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     pool,
		Cache:  redisCache,
		Hub:    hub,
		Auth:   middleware.NewAuthMiddleware(jwtSvc),
		Handlers: routes.Handlers{
			Health:       handler.NewHealthHandler(pool, logger),
			Auth:         handler.NewAuthHandler(authUC),
			Jobs:         handler.NewJobsHandler(jobUC),
			Applications: handler.NewApplicationsHandler(appUC),
			Profiles:     handler.NewProfileHandler(profileUC),
			Chat:         handler.NewChatHandler(chatUC),
			Events:       ws.NewHandler(hub, jwtSvc, logger),
		},
		stopHub: stopHub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
