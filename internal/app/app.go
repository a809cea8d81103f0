package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/irabtech/lms/internal/app/server"
	"github.com/irabtech/lms/internal/config"
	deliveryhttp "github.com/irabtech/lms/internal/delivery/http"
	"github.com/irabtech/lms/internal/delivery/http/controllers/middleware"
	"github.com/irabtech/lms/internal/service"
	"github.com/irabtech/lms/internal/service/certificate"
	"github.com/irabtech/lms/internal/service/completion"
	"github.com/irabtech/lms/internal/service/enrollment"
	"github.com/irabtech/lms/internal/service/identity"
	"github.com/irabtech/lms/internal/service/learning"
	"github.com/irabtech/lms/internal/service/progress"
	"github.com/irabtech/lms/internal/service/quiz"
	"github.com/irabtech/lms/internal/storage/postgres"
	"github.com/irabtech/lms/internal/storage/rediscache"
	"github.com/irabtech/lms/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password,
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	if err := pg.Migrate(context.Background()); err != nil {
		log.FatalErr("error applying schema", err)
	}

	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	enrollmentRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	quizRepo := postgres.NewQuizPostgres(pg.Pool)
	attemptRepo := postgres.NewAttemptPostgres(pg.Pool)
	certificateRepo := postgres.NewCertificatePostgres(pg.Pool)

	var cache *rediscache.StatusCache
	if cfg.Redis.Addr != "" {
		cache = rediscache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.StatusTTL)
		defer cache.Close()
	}

	enrollmentService := enrollment.NewEnrollmentService(log, courseRepo, enrollmentRepo)
	tracker := progress.NewProgressTracker(log, courseRepo, enrollmentRepo)
	grader := quiz.NewQuizGrader(log, quizRepo, attemptRepo)
	issuer := certificate.NewCertificateIssuer(log, certificateRepo)

	// A nil *StatusCache behind the interfaces would not be nil; pass nil
	// explicitly when the cache is disabled.
	var completionService *completion.CompletionService
	var flow *learning.LearningFlow
	if cache != nil {
		completionService = completion.NewCompletionService(log, courseRepo, enrollmentRepo, quizRepo, attemptRepo, cache)
		flow = learning.NewLearningFlow(log, courseRepo, tracker, grader, completionService, issuer, cache)
	} else {
		completionService = completion.NewCompletionService(log, courseRepo, enrollmentRepo, quizRepo, attemptRepo, nil)
		flow = learning.NewLearningFlow(log, courseRepo, tracker, grader, completionService, issuer, nil)
	}

	services := service.Collection{
		EnrollmentService: enrollmentService,
		ProgressTracker:   tracker,
		QuizGrader:        grader,
		CompletionService: completionService,
		CertificateIssuer: issuer,
		LearningFlow:      flow,
	}

	tokenParser := identity.NewTokenParser(cfg.JWT.SecretKey, cfg.JWT.Issuer)
	idp := middleware.NewIdentityProvider(log, tokenParser)

	r := deliveryhttp.InitRoutes(log, services, idp, courseRepo)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
