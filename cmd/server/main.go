package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/smk-nusantara/cms-api/api/swagger"
	"github.com/smk-nusantara/cms-api/internal/handler"
	"github.com/smk-nusantara/cms-api/internal/repository"
	"github.com/smk-nusantara/cms-api/internal/router"
	"github.com/smk-nusantara/cms-api/internal/service"
	"github.com/smk-nusantara/cms-api/pkg/cache"
	"github.com/smk-nusantara/cms-api/pkg/config"
	"github.com/smk-nusantara/cms-api/pkg/database"
	"github.com/smk-nusantara/cms-api/pkg/export"
	"github.com/smk-nusantara/cms-api/pkg/jobs"
	"github.com/smk-nusantara/cms-api/pkg/logger"
	"github.com/smk-nusantara/cms-api/pkg/mail"
	corsmiddleware "github.com/smk-nusantara/cms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/smk-nusantara/cms-api/pkg/middleware/requestid"
	"github.com/smk-nusantara/cms-api/pkg/storage"
)

// @title SMK Nusantara Tech CMS API
// @version 1.0.0
// @description Layanan konten publik, administrasi, dan pendaftaran SPMB SMK Nusantara Tech
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The public cache is an optimization. Queries fall through to
		// Postgres when Redis is unreachable.
		logr.Sugar().Warnw("redis unavailable, public cache disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close() //nolint:errcheck
	}

	docStore, err := storage.NewLocalStorage(cfg.SPMB.DocumentDir)
	if err != nil {
		logr.Sugar().Fatalw("document storage init failed", "error", err)
	}
	receiptStore, err := storage.NewLocalStorage(cfg.SPMB.ReceiptDir)
	if err != nil {
		logr.Sugar().Fatalw("receipt storage init failed", "error", err)
	}
	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.ImageDir)
	if err != nil {
		logr.Sugar().Fatalw("upload storage init failed", "error", err)
	}

	signer := storage.NewSignedURLSigner(cfg.SPMB.SignedURLSecret, cfg.SPMB.SignedURLTTL)
	renderer := export.NewReceiptRenderer()
	sender := mail.New(cfg.Mail, logr)
	validate := validator.New()

	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	contentRepo := repository.NewContentRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr, metricsSvc)

	// The queue handler closes over spmbSvc, which itself enqueues jobs.
	var spmbSvc *service.SPMBService
	queue := jobs.NewQueue("cms", func(ctx context.Context, job jobs.Job) error {
		switch job.Type {
		case service.JobReceiptPDF:
			payload, ok := job.Payload.(service.ReceiptJobPayload)
			if !ok {
				return fmt.Errorf("unexpected payload for %s job: %T", job.Type, job.Payload)
			}
			return spmbSvc.GenerateReceipt(ctx, payload)
		case service.JobContactNotification:
			msg, ok := job.Payload.(mail.Message)
			if !ok {
				return fmt.Errorf("unexpected payload for %s job: %T", job.Type, job.Payload)
			}
			return sender.Send(msg)
		default:
			return fmt.Errorf("unknown job type: %s", job.Type)
		}
	}, jobs.QueueConfig{
		Workers:    cfg.SPMB.WorkerConcurrency,
		MaxRetries: cfg.SPMB.WorkerRetries,
		Logger:     logr,
	})

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret:    cfg.JWT.Secret,
		TokenExpiry:    cfg.JWT.Expiration,
		RememberExpiry: cfg.JWT.RememberExpiration,
		Issuer:         cfg.JWT.Issuer,
	})
	articleSvc := service.NewArticleService(articleRepo, cacheRepo, userRepo, uploadStore, validate, logr, service.ArticleConfig{
		MaxImageBytes: cfg.Uploads.MaxFileSizeBytes,
		CacheEnabled:  cfg.Cache.Enabled,
		CacheTTL:      cfg.Cache.PublicTTL,
	})
	contentSvc := service.NewContentService(contentRepo, cacheRepo, logr, service.ContentConfig{
		CacheEnabled: cfg.Cache.Enabled,
		CacheTTL:     cfg.Cache.PublicTTL,
	})
	calendarSvc := service.NewCalendarService(calendarRepo, cacheRepo, logr, service.CalendarConfig{
		CacheEnabled: cfg.Cache.Enabled,
		CacheTTL:     cfg.Cache.PublicTTL,
	})
	contactSvc := service.NewContactService(contactRepo, queue, validate, logr, cfg.School, cfg.Contact, cfg.Mail.NotifyAddress)
	spmbSvc = service.NewSPMBService(registrationRepo, userRepo, docStore, receiptStore, signer, renderer, queue, validate, logr, cfg.School, cfg.SPMB)
	dashboardSvc := service.NewDashboardService(registrationRepo, contentRepo, articleRepo, calendarRepo, logr)

	queueCtx, stopQueue := context.WithCancel(context.Background())
	queue.Start(queueCtx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	router.Setup(r, cfg, router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Content:   handler.NewContentHandler(contentSvc),
		Article:   handler.NewArticleHandler(articleSvc),
		Calendar:  handler.NewCalendarHandler(calendarSvc),
		Contact:   handler.NewContactHandler(contactSvc),
		SPMB:      handler.NewSPMBHandler(spmbSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Health:    handler.NewHealthHandler(db, redisClient),
	}, authSvc, metricsSvc, userRepo)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}

	// Drain in-flight jobs (pending receipt PDFs) before exiting.
	queue.Stop()
	stopQueue()
}
