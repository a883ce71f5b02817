package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/geekpie/portfolio-backend/internal/config"
	"github.com/geekpie/portfolio-backend/internal/db"
	"github.com/geekpie/portfolio-backend/internal/generator"
	httpHandlers "github.com/geekpie/portfolio-backend/internal/http/handlers"
	httpRouter "github.com/geekpie/portfolio-backend/internal/http/router"
	"github.com/geekpie/portfolio-backend/internal/logger"
	"github.com/geekpie/portfolio-backend/internal/mailer"
	"github.com/geekpie/portfolio-backend/internal/models"
	"github.com/geekpie/portfolio-backend/internal/repository"
	"github.com/geekpie/portfolio-backend/internal/service"
	"github.com/geekpie/portfolio-backend/internal/storage"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	uploadStorage, err := storage.NewUploadStorage(cfg.UploadDirPath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	mailService := mailer.New(cfg.SMTPHost, int(cfg.SMTPPort), cfg.SMTPUser, cfg.SMTPPassword, cfg.ContactEmail, cfg.SiteName)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	contentRepo := repository.NewContentRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	seedService := service.NewSeedService(userRepo, contentRepo)

	// Генератор статического сайта.
	renderer := generator.NewPageRenderer(cfg.SiteName)
	pipeline := generator.NewPipeline(contentRepo, renderer, cfg.SiteRootPath, uploadStorage.RootPath(), cfg.TemplatePagePath())

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	projectHandler := httpHandlers.NewContentHandler(models.KindProject, contentRepo, uploadStorage)
	aiSectorHandler := httpHandlers.NewContentHandler(models.KindAiSector, contentRepo, uploadStorage)
	generateHandler := httpHandlers.NewGenerateHandler(pipeline)
	contactHandler := httpHandlers.NewContactHandler(mailService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, projectHandler, aiSectorHandler, generateHandler, contactHandler, healthHandler, seedHandler, tokenManager, uploadStorage.RootPath())

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
