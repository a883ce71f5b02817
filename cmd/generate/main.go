package main

import (
	"context"
	"log"
	"os"

	"github.com/geekpie/portfolio-backend/internal/config"
	"github.com/geekpie/portfolio-backend/internal/db"
	"github.com/geekpie/portfolio-backend/internal/generator"
	"github.com/geekpie/portfolio-backend/internal/logger"
	"github.com/geekpie/portfolio-backend/internal/repository"
)

// Запускает один прогон генерации статического сайта из командной строки.
// Удобно для cron и деплой-скриптов, когда API не нужен.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("generate: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init("info")
	logger.SetTextFormatter()

	ctx := context.Background()

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("generate: ошибка подключения к базе: %v", err)
	}
	defer dbConn.Close()

	contentRepo := repository.NewContentRepository(dbConn)
	renderer := generator.NewPageRenderer(cfg.SiteName)
	pipeline := generator.NewPipeline(contentRepo, renderer, cfg.SiteRootPath, cfg.UploadDirPath, cfg.TemplatePagePath())

	result, err := pipeline.Run(ctx)
	if err != nil {
		log.Printf("generate: %v", err)
		os.Exit(1)
	}

	log.Printf("generate: готово, проектов %d, AI-кейсов %d", result.ProjectsGenerated, result.AiSectorsGenerated)
}
