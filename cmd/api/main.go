package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "research-api/docs"
	"research-api/internal/adapter/openai"
	"research-api/internal/adapter/repository/memory"
	"research-api/internal/adapter/repository/postgres"
	"research-api/internal/delivery/http/handler"
	"research-api/internal/domain/repository"
	"research-api/internal/usecase/document"
	"research-api/internal/usecase/export"
	"research-api/internal/usecase/qa"
	"research-api/pkg/config"
	"research-api/pkg/database"
	"research-api/pkg/storage"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	// log
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// @title           Research API
// @version         1.0
// @description     Document ingestion and citation-grounded question answering over research projects
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg := config.Load()

	// connect to database
	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		PingTimeout:     cfg.DBPingTimeout,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("connected to database")

	// file storage for uploaded originals (re-ingestion reads these back)
	fileStore, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		log.Fatalf("failed to initialize file storage: %v", err)
	}

	// initialize openai clients
	embeddingClient := openai.NewEmbeddingClient(
		cfg.OpenAIKey,
		cfg.OpenAIEmbeddingModel,
		cfg.EmbedBatchSize,
		cfg.EmbedConcurrency,
		cfg.EmbedMaxRetries,
		cfg.EmbedTimeout,
	)
	chatClient := openai.NewChatClient(cfg.OpenAIKey, cfg.OpenAIChatModel, cfg.MaxAnswerTokens, cfg.LLMTimeout)

	// initialize repositories
	projectRepo := postgres.NewProjectRepository(db)
	docRepo := postgres.NewDocumentRepository(db)

	var chunkIndex repository.ChunkIndex
	switch cfg.VectorBackend {
	case "memory":
		chunkIndex = memory.NewChunkIndex()
		log.Println("using in-memory vector index")
	default:
		chunkIndex = postgres.NewChunkIndex(db, cfg.EmbeddingDim)
	}

	// initialize usecases
	docUsecase := document.NewDocumentUsecase(
		docRepo,
		projectRepo,
		chunkIndex,
		embeddingClient,
		fileStore,
		cfg.ChunkSize,
		cfg.ChunkOverlap,
	)
	qaUsecase := qa.NewQAUsecase(
		projectRepo,
		chunkIndex,
		embeddingClient,
		chatClient,
		cfg.TopKResults,
		cfg.SnippetLength,
	)
	exportUsecase := export.NewExportUsecase(projectRepo, docRepo)

	// initialize handlers
	projectHandler := handler.NewProjectHandler(projectRepo, exportUsecase)
	docHandler := handler.NewDocumentHandler(docUsecase)
	qaHandler := handler.NewQAHandler(qaUsecase)

	// documents left in processing by a crashed instance get failed on a sweep
	go func() {
		ticker := time.NewTicker(cfg.StuckJobTimeout)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := docUsecase.ReapStuck(context.Background(), cfg.StuckJobTimeout); err != nil {
				log.Printf("stuck-job sweep failed: %v", err)
			}
		}
	}()

	// initialize fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024,
	})

	// middleware for log request and response in terminal
	app.Use(logger.New())

	// Swagger route
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := app.Group("/api")

	// project routes
	api.Post("/projects", projectHandler.Create)
	api.Get("/projects", projectHandler.List)
	api.Get("/projects/:id", projectHandler.GetByID)
	api.Get("/projects/:id/export", projectHandler.Export)

	// document routes
	api.Post("/documents/upload", docHandler.Upload)
	api.Get("/documents", docHandler.List)
	api.Get("/documents/:id", docHandler.GetByID)
	api.Get("/documents/:id/chunks", docHandler.Chunks)
	api.Post("/documents/:id/reingest", docHandler.Reingest)
	api.Delete("/documents/:id", docHandler.Delete)

	// qa routes
	api.Post("/qa/ask", qaHandler.Ask)

	// Start server
	log.Printf("🚀 Server starting on port %d", cfg.Port)
	log.Printf("📚 Swagger UI: http://localhost:%d/swagger/index.html", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
