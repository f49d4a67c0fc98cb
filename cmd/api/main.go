package main

import (
	"fmt"
	"log"

	"github.com/Adya-Prasad/Inferenz/internal/adapter/embedding"
	"github.com/Adya-Prasad/Inferenz/internal/adapter/ocr"
	"github.com/Adya-Prasad/Inferenz/internal/adapter/pdfrender"
	"github.com/Adya-Prasad/Inferenz/internal/adapter/repository/postgres"
	"github.com/Adya-Prasad/Inferenz/internal/delivery/http/handler"
	"github.com/Adya-Prasad/Inferenz/internal/usecase/datasource"
	"github.com/Adya-Prasad/Inferenz/internal/usecase/search"
	"github.com/Adya-Prasad/Inferenz/pkg/config"
	"github.com/Adya-Prasad/Inferenz/pkg/database"
	"github.com/Adya-Prasad/Inferenz/pkg/workerpool"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	// log
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	// connect to database
	db, err := database.Connect(cfg.DatabaseURL, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("connected to database")

	// initialize repository
	dsRepo := postgres.NewDatasourceRepository(db)
	chunkRepo := postgres.NewChunkRepository(db)

	// bounded pool for OCR and embedding inference
	pool, err := workerpool.New(cfg.WorkerPoolSize)
	if err != nil {
		log.Fatalf("failed to create worker pool: %v", err)
	}
	defer pool.Release()

	// provider chains: first success wins, exhaustion degrades gracefully
	openaiProvider := embedding.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIEmbeddingModel)
	chunkEmbedder := embedding.NewChunkEmbedder(cfg.EmbeddingDim, openaiProvider)
	queryEmbedder := embedding.NewQueryEmbedder(cfg.EmbeddingDim, openaiProvider)

	extractor := datasource.NewTextExtractor(
		pdfrender.NewFitzRenderer(),
		ocr.NewTrOCRProvider(cfg.TrOCRURL),
		ocr.NewTesseractProvider(),
	)

	// initialize usecases
	dsUsecase := datasource.NewDatasourceUsecase(dsRepo, chunkRepo, chunkEmbedder, extractor, cfg.ChunkSize, pool)
	searchUsecase := search.NewSearchUsecase(chunkRepo, queryEmbedder, cfg.TopKResults)

	// initialize handlers
	dsHandler := handler.NewDatasourceHandler(dsUsecase)
	searchHandler := handler.NewSearchHandler(searchUsecase)

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://127.0.0.1:3000",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	ds := api.Group("/datasources")
	ds.Post("/", dsHandler.Upload)
	ds.Get("/", dsHandler.List)
	ds.Get("/:id", dsHandler.GetByID)
	ds.Delete("/:id", dsHandler.Delete)

	api.Post("/search", searchHandler.Search)

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
