package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"resumeparser/internal/config"
	"resumeparser/internal/database"
	"resumeparser/internal/domain/auth"
	"resumeparser/internal/domain/credits"
	"resumeparser/internal/domain/file"
	"resumeparser/internal/domain/history"
	"resumeparser/internal/domain/resume"
	"resumeparser/internal/llm"
	"resumeparser/internal/middleware"
	"resumeparser/internal/pdf"
	jwtsvc "resumeparser/internal/pkg/jwt"
	"resumeparser/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(db, j)
	authHandler := auth.NewHandler(authService)

	ledger := credits.NewService(db)
	recorder := history.NewRecorder(db)
	store := storage.NewDiskStore(cfg.UploadsBaseDir)

	textExtractor := pdf.NewExtractor(pdf.Config{OCREnabled: cfg.OCREnabled})
	resumeExtractor, err := llm.NewExtractor(llm.Config{
		APIKey:     cfg.OpenAIKey,
		Model:      cfg.OpenAIModel,
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
		RetryDelay: cfg.LLMRetryDelay,
	})
	if err != nil {
		log.Fatal(err)
	}

	queue := file.NewQueue(cfg.QueueSize)
	fileService := file.NewService(
		file.NewRepository(db),
		resume.NewRepository(db),
		recorder,
		ledger,
		textExtractor,
		resumeExtractor,
		store,
		queue,
	)
	queue.Start(cfg.Workers, fileService.Process)
	fileHandler := file.NewHandler(fileService)

	r := gin.Default()

	api := r.Group("/api")
	{
		// public
		auth.RegisterRoutes(api, authHandler)

		// protected
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			file.RegisterRoutes(protected, fileHandler)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
