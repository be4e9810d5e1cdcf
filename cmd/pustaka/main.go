package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/ai"
	"github.com/pustaka-ai/pustaka/internal/chunker"
	"github.com/pustaka-ai/pustaka/internal/config"
	"github.com/pustaka-ai/pustaka/internal/db"
	"github.com/pustaka-ai/pustaka/internal/embedcache"
	"github.com/pustaka-ai/pustaka/internal/extract"
	"github.com/pustaka-ai/pustaka/internal/filestore"
	"github.com/pustaka-ai/pustaka/internal/handler"
	"github.com/pustaka-ai/pustaka/internal/ingest"
	"github.com/pustaka-ai/pustaka/internal/job"
	"github.com/pustaka-ai/pustaka/internal/middleware"
	"github.com/pustaka-ai/pustaka/internal/queryproc"
	"github.com/pustaka-ai/pustaka/internal/repo"
	"github.com/pustaka-ai/pustaka/internal/retrieval"
	"github.com/pustaka-ai/pustaka/internal/schedule"
	"github.com/pustaka-ai/pustaka/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "pustaka",
		Short: "pustaka backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run pustaka server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(conn)
	docRepo := repo.NewDocumentRepo(conn)
	chunkRepo := repo.NewChunkRepo(conn)
	convRepo := repo.NewConversationRepo(conn)
	cacheRepo := repo.NewEmbeddingCacheRepo(conn)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	answerer, err := buildGenerator(cfg.AI.Answerers)
	if err != nil {
		return fmt.Errorf("init answerers: %w", err)
	}
	questioner, err := buildGenerator(cfg.AI.Questioners)
	if err != nil {
		return fmt.Errorf("init questioners: %w", err)
	}
	embedder, err := buildEmbedder(cfg.AI.Embedders)
	if err != nil {
		return fmt.Errorf("init embedders: %w", err)
	}
	if embedder != nil {
		embedder = embedcache.WrapDBCacheToEmbedder(embedder, cacheRepo)
		embedder = embedcache.WrapLruCacheToEmbedder(embedder,
			cfg.AI.CacheSize, time.Duration(cfg.AI.CacheTTLMinutes)*time.Minute)
	}
	manager := ai.NewManager(answerer, questioner, embedder, ai.ManagerConfig{
		Timeout:       cfg.AI.TimeoutSeconds,
		MaxInputChars: cfg.AI.MaxInputChars,
	})

	extractors := map[string]extract.SectionSource{
		".md": extract.NewMarkdownExtractor(),
	}
	if cfg.Grobid.BaseURL != "" {
		extractors[".pdf"] = extract.NewGrobidExtractor(cfg.Grobid.BaseURL,
			time.Duration(cfg.Grobid.TimeoutSeconds)*time.Second)
	}

	smartChunker := chunker.NewSmartChunker(chunker.Config{
		MinChunkWords: cfg.Chunker.MinChunkWords,
		MaxChunkWords: cfg.Chunker.MaxChunkWords,
		MaxKeywords:   cfg.Chunker.MaxKeywords,
	})
	pipeline := ingest.NewPipeline(ingest.PipelineConfig{
		Extractors:    extractors,
		Chunker:       smartChunker,
		Embedder:      embedder,
		Questions:     manager,
		Documents:     docRepo,
		Chunks:        chunkRepo,
		Files:         store,
		QuestionCount: cfg.AI.QuestionCount,
		MaxKeywords:   cfg.Chunker.MaxKeywords,
	})

	processor := queryproc.NewProcessor(cfg.Chunker.MaxKeywords)
	ranker := retrieval.NewRanker(queryEmbedder{manager: manager}, chunkRepo, retrieval.Config{
		Threshold:      cfg.Retrieval.Threshold,
		Limit:          cfg.Retrieval.Limit,
		MaxPerDocument: cfg.Retrieval.MaxPerDocument,
		PoolSize:       cfg.Retrieval.PoolSize,
		KeywordWeight:  cfg.Retrieval.KeywordWeight,
	})

	searchService := service.NewSearchService(processor, ranker)
	chatService := service.NewChatService(searchService, manager, convRepo)
	documentService := service.NewDocumentService(docRepo, chunkRepo, store)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret),
		time.Hour*time.Duration(cfg.JWTTTLHours))

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Documents:     handler.NewDocumentHandler(documentService),
		Search:        handler.NewSearchHandler(searchService),
		Chat:          handler.NewChatHandler(chatService),
		JWTSecret:     []byte(cfg.JWTSecret),
		ChatRateLimit: time.Duration(cfg.ChatRateLimitSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSAllow),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewDocumentIngestJob(docRepo, pipeline, cfg.Jobs.IngestBatch), cfg.Jobs.IngestCron); err != nil {
		return fmt.Errorf("schedule ingest job: %w", err)
	}
	if err := scheduler.AddJob(job.NewEmbeddingCacheCleanupJob(cacheRepo, cfg.Jobs.CacheTTLDays), cfg.Jobs.CacheCleanupCron); err != nil {
		return fmt.Errorf("schedule cache cleanup job: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening",
		zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

func buildGenerator(items []config.AIProviderConfig) (ai.IGenerator, error) {
	entries := make([]ai.GeneratorEntry, 0, len(items))
	for _, item := range items {
		provider, err := ai.NewProvider(item.Provider, item.Args)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", item.Provider, err)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      item.Provider + "/" + item.Model,
			Generator: ai.NewGenerator(provider, item.Model),
		})
	}
	return ai.NewGroupGenerator(entries), nil
}

func buildEmbedder(items []config.AIProviderConfig) (ai.IEmbedder, error) {
	entries := make([]ai.EmbedderEntry, 0, len(items))
	for _, item := range items {
		provider, err := ai.NewEmbedProvider(item.Provider, item.Args)
		if err != nil {
			return nil, fmt.Errorf("embed provider %s: %w", item.Provider, err)
		}
		entries = append(entries, ai.EmbedderEntry{
			Name:     item.Provider + "/" + item.Model,
			Embedder: ai.NewEmbedder(provider, item.Model),
		})
	}
	return ai.NewGroupEmbedder(entries), nil
}

// queryEmbedder narrows the manager to the query-side embedding the
// ranker needs.
type queryEmbedder struct {
	manager *ai.Manager
}

func (q queryEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return q.manager.Embed(ctx, text, "RETRIEVAL_QUERY")
}
