package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"summarizer-backend/internal/ai"
	"summarizer-backend/internal/cache"
	"summarizer-backend/internal/documents"
	"summarizer-backend/internal/progress"
	"summarizer-backend/internal/shared/config"
	"summarizer-backend/internal/shared/server"
	"summarizer-backend/internal/shared/storage/db"
	"summarizer-backend/internal/shared/storage/object"
	localstore "summarizer-backend/internal/shared/storage/object/local"
	s3store "summarizer-backend/internal/shared/storage/object/s3"
	"summarizer-backend/internal/summaries"
)

// App holds the wired dependency graph.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Cache            *cache.Cache
	Notifier         *progress.Notifier
	AI               *ai.Client
	DocumentsRepo    documents.DocumentsRepo
	SummariesRepo    summaries.Repo
	DocumentsService *documents.Service
	SummariesService *summaries.Service
	DocumentsHandler *documents.Handler
	SummariesHandler *summaries.Handler
	ProgressHandler  *progress.Handler
}

// Build prepares the dependency graph and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Cache:    cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
		Notifier: progress.NewNotifier(),
		AI:       ai.NewClient(cfg.AIServiceURL, cfg.AIModel, cfg.AITimeout),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		SummaryHandler:  app.SummariesHandler,
		ProgressHandler: app.ProgressHandler,
	})

	return app, nil
}

// Close releases long-lived resources.
func (a *App) Close() {
	if a.Notifier != nil {
		a.Notifier.Shutdown()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var docRepo documents.DocumentsRepo
	var summaryRepo summaries.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		summaryRepo = &summaries.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		summaryRepo = summaries.NewMemoryRepo()
	}

	docSvc := &documents.Service{
		Store:     app.Store,
		Repo:      docRepo,
		Cache:     app.Cache,
		Summaries: summaryRepo,
		MaxBytes:  app.Config.MaxUploadBytes,
	}

	summarySvc := &summaries.Service{
		Repo:     summaryRepo,
		DocRepo:  docRepo,
		AI:       app.AI,
		Cache:    app.Cache,
		Notifier: app.Notifier,
	}

	app.DocumentsRepo = docRepo
	app.SummariesRepo = summaryRepo
	app.DocumentsService = docSvc
	app.SummariesService = summarySvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.SummariesHandler = summaries.NewHandler(summarySvc, app.AI)
	app.ProgressHandler = progress.NewHandler(app.Notifier)
}
