package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/gin-gonic/gin"

	"docai-backend/internal/docai"
	"docai-backend/internal/process"
	"docai-backend/internal/services/health"
	"docai-backend/internal/shared/config"
	"docai-backend/internal/shared/server"
	"docai-backend/internal/shared/storage/object"
	gcsstore "docai-backend/internal/shared/storage/object/gcs"
	localstore "docai-backend/internal/shared/storage/object/local"
	s3store "docai-backend/internal/shared/storage/object/s3"
	"docai-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Objects        *object.Resolver
	Processor      docai.Processor
	ProcessService *process.Service
	ProcessHandler *process.Handler

	closers []io.Closer
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	app := &App{Config: cfg}

	resolver, err := app.buildFetchers(ctx, cfg)
	if err != nil {
		return nil, err
	}

	processor, err := app.buildProcessor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &process.Service{
		Objects:   resolver,
		Processor: process.NewRetryingProcessor(processor),
		Timeout:   cfg.UpstreamTimeout,
	}
	if cfg.FormProcessorID != "" {
		svc.FormProcessor = docai.ProcessorName(cfg.GCPProjectID, cfg.DocAILocation, cfg.FormProcessorID)
	}
	if cfg.BankProcessorID != "" {
		svc.BankProcessor = docai.ProcessorName(cfg.GCPProjectID, cfg.DocAILocation, cfg.BankProcessorID)
	}

	app.Objects = resolver
	app.Processor = processor
	app.ProcessService = svc
	app.ProcessHandler = process.NewHandler(svc)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		Health:         health.NewService(),
		ProcessHandler: app.ProcessHandler,
	})

	return app, nil
}

// Close releases clients held by the app.
func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}

func (a *App) buildFetchers(ctx context.Context, cfg config.Config) (*object.Resolver, error) {
	fetchers := map[string]object.Fetcher{}

	if cfg.LocalStoreDir != "" {
		fetchers["file"] = localstore.New(cfg.LocalStoreDir)
	}

	gcs, err := gcsstore.New(ctx)
	if err != nil {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		log.Printf("bootstrap: gcs fetcher unavailable, gs:// paths disabled: %v", err)
	} else {
		fetchers["gs"] = gcs
		a.closers = append(a.closers, gcs)
	}

	s3, err := s3store.New(ctx, cfg.AWSRegion)
	if err != nil {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		log.Printf("bootstrap: s3 fetcher unavailable, s3:// paths disabled: %v", err)
	} else {
		fetchers["s3"] = s3
	}

	return object.NewResolver(fetchers), nil
}

func (a *App) buildProcessor(ctx context.Context, cfg config.Config) (docai.Processor, error) {
	if cfg.GCPProjectID == "" {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("bootstrap: GCP_PROJECT_ID is required")
		}
		log.Printf("bootstrap: GCP_PROJECT_ID empty; using placeholder processor")
		return placeholderProcessor{}, nil
	}

	client, err := docai.NewClient(ctx, cfg.DocAILocation)
	if err != nil {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		log.Printf("bootstrap: document ai client unavailable; using placeholder processor: %v", err)
		return placeholderProcessor{}, nil
	}

	a.closers = append(a.closers, client)
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type placeholderProcessor struct{}

func (placeholderProcessor) Process(ctx context.Context, processorName string, content []byte, mimeType string) (*documentaipb.Document, error) {
	_ = ctx
	_ = processorName
	_ = content
	_ = mimeType
	return nil, errors.New("document ai client not configured")
}
