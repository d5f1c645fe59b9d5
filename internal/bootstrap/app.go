package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/analyses"
	"careergenie-backend/internal/careerai"
	"careergenie-backend/internal/extraction"
	"careergenie-backend/internal/llm"
	"careergenie-backend/internal/llm/gemini"
	"careergenie-backend/internal/llm/vertex"
	"careergenie-backend/internal/profile"
	"careergenie-backend/internal/resumes"
	"careergenie-backend/internal/shared/auth"
	"careergenie-backend/internal/shared/config"
	"careergenie-backend/internal/shared/server"
	"careergenie-backend/internal/shared/server/middleware"
	"careergenie-backend/internal/shared/server/respond"
	"careergenie-backend/internal/shared/storage/db"
	"careergenie-backend/internal/shared/storage/object"
	localstore "careergenie-backend/internal/shared/storage/object/local"
	s3store "careergenie-backend/internal/shared/storage/object/s3"
	"careergenie-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Generator      llm.Generator
	Limiter        *middleware.RateLimiter
	ResumesRepo    resumes.ResumesRepo
	ProfileStore   profile.Store
	AnalysesRepo   analyses.Repo
	ResumesService *resumes.Service
	CareerService  *careerai.Service
	ResumesHandler *resumes.Handler
	CareerHandler  *careerai.Handler
	ProfileHandler *profile.Handler
	ProfileService *profile.Service
}

// Overrides replaces externally backed dependencies, mainly for tests.
type Overrides struct {
	Generator llm.Generator
	Verifier  middleware.TokenVerifier
	Now       func() time.Time
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Overrides{})
}

// BuildWith is Build with injected dependencies.
func BuildWith(cfg config.Config, ov Overrides) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.LLMProvider) == "" {
		cfg.LLMProvider = "none"
	}
	if cfg.AIRateWindowMS <= 0 {
		cfg.AIRateWindowMS = 60000
	}
	if cfg.AIRateMax <= 0 {
		cfg.AIRateMax = 15
	}
	if ov.Now == nil {
		ov.Now = time.Now
	}
	respond.ExposeDetails(cfg.IsDev())
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen := ov.Generator
	if gen == nil {
		gen, err = NewGenerator(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Store:     store,
		Generator: gen,
		Limiter:   middleware.NewRateLimiter(ov.Now),
	}
	buildServices(app, ov.Now)

	verifier := ov.Verifier
	if verifier == nil && cfg.FirebaseProjectID != "" {
		verifier = auth.NewVerifier(cfg.FirebaseProjectID)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		Verifier:       verifier,
		Limiter:        app.Limiter,
		ResumesHandler: app.ResumesHandler,
		CareerHandler:  app.CareerHandler,
		ProfileHandler: app.ProfileHandler,
	})

	return app, nil
}

// PruneLimiter drops expired rate windows every interval until ctx is done.
func (a *App) PruneLimiter(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Limiter.Prune()
		}
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDev() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDev() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		dir := cfg.LocalStoreDir
		if dir == "" {
			dir = "./data"
		}
		return localstore.New(dir), nil
	}
}

// NewGenerator builds the configured model client. In dev a client that
// cannot be built degrades to llm.Disabled unless REQUIRE_REAL_AI is set.
func NewGenerator(ctx context.Context, cfg config.Config) (llm.Generator, error) {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second

	var (
		gen llm.Generator
		err error
	)
	switch cfg.LLMProvider {
	case "vertex":
		var tokens *vertex.TokenCache
		tokens, err = vertex.NewDefaultTokenCache(ctx)
		if err == nil {
			gen, err = vertex.NewClient(vertex.Options{
				Project: cfg.GoogleProject,
				Region:  cfg.GoogleRegion,
				Model:   cfg.LLMModel,
				Timeout: timeout,
				Tokens:  tokens,
			})
		}
	case "gemini":
		gen, err = gemini.NewClient(ctx, gemini.Options{
			APIKey:   cfg.GeminiAPIKey,
			Project:  cfg.GoogleProject,
			Location: cfg.GoogleRegion,
			Model:    cfg.LLMModel,
		})
	default:
		return llm.Disabled{}, nil
	}
	if err != nil {
		if cfg.IsDev() && !cfg.RequireRealAI {
			telemetry.Warn("bootstrap.llm_disabled", map[string]any{"provider": cfg.LLMProvider, "error": err})
			return llm.Disabled{}, nil
		}
		return nil, fmt.Errorf("build %s client: %w", cfg.LLMProvider, err)
	}
	return gen, nil
}

func generateOptions(cfg config.Config) func(string) llm.GenerateOptions {
	return func(name string) llm.GenerateOptions {
		p := cfg.Profile(name)
		return llm.GenerateOptions{Temperature: p.Temperature, MaxOutputTokens: p.MaxOutputTokens}
	}
}

// NewPipeline wires the extraction pipeline for gen. A disabled generator is
// skipped unless the config demands real AI, in which case every parse fails.
func NewPipeline(cfg config.Config, gen llm.Generator, now func() time.Time) *extraction.Pipeline {
	extractOpts := generateOptions(cfg)("resume_extract")
	extractOpts.JSON = true

	_, disabled := gen.(llm.Disabled)
	return &extraction.Pipeline{
		LLM: llm.NewResumeExtractor(gen, extractOpts),
		Policy: extraction.Policy{
			UseLLM: !disabled || cfg.StrictAI(),
			Strict: cfg.StrictAI(),
		},
		Now: now,
	}
}

func buildServices(app *App, now func() time.Time) {
	cfg := app.Config

	if app.DB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.ProfileStore = &profile.PGStore{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.ProfileStore = profile.NewMemoryStore()
		app.AnalysesRepo = analyses.NewMemoryRepo()
	}

	opts := generateOptions(cfg)
	pipeline := NewPipeline(cfg, app.Generator, now)

	mirror := profile.NewMirror(app.ProfileStore)
	mirror.Now = now

	app.ResumesService = &resumes.Service{
		Extractor: pipeline,
		Store:     app.Store,
		Repo:      app.ResumesRepo,
		Profile:   mirror,
		Now:       now,
	}
	app.CareerService = &careerai.Service{
		Gen:      app.Generator,
		Options:  opts,
		Analyses: app.AnalysesRepo,
		Resumes:  app.ResumesService,
		Now:      now,
	}

	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.CareerHandler = careerai.NewHandler(app.CareerService, cfg.LLMProvider)
	app.ProfileService = profile.NewService(app.ProfileStore, app.ResumesService)
	app.ProfileService.Now = now
	app.ProfileHandler = profile.NewHandler(app.ProfileService)
}
