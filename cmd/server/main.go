package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"adalyze/internal/analysis"
	"adalyze/internal/analysis/rules"
	"adalyze/internal/analysis/tools"
	"adalyze/internal/auth"
	"adalyze/internal/config"
	"adalyze/internal/handler"
	"adalyze/internal/middleware"
	"adalyze/internal/repository/postgres"
	"adalyze/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.Debug {
		logFile, err := config.SetupLogFile("logs", 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	analysisRepo := postgres.NewAnalysisRepository(repoConfig)

	// Load embedded rulesets (platform limits, compliance phrases)
	ruleRegistry, err := rules.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load rulesets: %v", err)
	}
	logger.Info("rulesets loaded",
		"platforms", ruleRegistry.PlatformCount(),
		"compliance_categories", ruleRegistry.CategoryCount(),
	)

	// Build the tool registry and register every analysis tool. Explicit
	// registration at startup: the available tool set never depends on
	// import order.
	toolRegistry := analysis.NewRegistry()
	if err := tools.RegisterAnalysisTools(toolRegistry, ruleRegistry, tools.DefaultToolConfig()); err != nil {
		log.Fatalf("Failed to register analysis tools: %v", err)
	}
	logger.Info("analysis tools registered", "tools", toolRegistry.IDs())

	orchestrator := analysis.NewOrchestrator(toolRegistry, logger, cfg.ToolTimeout)

	// Create services
	analysisService := service.NewAnalysisService(
		orchestrator,
		toolRegistry,
		analysisRepo,
		cfg.AnalysisListMax,
		logger,
	)

	// Create handlers
	analysisHandler := handler.NewAnalysisHandler(analysisService, logger)
	toolsHandler := handler.NewToolsHandler(toolRegistry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", toolsHandler.HealthCheck)

	// Analysis routes
	mux.HandleFunc("POST /api/analyses", analysisHandler.CreateAnalysis)
	mux.HandleFunc("GET /api/analyses", analysisHandler.ListAnalyses)
	mux.HandleFunc("GET /api/analyses/{id}", analysisHandler.GetAnalysis)

	// Tool introspection routes
	mux.HandleFunc("GET /api/tools", toolsHandler.ListTools)
	mux.HandleFunc("GET /api/tools/health", toolsHandler.ToolsHealth)

	// Build middleware chain (applied in reverse order, they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	var root http.Handler = mux
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
