package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"wealthfolio/internal/ai"
	"wealthfolio/internal/config"
	"wealthfolio/internal/database"
	"wealthfolio/internal/handlers"
	"wealthfolio/internal/ingest"
	"wealthfolio/internal/middleware"
	"wealthfolio/internal/repository"
	"wealthfolio/internal/secrets"
	"wealthfolio/internal/services"
	"wealthfolio/internal/storage"
)

// App holds the application dependencies.
type App struct {
	config           *config.Config
	db               *database.DB
	router           *chi.Mux
	portfolioHandler *handlers.PortfolioHandler
	historyHandler   *handlers.HistoryHandler
	analysisHandler  *handlers.AnalysisHandler
	invoiceHandler   *handlers.InvoiceHandler
	settingsHandler  *handlers.SettingsHandler
}

func main() {
	// Load .env if present; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.New()

	// Initialize database
	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	encryptor, err := secrets.NewEncryptor(cfg.EncryptionSecret)
	if err != nil {
		log.Fatalf("Invalid encryption secret: %v", err)
	}

	// Create repositories
	backend := storage.NewSQLite(db)
	portfolioRepo := repository.NewPortfolioRepository(backend)
	historyRepo := repository.NewHistoryRepository(backend)
	invoiceRepo := repository.NewInvoiceRepository(backend)
	settingsRepo := repository.NewSettingsRepository(backend, encryptor)

	// The Gemini key is resolved per call: the environment wins, then the
	// key saved through the settings endpoint.
	keyFn := func() string {
		if cfg.GeminiAPIKey != "" {
			return cfg.GeminiAPIKey
		}
		return settingsRepo.APIKey()
	}
	aiClient := ai.NewClient(cfg.GeminiModel, keyFn)
	advisor := ai.NewAdvisor(aiClient)
	extractor := ai.NewExtractor(aiClient)

	// Create services
	invoiceService := services.NewInvoiceService(extractor, invoiceRepo)

	// Create handlers
	fetcher := &ingest.SheetFetcher{Client: &http.Client{Timeout: 30 * time.Second}}
	portfolioHandler := handlers.NewPortfolioHandler(portfolioRepo, fetcher)
	historyHandler := handlers.NewHistoryHandler(historyRepo, portfolioRepo)
	analysisHandler := handlers.NewAnalysisHandler(portfolioRepo, advisor)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, invoiceRepo, settingsRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)

	// Create application
	app := &App{
		config:           cfg,
		db:               db,
		portfolioHandler: portfolioHandler,
		historyHandler:   historyHandler,
		analysisHandler:  analysisHandler,
		invoiceHandler:   invoiceHandler,
		settingsHandler:  settingsHandler,
	}

	// Setup router
	app.setupRouter()

	// Create server
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      app.router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://%s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func (app *App) setupRouter() {
	r := chi.NewRouter()

	// Chi middleware (aliased as chimw to avoid conflict with our middleware package)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Compress(5))

	// Security headers for all responses
	r.Use(middleware.SecurityHeaders)

	// Health check
	r.Get("/health", app.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Endpoints that parse workbooks or call the AI model get a
		// stricter limit.
		r.Group(func(r chi.Router) {
			r.Use(middleware.LimitExpensive)
			r.Post("/portfolio/upload", app.portfolioHandler.Upload)
			r.Post("/portfolio/sheet", app.portfolioHandler.ImportSheet)
			r.Post("/portfolio/analysis", app.analysisHandler.Analyze)
			r.Post("/invoices/process", app.invoiceHandler.Process)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.LimitAPI)

			r.Get("/portfolio", app.portfolioHandler.Get)
			r.Delete("/portfolio", app.portfolioHandler.Reset)
			r.Get("/portfolio/template", app.portfolioHandler.Template)

			r.Get("/portfolio/history", app.historyHandler.Get)
			r.Post("/portfolio/history", app.historyHandler.Record)
			r.Delete("/portfolio/history", app.historyHandler.Clear)

			r.Get("/invoices", app.invoiceHandler.List)
			r.Get("/invoices/stats", app.invoiceHandler.Stats)
			r.Get("/invoices/export", app.invoiceHandler.Export)
			r.Put("/invoices/{id}", app.invoiceHandler.Update)
			r.Delete("/invoices/{id}", app.invoiceHandler.Delete)
			r.Get("/invoices/{id}/qr", app.invoiceHandler.QR)

			r.Get("/settings", app.settingsHandler.Get)
			r.Put("/settings", app.settingsHandler.Update)
		})
	})

	app.router = r
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := app.db.Ping(); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
