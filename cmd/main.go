package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/orderbridge/wa-invoice-bridge/internal/ai"
	"github.com/orderbridge/wa-invoice-bridge/internal/config"
	"github.com/orderbridge/wa-invoice-bridge/internal/invoice"
	"github.com/orderbridge/wa-invoice-bridge/internal/order"
	"github.com/orderbridge/wa-invoice-bridge/internal/whatsapp"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// --- Catalog ---
	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("catalog error: %v", err)
	}
	log.Printf("catalog loaded: %d products", catalog.Len())

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// --- Order module wiring ---
	aiClient := ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	extractor := order.NewTextExtractor(aiClient)
	pricer := order.NewPricer(catalog)
	renderer, err := invoice.NewPDFRenderer(cfg.InvoiceDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("renderer error: %v", err)
	}
	notifier := whatsapp.NewOutbound(cfg.WhatsAppToken, cfg.WhatsAppPhoneID)
	svc := order.NewService(extractor, pricer, renderer, notifier)
	handler := whatsapp.NewHandler(svc, cfg.VerifyToken)

	whatsapp.RegisterRoutes(r, handler)

	// rendered invoices, linked from the WhatsApp reply
	fs := http.StripPrefix("/invoices/", http.FileServer(http.Dir(cfg.InvoiceDir)))
	r.Get("/invoices/*", fs.ServeHTTP)

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	log.Printf("listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// loadCatalog picks the price-list source: Postgres when DATABASE_URL is
// set, a JSON file when CATALOG_PATH is set, the built-in list otherwise.
// Whatever the source, the result is the same immutable in-memory table.
func loadCatalog(cfg *config.Config) (*order.Catalog, error) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return nil, err
		}
		return order.LoadCatalogDB(ctx, db)

	case cfg.CatalogPath != "":
		return order.LoadCatalogFile(cfg.CatalogPath)

	default:
		return order.DefaultCatalog(), nil
	}
}
