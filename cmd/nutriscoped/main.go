// Command nutriscoped is the hosted NutriScope service.
// It serves the scoring REST API and a health check, backed by Postgres
// and pluggable blob storage.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/nutriscope/nutriscope/internal/api"
	"github.com/nutriscope/nutriscope/internal/catalog"
	"github.com/nutriscope/nutriscope/internal/ingestion"
	"github.com/nutriscope/nutriscope/internal/platform"
	"github.com/nutriscope/nutriscope/pkg/dataset"
	"github.com/nutriscope/nutriscope/pkg/scoring"
)

type config struct {
	Port        string
	DatabaseURL string
	APIKey      string
	GCSBucket   string
	S3Bucket    string
}

func loadConfig() config {
	return config{
		Port:        envOrDefault("PORT", "8080"),
		DatabaseURL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/nutriscope?sslmode=disable"),
		APIKey:      os.Getenv("API_KEY"),
		GCSBucket:   os.Getenv("GCS_BUCKET"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
	}
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	storage, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("configure storage: %v", err)
	}

	catalogSvc := catalog.NewService(db)
	engine := scoring.NewEngine(scoring.DefaultReferenceIntakes())
	ingestionSvc := ingestion.NewService(catalogSvc, storage, engine, dataset.DefaultColumns())

	handler := api.NewHandler(db, catalogSvc, ingestionSvc, nil)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, api.APIKeyAuth(cfg.APIKey))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.CORS(mux),
	}

	// Graceful shutdown
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting nutriscoped on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-runCtx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildStorage selects a blob storage backend from the environment:
// GCS when GCS_BUCKET is set, S3 when S3_BUCKET is set, local otherwise.
func buildStorage(ctx context.Context, cfg config) (ingestion.StorageClient, error) {
	if cfg.GCSBucket != "" {
		return ingestion.NewGCSStorage(ctx, cfg.GCSBucket)
	}
	if cfg.S3Bucket != "" {
		return ingestion.NewS3Storage(ctx, ingestion.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    os.Getenv("S3_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		})
	}
	return ingestion.NewLocalStorage(envOrDefault("LOCAL_STORAGE_PATH", "/tmp/nutriscope-data")), nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
