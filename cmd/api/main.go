package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/Lelo88/produtos-api-golang/internal/config"
	"github.com/Lelo88/produtos-api-golang/internal/db"
	"github.com/Lelo88/produtos-api-golang/internal/health"
	"github.com/Lelo88/produtos-api-golang/internal/httpx"
	"github.com/Lelo88/produtos-api-golang/internal/produtos"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("server stopped")
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// La conexión se establece en segundo plano: el server arranca igual
	// y responde 503 hasta que haya pool.
	connector := db.NewConnector(cfg.DatabaseURL())
	defer connector.Close()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(cfg, connector),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return connector.Run(gCtx)
	})

	g.Go(func() error {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	// Apagado prolijo al recibir la señal.
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newRouter arma el router completo: middlewares base, CORS con la lista
// fija de orígenes, endpoints de salud y el recurso produtos detrás del
// gate de readiness.
func newRouter(cfg config.Config, connector *db.Connector) http.Handler {
	router := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(10 * time.Second))

	// Requests sin header Origin pasan siempre; con Origin, solo la lista fija.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	// Errores de routing se manejan a nivel router.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, http.StatusNotFound, "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	healthHandler := health.New(connector)
	router.Get("/", healthHandler.Live)
	router.Get("/ready", healthHandler.Ready)

	repository := produtos.NewRepository(connector)
	service := produtos.NewService(repository)
	handler := produtos.NewHandler(service)

	router.Group(func(group chi.Router) {
		group.Use(health.RequireReady(connector))
		produtos.RegisterRoutes(group, handler)
	})

	return router
}
