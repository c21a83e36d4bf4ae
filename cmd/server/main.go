package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/drawdeck/drawdeck/backend-go/internal/asset"
	"github.com/drawdeck/drawdeck/backend-go/internal/auth"
	"github.com/drawdeck/drawdeck/backend-go/internal/config"
	"github.com/drawdeck/drawdeck/backend-go/internal/document"
	"github.com/drawdeck/drawdeck/backend-go/internal/editor"
	"github.com/drawdeck/drawdeck/backend-go/internal/export"
	mw "github.com/drawdeck/drawdeck/backend-go/internal/middleware"
	"github.com/drawdeck/drawdeck/backend-go/internal/session"
	"github.com/drawdeck/drawdeck/backend-go/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool)
	if err := st.Migrate(ctx); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(st, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	docService := document.NewService(st)
	docHandler := document.NewHandler(docService)

	assetHandler := asset.NewHandler(cfg.AssetDir)
	exportHandler := export.NewHandler(docService)

	origins := strings.Split(cfg.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	sessions := session.NewManager(
		docService.LoadLatest,
		docService.SaveSnapshot,
		editor.GridSnapper(cfg.GridSize),
		cfg.TickRate,
		origins,
	)

	r := mux.NewRouter()

	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Asset endpoints
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/documents", docHandler.List).Methods("GET")
	api.HandleFunc("/documents", docHandler.Create).Methods("POST")
	api.HandleFunc("/documents/{documentId}", docHandler.Get).Methods("GET")
	api.HandleFunc("/documents/{documentId}", docHandler.Delete).Methods("DELETE")
	api.HandleFunc("/documents/{documentId}/snapshots/latest", docHandler.GetLatestSnapshot).Methods("GET")
	api.HandleFunc("/documents/{documentId}/export/svg", exportHandler.ExportSVG).Methods("GET")

	// WebSocket endpoint (token via query param, ownership checked before upgrade)
	r.HandleFunc("/ws/document/{documentId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, sessions, authService, docService)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		// Close sessions first so every open document gets a final snapshot.
		sessions.Shutdown(shutdownCtx)
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, sessions *session.Manager, authSvc *auth.Service, docs *document.Service) {
	docID := mux.Vars(r)["documentId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	ok, err := docs.IsOwner(r.Context(), docID, userID)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if !ok {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := sessions.Join(w, r, docID, userID); err != nil {
		slog.Error("websocket join failed", "error", err, "document", docID)
	}
}
