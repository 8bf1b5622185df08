package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inkboard/inkboard/backend-go/internal/auth"
	"github.com/inkboard/inkboard/backend-go/internal/config"
	"github.com/inkboard/inkboard/backend-go/internal/db"
	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/editor"
	mw "github.com/inkboard/inkboard/backend-go/internal/middleware"
	"github.com/inkboard/inkboard/backend-go/internal/session"
)

const defaultDocumentID = "doc_playground"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The snapshot store is optional: without DATABASE_URL the editor
	// runs in-memory only.
	var snapshots *db.SnapshotStore
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		snapshots = db.NewSnapshotStore(pool)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			slog.Error("ensure schema", "error", err)
			os.Exit(1)
		}
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.EditorPasswordHash)
	authHandler := auth.NewHandler(authService)

	state := editor.NewState(loadDocument(ctx, snapshots))

	r := mux.NewRouter()

	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/document", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		doc := state.Document()
		fmt.Fprintf(w, `{"id":%q,"version":%d}`, doc.ID, doc.Version)
	}).Methods("GET")

	allowedOrigins := strings.Split(cfg.AllowedOrigins, ",")
	r.HandleFunc("/ws/editor", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, state, authService, snapshots, allowedOrigins)
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
		saveDocument(state, snapshots)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func loadDocument(ctx context.Context, snapshots *db.SnapshotStore) *document.Document {
	if snapshots != nil {
		doc, err := snapshots.Latest(ctx, defaultDocumentID)
		if err == nil {
			slog.Info("loaded document snapshot", "document", doc.ID, "version", doc.Version)
			return doc
		}
		if !errors.Is(err, db.ErrNoSnapshot) {
			slog.Error("load snapshot", "error", err)
		}
	}
	return document.NewSampleDocument(defaultDocumentID)
}

func saveDocument(state *editor.State, snapshots *db.SnapshotStore) {
	if snapshots == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := snapshots.Save(saveCtx, state.Document()); err != nil {
		slog.Error("save snapshot", "error", err)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, state *editor.State, authSvc *auth.Service, snapshots *db.SnapshotStore, allowedOrigins []string) {
	if !authSvc.Open() {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		if _, err := authSvc.ValidateToken(token); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: allowedOrigins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	sessionID := "sess-" + uuid.New().String()[:8]
	sess := session.New(sessionID, conn, state)

	slog.Info("editor connected", "session", sessionID)

	go sess.WritePump(r.Context())
	sess.ReadPump(r.Context())

	slog.Info("editor disconnected", "session", sessionID)
	saveDocument(state, snapshots)
}
