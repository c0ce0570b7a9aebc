// Entry point for the utility web service: static SPA, analytics ingestion
// and stats API, developer tool endpoints, optional MCP stdio exposure.
package main

import (
	"context"
	"embed"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/diptamh/utility/analytics"
	"github.com/diptamh/utility/dbopen"
	"github.com/diptamh/utility/shield"
	"github.com/diptamh/utility/tools"
)

//go:embed static
var staticFS embed.FS

const trackLimit = 60 // requests per minute per client IP on /api/track

func main() {
	port := env("PORT", "8080")
	dbPath := env("DB_PATH", "data/analytics.db")
	statsPassword := env("STATS_PASSWORD", "admin")
	mcpTransport := env("MCP_TRANSPORT", "")
	logLevel := env("LOG_LEVEL", "info")

	// Logging.
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// View store.
	db, err := dbopen.Open(dbPath, dbopen.WithMkdirAll())
	if err != nil {
		slog.Error("open db", "path", dbPath, "error", err)
		os.Exit(1)
	}
	views, err := analytics.New(analytics.Config{DB: db})
	if err != nil {
		slog.Error("analytics init", "error", err)
		os.Exit(1)
	}
	defer views.Close()

	toolsSvc := tools.New(logger)

	// Optional MCP stdio exposure of the text-transform tools. When enabled
	// the process serves MCP alongside HTTP; stdout stays reserved for the
	// protocol, so logs move to stderr.
	if mcpTransport == "stdio" {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
		slog.SetDefault(logger)
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "utility",
			Version: "1.0.0",
		}, nil)
		toolsSvc.RegisterMCP(mcpSrv)
		go func() {
			slog.Info("MCP stdio starting")
			if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				slog.Error("MCP stdio", "error", err)
			}
		}()
	}

	// Router.
	r := chi.NewRouter()
	for _, mw := range shield.Stack() {
		r.Use(mw)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	tracker := analytics.NewHandler(views, statsPassword, logger)
	r.Route("/api", func(r chi.Router) {
		r.With(shield.WriteLimiter(trackLimit, time.Minute)).Post("/track", tracker.Track)
		r.Get("/stats", tracker.Stats)
		r.Route("/tools", toolsSvc.Register)
	})

	// SPA: index.html at the root, assets under /static/, and any unknown
	// non-API path falls back to the shell so client-side routes deep-link.
	serveIndex := func(w http.ResponseWriter, _ *http.Request) {
		f, err := staticFS.Open("static/index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.Copy(w, f)
	}
	r.Get("/", serveIndex)
	r.Handle("/static/*", http.FileServerFS(staticFS))
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet && !strings.HasPrefix(req.URL.Path, "/api/") {
			serveIndex(w, req)
			return
		}
		http.NotFound(w, req)
	})

	// HTTP server.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port, "db", dbPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
