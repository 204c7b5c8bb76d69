package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abhinavsaxena2308/codegen/internal/config"
	"github.com/abhinavsaxena2308/codegen/internal/gen"
	"github.com/abhinavsaxena2308/codegen/internal/store"
)

// NewServer creates and configures the HTTP server for the CodeGen REST API.
func NewServer(svc *gen.Service, st *store.Store, cfg *config.Config, version, bind string, port int) *http.Server {
	h := &Handlers{
		svc:     svc,
		store:   st,
		maxBody: cfg.MaxBodyBytes,
		version: version,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("POST /generate", h.HandleGenerate)
	mux.HandleFunc("GET /preview/{id}", h.HandlePreview)
	mux.HandleFunc("GET /history", h.HandleHistory)
	mux.HandleFunc("GET /languages", h.HandleLanguages)
	mux.HandleFunc("GET /health", h.HandleHealth)

	handler := securityHeaders(rateLimit(cfg.RatePerMinute, mux))

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
// Previews are meant to be iframed by the consuming page, so framing is
// allowed for the same origin only rather than denied outright.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'self'")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("CodeGen backend listening at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
