package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BeanieMen/Wikichu/internal/handler"
)

const shutdownTimeout = 10 * time.Second

func NewRouter(h *handler.Handler) chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// StartHTTPServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func StartHTTPServer(srv *http.Server) {
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
