package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/portrait/config"
	"github.com/adrianliechti/portrait/pkg/auth"
	"github.com/adrianliechti/portrait/pkg/otel"
	"github.com/adrianliechti/portrait/server/api"
	"github.com/adrianliechti/portrait/server/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config
	http.Handler

	api *api.Handler
	web *web.Handler
}

func New(cfg *config.Config) (*Server, error) {
	apiHandler, err := api.New(cfg.Portrait())

	if err != nil {
		return nil, err
	}

	webHandler, err := web.New()

	if err != nil {
		return nil, err
	}

	s := &Server{
		Config: cfg,

		api: apiHandler,
		web: webHandler,
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.web.Attach(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.handleAuth)

		s.api.Attach(r)
	})

	s.Handler = r

	if otel.EnableTelemetry {
		s.Handler = otelhttp.NewHandler(r, "http")
	}

	return s, nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s.Handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server listening", "address", s.Address, "configured", s.Renderer() != nil)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := auth.Authenticate(r.Context(), r, s.Authorizers...)

		if err != nil {
			slog.WarnContext(r.Context(), "unauthorized request", "path", r.URL.Path, "error", err)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)

			json.NewEncoder(w).Encode(api.ErrorResponse{
				Error: http.StatusText(http.StatusUnauthorized),
			})

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
