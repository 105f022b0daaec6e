package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/mermend/mermend/pkg/config"
	"github.com/mermend/mermend/pkg/errors"
	"github.com/mermend/mermend/pkg/history"
	"github.com/mermend/mermend/pkg/observability"
	"github.com/mermend/mermend/pkg/pipeline"
)

// newServeCmd creates the serve command.
func newServeCmd(cfgPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview server",
		Long: `Run the preview server.

The server accepts diagram text on POST /render, renders it through the
tiered pipeline, and retains the newest result for GET /latest. Requests are
sequenced so a slow render finishing late never replaces a newer one. Every
render is appended to the configured history backend.

Endpoints:
  POST /render        render diagram text, returns the stored record
  GET  /latest        the most recent rendered markup
  GET  /history       recent render records, newest first
  GET  /history/{id}  one render record
  GET  /healthz       liveness check`,
		Example: `  # Serve on the configured address (default :8080)
  mermend serve

  # Serve on a specific port
  mermend serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := newRunner(ctx, cfg, logger, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			store, err := newHistoryStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			srv := &previewServer{
				runner: runner,
				store:  store,
				latest: &pipeline.Latest{},
				logger: logger,
				limit:  cfg.History.Limit,
			}
			return srv.listen(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// newHistoryStore constructs the configured history backend.
func newHistoryStore(ctx context.Context, cfg config.Config, logger *log.Logger) (history.Store, error) {
	if cfg.History.Backend == config.HistoryBackendMongo {
		logger.Debug("using mongo history", "uri", cfg.History.MongoURI, "database", cfg.History.Database)
		return history.NewMongoStore(ctx, cfg.History.MongoURI, cfg.History.Database)
	}
	return history.NewMemoryStore(cfg.History.Limit), nil
}

// previewServer holds the shared state behind the HTTP handlers.
type previewServer struct {
	runner *pipeline.Runner
	store  history.Store
	latest *pipeline.Latest
	logger *log.Logger
	limit  int
}

// listen serves until ctx is cancelled or an interrupt arrives.
func (s *previewServer) listen(ctx context.Context, addr string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// routes builds the chi router.
func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(hookMiddleware)

	r.Post("/render", s.handleRender)
	r.Get("/latest", s.handleLatest)
	r.Get("/history", s.handleHistory)
	r.Get("/history/{id}", s.handleHistoryRecord)
	r.Get("/healthz", s.handleHealthz)
	return r
}

// hookMiddleware reports request and response events to the registered HTTP hooks.
func hookMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// renderRequest is the POST /render body.
type renderRequest struct {
	Text       string `json:"text"`
	Title      string `json:"title,omitempty"`
	Synthesize bool   `json:"synthesize,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`
}

func (s *previewServer) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Claim a sequence number before rendering so late completions of older
	// requests cannot replace this result.
	seq := s.latest.Next()

	result, err := s.runner.SanitizeAndRender(r.Context(), req.Text, pipeline.Options{
		Title:      req.Title,
		Synthesize: req.Synthesize,
		Refresh:    req.Refresh,
		Logger:     s.logger,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.latest.Offer(seq, result)

	rec := history.NewRecord(result)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.logger.Error("save history record", "id", rec.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *previewServer) handleLatest(w http.ResponseWriter, r *http.Request) {
	result, ok := s.latest.Get()
	if !ok {
		writeError(w, http.StatusNotFound, "nothing rendered yet")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Markup)
}

func (s *previewServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context(), s.limit)
	if err != nil {
		s.logger.Error("list history", "error", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *previewServer) handleHistoryRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, errors.ErrCodeNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.logger.Error("get history record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *previewServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
