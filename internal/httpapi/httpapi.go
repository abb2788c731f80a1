package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/TemirB/merchant-orders-sync/internal/application/service"
	"github.com/TemirB/merchant-orders-sync/internal/domain"
	"github.com/TemirB/merchant-orders-sync/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type Service interface {
	EnsureAuthenticated(ctx context.Context) error
	StartPolling(ctx context.Context) error
	StopPolling()
	PollingActive() bool
	ListOrders() []domain.OrderRecord
	GetOrder(ctx context.Context, orderID string) (service.Lookup, service.LookupStats, error)
	ForceFetch(ctx context.Context, orderID string) (domain.OrderRecord, error)
	Confirm(ctx context.Context, orderID string) error
	StartPreparation(ctx context.Context, orderID string) error
	ReadyToPickup(ctx context.Context, orderID string) error
	Dispatch(ctx context.Context, orderID string) error
	RequestCancellation(ctx context.Context, orderID, code string) error
	Tracking(ctx context.Context, orderID string) (*domain.TrackingInfo, error)
	Dashboard() service.Dashboard
}

type Server struct {
	service    Service
	router     chi.Router
	logger     *zap.Logger
	metrics    observability.Metrics
	corsOrigin string
}

// New builds the operator API. metricsHandler is mounted on /metrics when not nil.
func New(service Service, corsOrigin string, metricsHandler http.Handler, logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		service:    service,
		router:     chi.NewRouter(),
		logger:     logger,
		metrics:    metrics,
		corsOrigin: corsOrigin,
	}
	s.routes(metricsHandler)
	return s
}

func (s *Server) routes(metricsHandler http.Handler) {
	r := s.router
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
		CORS(s.corsOrigin),
	)

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/stop-polling", s.stopPolling)
		r.Get("/orders", s.listOrders)
		r.Get("/orders/{orderId}", s.getOrder)
		r.Get("/dashboard", s.dashboard)

		r.Group(func(r chi.Router) {
			r.Use(s.ensureAuthenticated)
			r.Get("/start-polling", s.startPolling)
			r.Get("/force-fetch-order/{orderId}", s.forceFetch)
			r.Get("/orders/{orderId}/tracking", s.tracking)
			r.Post("/orders/{orderId}/confirm", s.action(s.service.Confirm))
			r.Post("/orders/{orderId}/start-preparation", s.action(s.service.StartPreparation))
			r.Post("/orders/{orderId}/ready", s.action(s.service.ReadyToPickup))
			r.Post("/orders/{orderId}/dispatch", s.action(s.service.Dispatch))
			r.Post("/orders/{orderId}/cancel", s.cancel)
		})
	})
}

func (s *Server) ensureAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.service.EnsureAuthenticated(r.Context()); err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated with the merchant platform")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"polling": s.service.PollingActive(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) startPolling(w http.ResponseWriter, r *http.Request) {
	if err := s.service.StartPolling(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "polling started"})
}

func (s *Server) stopPolling(w http.ResponseWriter, _ *http.Request) {
	s.service.StopPolling()
	writeJSON(w, http.StatusOK, map[string]string{"message": "polling stopped"})
}

func (s *Server) listOrders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListOrders())
}

func (s *Server) dashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Dashboard())
}

// getOrder is open: tracked orders stay readable without a credential, only
// the remote fallback needs one and then fails with 401.
func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	res, st, err := s.service.GetOrder(r.Context(), orderID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeLookupHeaders(w, st)

	if res.Record != nil {
		writeJSON(w, http.StatusOK, res.Record)
		return
	}
	writeJSON(w, http.StatusOK, res.Detail)
}

func (s *Server) forceFetch(w http.ResponseWriter, r *http.Request) {
	rec, err := s.service.ForceFetch(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) tracking(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.Tracking(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) action(call func(context.Context, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderId")
		if err := call(r.Context(), orderID); err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "orderId": orderID})
	}
}

type cancelRequest struct {
	CancellationCode string `json:"cancellationCode"`
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Debug("bad cancel body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.CancellationCode) == "" {
		writeError(w, http.StatusBadRequest, "cancellationCode is required")
		return
	}

	if err := s.service.RequestCancellation(r.Context(), orderID, req.CancellationCode); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orderId": orderID})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	writeError(w, status, http.StatusText(status))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Handler() http.Handler { return s.router }
