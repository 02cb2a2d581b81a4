package internal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giannis84/news-favourites/internal/database"
	"github.com/giannis84/news-favourites/internal/favourites"
	"github.com/giannis84/news-favourites/internal/logging"
	"github.com/giannis84/news-favourites/internal/routes"
	"github.com/go-chi/chi/v5"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewService(t *testing.T) {
	tests := []struct {
		name             string
		cfg              ServiceConfig
		wantAddr         string
		wantReadTimeout  time.Duration
		wantWriteTimeout time.Duration
		wantIdleTimeout  time.Duration
	}{
		{
			name: "applies default timeouts when none provided",
			cfg: ServiceConfig{
				Addr:   ":8080",
				Logger: testLogger(),
			},
			wantAddr:         ":8080",
			wantReadTimeout:  15 * time.Second,
			wantWriteTimeout: 15 * time.Second,
			wantIdleTimeout:  60 * time.Second,
		},
		{
			name: "uses custom timeouts when provided",
			cfg: ServiceConfig{
				Addr:         ":9090",
				Logger:       testLogger(),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  30 * time.Second,
			},
			wantAddr:         ":9090",
			wantReadTimeout:  5 * time.Second,
			wantWriteTimeout: 10 * time.Second,
			wantIdleTimeout:  30 * time.Second,
		},
		{
			name: "partial custom timeouts uses defaults for the rest",
			cfg: ServiceConfig{
				Addr:        ":8080",
				Logger:      testLogger(),
				ReadTimeout: 3 * time.Second,
			},
			wantAddr:         ":8080",
			wantReadTimeout:  3 * time.Second,
			wantWriteTimeout: 15 * time.Second,
			wantIdleTimeout:  60 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.cfg)

			if svc.HTTPServer == nil {
				t.Fatal("expected HTTPServer to be set")
			}
			if svc.Router == nil {
				t.Fatal("expected Router to be set")
			}
			if svc.Logger == nil {
				t.Fatal("expected Logger to be set")
			}
			if svc.HTTPServer.Addr != tt.wantAddr {
				t.Errorf("expected Addr %q, got %q", tt.wantAddr, svc.HTTPServer.Addr)
			}
			if svc.HTTPServer.ReadTimeout != tt.wantReadTimeout {
				t.Errorf("expected ReadTimeout %v, got %v", tt.wantReadTimeout, svc.HTTPServer.ReadTimeout)
			}
			if svc.HTTPServer.WriteTimeout != tt.wantWriteTimeout {
				t.Errorf("expected WriteTimeout %v, got %v", tt.wantWriteTimeout, svc.HTTPServer.WriteTimeout)
			}
			if svc.HTTPServer.IdleTimeout != tt.wantIdleTimeout {
				t.Errorf("expected IdleTimeout %v, got %v", tt.wantIdleTimeout, svc.HTTPServer.IdleTimeout)
			}
		})
	}
}

func TestNewService_ServesHealthRoutes(t *testing.T) {
	tests := []struct {
		name       string
		routes     RoutesRegistry
		path       string
		wantStatus int
	}{
		{
			name:       "liveness",
			routes:     routes.RegisterHealthRoutes(database.NewMemoryStore(), nil),
			path:       "/health/live",
			wantStatus: http.StatusOK,
		},
		{
			name:       "readiness against in-memory storage",
			routes:     routes.RegisterHealthRoutes(database.NewMemoryStore(), nil),
			path:       "/health/ready",
			wantStatus: http.StatusOK,
		},
		{
			name:       "nil routes produces working router",
			routes:     nil,
			path:       "/health/live",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(ServiceConfig{
				Addr:   ":0",
				Logger: testLogger(),
				Routes: tt.routes,
			})

			// Use the router directly as an http.Handler, no need to start a server
			rr := httptest.NewRecorder()
			svc.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestNewService_HandlerIsRouter(t *testing.T) {
	svc := NewService(ServiceConfig{
		Addr:   ":8080",
		Logger: testLogger(),
	})

	if svc.HTTPServer.Handler != svc.Router {
		t.Error("expected HTTPServer.Handler to be the chi router")
	}
}

func TestNewService_AttachesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	svc := NewService(ServiceConfig{
		Addr:   ":0",
		Logger: logger,
		Routes: func(r chi.Router) {
			r.Get("/favourites", func(w http.ResponseWriter, r *http.Request) {
				logging.Log(r.Context()).Layer("test").Info("handled")
				w.WriteHeader(http.StatusOK)
			})
		},
	})

	rr := httptest.NewRecorder()
	svc.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/favourites", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), `"request_id"`) {
		t.Errorf("expected request-scoped log line with request_id, got %s", buf.String())
	}
}

// A handler outside favourites.Provider is a wiring bug; it must surface as a 500, not crash the process.
func TestNewService_RecoversFromMissingStore(t *testing.T) {
	svc := NewService(ServiceConfig{
		Addr:   ":0",
		Logger: testLogger(),
		Routes: func(r chi.Router) {
			r.Get("/favourites", func(w http.ResponseWriter, r *http.Request) {
				favourites.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
		},
	})

	rr := httptest.NewRecorder()
	svc.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/favourites", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}

func TestService_ShutdownBeforeStart(t *testing.T) {
	svc := NewService(ServiceConfig{Addr: ":0", Logger: testLogger()})

	if err := svc.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}
